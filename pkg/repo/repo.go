package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/witscm/wit/pkg/object"
)

// MetaDirName is the repository metadata directory created inside the
// working tree.
const MetaDirName = ".wit"

var (
	// ErrNotARepository indicates the metadata directory is missing and
	// the caller is not forcing creation.
	ErrNotARepository = errors.New("not a wit repository")

	// ErrUnsupportedFormatVersion indicates a config declaring a
	// repositoryformatversion other than the one supported value.
	ErrUnsupportedFormatVersion = errors.New("unsupported repository format version")

	// ErrInvalidTarget indicates a checkout destination that exists but
	// is not an empty directory.
	ErrInvalidTarget = errors.New("invalid checkout target")
)

// Repo represents an opened wit repository: a working tree root, its
// .wit/ metadata directory, and the object store inside it.
type Repo struct {
	WorkTree string
	MetaDir  string
	Store    *object.Store
	Config   *Config
}

// Open opens the repository whose working tree is at path. The metadata
// directory must exist and its config must declare a supported format
// version.
func Open(path string) (*Repo, error) {
	r := &Repo{
		WorkTree: path,
		MetaDir:  filepath.Join(path, MetaDirName),
	}

	info, err := os.Stat(r.MetaDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", path, ErrNotARepository)
	}

	cfg, err := LoadConfig(r.MetaPath("config"))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if cfg.Core.RepositoryFormatVersion != SupportedFormatVersion {
		return nil, fmt.Errorf("open %s: version %d: %w",
			path, cfg.Core.RepositoryFormatVersion, ErrUnsupportedFormatVersion)
	}

	r.Config = cfg
	r.Store = object.NewStore(r.MetaDir)
	return r, nil
}

// Find searches upward from path for a repository metadata directory
// and opens the repository containing it.
func Find(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("find repository: abs path: %w", err)
	}

	cur := abs
	for {
		if info, err := os.Stat(filepath.Join(cur, MetaDirName)); err == nil && info.IsDir() {
			return Open(cur)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("find repository from %s: %w", abs, ErrNotARepository)
		}
		cur = parent
	}
}

// MetaPath joins path segments under the metadata directory.
func (r *Repo) MetaPath(segments ...string) string {
	return filepath.Join(append([]string{r.MetaDir}, segments...)...)
}

// EnsureDir creates (if needed) and returns a directory under the
// metadata directory.
func (r *Repo) EnsureDir(segments ...string) (string, error) {
	path := r.MetaPath(segments...)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return path, nil
		}
		return "", fmt.Errorf("ensure dir %s: not a directory", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("ensure dir %s: %w", path, err)
	}
	return path, nil
}

// Head reads HEAD. If the content starts with "ref: ", the ref path
// (e.g. "refs/heads/master") is returned; otherwise the raw content is
// returned as a detached hash string.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(r.MetaPath("HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if strings.HasPrefix(content, "ref: ") {
		return strings.TrimPrefix(content, "ref: "), nil
	}
	return content, nil
}
