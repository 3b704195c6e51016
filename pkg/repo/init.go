package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/witscm/wit/pkg/object"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Create initializes a new repository at path. The working tree is
// created if absent; an existing non-empty metadata directory is an
// error. The metadata skeleton is objects/, refs/heads/, refs/tags/,
// branches/, HEAD pointing at refs/heads/master, a description file and
// a default config.
func Create(path string) (*Repo, error) {
	r := &Repo{
		WorkTree: path,
		MetaDir:  filepath.Join(path, MetaDirName),
	}

	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("init: %s is not a directory", path)
		}
		if entries, err := os.ReadDir(r.MetaDir); err == nil && len(entries) > 0 {
			return nil, fmt.Errorf("init: %s is not empty", r.MetaDir)
		}
	} else if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir %s: %w", path, err)
	}

	for _, segments := range [][]string{
		{"branches"},
		{"objects"},
		{"refs", "tags"},
		{"refs", "heads"},
	} {
		if _, err := r.EnsureDir(segments...); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	if err := os.WriteFile(r.MetaPath("description"), []byte(defaultDescription), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}
	if err := os.WriteFile(r.MetaPath("HEAD"), []byte("ref: refs/heads/master\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	cfg := DefaultConfig()
	if err := cfg.Save(r.MetaPath("config")); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.Config = cfg
	r.Store = object.NewStore(r.MetaDir)
	return r, nil
}
