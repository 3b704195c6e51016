package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/witscm/wit/pkg/object"
)

// Ref pairs a ref name (e.g. "refs/heads/master") with the hash it
// resolves to.
type Ref struct {
	Name string
	Hash object.Hash
}

// ResolveRef reads the ref file at name under the metadata directory
// and follows "ref: " indirections until it reaches a hash.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	data, err := os.ReadFile(r.MetaPath(filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, err)
	}
	content := strings.TrimRight(string(data), "\n")
	if strings.HasPrefix(content, "ref: ") {
		return r.ResolveRef(strings.TrimPrefix(content, "ref: "))
	}
	return object.Hash(content), nil
}

// UpdateRef writes a hash to the named ref file, creating parent
// directories as needed. The write lands via temp + rename.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	refPath := r.MetaPath(filepath.FromSlash(name))
	dir := filepath.Dir(refPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, ".ref-tmp-*")
	if err != nil {
		return fmt.Errorf("update ref %q: tmpfile: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(string(h) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	if err := os.Rename(tmpName, refPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	return nil
}

// ListRefs walks refs/ and returns every ref with its resolved hash,
// sorted by name.
func (r *Repo) ListRefs() ([]Ref, error) {
	root := r.MetaPath("refs")
	var refs []Ref

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.MetaDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		h, err := r.ResolveRef(name)
		if err != nil {
			return err
		}
		refs = append(refs, Ref{Name: name, Hash: h})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// CreateTag creates a lightweight tag: a ref under refs/tags/ pointing
// directly at target.
func (r *Repo) CreateTag(name string, target object.Hash) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}

	refName := "refs/tags/" + name
	if _, err := r.ResolveRef(refName); err == nil {
		return fmt.Errorf("create tag: tag %q already exists", name)
	}
	return r.UpdateRef(refName, target)
}

// CreateAnnotatedTag stores a tag object pointing at target and creates
// a ref under refs/tags/ pointing at the tag object. Returns the tag
// object's hash.
func (r *Repo) CreateAnnotatedTag(name string, target object.Hash, tagger, message string) (object.Hash, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if strings.TrimSpace(tagger) == "" {
		tagger = "unknown"
	}
	message = strings.TrimRight(message, "\n") + "\n"

	targetObj, ok, err := r.Store.Read(target)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: read target %s: %w", target, err)
	}
	if !ok {
		return "", fmt.Errorf("create annotated tag: target %s not found", target)
	}

	refName := "refs/tags/" + name
	if _, err := r.ResolveRef(refName); err == nil {
		return "", fmt.Errorf("create annotated tag: tag %q already exists", name)
	}

	fields := object.NewKVLM()
	fields.Add("object", []byte(target))
	fields.Add("type", []byte(targetObj.Type()))
	fields.Add("tag", []byte(name))
	fields.Add("tagger", []byte(fmt.Sprintf("%s %d +0000", tagger, time.Now().Unix())))
	fields.Message = []byte(message)

	tagHash, err := r.Store.Write(&object.Tag{Fields: fields})
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if err := r.UpdateRef(refName, tagHash); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	return tagHash, nil
}

func validateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.ContainsAny(name, " \t\n~^:?*[\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}
