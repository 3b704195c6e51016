package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/witscm/wit/pkg/object"
)

// Checkout materializes the tree at treeHash under target. The target
// directory must either not exist (it is created) or be an existing
// empty directory; anything else fails with ErrInvalidTarget. Existing
// working-tree files outside the fresh target are never touched.
func (r *Repo) Checkout(treeHash object.Hash, target string) error {
	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("checkout %s: not a directory: %w", target, ErrInvalidTarget)
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return fmt.Errorf("checkout %s: %w", target, err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("checkout %s: not empty: %w", target, ErrInvalidTarget)
		}
	} else if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("checkout %s: mkdir: %w", target, err)
	}

	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return fmt.Errorf("checkout %s: %w", target, err)
	}
	return r.checkoutTree(tree, target)
}

// checkoutTree writes one tree level: blobs become files named after
// their entry, subtrees recurse into fresh subdirectories.
func (r *Repo) checkoutTree(tree *object.Tree, dir string) error {
	for _, entry := range tree.Entries {
		dest := filepath.Join(dir, entry.Name)

		obj, ok, err := r.Store.Read(entry.Hash)
		if err != nil {
			return fmt.Errorf("checkout entry %q: %w", entry.Name, err)
		}
		if !ok {
			return fmt.Errorf("checkout entry %q: object %s not found", entry.Name, entry.Hash)
		}

		switch o := obj.(type) {
		case *object.Tree:
			if err := os.Mkdir(dest, 0o755); err != nil {
				return fmt.Errorf("checkout entry %q: mkdir: %w", entry.Name, err)
			}
			if err := r.checkoutTree(o, dest); err != nil {
				return err
			}
		case *object.Blob:
			if err := os.WriteFile(dest, o.Data, filePermForMode(entry.Mode)); err != nil {
				return fmt.Errorf("checkout entry %q: write: %w", entry.Name, err)
			}
		default:
			return fmt.Errorf("checkout entry %q: unexpected %s object", entry.Name, obj.Type())
		}
	}
	return nil
}

func filePermForMode(mode string) os.FileMode {
	if mode == object.TreeModeExecutable {
		return 0o755
	}
	return 0o644
}
