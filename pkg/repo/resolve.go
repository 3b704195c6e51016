package repo

import (
	"fmt"
	"os"
	"strings"

	"github.com/witscm/wit/pkg/object"
)

func isHexString(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return len(s) > 0
}

// resolveName collects every object the name could mean: HEAD, a full
// or abbreviated hash (at least 4 hex digits, matched by prefix scan of
// the object directory), a tag, or a branch.
func (r *Repo) resolveName(name string) ([]object.Hash, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("resolve: empty name")
	}

	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(head, "refs/") {
			h, err := r.ResolveRef(head)
			if err != nil {
				return nil, fmt.Errorf("resolve HEAD: %w", err)
			}
			return []object.Hash{h}, nil
		}
		return []object.Hash{object.Hash(head)}, nil
	}

	var candidates []object.Hash

	lower := strings.ToLower(name)
	if isHexString(lower) && len(lower) >= 4 && len(lower) <= 40 {
		prefix := lower[:2]
		rest := lower[2:]
		entries, err := os.ReadDir(r.MetaPath("objects", prefix))
		if err == nil {
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), rest) {
					candidates = append(candidates, object.Hash(prefix+e.Name()))
				}
			}
		}
	}

	for _, ref := range []string{"refs/tags/" + name, "refs/heads/" + name} {
		if h, err := r.ResolveRef(ref); err == nil {
			candidates = append(candidates, h)
		}
	}

	return candidates, nil
}

// FindObject resolves a human-supplied name to an object hash. With a
// non-empty want type and follow enabled, tag objects are followed to
// their target and commits to their tree until an object of the wanted
// type is reached.
func (r *Repo) FindObject(name string, want object.ObjectType, follow bool) (object.Hash, error) {
	candidates, err := r.resolveName(name)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("resolve %q: no such object", name)
	}
	if len(candidates) > 1 {
		return "", fmt.Errorf("resolve %q: ambiguous, candidates are %v", name, candidates)
	}

	h := candidates[0]
	if want == "" {
		return h, nil
	}

	for {
		obj, ok, err := r.Store.Read(h)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("resolve %q: object %s not found", name, h)
		}
		if obj.Type() == want {
			return h, nil
		}
		if !follow {
			return "", fmt.Errorf("resolve %q: object %s is a %s, not a %s", name, h, obj.Type(), want)
		}

		switch o := obj.(type) {
		case *object.Tag:
			target, ok := o.TargetHash()
			if !ok {
				return "", fmt.Errorf("resolve %q: tag %s has no object header", name, h)
			}
			h = target
		case *object.Commit:
			if want != object.TypeTree {
				return "", fmt.Errorf("resolve %q: object %s is a commit, not a %s", name, h, want)
			}
			tree, ok := o.TreeHash()
			if !ok {
				return "", fmt.Errorf("resolve %q: commit %s has no tree header", name, h)
			}
			h = tree
		default:
			return "", fmt.Errorf("resolve %q: object %s is a %s, not a %s", name, h, obj.Type(), want)
		}
	}
}
