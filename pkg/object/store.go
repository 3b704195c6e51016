package object

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Frames are zlib-compressed
// on disk. The store is append-only: objects are never updated or
// deleted, and a write for an already-present hash is a no-op.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given metadata directory. The
// objects/ subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) < 3 {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write encodes, frames, compresses and stores an object, returning its
// content hash. If the object file already exists it is left untouched:
// content addressing guarantees it holds byte-identical data, which
// makes Write idempotent. New files land via temp + rename.
func (s *Store) Write(obj Object) (Hash, error) {
	objType, payload, err := Encode(obj)
	if err != nil {
		return "", err
	}
	return s.WriteRaw(objType, payload)
}

// WriteRaw stores an already-encoded payload under its frame hash.
func (s *Store) WriteRaw(objType ObjectType, payload []byte) (Hash, error) {
	frame := Frame(objType, payload)
	h := Identify(frame)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	compressed, err := compressFrame(frame)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}
	return h, nil
}

// ReadRaw retrieves an object's type and payload by hash. A missing
// object reports ok=false with a nil error; callers use that for
// existence checks. The decompressed frame's declared length is
// validated against the actual payload.
func (s *Store) ReadRaw(h Hash) (ObjectType, []byte, bool, error) {
	if len(h) < 3 {
		return "", nil, false, fmt.Errorf("object read: short hash %q", h)
	}
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf("object read %s: %w", h, err)
	}

	frame, err := decompressFrame(compressed)
	if err != nil {
		return "", nil, false, fmt.Errorf("object read %s: %w", h, err)
	}
	objType, payload, err := ParseFrame(frame)
	if err != nil {
		return "", nil, false, fmt.Errorf("object read %s: %w", h, err)
	}
	return objType, payload, true, nil
}

// Read retrieves and decodes an object by hash. A missing object
// reports ok=false with a nil error.
func (s *Store) Read(h Hash) (Object, bool, error) {
	objType, payload, ok, err := s.ReadRaw(h)
	if err != nil || !ok {
		return nil, ok, err
	}
	obj, err := Decode(objType, payload)
	if err != nil {
		return nil, false, fmt.Errorf("object read %s: %w", h, err)
	}
	return obj, true, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

func (s *Store) readTyped(h Hash, want ObjectType) (Object, error) {
	obj, ok, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("object %s: not found", h)
	}
	if obj.Type() != want {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, obj.Type(), want)
	}
	return obj, nil
}

// ReadBlob reads a Blob, failing if the hash is absent or not a blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	obj, err := s.readTyped(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return obj.(*Blob), nil
}

// ReadTree reads a Tree, failing if the hash is absent or not a tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	obj, err := s.readTyped(h, TypeTree)
	if err != nil {
		return nil, err
	}
	return obj.(*Tree), nil
}

// ReadCommit reads a Commit, failing if the hash is absent or not a commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	obj, err := s.readTyped(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	return obj.(*Commit), nil
}

// ReadTag reads a Tag, failing if the hash is absent or not a tag.
func (s *Store) ReadTag(h Hash) (*Tag, error) {
	obj, err := s.readTyped(h, TypeTag)
	if err != nil {
		return nil, err
	}
	return obj.(*Tag), nil
}
