package repo

import (
	"strings"
	"testing"

	"github.com/witscm/wit/pkg/object"
)

// writeCommit stores a minimal commit pointing at tree, with optional
// parents, and returns its hash.
func writeCommit(t *testing.T, r *Repo, tree object.Hash, message string, parents ...object.Hash) object.Hash {
	t.Helper()
	fields := object.NewKVLM()
	fields.Add("tree", []byte(tree))
	for _, p := range parents {
		fields.Add("parent", []byte(p))
	}
	fields.Add("author", []byte("Test <test@example.com> 1700000000 +0000"))
	fields.Message = []byte(message)

	h, err := r.Store.Write(&object.Commit{Fields: fields})
	if err != nil {
		t.Fatalf("write commit: %v", err)
	}
	return h
}

func writeTree(t *testing.T, r *Repo, entries ...object.TreeEntry) object.Hash {
	t.Helper()
	h, err := r.Store.Write(&object.Tree{Entries: entries})
	if err != nil {
		t.Fatalf("write tree: %v", err)
	}
	return h
}

func TestFindObjectFullHash(t *testing.T) {
	r := tempRepo(t)
	h := writeBlob(t, r, "content")

	got, err := r.FindObject(string(h), "", false)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != h {
		t.Errorf("resolved = %q, want %q", got, h)
	}
}

func TestFindObjectShortPrefix(t *testing.T) {
	r := tempRepo(t)
	h := writeBlob(t, r, "content")

	got, err := r.FindObject(string(h[:8]), "", false)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != h {
		t.Errorf("resolved = %q, want %q", got, h)
	}
}

func TestFindObjectUnknownName(t *testing.T) {
	r := tempRepo(t)
	if _, err := r.FindObject("no-such-thing", "", false); err == nil {
		t.Error("unknown name should fail")
	}
	if _, err := r.FindObject("  ", "", false); err == nil {
		t.Error("blank name should fail")
	}
}

func TestFindObjectTagName(t *testing.T) {
	r := tempRepo(t)
	h := writeBlob(t, r, "content")
	if err := r.CreateTag("release", h); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	got, err := r.FindObject("release", "", false)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != h {
		t.Errorf("resolved = %q, want %q", got, h)
	}
}

func TestFindObjectHead(t *testing.T) {
	r := tempRepo(t)
	tree := writeTree(t, r)
	commit := writeCommit(t, r, tree, "initial\n")
	if err := r.UpdateRef("refs/heads/master", commit); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}

	got, err := r.FindObject("HEAD", "", false)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != commit {
		t.Errorf("HEAD = %q, want %q", got, commit)
	}
}

func TestFindObjectFollowCommitToTree(t *testing.T) {
	r := tempRepo(t)
	blob := writeBlob(t, r, "data")
	tree := writeTree(t, r, object.TreeEntry{Mode: object.TreeModeFile, Name: "f", Hash: blob})
	commit := writeCommit(t, r, tree, "initial\n")

	got, err := r.FindObject(string(commit), object.TypeTree, true)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != tree {
		t.Errorf("followed to %q, want tree %q", got, tree)
	}
}

func TestFindObjectFollowAnnotatedTag(t *testing.T) {
	r := tempRepo(t)
	blob := writeBlob(t, r, "data")
	tree := writeTree(t, r, object.TreeEntry{Mode: object.TreeModeFile, Name: "f", Hash: blob})
	commit := writeCommit(t, r, tree, "initial\n")

	if _, err := r.CreateAnnotatedTag("v1", commit, "", "first"); err != nil {
		t.Fatalf("CreateAnnotatedTag: %v", err)
	}

	// Tag object -> commit -> tree.
	got, err := r.FindObject("v1", object.TypeTree, true)
	if err != nil {
		t.Fatalf("FindObject: %v", err)
	}
	if got != tree {
		t.Errorf("followed to %q, want tree %q", got, tree)
	}

	// Without follow, a type mismatch is an error.
	if _, err := r.FindObject("v1", object.TypeTree, false); err == nil {
		t.Error("FindObject without follow should fail on type mismatch")
	}
}

func TestFindObjectTypeMismatch(t *testing.T) {
	r := tempRepo(t)
	blob := writeBlob(t, r, "data")

	_, err := r.FindObject(string(blob), object.TypeCommit, true)
	if err == nil || !strings.Contains(err.Error(), "not a") {
		t.Errorf("err = %v, want type mismatch", err)
	}
}

func TestFindObjectAmbiguousPrefix(t *testing.T) {
	r := tempRepo(t)

	// Manufacture two object files sharing a 4-hex prefix: with 16^4
	// buckets a couple thousand writes all but guarantees a pair.
	seen := make(map[string]object.Hash)
	var prefix string
	for i := 0; i < 2000 && prefix == ""; i++ {
		h, err := r.Store.Write(&object.Blob{Data: []byte{byte(i), byte(i >> 8)}})
		if err != nil {
			t.Fatalf("write: %v", err)
		}
		if prev, ok := seen[string(h[:4])]; ok && prev != h {
			prefix = string(h[:4])
		}
		seen[string(h[:4])] = h
	}
	if prefix == "" {
		t.Skip("no colliding 4-hex prefix found in sample")
	}

	_, err := r.FindObject(prefix, "", false)
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("err = %v, want ambiguity error", err)
	}
}
