package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
)

// Binary tree entry layout, repeated with no delimiter:
//
//	[mode] 0x20 [name] 0x00 [hash]
//
// where mode is 5 or 6 ASCII octal digits (5-digit modes are read as if
// zero-padded to 6), name is the raw path segment, and hash is the
// referenced object's 20-byte binary digest.

// treeSortKey orders entries the way two independent encoders must
// agree on: directories sort as if their name ended in "/", so a file
// and a same-named directory compare the file first.
func treeSortKey(e TreeEntry) string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// MarshalTree serializes a Tree. Entries are re-sorted into canonical
// order on every encode regardless of input order, so equal trees
// produce identical bytes and therefore identical hashes.
func MarshalTree(tr *Tree) ([]byte, error) {
	// Normalize modes before sorting: the directory test reads the
	// first two digits, so a 5-digit "40000" must become "040000" now.
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	for i, e := range sorted {
		if len(e.Mode) == 5 {
			sorted[i].Mode = "0" + e.Mode
		}
		if len(sorted[i].Mode) != 6 {
			return nil, fmt.Errorf("marshal tree: entry %q: mode %q: %w", e.Name, e.Mode, ErrMalformedTreeEntry)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return treeSortKey(sorted[i]) < treeSortKey(sorted[j])
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		raw, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(raw) != 20 {
			return nil, fmt.Errorf("marshal tree: entry %q: bad hash %q: %w", e.Name, e.Hash, ErrMalformedTreeEntry)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a binary tree payload. Entry order is preserved
// as stored; decode does not validate canonical order.
func UnmarshalTree(data []byte) (*Tree, error) {
	tr := &Tree{}
	pos := 0
	for pos < len(data) {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp < 0 {
			return nil, fmt.Errorf("unmarshal tree: truncated at offset %d: %w", pos, ErrMalformedTreeEntry)
		}
		if sp != 5 && sp != 6 {
			return nil, fmt.Errorf("unmarshal tree: mode length %d at offset %d: %w", sp, pos, ErrMalformedTreeEntry)
		}
		mode := string(data[pos : pos+sp])
		if len(mode) == 5 {
			mode = "0" + mode
		}
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: unterminated name at offset %d: %w", pos, ErrMalformedTreeEntry)
		}
		name := string(data[pos : pos+nul])
		pos += nul + 1

		if pos+20 > len(data) {
			return nil, fmt.Errorf("unmarshal tree: truncated hash for %q: %w", name, ErrMalformedTreeEntry)
		}
		hash := Hash(hex.EncodeToString(data[pos : pos+20]))
		pos += 20

		tr.Entries = append(tr.Entries, TreeEntry{Mode: mode, Name: name, Hash: hash})
	}
	return tr, nil
}
