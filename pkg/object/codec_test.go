package object

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestDecodeEncodeBlob(t *testing.T) {
	obj, err := Decode(TypeBlob, []byte("raw bytes\x00with nul"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	blob, ok := obj.(*Blob)
	if !ok {
		t.Fatalf("Decode returned %T, want *Blob", obj)
	}

	objType, payload, err := Encode(blob)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if objType != TypeBlob {
		t.Errorf("type = %q, want %q", objType, TypeBlob)
	}
	if !bytes.Equal(payload, []byte("raw bytes\x00with nul")) {
		t.Errorf("payload = %q", payload)
	}
}

func TestDecodeEncodeCommit(t *testing.T) {
	raw := []byte("tree " + string(hashA) + "\nparent " + string(hashB) +
		"\nauthor Bob <bob@example.com> 1700000000 +0000\n\ncommit message\n")

	obj, err := Decode(TypeCommit, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	commit, ok := obj.(*Commit)
	if !ok {
		t.Fatalf("Decode returned %T, want *Commit", obj)
	}

	if th, _ := commit.TreeHash(); th != hashA {
		t.Errorf("TreeHash = %q, want %q", th, hashA)
	}
	if ps := commit.Parents(); !reflect.DeepEqual(ps, []Hash{hashB}) {
		t.Errorf("Parents = %v, want [%s]", ps, hashB)
	}
	if !bytes.Equal(commit.Message(), []byte("commit message\n")) {
		t.Errorf("Message = %q", commit.Message())
	}

	objType, payload, err := Encode(commit)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if objType != TypeCommit {
		t.Errorf("type = %q, want %q", objType, TypeCommit)
	}
	if !bytes.Equal(payload, raw) {
		t.Errorf("payload = %q, want %q", payload, raw)
	}
}

func TestDecodeEncodeTag(t *testing.T) {
	raw := []byte("object " + string(hashA) +
		"\ntype commit\ntag v1.0\ntagger Bob <bob@example.com> 1700000000 +0000\n\nrelease\n")

	obj, err := Decode(TypeTag, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tag, ok := obj.(*Tag)
	if !ok {
		t.Fatalf("Decode returned %T, want *Tag", obj)
	}
	if target, _ := tag.TargetHash(); target != hashA {
		t.Errorf("TargetHash = %q, want %q", target, hashA)
	}

	objType, payload, err := Encode(tag)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if objType != TypeTag {
		t.Errorf("type = %q, want %q", objType, TypeTag)
	}
	if !bytes.Equal(payload, raw) {
		t.Errorf("payload = %q, want %q", payload, raw)
	}
}

func TestDecodeEncodeTree(t *testing.T) {
	tr := &Tree{Entries: []TreeEntry{
		{Mode: TreeModeDir, Name: "sub", Hash: hashB},
		{Mode: TreeModeFile, Name: "file", Hash: hashA},
	}}
	objType, payload, err := Encode(tr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if objType != TypeTree {
		t.Errorf("type = %q, want %q", objType, TypeTree)
	}

	obj, err := Decode(TypeTree, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	back := obj.(*Tree)
	if len(back.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(back.Entries))
	}
	// Canonical order: "file" before "sub".
	if back.Entries[0].Name != "file" || back.Entries[1].Name != "sub" {
		t.Errorf("order = %q, %q", back.Entries[0].Name, back.Entries[1].Name)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode(ObjectType("banana"), []byte("x"))
	if !errors.Is(err, ErrUnknownObjectType) {
		t.Errorf("err = %v, want ErrUnknownObjectType", err)
	}
}

func TestDecodeCopiesBlobPayload(t *testing.T) {
	raw := []byte("mutable")
	obj, err := Decode(TypeBlob, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw[0] = 'X'
	if obj.(*Blob).Data[0] == 'X' {
		t.Error("Decode aliased the caller's buffer")
	}
}
