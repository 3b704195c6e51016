package object

import "fmt"

// Decode constructs a typed object from a type tag and raw payload.
// Blob payloads pass through untouched; tree payloads go through the
// binary tree codec; commit and tag payloads through the KVLM codec.
func Decode(objType ObjectType, payload []byte) (Object, error) {
	switch objType {
	case TypeBlob:
		data := make([]byte, len(payload))
		copy(data, payload)
		return &Blob{Data: data}, nil
	case TypeTree:
		return UnmarshalTree(payload)
	case TypeCommit:
		m, err := ParseKVLM(payload)
		if err != nil {
			return nil, fmt.Errorf("decode commit: %w", err)
		}
		return &Commit{Fields: m}, nil
	case TypeTag:
		m, err := ParseKVLM(payload)
		if err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		return &Tag{Fields: m}, nil
	default:
		return nil, fmt.Errorf("decode: type %q: %w", objType, ErrUnknownObjectType)
	}
}

// Encode serializes a typed object back to its type tag and payload.
// Inverse of Decode up to tree order normalization: decoding and
// re-encoding a tree yields its canonical byte form.
func Encode(obj Object) (ObjectType, []byte, error) {
	switch o := obj.(type) {
	case *Blob:
		data := make([]byte, len(o.Data))
		copy(data, o.Data)
		return TypeBlob, data, nil
	case *Tree:
		payload, err := MarshalTree(o)
		if err != nil {
			return "", nil, err
		}
		return TypeTree, payload, nil
	case *Commit:
		return TypeCommit, o.Fields.Serialize(), nil
	case *Tag:
		return TypeTag, o.Fields.Serialize(), nil
	default:
		return "", nil, fmt.Errorf("encode: %T: %w", obj, ErrUnknownObjectType)
	}
}
