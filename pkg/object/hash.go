package object

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Frame builds the canonical envelope "type len\0payload". The hash of
// an object is always computed over these exact bytes; compression is
// applied only to the on-disk representation.
func Frame(objType ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", objType, len(payload))
	frame := make([]byte, 0, len(header)+len(payload))
	frame = append(frame, header...)
	frame = append(frame, payload...)
	return frame
}

// ParseFrame splits a frame back into its type tag and payload. The
// declared decimal length must equal the actual payload length; a
// mismatch is the format's only built-in integrity check beyond the
// digest itself and fails with ErrCorruptObject.
func ParseFrame(frame []byte) (ObjectType, []byte, error) {
	sp := bytes.IndexByte(frame, ' ')
	if sp < 0 {
		return "", nil, fmt.Errorf("parse frame: no space in header: %w", ErrCorruptObject)
	}
	nul := bytes.IndexByte(frame[sp:], 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("parse frame: no NUL in header: %w", ErrCorruptObject)
	}
	nul += sp

	objType := ObjectType(frame[:sp])
	payload := frame[nul+1:]

	size, err := strconv.Atoi(string(frame[sp+1 : nul]))
	if err != nil {
		return "", nil, fmt.Errorf("parse frame: bad length %q: %w", frame[sp+1:nul], ErrCorruptObject)
	}
	if size != len(payload) {
		return "", nil, fmt.Errorf("parse frame: length mismatch (header=%d, actual=%d): %w",
			size, len(payload), ErrCorruptObject)
	}
	return objType, payload, nil
}

// Identify computes the SHA-1 of the exact frame bytes and returns it
// as a lowercase hex Hash. Pure function of its input.
func Identify(frame []byte) Hash {
	sum := sha1.Sum(frame)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashPayload frames a payload and returns its Hash without touching
// storage.
func HashPayload(objType ObjectType, payload []byte) Hash {
	return Identify(Frame(objType, payload))
}

// HashObject decodes raw bytes as the given type, then computes the
// object's hash. If store is non-nil the object is also written;
// a nil store is the dry-run mode of hash-object without -w. Decoding
// first means structured payloads are normalized (a tree hashes by its
// canonical serialization, not the caller's byte order).
func HashObject(raw []byte, objType ObjectType, store *Store) (Hash, error) {
	obj, err := Decode(objType, raw)
	if err != nil {
		return "", err
	}
	if store != nil {
		return store.Write(obj)
	}
	_, payload, err := Encode(obj)
	if err != nil {
		return "", err
	}
	return HashPayload(objType, payload), nil
}
