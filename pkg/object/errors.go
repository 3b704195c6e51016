package object

import "errors"

var (
	// ErrCorruptObject indicates a decompressed frame whose declared
	// length disagrees with the actual payload length.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrUnknownObjectType indicates a frame whose type tag is not one
	// of blob, tree, commit or tag.
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrMalformedTreeEntry indicates a tree payload with a mode field
	// of the wrong length, or input truncated mid-entry.
	ErrMalformedTreeEntry = errors.New("malformed tree entry")
)
