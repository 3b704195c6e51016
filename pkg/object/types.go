package object

// Hash is a 40-character hex-encoded SHA-1 digest of an object's framed
// byte representation. It is the object's storage key and the only way
// one object refers to another.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

const (
	// Tree mode constants, normalized to six ASCII octal digits.
	TreeModeDir        = "040000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
)

// Object is the tagged union over the four stored kinds. Values are
// immutable once constructed; a changed object is a new object with a
// new hash.
type Object interface {
	Type() ObjectType
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

func (*Blob) Type() ObjectType { return TypeBlob }

// TreeEntry is one entry in a tree object: a mode string, a single path
// segment, and the hash of the referenced object.
type TreeEntry struct {
	Mode string // six ASCII octal digits, e.g. 100644
	Name string // path segment, no separators
	Hash Hash
}

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool {
	return len(e.Mode) >= 2 && e.Mode[:2] == "04"
}

// Tree holds a list of directory entries. Entries carry no required
// in-memory order; MarshalTree sorts them canonically on emission.
type Tree struct {
	Entries []TreeEntry
}

func (*Tree) Type() ObjectType { return TypeTree }

// Commit holds commit metadata as a KVLM (tree, parent, author, ...)
// plus the commit message.
type Commit struct {
	Fields *KVLM
}

func (*Commit) Type() ObjectType { return TypeCommit }

// TreeHash returns the value of the "tree" header, if present.
func (c *Commit) TreeHash() (Hash, bool) {
	v, ok := c.Fields.Get("tree")
	if !ok {
		return "", false
	}
	return Hash(v), true
}

// Parents returns the values of the "parent" header in order. A root
// commit has none.
func (c *Commit) Parents() []Hash {
	vals := c.Fields.GetAll("parent")
	parents := make([]Hash, 0, len(vals))
	for _, v := range vals {
		parents = append(parents, Hash(v))
	}
	return parents
}

// Message returns the commit message.
func (c *Commit) Message() []byte {
	return c.Fields.Message
}

// Tag holds annotated tag metadata as a KVLM (object, type, tag,
// tagger) plus the tag message. Required keys are convention, not
// enforced by the codec.
type Tag struct {
	Fields *KVLM
}

func (*Tag) Type() ObjectType { return TypeTag }

// TargetHash returns the value of the "object" header, if present.
func (t *Tag) TargetHash() (Hash, bool) {
	v, ok := t.Fields.Get("object")
	if !ok {
		return "", false
	}
	return Hash(v), true
}
