package object

import (
	"bytes"
)

// KVLM is a key-value list with message: an ordered mapping from header
// keys to one or more values, plus a trailing free-text message. It is
// the payload format of commit and tag objects.
//
// Distinct keys keep their first-seen order across a parse/serialize
// round trip; a repeated key keeps all its values in the order
// encountered.
type KVLM struct {
	keys    []string
	values  map[string][][]byte
	Message []byte
}

// NewKVLM returns an empty KVLM.
func NewKVLM() *KVLM {
	return &KVLM{values: make(map[string][][]byte)}
}

// Add appends a value under key, recording key order on first use.
func (m *KVLM) Add(key string, value []byte) {
	if m.values == nil {
		m.values = make(map[string][][]byte)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
}

// Get returns the first value recorded under key.
func (m *KVLM) Get(key string) (string, bool) {
	vals := m.values[key]
	if len(vals) == 0 {
		return "", false
	}
	return string(vals[0]), true
}

// GetAll returns all values recorded under key, in insertion order.
func (m *KVLM) GetAll(key string) [][]byte {
	return m.values[key]
}

// Keys returns the distinct keys in first-seen order.
func (m *KVLM) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// ParseKVLM decodes the header/message text format. Header lines are
// "key value"; a value continues onto the next physical line when that
// line starts with a single space, which is stripped and the pieces
// rejoined with a plain newline. The first blank line ends the headers;
// everything after it is the message, verbatim.
//
// The format has no escaping: a message whose lines happen to look like
// header lines cannot be told apart from headers by a re-parse. That is
// an inherent limitation of the format, not validated against here.
func ParseKVLM(raw []byte) (*KVLM, error) {
	m := NewKVLM()

	pos := 0
	for pos < len(raw) {
		sp := bytes.IndexByte(raw[pos:], ' ')
		nl := bytes.IndexByte(raw[pos:], '\n')

		// A blank line (newline before any space, or no space left)
		// ends the headers; the remainder is the message.
		if sp < 0 || (nl >= 0 && nl < sp) {
			m.Message = append([]byte(nil), raw[pos+1:]...)
			return m, nil
		}

		key := string(raw[pos : pos+sp])

		// The value ends at the first newline not followed by a space.
		end := pos + sp
		for {
			i := bytes.IndexByte(raw[end+1:], '\n')
			if i < 0 {
				end = len(raw)
				break
			}
			end += 1 + i
			if end+1 >= len(raw) || raw[end+1] != ' ' {
				break
			}
		}

		value := raw[pos+sp+1 : end]
		m.Add(key, bytes.ReplaceAll(value, []byte("\n "), []byte("\n")))

		pos = end + 1
	}
	return m, nil
}

// Serialize re-encodes the KVLM: one "key value" line per value in
// first-seen key order (internal newlines in a value regain their
// leading-space continuation marker), then a blank line and the
// message.
func (m *KVLM) Serialize() []byte {
	var buf bytes.Buffer
	for _, key := range m.keys {
		for _, v := range m.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll(v, []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.Write(m.Message)
	return buf.Bytes()
}
