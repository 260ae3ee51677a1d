package xmlmap

import (
	"bytes"
	"io"
	"strings"
)

// Parse converts an XML document into its tree value: attributes become
// prefixed keys, repeated sibling tags become ordered lists, and text
// becomes a reserved key or a bare scalar.
func Parse(data []byte, opts ...Option) (*Mapping, error) {
	return NewDecoder(bytes.NewReader(data), opts...).Decode()
}

// ParseString is like Parse but reads from a string.
func ParseString(data string, opts ...Option) (*Mapping, error) {
	return NewDecoder(strings.NewReader(data), opts...).Decode()
}

// ParseReader is like Parse but pulls the document from r. Chunk
// generators can be adapted with NewChunkReader.
func ParseReader(r io.Reader, opts ...Option) (*Mapping, error) {
	return NewDecoder(r, opts...).Decode()
}

// Unparse converts a tree value back into XML text. Under the default
// full-document mode m must hold exactly one root entry and an XML
// declaration is emitted first.
func Unparse(m *Mapping, opts ...Option) (string, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
