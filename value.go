package xmlmap

// Value is the generic tree value produced by parsing and consumed by
// unparsing. The concrete types are Null, String, Bool, List and *Mapping.
//
// A nil Value is not a member of the model; hooks return nil to signal
// that an entry should be dropped. An explicit null is represented by Null.
type Value interface {
	isValue()
}

// Null represents the absence of content: an element with no attributes
// and no text parses to Null.
type Null struct{}

// String holds element text or an attribute value.
type String string

// Bool is rendered as the literal tokens "true" and "false" when
// unparsing. The parser never produces it; hooks may.
type Bool bool

// List holds the values of repeated sibling elements in document order.
type List []Value

// Mapping is an insertion-ordered map from string keys to values.
// A Mapping never holds two entries with the same key; repeated keys are
// resolved into a List by the parser's merge rule before insertion.
type Mapping struct {
	keys  []string
	items map[string]Value
}

func (Null) isValue()     {}
func (String) isValue()   {}
func (Bool) isValue()     {}
func (List) isValue()     {}
func (*Mapping) isValue() {}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]Value)}
}

// Set stores value under key. If the key is already present its value is
// replaced and its position in the key order is kept; otherwise the key is
// appended after all existing keys.
func (m *Mapping) Set(key string, value Value) {
	if m.items == nil {
		m.items = make(map[string]Value)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}
