package xmlmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-xmlmap/internal/escape"
)

// Encoder writes tree values as XML to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the XML rendering of m to the stream. The document is
// buffered in full before the first byte is written, so a failed encode
// never produces partial output.
func (e *Encoder) Encode(m *Mapping) error {
	cfg := defaultConfig()
	if err := cfg.apply(e.opts); err != nil {
		return err
	}

	if cfg.fullDocument {
		if m == nil || m.Len() != 1 {
			return &StructuralError{Msg: "document must have exactly one root"}
		}
	}

	w := &writer{cfg: &cfg}
	w.writeDeclaration()
	if m != nil {
		for i, key := range m.keys {
			if err := w.writeElement(key, m.items[key], i > 0); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(e.w, w.out.String())
	return err
}

// writer emits one document. Depth tracks the current indentation level
// for pretty printing.
type writer struct {
	cfg   *config
	out   strings.Builder
	depth int
}

func (w *writer) writeDeclaration() {
	if !w.cfg.fullDocument {
		return
	}
	w.out.WriteString(`<?xml version="1.0" encoding="`)
	w.out.WriteString(w.cfg.encoding)
	w.out.WriteString(`"?>`)
	w.out.WriteString(w.cfg.newline)
}

func (w *writer) writeIndent() {
	for i := 0; i < w.depth; i++ {
		w.out.WriteString(w.cfg.indent)
	}
}

// applyPre runs the preprocessing hook. The returned bool reports whether
// the element is kept; a hook returning a nil Value suppresses it.
func (w *writer) applyPre(tag string, value Value) (string, Value, bool, error) {
	if w.cfg.preprocess == nil {
		return tag, value, true, nil
	}
	finalTag, finalValue, err := w.cfg.preprocess(tag, value)
	if err != nil {
		return "", nil, false, &HookError{Key: tag, Err: err}
	}
	if finalValue == nil {
		return "", nil, false, nil
	}
	return finalTag, finalValue, true, nil
}

func (w *writer) writeElement(tag string, value Value, needsSeparator bool) error {
	finalTag, finalValue, keep, err := w.applyPre(tag, value)
	if err != nil {
		return err
	}
	if !keep {
		return nil
	}

	if w.cfg.pretty && needsSeparator {
		w.out.WriteString(w.cfg.newline)
		w.writeIndent()
	}

	switch v := finalValue.(type) {
	case nil, Null:
		w.writeEmpty(finalTag)
	case *Mapping:
		return w.writeMappingElement(finalTag, v)
	case List:
		for i, item := range v {
			if err := w.writeElement(finalTag, item, i > 0 || needsSeparator); err != nil {
				return err
			}
		}
	case Bool:
		w.writeTextElement(finalTag, boolText(v))
	case String:
		w.writeTextElement(finalTag, escape.Text(string(v)))
	default:
		return fmt.Errorf("xmlmap: unsupported value type %T for element %s", finalValue, finalTag)
	}
	return nil
}

func (w *writer) writeEmpty(tag string) {
	if w.cfg.selfClosing {
		w.out.WriteString("<" + tag + "/>")
	} else {
		w.out.WriteString("<" + tag + "></" + tag + ">")
	}
}

func (w *writer) writeTextElement(tag, escaped string) {
	w.out.WriteString("<" + tag + ">")
	w.out.WriteString(escaped)
	w.out.WriteString("</" + tag + ">")
}

func (w *writer) writeMappingElement(tag string, m *Mapping) error {
	type attr struct{ name, value string }
	var attrs []attr
	var text string
	hasText := false
	var childKeys []string

	for _, key := range m.keys {
		value := m.items[key]
		switch {
		case w.cfg.attrPrefix != "" && strings.HasPrefix(key, w.cfg.attrPrefix):
			s, err := scalarText(key, value)
			if err != nil {
				return err
			}
			attrs = append(attrs, attr{name: key[len(w.cfg.attrPrefix):], value: s})
		case key == w.cfg.textKey:
			s, err := scalarText(key, value)
			if err != nil {
				return err
			}
			text = s
			hasText = true
		default:
			childKeys = append(childKeys, key)
		}
	}

	w.out.WriteString("<" + tag)
	for _, a := range attrs {
		w.out.WriteString(" " + a.name + `="`)
		w.out.WriteString(escape.Attr(a.value))
		w.out.WriteString(`"`)
	}

	if len(childKeys) == 0 && !hasText {
		if w.cfg.selfClosing {
			w.out.WriteString("/>")
		} else {
			w.out.WriteString("></" + tag + ">")
		}
		return nil
	}

	w.out.WriteString(">")
	if hasText {
		w.out.WriteString(escape.Text(text))
	}
	if len(childKeys) > 0 {
		w.depth++
		for i, key := range childKeys {
			if err := w.writeElement(key, m.items[key], i > 0 || w.cfg.pretty); err != nil {
				return err
			}
		}
		w.depth--
		if w.cfg.pretty {
			w.out.WriteString(w.cfg.newline)
			w.writeIndent()
		}
	}
	w.out.WriteString("</" + tag + ">")
	return nil
}

// scalarText renders an attribute or text value. Only scalars are
// representable in those positions.
func scalarText(key string, v Value) (string, error) {
	switch s := v.(type) {
	case String:
		return string(s), nil
	case Bool:
		return boolText(s), nil
	case nil, Null:
		return "", nil
	default:
		return "", &StructuralError{Msg: "non-scalar value for " + key}
	}
}

func boolText(b Bool) string {
	if b {
		return "true"
	}
	return "false"
}
