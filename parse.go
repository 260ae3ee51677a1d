package xmlmap

import (
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html/charset"
)

// Decoder reads an XML document from an input stream and builds its tree
// value.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options configure the conversion; see the Option
// constructors. The decoder may buffer data from r as necessary. It is the
// caller's responsibility to close r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the XML document from the decoder's input and returns its
// tree value. On any failure the whole parse is aborted and no partial
// tree is returned.
func (d *Decoder) Decode() (*Mapping, error) {
	if d.r == nil {
		return nil, errors.New("xmlmap: Decode(nil reader)")
	}
	cfg := defaultConfig()
	if err := cfg.apply(d.opts); err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(d.r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	b := &builder{cfg: &cfg}
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapTokenErr(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := rawName(t.Name)
			if err := validateName(name); err != nil {
				return nil, err
			}
			if err := b.startElement(name, t.Attr); err != nil {
				return nil, err
			}
		case xml.EndElement:
			name := rawName(t.Name)
			if err := validateName(name); err != nil {
				return nil, err
			}
			if err := b.endElement(name); err != nil {
				return nil, err
			}
		case xml.CharData:
			text := string(t)
			if cfg.trimWhitespace {
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
			}
			b.characters(text)
		case xml.Comment:
			if cfg.processComments {
				if err := b.comment(string(t)); err != nil {
					return nil, err
				}
			}
		}
		// Directives and processing instructions are skipped.
	}

	return b.finish()
}

// wrapTokenErr classifies an error surfacing from the token loop. Errors
// from a foreign byte source or a hook pass through untouched so their
// identity is preserved; everything else is a tokenizer failure.
func wrapTokenErr(err error) error {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return err
	}
	return &SyntaxError{Err: err}
}

// rawName reconstructs the name as written in the document. RawToken
// splits qualified names on the first colon without resolving them; Space
// holds the raw prefix.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "<>") {
		return &MalformedNameError{Name: name}
	}
	return nil
}

// A frame holds the working state of one open element: its raw name for
// end-tag matching, the namespace bindings visible inside it, and the text
// fragments collected so far. The in-progress attribute mapping lives in
// the builder's value stack, which also receives the completed root.
type frame struct {
	raw  string
	ns   map[string]string
	text []string
}

type builder struct {
	cfg    *config
	stack  []*Mapping
	frames []frame
	path   []string
}

func (b *builder) startElement(name string, attrs []xml.Attr) error {
	var nsMap map[string]string
	if b.cfg.processNS {
		nsMap = make(map[string]string)
		if n := len(b.frames); n > 0 {
			for k, v := range b.frames[n-1].ns {
				nsMap[k] = v
			}
		}
	}

	elem := NewMapping()
	emitXMLNS := false
	var ordinary []xml.Attr

	if b.cfg.attributes {
		for _, attr := range attrs {
			if b.cfg.processNS {
				if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
					nsMap[""] = attr.Value
					continue
				}
				if attr.Name.Space == "xmlns" {
					if !emitXMLNS {
						emitXMLNS = !aliasKnown(b.cfg.nsAliases, attr.Value)
					}
					nsMap[attr.Name.Local] = attr.Value
					continue
				}
			}

			if b.cfg.processNS && !emitXMLNS && attr.Name.Space != "" {
				if uri, ok := nsMap[attr.Name.Space]; ok {
					emitXMLNS = !aliasKnown(b.cfg.nsAliases, uri)
				}
			}
			ordinary = append(ordinary, attr)
		}

		if emitXMLNS {
			elem.Set(b.cfg.attrPrefix+"xmlns", nsMapping(nsMap))
		}

		for _, attr := range ordinary {
			key := rawName(attr.Name)
			if b.cfg.processNS && strings.Contains(key, b.cfg.nsSeparator) {
				key = b.resolveWith(nsMap, key)
			}
			finalKey, finalValue, err := b.applyPost(b.cfg.attrPrefix+key, String(attr.Value))
			if err != nil {
				return err
			}
			if finalValue == nil {
				continue
			}
			elem.Set(finalKey, finalValue)
		}
	}

	b.stack = append(b.stack, elem)
	b.frames = append(b.frames, frame{raw: name, ns: nsMap})
	b.path = append(b.path, b.resolveWith(nsMap, name))
	return nil
}

func (b *builder) characters(text string) {
	if n := len(b.frames); n > 0 {
		b.frames[n-1].text = append(b.frames[n-1].text, text)
	}
}

func (b *builder) comment(text string) error {
	if len(b.stack) == 0 {
		return nil
	}
	if b.cfg.trimWhitespace {
		text = strings.TrimSpace(text)
	}
	parent := b.stack[len(b.stack)-1]
	return b.pushData(parent, b.cfg.commentKey, String(text))
}

func (b *builder) endElement(name string) error {
	if len(b.frames) == 0 {
		return &StructuralError{Msg: "unexpected end tag </" + name + ">"}
	}
	fr := b.frames[len(b.frames)-1]
	if fr.raw != name {
		return &SyntaxError{Msg: "mismatched end tag: expected </" + fr.raw + ">, got </" + name + ">"}
	}
	elementName := b.resolveWith(fr.ns, name)

	elem := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.frames = b.frames[:len(b.frames)-1]
	b.path = b.path[:len(b.path)-1]

	joined, hasText := joinText(b.cfg, fr.text)
	hasAttrs := elem.Len() > 0

	var finalValue Value
	switch {
	case !hasAttrs && !hasText:
		finalValue = Null{}
	case !hasAttrs && hasText && !b.cfg.forceText:
		finalValue = String(joined)
	case !hasAttrs && hasText:
		wrapped := NewMapping()
		k, v, err := b.applyPost(b.cfg.textKey, String(joined))
		if err != nil {
			return err
		}
		if v != nil {
			wrapped.Set(k, v)
		}
		finalValue = wrapped
	case hasText:
		k, v, err := b.applyPost(b.cfg.textKey, String(joined))
		if err != nil {
			return err
		}
		if v != nil {
			elem.Set(k, v)
		}
		finalValue = elem
	default:
		finalValue = elem
	}

	if len(b.stack) == 0 {
		k, v, err := b.applyPost(elementName, finalValue)
		if err != nil {
			return err
		}
		if v == nil {
			return nil
		}
		root := NewMapping()
		root.Set(k, v)
		b.stack = append(b.stack, root)
		return nil
	}

	parent := b.stack[len(b.stack)-1]
	return b.pushData(parent, elementName, finalValue)
}

// pushData inserts (key, value) into item following the merge rule: a
// repeated key is promoted to a List on its second occurrence, preserving
// encounter order. The value appended to an already-existing List is the
// pre-hook value; the value seeding a new list is the post-hook one. That
// asymmetry is kept deliberately for compatibility.
func (b *builder) pushData(item *Mapping, key string, value Value) error {
	finalKey, finalValue, err := b.applyPost(key, value)
	if err != nil {
		return err
	}
	if finalValue == nil {
		return nil
	}

	existing, ok := item.Get(finalKey)
	if !ok {
		force, err := b.shouldForceList(finalKey, finalValue)
		if err != nil {
			return err
		}
		if force {
			item.Set(finalKey, List{finalValue})
		} else {
			item.Set(finalKey, finalValue)
		}
		return nil
	}

	if list, isList := existing.(List); isList {
		item.Set(finalKey, append(list, value))
	} else {
		item.Set(finalKey, List{existing, finalValue})
	}
	return nil
}

func (b *builder) shouldForceList(key string, value Value) (bool, error) {
	if b.cfg.forceList == nil {
		return false, nil
	}
	force, err := b.cfg.forceList(slices.Clone(b.path), key, value)
	if err != nil {
		return false, &HookError{Path: slices.Clone(b.path), Key: key, Err: err}
	}
	return force, nil
}

// applyPost runs the postprocessing hook. A nil returned Value with a nil
// error means the entry is to be dropped.
func (b *builder) applyPost(key string, value Value) (string, Value, error) {
	if b.cfg.postprocess == nil {
		return key, value, nil
	}
	path := slices.Clone(b.path)
	finalKey, finalValue, err := b.cfg.postprocess(path, key, value)
	if err != nil {
		return "", nil, &HookError{Path: path, Key: key, Err: err}
	}
	if finalValue == nil {
		return "", nil, nil
	}
	return finalKey, finalValue, nil
}

// resolveWith rewrites a qualified name through the namespace bindings in
// ns. Unprefixed names resolve through the default namespace when one is
// declared; unknown prefixes leave the name untouched.
func (b *builder) resolveWith(ns map[string]string, name string) string {
	if !b.cfg.processNS {
		return name
	}
	prefix, local := "", name
	if i := strings.Index(name, ":"); i >= 0 {
		prefix, local = name[:i], name[i+1:]
	}
	uri, ok := ns[prefix]
	if !ok {
		return name
	}
	alias := uri
	if mapped, ok := b.cfg.nsAliases[uri]; ok {
		alias = mapped
	}
	if alias == "" {
		return local
	}
	return alias + b.cfg.nsSeparator + local
}

func (b *builder) finish() (*Mapping, error) {
	if len(b.frames) != 0 {
		return nil, &StructuralError{Msg: "unclosed element(s) found"}
	}
	switch len(b.stack) {
	case 1:
		return b.stack[0], nil
	case 0:
		return nil, &StructuralError{Msg: "no element found"}
	default:
		return nil, &StructuralError{Msg: "unclosed element(s) found"}
	}
}

func aliasKnown(aliases map[string]string, uri string) bool {
	if aliases == nil {
		return false
	}
	_, ok := aliases[uri]
	return ok
}

// nsMapping renders the merged prefix table as a nested mapping, with
// prefixes in sorted order so the output is deterministic.
func nsMapping(ns map[string]string) *Mapping {
	prefixes := make([]string, 0, len(ns))
	for p := range ns {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	m := NewMapping()
	for _, p := range prefixes {
		m.Set(p, String(ns[p]))
	}
	return m
}

func joinText(cfg *config, fragments []string) (string, bool) {
	if len(fragments) == 0 {
		return "", false
	}
	joined := strings.Join(fragments, cfg.textSeparator)
	if cfg.trimWhitespace && strings.TrimSpace(joined) == "" {
		return "", false
	}
	return joined, true
}
