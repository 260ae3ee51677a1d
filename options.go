package xmlmap

// A PostprocessFunc is invoked by the parser for every key/value pair
// about to be stored: attributes, text content, comments, child elements
// and the document root. path holds the resolved names of the elements
// enclosing the entry, from the root down; it is a copy and may be
// retained. The returned key and value replace the originals. Returning a
// nil Value drops the entry entirely. A non-nil error aborts the parse.
type PostprocessFunc func(path []string, key string, value Value) (string, Value, error)

// A PreprocessFunc is invoked by the unparser for every element about to
// be emitted. The returned tag and value replace the originals. Returning
// a nil Value suppresses the element; siblings still proceed. A non-nil
// error aborts the unparse.
type PreprocessFunc func(tag string, value Value) (string, Value, error)

// A ForceListFunc decides whether the first occurrence of key should be
// stored as a single-element List instead of a bare value. It is consulted
// once per first occurrence; later occurrences extend the list through the
// ordinary merge rule. A non-nil error aborts the parse.
type ForceListFunc func(path []string, key string, value Value) (bool, error)

type config struct {
	attributes      bool
	attrPrefix      string
	textKey         string
	forceText       bool
	textSeparator   string
	trimWhitespace  bool
	nsSeparator     string
	processNS       bool
	processComments bool
	commentKey      string
	nsAliases       map[string]string
	forceList       ForceListFunc
	postprocess     PostprocessFunc

	encoding     string
	fullDocument bool
	selfClosing  bool
	pretty       bool
	newline      string
	indent       string
	preprocess   PreprocessFunc
}

func defaultConfig() config {
	return config{
		attributes:     true,
		attrPrefix:     "@",
		textKey:        "#text",
		trimWhitespace: true,
		nsSeparator:    ":",
		commentKey:     "#comment",
		encoding:       "utf-8",
		fullDocument:   true,
		newline:        "\n",
		indent:         "\t",
	}
}

func (c *config) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// An Option configures a single parse or unparse call.
type Option func(*config) error

// Attributes controls whether element attributes are collected into the
// tree. The default is true. Note that disabling attributes also skips
// xmlns declarations, so namespace resolution sees no bindings.
func Attributes(include bool) Option {
	return func(c *config) error {
		c.attributes = include
		return nil
	}
}

// AttrPrefix sets the prefix distinguishing attribute keys from child
// element keys. The default is "@".
func AttrPrefix(prefix string) Option {
	return func(c *config) error {
		c.attrPrefix = prefix
		return nil
	}
}

// TextKey sets the reserved key holding element text when the element also
// has attributes, or when ForceText is on. The default is "#text".
func TextKey(key string) Option {
	return func(c *config) error {
		c.textKey = key
		return nil
	}
}

// ForceText makes the parser always wrap element text in a Mapping under
// the text key, even when the element has no attributes.
func ForceText(on bool) Option {
	return func(c *config) error {
		c.forceText = on
		return nil
	}
}

// TextSeparator sets the string joining multiple text fragments of one
// element. The default is the empty string.
func TextSeparator(sep string) Option {
	return func(c *config) error {
		c.textSeparator = sep
		return nil
	}
}

// TrimWhitespace controls whether surrounding whitespace is stripped from
// text fragments and whitespace-only text is discarded. The default is true.
func TrimWhitespace(on bool) Option {
	return func(c *config) error {
		c.trimWhitespace = on
		return nil
	}
}

// NamespaceSeparator sets the string joining a namespace (or its alias)
// and a local name in resolved keys. The default is ":".
func NamespaceSeparator(sep string) Option {
	return func(c *config) error {
		c.nsSeparator = sep
		return nil
	}
}

// ProcessNamespaces enables namespace resolution: prefixed names are
// rewritten to namespace-qualified keys and xmlns declarations are
// consumed instead of being stored as attributes.
func ProcessNamespaces(on bool) Option {
	return func(c *config) error {
		c.processNS = on
		return nil
	}
}

// NamespaceAliases supplies a URI-to-alias substitution table used during
// namespace resolution. A URI mapped to the empty string collapses
// qualified names to their bare local name.
func NamespaceAliases(aliases map[string]string) Option {
	return func(c *config) error {
		c.nsAliases = aliases
		return nil
	}
}

// ProcessComments makes the parser store comments under the comment key.
// Comments outside the document root are ignored.
func ProcessComments(on bool) Option {
	return func(c *config) error {
		c.processComments = on
		return nil
	}
}

// CommentKey sets the reserved key holding comment text when
// ProcessComments is on. The default is "#comment".
func CommentKey(key string) Option {
	return func(c *config) error {
		c.commentKey = key
		return nil
	}
}

// ForceList installs fn as the force-list policy.
func ForceList(fn ForceListFunc) Option {
	return func(c *config) error {
		c.forceList = fn
		return nil
	}
}

// ForceListKeys forces a list for every key in keys, regardless of path
// or value.
func ForceListKeys(keys ...string) Option {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return ForceList(func(_ []string, key string, _ Value) (bool, error) {
		return set[key], nil
	})
}

// ForceListAll forces a list for every key.
func ForceListAll() Option {
	return ForceList(func(_ []string, _ string, _ Value) (bool, error) {
		return true, nil
	})
}

// Postprocess installs fn as the parser's postprocessing hook.
func Postprocess(fn PostprocessFunc) Option {
	return func(c *config) error {
		c.postprocess = fn
		return nil
	}
}

// Preprocess installs fn as the unparser's preprocessing hook.
func Preprocess(fn PreprocessFunc) Option {
	return func(c *config) error {
		c.preprocess = fn
		return nil
	}
}

// Encoding sets the encoding label written in the XML declaration when
// unparsing a full document. The default is "utf-8". It does not affect
// the bytes produced, which are always UTF-8.
func Encoding(label string) Option {
	return func(c *config) error {
		c.encoding = label
		return nil
	}
}

// FullDocument controls whether the unparser emits an XML declaration and
// requires exactly one root entry. The default is true. With FullDocument
// off, any number of top-level entries is emitted as an XML fragment.
func FullDocument(on bool) Option {
	return func(c *config) error {
		c.fullDocument = on
		return nil
	}
}

// SelfClosing makes the unparser emit empty elements as <tag/> instead of
// <tag></tag>.
func SelfClosing(on bool) Option {
	return func(c *config) error {
		c.selfClosing = on
		return nil
	}
}

// Pretty enables indented output when unparsing.
func Pretty(on bool) Option {
	return func(c *config) error {
		c.pretty = on
		return nil
	}
}

// Newline sets the line terminator used by Pretty and after the XML
// declaration. The default is "\n".
func Newline(s string) Option {
	return func(c *config) error {
		c.newline = s
		return nil
	}
}

// Indent sets the indentation unit used by Pretty. The default is "\t".
func Indent(s string) Option {
	return func(c *config) error {
		c.indent = s
		return nil
	}
}
