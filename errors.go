package xmlmap

// A MalformedNameError reports an element name the parser refuses to
// accept: an empty name, or one containing a raw '<' or '>'.
type MalformedNameError struct {
	Name string
}

func (e *MalformedNameError) Error() string {
	return "xmlmap: not well-formed (invalid element name " + e.Name + ")"
}

// A SyntaxError wraps a well-formedness failure reported by the underlying
// XML tokenizer, or a nesting violation detected while building the tree.
type SyntaxError struct {
	Msg string // used when the failure is detected by this package
	Err error  // the tokenizer's error, if any
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return "xmlmap: " + e.Err.Error()
	}
	return "xmlmap: " + e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// A StructuralError reports a structurally invalid document or tree: an
// unexpected end tag, unclosed elements at end of input, a document with no
// root, or (when unparsing) a full document whose top-level mapping does
// not hold exactly one root entry.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return "xmlmap: " + e.Msg }

// A SourceError reports a failure of a foreign byte source: the source
// returned an error, an unsupported chunk type, or a nil chunk. The
// original error, when there is one, is recoverable through Unwrap, so
// errors.Is and errors.As see it unchanged.
type SourceError struct {
	Msg string
	Err error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return "xmlmap: byte source: " + e.Err.Error()
	}
	return "xmlmap: byte source: " + e.Msg
}

func (e *SourceError) Unwrap() error { return e.Err }

// A HookError wraps an error returned by a postprocessor, preprocessor or
// force-list hook. Path and Key identify the entry being processed when
// the hook failed; the hook's own error is recoverable through Unwrap.
type HookError struct {
	Path []string
	Key  string
	Err  error
}

func (e *HookError) Error() string {
	return "xmlmap: hook failed for key " + e.Key + ": " + e.Err.Error()
}

func (e *HookError) Unwrap() error { return e.Err }
