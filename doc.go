/*
Package xmlmap converts XML documents to a generic ordered tree value and
back, following the conventional "xml-to-dict" mapping: attributes become
keys carrying a configurable prefix, repeated sibling tags merge into
ordered lists, and element text is stored under a reserved key or as a
bare scalar. The mapping is lossy by design and configurable per call.

Parsing a document:

	m, err := xmlmap.ParseString(`<a id="5">x</a>`)
	if err != nil {
		// handle error
	}
	// m is {"a": {"@id": "5", "#text": "x"}}

Repeated siblings become lists in document order:

	m, _ := xmlmap.ParseString(`<a><b>1</b><b>2</b></a>`)
	// m is {"a": {"b": ["1", "2"]}}

The reverse direction is Unparse, which accepts the same tree shape:

	s, err := xmlmap.Unparse(m, xmlmap.Pretty(true))

Both directions take functional options: AttrPrefix, TextKey, ForceList,
ProcessNamespaces, Postprocess and friends for parsing; FullDocument,
SelfClosing, Pretty, Preprocess and friends for unparsing. Hooks let
foreign code rename, transform or drop individual entries as the tree is
built or emitted; any error they return aborts the whole call, and no
partial tree or partial output is ever produced.

Input can be a []byte, a string, any io.Reader, or a pull-style chunk
generator adapted with NewChunkReader. Documents in encodings other than
UTF-8 are decoded through their declared encoding label.
*/
package xmlmap
