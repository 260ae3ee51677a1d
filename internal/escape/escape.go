// Package escape provides the markup and attribute character escaping
// shared by the parser and unparser.
package escape

import "strings"

// Text replaces '&', '<' and '>' with their entities. When s contains no
// special character it is returned as-is, without allocating; otherwise a
// single allocation is made.
func Text(s string) string {
	if strings.IndexAny(s, "&<>") < 0 {
		return s
	}
	return escape(s, false)
}

// Attr escapes s for use as a quoted attribute value: like Text, but '"'
// is replaced as well.
func Attr(s string) string {
	if strings.IndexAny(s, `&<>"`) < 0 {
		return s
	}
	return escape(s, true)
}

func escape(s string, quote bool) string {
	extra := 4*strings.Count(s, "&") + 3*(strings.Count(s, "<")+strings.Count(s, ">"))
	if quote {
		extra += 5 * strings.Count(s, `"`)
	}
	var b strings.Builder
	b.Grow(len(s) + extra)
	last := 0
	for i := 0; i < len(s); i++ {
		var ent string
		switch s[i] {
		case '&':
			ent = "&amp;"
		case '<':
			ent = "&lt;"
		case '>':
			ent = "&gt;"
		case '"':
			if !quote {
				continue
			}
			ent = "&quot;"
		default:
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(ent)
		last = i + 1
	}
	b.WriteString(s[last:])
	return b.String()
}
