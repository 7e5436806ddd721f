package jsfile

import "strings"

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// DefaultIndent is the indentation step used by Marshal.
const DefaultIndent = 2

// Marshal renders the document with the default indentation.
func (d *Document) Marshal() ([]byte, error) {
	return d.MarshalIndent(DefaultIndent)
}

// MarshalIndent renders the document in source order with the given
// indentation step. Framing follows the wrapper metadata recorded at parse
// time: `export default { ... };`, bare `{ ... }`, or a flat sequence of
// `key: "value",` lines. Values are always double-quoted with only
// structurally necessary escaping; non-ASCII characters pass through.
func (d *Document) MarshalIndent(indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}

	var b strings.Builder
	depth := 0
	switch {
	case d.ExportDefault:
		b.WriteString("export default {\n")
		depth = 1
	case d.WrapBraces:
		b.WriteString("{\n")
		depth = 1
	}

	writeNode(&b, &d.Root, depth, indent, d.MinimalQuotes)

	switch {
	case d.ExportDefault:
		b.WriteString("};\n")
	case d.WrapBraces:
		b.WriteString("}\n")
	}
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, n *Node, depth, indent int, minimal bool) {
	pad := strings.Repeat(" ", depth*indent)
	for i := range n.Entries {
		e := &n.Entries[i]
		b.WriteString(pad)
		b.WriteString(renderKey(e, minimal))
		b.WriteString(": ")
		if e.IsLeaf() {
			b.WriteByte('"')
			b.WriteString(escapeQuoted(e.Text, '"'))
			b.WriteString("\",\n")
		} else {
			b.WriteString("{\n")
			writeNode(b, e.Node, depth+1, indent, minimal)
			b.WriteString(pad)
			b.WriteString("},\n")
		}
	}
}

// renderKey emits a key either in its recorded quote style or, for
// minimal-quoting documents, bare when the name is a valid identifier and
// double-quoted otherwise.
func renderKey(e *Entry, minimal bool) string {
	if minimal {
		if isIdentifier(e.Name) {
			return e.Name
		}
		return `"` + escapeQuoted(e.Name, '"') + `"`
	}
	switch e.Quote {
	case QuoteSingle:
		return "'" + escapeQuoted(e.Name, '\'') + "'"
	case QuoteDouble:
		return `"` + escapeQuoted(e.Name, '"') + `"`
	case QuoteBacktick:
		return "`" + escapeQuoted(e.Name, '`') + "`"
	default:
		return e.Name
	}
}

// isIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// escapeQuoted escapes s for embedding between q quotes. Only structural
// characters are escaped; everything else, non-ASCII included, passes
// through unchanged.
func escapeQuoted(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
