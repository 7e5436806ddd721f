package jsfile

import "strings"

// ---------------------------------------------------------------------------
// Lenient parser
//
// A small hand-written scanner over the restricted dialect. There is no
// nesting ceiling: nested blocks recurse. Anything the scanner does not
// recognize is skipped, so malformed input degrades to a smaller (possibly
// empty) document rather than an error.
// ---------------------------------------------------------------------------

// Parse leniently parses locale file content. Unparseable structure yields
// an empty document; callers treat that as "no translatable content".
func Parse(data []byte) *Document {
	doc := &Document{}
	body := strings.TrimSpace(string(data))

	// Strip the `export default` prefix and the trailing semicolon.
	if rest, ok := cutKeyword(body, "export"); ok {
		if rest, ok = cutKeyword(rest, "default"); ok {
			doc.ExportDefault = true
			body = strings.TrimSpace(rest)
		}
	}
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))

	if !doc.ExportDefault && strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
		doc.WrapBraces = true
	}

	p := &parser{src: body}
	p.skipFiller()
	if p.cur() == '{' {
		p.pos++
		doc.Root = *p.parseNode(true)
	} else {
		doc.Root = *p.parseNode(false)
	}
	return doc
}

// cutKeyword strips a leading keyword followed by whitespace.
func cutKeyword(s, kw string) (string, bool) {
	if !strings.HasPrefix(s, kw) {
		return s, false
	}
	rest := s[len(kw):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\r') {
		return s, false
	}
	return strings.TrimLeft(rest, " \t\r\n"), true
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// cur returns the current byte, or 0 at end of input.
func (p *parser) cur() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peek() byte {
	if p.pos+1 >= len(p.src) {
		return 0
	}
	return p.src[p.pos+1]
}

// skipFiller skips whitespace, separators and comments between entries.
func (p *parser) skipFiller() {
	for !p.eof() {
		switch c := p.cur(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',' || c == ';':
			p.pos++
		case c == '/' && p.peek() == '/':
			for !p.eof() && p.cur() != '\n' {
				p.pos++
			}
		case c == '/' && p.peek() == '*':
			p.pos += 2
			for !p.eof() && !(p.cur() == '*' && p.peek() == '/') {
				p.pos++
			}
			p.pos += 2
		default:
			return
		}
	}
}

// skipSpaces skips only horizontal whitespace (between key, colon and value).
func (p *parser) skipSpaces() {
	for !p.eof() {
		c := p.cur()
		if c != ' ' && c != '\t' {
			return
		}
		p.pos++
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func quoteByte(c byte) (QuoteStyle, bool) {
	switch c {
	case '\'':
		return QuoteSingle, true
	case '"':
		return QuoteDouble, true
	case '`':
		return QuoteBacktick, true
	}
	return QuoteNone, false
}

// readQuoted consumes a quoted string starting at the opening quote and
// returns its unescaped content. An unterminated string consumes the rest
// of the input.
func (p *parser) readQuoted() string {
	q := p.cur()
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.cur()
		if c == q {
			p.pos++
			return b.String()
		}
		if c == '\\' {
			if p.pos+1 >= len(p.src) {
				b.WriteByte('\\')
				p.pos++
				break
			}
			p.pos++
			switch e := p.cur(); e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"', '`':
				b.WriteByte(e)
			default:
				// Unknown escape: keep it verbatim.
				b.WriteByte('\\')
				b.WriteByte(e)
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return b.String()
}

// readIdent consumes a bare key (identifier or numeric key).
func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.cur()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// readBareValue consumes an unquoted value up to the next entry boundary.
func (p *parser) readBareValue() string {
	start := p.pos
	for !p.eof() {
		c := p.cur()
		if c == ',' || c == '}' || c == '\n' {
			break
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// parseNode parses entries until the matching closing brace (when closing
// is true) or end of input. Sibling order follows first appearance in the
// source; on duplicate names the first occurrence wins. Nested blocks that
// end up empty are dropped.
func (p *parser) parseNode(closing bool) *Node {
	node := &Node{}
	seen := make(map[string]bool)

	for {
		p.skipFiller()
		if p.eof() {
			return node
		}
		if p.cur() == '}' {
			p.pos++
			if closing {
				return node
			}
			continue // stray brace, tolerated
		}

		// Key: quoted string or bare word.
		var name string
		var quote QuoteStyle
		if q, ok := quoteByte(p.cur()); ok {
			quote = q
			name = p.readQuoted()
		} else if isIdentByte(p.cur()) {
			name = p.readIdent()
		} else {
			p.pos++ // unrecognized byte, recover
			continue
		}

		p.skipSpaces()
		if p.cur() != ':' {
			continue // not a key-value pair
		}
		p.pos++
		p.skipSpaces()

		switch c := p.cur(); {
		case c == '{':
			p.pos++
			child := p.parseNode(true)
			if child.Len() > 0 && name != "" && !seen[name] {
				seen[name] = true
				node.Entries = append(node.Entries, Entry{Name: name, Quote: quote, Node: child})
			}
		default:
			var text string
			if _, ok := quoteByte(c); ok {
				text = p.readQuoted()
			} else {
				text = p.readBareValue()
				if text == "" {
					continue
				}
			}
			if name != "" && !seen[name] {
				seen[name] = true
				node.Entries = append(node.Entries, Entry{Name: name, Quote: quote, Text: text})
			}
		}
	}
}
