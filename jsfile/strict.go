package jsfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Strict parser
//
// The strict dialect is JSON-compatible: bare keys are quoted, single- and
// backtick-quoted strings are rewritten as double-quoted JSON and trailing
// commas are dropped, then the result is streamed through json.Decoder
// tokens so key order is preserved. Nesting depth is unlimited. Malformed
// input is a hard error carrying line/column/offset, unlike the lenient
// parser which degrades to an empty document.
//
// The strict parser does not retain per-key quote styles; documents it
// produces are serialized with minimal quoting.
// ---------------------------------------------------------------------------

// ParseError reports a strict-mode parse failure with source position.
type ParseError struct {
	Line   int
	Col    int
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d (offset %d): %v",
		e.Line, e.Col, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseStrict parses locale file content in the strict JSON-compatible
// dialect.
func ParseStrict(data []byte) (*Document, error) {
	doc := &Document{MinimalQuotes: true}
	body := strings.TrimSpace(string(data))

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

	normalized := normalizeToJSON(body)
	dec := json.NewDecoder(strings.NewReader(normalized))

	tok, err := dec.Token()
	if err != nil {
		return nil, positionError(normalized, dec.InputOffset(), err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, positionError(normalized, dec.InputOffset(),
			fmt.Errorf("expected '{', got %v", tok))
	}

	root, err := decodeNode(dec, normalized)
	if err != nil {
		return nil, err
	}
	doc.Root = *root
	return doc, nil
}

// decodeNode reads entries after an opening '{' up to and including the
// matching '}'. Duplicate names keep the first occurrence; empty nested
// blocks are dropped.
func decodeNode(dec *json.Decoder, src string) (*Node, error) {
	node := &Node{}
	seen := make(map[string]bool)

	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, positionError(src, dec.InputOffset(), err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, positionError(src, dec.InputOffset(),
				fmt.Errorf("expected string key, got %v", kt))
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, positionError(src, dec.InputOffset(), err)
		}
		switch v := vt.(type) {
		case string:
			if !seen[key] {
				seen[key] = true
				node.Entries = append(node.Entries, Entry{Name: key, Text: v})
			}
		case json.Delim:
			if v != '{' {
				return nil, positionError(src, dec.InputOffset(),
					fmt.Errorf("unsupported value %q for key %q", v.String(), key))
			}
			child, err := decodeNode(dec, src)
			if err != nil {
				return nil, err
			}
			if child.Len() > 0 && !seen[key] {
				seen[key] = true
				node.Entries = append(node.Entries, Entry{Name: key, Node: child})
			}
		default:
			return nil, positionError(src, dec.InputOffset(),
				fmt.Errorf("unsupported value %v for key %q (only strings and nested blocks)", vt, key))
		}
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, positionError(src, dec.InputOffset(), err)
	}
	return node, nil
}

// positionError wraps err as a ParseError with line/column computed from
// the byte offset into the normalized source.
func positionError(src string, offset int64, err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	line, col := 1, 1
	for _, c := range src[:offset] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{Line: line, Col: col, Offset: offset, Err: err}
}

// normalizeToJSON rewrites the restricted dialect to JSON: bare keys become
// quoted, single- and backtick-quoted strings become double-quoted, and
// trailing commas are dropped. Newlines are preserved so error positions
// stay meaningful.
func normalizeToJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	i := 0

	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			// Copy a double-quoted string verbatim, escapes included.
			out.WriteByte('"')
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					out.WriteString(s[j : j+2])
					j += 2
					continue
				}
				if s[j] == '"' {
					break
				}
				out.WriteByte(s[j])
				j++
			}
			out.WriteByte('"')
			i = j + 1

		case c == '\'' || c == '`':
			// Collect the unescaped content and re-emit as JSON.
			q := c
			var b strings.Builder
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					switch e := s[j+1]; e {
					case 'n':
						b.WriteByte('\n')
					case 't':
						b.WriteByte('\t')
					case 'r':
						b.WriteByte('\r')
					case '\\', '\'', '"', '`':
						b.WriteByte(e)
					default:
						b.WriteByte('\\')
						b.WriteByte(e)
					}
					j += 2
					continue
				}
				if s[j] == q {
					break
				}
				b.WriteByte(s[j])
				j++
			}
			enc, _ := json.Marshal(b.String())
			out.Write(enc)
			i = j + 1

		case isIdentByte(c):
			j := i
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			word := s[i:j]
			// A bare word followed by ':' is a key and gets quoted;
			// anything else is left for the JSON decoder to reject.
			k := j
			for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
				k++
			}
			if k < len(s) && s[k] == ':' {
				enc, _ := json.Marshal(word)
				out.Write(enc)
			} else {
				out.WriteString(word)
			}
			i = j

		case c == ',':
			// Drop trailing commas before a closing brace.
			k := i + 1
			for k < len(s) && (s[k] == ' ' || s[k] == '\t' || s[k] == '\n' || s[k] == '\r') {
				k++
			}
			if k < len(s) && (s[k] == '}' || s[k] == ']') {
				i++
			} else {
				out.WriteByte(',')
				i++
			}
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}
