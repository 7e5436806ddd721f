// Package jsfile implements reading and writing of JavaScript-style locale
// resource files — flat or nested object literals of translatable strings:
//
//	export default {
//	    greeting: "Hello {name}",
//	    'menu': {
//	        "title": 'Welcome',
//	    },
//	};
//
// The parser targets a restricted dialect: string values, nested blocks,
// bare/single/double/backtick-quoted keys, an optional `export default`
// wrapper and an optional trailing semicolon. Entry order from the source
// file is preserved end to end and determines serialization order.
//
// Two parsers are provided. Parse is lenient: it recovers from structure it
// does not understand and degrades to an empty document. ParseStrict
// normalizes the source to JSON and fails with position detail on malformed
// input.
package jsfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// ---------------------------------------------------------------------------
// Document model
// ---------------------------------------------------------------------------

// QuoteStyle records how a key was quoted in the source file. It is a
// rendering hint only and takes no part in key identity.
type QuoteStyle int

const (
	// QuoteNone is a bare (unquoted) key.
	QuoteNone QuoteStyle = iota
	// QuoteSingle is a 'single-quoted' key.
	QuoteSingle
	// QuoteDouble is a "double-quoted" key.
	QuoteDouble
	// QuoteBacktick is a `backtick-quoted` key.
	QuoteBacktick
)

// Entry is a single key in a Node: either a translatable leaf string or a
// nested block.
type Entry struct {
	// Name is the key name without quotes. Two entries in one Node never
	// share a name; the first occurrence in the source wins.
	Name string
	// Quote is the key's original quoting, reused on serialization.
	Quote QuoteStyle
	// Text is the leaf value. Meaningful only when Node is nil.
	Text string
	// Node is non-nil for nested blocks.
	Node *Node
}

// IsLeaf reports whether the entry holds a translatable string.
func (e *Entry) IsLeaf() bool { return e.Node == nil }

// Node is an ordered list of entries. A parsed Node is never empty: empty
// nested blocks are dropped during parsing.
type Node struct {
	Entries []Entry
}

// Get returns the entry with the given name, if present.
func (n *Node) Get(name string) (*Entry, bool) {
	for i := range n.Entries {
		if n.Entries[i].Name == name {
			return &n.Entries[i], true
		}
	}
	return nil, false
}

// Len returns the number of direct child entries.
func (n *Node) Len() int { return len(n.Entries) }

// Document is a parsed locale file: an ordered tree of entries plus the
// framing recorded from the source. The framing flags are fixed at parse
// time and do not change during translation.
type Document struct {
	// Root holds the top-level entries.
	Root Node
	// WrapBraces records that the source was enclosed in { } without an
	// export prefix.
	WrapBraces bool
	// ExportDefault records that the source began with `export default`.
	ExportDefault bool
	// MinimalQuotes is set by the strict parser, which does not retain
	// per-key quote styles: keys are re-quoted minimally on output (bare
	// when the name is a valid identifier, double-quoted otherwise).
	MinimalQuotes bool
}

// Empty reports whether the document contains no entries at all.
func (d *Document) Empty() bool { return len(d.Root.Entries) == 0 }

// Stats returns the number of translatable leaf strings and nested blocks
// in the whole document.
func (d *Document) Stats() (leaves, nodes int) {
	var walk func(n *Node)
	walk = func(n *Node) {
		for i := range n.Entries {
			if n.Entries[i].IsLeaf() {
				leaves++
			} else {
				nodes++
				walk(n.Entries[i].Node)
			}
		}
	}
	walk(&d.Root)
	return
}

// Leaves returns all leaf texts in document order.
func (d *Document) Leaves() []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		for i := range n.Entries {
			if n.Entries[i].IsLeaf() {
				out = append(out, n.Entries[i].Text)
			} else {
				walk(n.Entries[i].Node)
			}
		}
	}
	walk(&d.Root)
	return out
}

// ---------------------------------------------------------------------------
// File I/O
// ---------------------------------------------------------------------------

// ParseFile reads and leniently parses a locale file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// ParseFileStrict reads and strictly parses a locale file from disk.
func ParseFileStrict(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseStrict(data)
}

// WriteFile serialises the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
