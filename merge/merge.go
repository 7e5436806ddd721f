// Package merge reconciles a source locale document with a previously
// translated one, msgmerge-style: entries present in both keep the
// existing translation, new entries come from the source, and entries no
// longer in the source are dropped. It drives the incremental --update
// workflow, where only missing entries are sent to the provider.
package merge

import "github.com/minios-linux/jslok/jsfile"

// Merge returns a document shaped exactly like source in which every
// leaf with a counterpart in existing carries the existing text. Leaves
// new to source keep their source text; existing entries whose path is
// gone from source are dropped.
func Merge(source, existing *jsfile.Document) *jsfile.Document {
	out := &jsfile.Document{
		WrapBraces:    source.WrapBraces,
		ExportDefault: source.ExportDefault,
		MinimalQuotes: source.MinimalQuotes,
	}
	out.Root = *mergeNode(&source.Root, &existing.Root)
	return out
}

func mergeNode(src, old *jsfile.Node) *jsfile.Node {
	dst := &jsfile.Node{Entries: make([]jsfile.Entry, 0, len(src.Entries))}
	for i := range src.Entries {
		e := &src.Entries[i]
		var prev *jsfile.Entry
		if old != nil {
			prev, _ = old.Get(e.Name)
		}
		if e.IsLeaf() {
			text := e.Text
			if prev != nil && prev.IsLeaf() {
				text = prev.Text
			}
			dst.Entries = append(dst.Entries, jsfile.Entry{Name: e.Name, Quote: e.Quote, Text: text})
		} else {
			var oldChild *jsfile.Node
			if prev != nil && !prev.IsLeaf() {
				oldChild = prev.Node
			}
			dst.Entries = append(dst.Entries, jsfile.Entry{Name: e.Name, Quote: e.Quote, Node: mergeNode(e.Node, oldChild)})
		}
	}
	return dst
}

// Missing returns a document containing only the source leaves that have
// no counterpart in existing. Nesting and sibling order are preserved;
// blocks left without any leaf are dropped.
func Missing(source, existing *jsfile.Document) *jsfile.Document {
	out := &jsfile.Document{
		WrapBraces:    source.WrapBraces,
		ExportDefault: source.ExportDefault,
		MinimalQuotes: source.MinimalQuotes,
	}
	out.Root = *missingNode(&source.Root, &existing.Root)
	return out
}

func missingNode(src, old *jsfile.Node) *jsfile.Node {
	dst := &jsfile.Node{}
	for i := range src.Entries {
		e := &src.Entries[i]
		var prev *jsfile.Entry
		if old != nil {
			prev, _ = old.Get(e.Name)
		}
		if e.IsLeaf() {
			if prev == nil || !prev.IsLeaf() {
				dst.Entries = append(dst.Entries, jsfile.Entry{Name: e.Name, Quote: e.Quote, Text: e.Text})
			}
			continue
		}
		var oldChild *jsfile.Node
		if prev != nil && !prev.IsLeaf() {
			oldChild = prev.Node
		}
		if child := missingNode(e.Node, oldChild); child.Len() > 0 {
			dst.Entries = append(dst.Entries, jsfile.Entry{Name: e.Name, Quote: e.Quote, Node: child})
		}
	}
	return dst
}

// Apply overlays the leaves of translated onto base wherever paths
// match, modifying base in place. Paths present only in translated are
// ignored. Returns base for chaining.
func Apply(base, translated *jsfile.Document) *jsfile.Document {
	applyNode(&base.Root, &translated.Root)
	return base
}

func applyNode(base, tr *jsfile.Node) {
	for i := range base.Entries {
		e := &base.Entries[i]
		prev, ok := tr.Get(e.Name)
		if !ok {
			continue
		}
		switch {
		case e.IsLeaf() && prev.IsLeaf():
			e.Text = prev.Text
		case !e.IsLeaf() && !prev.IsLeaf():
			applyNode(e.Node, prev.Node)
		}
	}
}
