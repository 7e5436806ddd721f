package translate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/minios-linux/jslok/cache"
	"github.com/minios-linux/jslok/jsfile"
	"github.com/minios-linux/jslok/placeholder"
)

// DocumentOptions controls document translation.
type DocumentOptions struct {
	// BatchSize is how many strings to send per provider call
	// (0 = DefaultBatchSize).
	BatchSize int
	// Memo deduplicates repeated leaf texts within the run. A private memo
	// is used when nil.
	Memo *cache.Memo
	// OnProgress is called after each translated batch or item.
	OnProgress func(done, total int)
}

// TranslateDocument translates every leaf string of doc through the
// adapter and returns a new document of identical shape: same keys, same
// quote styles, same nesting and sibling order, same framing. Placeholder
// tokens are shielded before translation and restored per leaf afterwards.
// Translation failures degrade per item to the original text, so the
// result is always complete.
func TranslateDocument(ctx context.Context, doc *jsfile.Document, a Adapter, opts DocumentOptions) *jsfile.Document {
	memo := opts.Memo
	if memo == nil {
		memo = cache.NewMemo()
	}

	// First pass: collect shielded leaf texts in visitation order, with
	// each leaf's placeholder tokens.
	var masked []string
	var tokens [][]string
	var collect func(n *jsfile.Node)
	collect = func(n *jsfile.Node) {
		for i := range n.Entries {
			e := &n.Entries[i]
			if e.IsLeaf() {
				m, toks := placeholder.Shield(e.Text)
				masked = append(masked, m)
				tokens = append(tokens, toks)
			} else {
				collect(e.Node)
			}
		}
	}
	collect(&doc.Root)

	// Deduplicate: only texts the memo has not seen go to the provider.
	var pending []string
	seen := make(map[string]bool)
	for _, m := range masked {
		if seen[m] {
			continue
		}
		seen[m] = true
		if _, ok := memo.Get(m); !ok {
			pending = append(pending, m)
		}
	}

	if len(pending) > 0 {
		log.Info().Int("unique", len(pending)).Int("leaves", len(masked)).
			Msg("Translating document strings")
		translated := BatchTranslate(ctx, a, pending, opts.BatchSize, opts.OnProgress)
		for i, m := range pending {
			memo.Set(m, translated[i])
		}
	}

	// Second pass: rebuild the tree in the same order, restoring each
	// leaf's placeholders into the memoized translation.
	out := &jsfile.Document{
		WrapBraces:    doc.WrapBraces,
		ExportDefault: doc.ExportDefault,
		MinimalQuotes: doc.MinimalQuotes,
	}
	idx := 0
	var rebuild func(src *jsfile.Node) *jsfile.Node
	rebuild = func(src *jsfile.Node) *jsfile.Node {
		dst := &jsfile.Node{Entries: make([]jsfile.Entry, 0, len(src.Entries))}
		for i := range src.Entries {
			e := &src.Entries[i]
			if e.IsLeaf() {
				text, ok := memo.Get(masked[idx])
				if !ok {
					text = masked[idx]
				}
				dst.Entries = append(dst.Entries, jsfile.Entry{
					Name:  e.Name,
					Quote: e.Quote,
					Text:  placeholder.Unshield(text, tokens[idx]),
				})
				idx++
			} else {
				dst.Entries = append(dst.Entries, jsfile.Entry{
					Name:  e.Name,
					Quote: e.Quote,
					Node:  rebuild(e.Node),
				})
			}
		}
		return dst
	}
	out.Root = *rebuild(&doc.Root)
	return out
}
