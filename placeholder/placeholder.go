// Package placeholder masks `{...}` formatting placeholders in translatable
// strings so they never reach the translation provider, and restores them
// afterwards. Markers are positional (`PLACEHOLDER_0`, `PLACEHOLDER_1`,
// ...), so restoration survives the word reordering translation introduces.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

// pattern matches a brace-delimited placeholder token such as {name}.
var pattern = regexp.MustCompile(`\{[^}]+\}`)

// marker returns the positional marker for occurrence i.
func marker(i int) string {
	return fmt.Sprintf("PLACEHOLDER_%d", i)
}

// Shield replaces every placeholder token in text with a positional marker
// and returns the masked text plus the original tokens in occurrence order.
// Text without placeholders is returned unchanged with a nil slice.
func Shield(text string) (string, []string) {
	var tokens []string
	masked := pattern.ReplaceAllStringFunc(text, func(tok string) string {
		m := marker(len(tokens))
		tokens = append(tokens, tok)
		return m
	})
	return masked, tokens
}

// Unshield replaces each positional marker in translated with its recorded
// token, in index order. A marker the translation dropped or corrupted is
// tolerated: its token is simply not restored.
func Unshield(translated string, tokens []string) string {
	for i, tok := range tokens {
		translated = strings.Replace(translated, marker(i), tok, 1)
	}
	return translated
}
