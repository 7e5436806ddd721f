package placeholder

import (
	"strings"
	"testing"
)

func TestShield(t *testing.T) {
	masked, tokens := Shield("Hello {name}, you have {count} messages")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0] != "{name}" || tokens[1] != "{count}" {
		t.Errorf("tokens = %v", tokens)
	}
	if strings.Contains(masked, "{name}") || strings.Contains(masked, "{count}") {
		t.Errorf("masked text still contains placeholders: %q", masked)
	}
	if !strings.Contains(masked, "PLACEHOLDER_0") || !strings.Contains(masked, "PLACEHOLDER_1") {
		t.Errorf("masked = %q", masked)
	}
}

func TestShield_NoPlaceholders(t *testing.T) {
	masked, tokens := Shield("plain text")
	if masked != "plain text" {
		t.Errorf("masked = %q", masked)
	}
	if len(tokens) != 0 {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestUnshield_RoundTrip(t *testing.T) {
	texts := []string{
		"Hello {name}!",
		"{a}{b}{c}",
		"mixed {first} and {second} tokens",
		"no tokens here",
	}
	for _, text := range texts {
		masked, tokens := Shield(text)
		if got := Unshield(masked, tokens); got != text {
			t.Errorf("round trip of %q = %q", text, got)
		}
	}
}

func TestUnshield_ReorderedMarkers(t *testing.T) {
	masked, tokens := Shield("{greeting} dear {name}")
	// A translation may move markers around; restoration follows the
	// markers, not their original positions.
	translated := strings.Replace(masked, "PLACEHOLDER_0 dear PLACEHOLDER_1", "PLACEHOLDER_1, PLACEHOLDER_0", 1)
	got := Unshield(translated, tokens)
	if got != "{name}, {greeting}" {
		t.Errorf("got %q", got)
	}
}

func TestUnshield_DroppedMarkerTolerated(t *testing.T) {
	_, tokens := Shield("Hi {name}, bye {other}")
	// The provider dropped the second marker entirely.
	got := Unshield("Salut PLACEHOLDER_0", tokens)
	if got != "Salut {name}" {
		t.Errorf("got %q", got)
	}
}

func TestShield_MarkerCountMatchesTokens(t *testing.T) {
	masked, tokens := Shield("{a} {b} {c} {d}")
	for i := range tokens {
		if strings.Count(masked, marker(i)) != 1 {
			t.Errorf("marker %d should appear exactly once in %q", i, masked)
		}
	}
}
