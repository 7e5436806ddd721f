// Package translate implements AI-powered translation of locale documents
// over HTTP API providers (Google AI / Gemini, Groq, Ollama, and custom
// OpenAI-compatible endpoints).
//
// The package exposes a small Adapter contract — order- and
// length-preserving batch translation plus a per-item call — and a
// BatchTranslate driver that degrades gracefully: a failed batch is retried
// item by item, and an item that still fails keeps its original text. A run
// therefore always produces output for every recognized entry.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Adapter contract
// ---------------------------------------------------------------------------

// Adapter translates strings. Implementations must return batch results of
// the same length and order as the input. Adapters are passed explicitly —
// there is no ambient or global translator.
type Adapter interface {
	// Translate translates a single text.
	Translate(ctx context.Context, text string) (string, error)
	// TranslateBatch translates texts preserving index correspondence.
	TranslateBatch(ctx context.Context, texts []string) ([]string, error)
}

// DefaultBatchSize is the number of strings sent per provider call when no
// batch size is configured.
const DefaultBatchSize = 10

// ---------------------------------------------------------------------------
// Batch driver with per-item fallback
// ---------------------------------------------------------------------------

// BatchTranslate translates texts in batches through the adapter. When a
// batch call fails, the batch is retried one item at a time; an item that
// still fails passes through untranslated. The result always has the same
// length and order as texts.
func BatchTranslate(ctx context.Context, a Adapter, texts []string, batchSize int, onProgress func(done, total int)) []string {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	out := make([]string, 0, len(texts))
	progress := func() {
		if onProgress != nil {
			onProgress(len(out), len(texts))
		}
	}

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		translated, err := a.TranslateBatch(ctx, batch)
		if err == nil && len(translated) == len(batch) {
			out = append(out, translated...)
			progress()
			continue
		}
		if err != nil {
			log.Warn().Err(err).Int("size", len(batch)).
				Msg("Batch translation failed, falling back to individual translation")
		} else {
			log.Warn().Int("got", len(translated)).Int("want", len(batch)).
				Msg("Batch translation returned wrong count, falling back to individual translation")
		}

		for _, text := range batch {
			one, err := a.Translate(ctx, text)
			if err != nil {
				log.Warn().Err(err).Str("text", truncate(text, 40)).
					Msg("Translation failed, keeping original text")
				one = text
			}
			out = append(out, one)
			progress()
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Provider response parsing
// ---------------------------------------------------------------------------

var markdownCodeBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseTranslations extracts a JSON array of strings from the provider
// response text and checks the element count.
func parseTranslations(content string, expected int) ([]string, error) {
	content = strings.TrimSpace(content)

	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	// Locate the outer JSON array in case the model added prose around it.
	startIdx := strings.Index(content, "[")
	endIdx := strings.LastIndex(content, "]")
	if startIdx >= 0 && endIdx > startIdx {
		content = content[startIdx : endIdx+1]
	}

	var translations []string
	if err := json.Unmarshal([]byte(content), &translations); err != nil {
		return nil, fmt.Errorf("parsing translation response as JSON array: %w\nResponse: %s",
			err, truncate(content, 300))
	}
	if len(translations) < expected {
		return nil, fmt.Errorf("got %d translations, expected %d", len(translations), expected)
	}
	return translations[:expected], nil
}

// parseSingle extracts a single translated string from the provider
// response text.
func parseSingle(content string) string {
	content = strings.TrimSpace(content)
	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = strings.TrimSpace(m[1])
	}
	// Models occasionally quote the answer.
	if len(content) >= 2 && content[0] == '"' && content[len(content)-1] == '"' {
		var s string
		if err := json.Unmarshal([]byte(content), &s); err == nil {
			return s
		}
	}
	return content
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
