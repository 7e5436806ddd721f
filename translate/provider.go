package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minios-linux/jslok/langmeta"
)

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderGoogle       = "google"
	ProviderGroq         = "groq"
	ProviderOllama       = "ollama"
	ProviderCustomOpenAI = "custom-openai"
)

// Provider holds the configuration for an AI translation service.
type Provider struct {
	// ID is the provider identifier (google, groq, ollama, custom-openai).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL.
	BaseURL string
	// APIKey is the authentication key (empty for local services).
	APIKey string
	// Model is the model identifier.
	Model string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the request timeout.
	Timeout time.Duration
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		ProviderGoogle: {
			ID:      ProviderGoogle,
			Name:    "Google AI (Gemini)",
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.5-flash",
			Timeout: 120 * time.Second,
		},
		ProviderGroq: {
			ID:      ProviderGroq,
			Name:    "Groq",
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.3-70b-versatile",
			Timeout: 60 * time.Second,
		},
		ProviderOllama: {
			ID:      ProviderOllama,
			Name:    "Ollama",
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
			Timeout: 120 * time.Second,
		},
		ProviderCustomOpenAI: {
			ID:      ProviderCustomOpenAI,
			Name:    "Custom OpenAI",
			Timeout: 60 * time.Second,
		},
	}
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// systemPromptTemplate instructs the provider. {{targetLang}} and
// {{sourceLang}} are replaced at client construction.
const systemPromptTemplate = `You are a professional translator specializing in software localization. You are translating UI strings from {{sourceLang}} into {{targetLang}}.

IMPORTANT TRANSLATION PRINCIPLES:
- Translate for NATURALNESS and FLUENCY in {{targetLang}}, not word-for-word
- Use established IT terminology in {{targetLang}}
- Keep brand names and proper nouns unchanged

TECHNICAL REQUIREMENTS:
- Preserve marker tokens of the form PLACEHOLDER_0, PLACEHOLDER_1, ... exactly as-is, in a position natural for {{targetLang}}.
- Preserve leading/trailing whitespace and punctuation patterns.
- Return ONLY what is asked for, no explanations or markdown code blocks.`

// Client is an HTTP Adapter over a configured provider. Construct one per
// language pair and pass it by value into the tree translator.
type Client struct {
	prov       Provider
	source     string // language code, or "auto"
	target     string
	maxRetries int
	httpClient *http.Client
	system     string
}

// NewClient creates a translation client for the source→target language
// pair. Source may be "auto" to let the provider detect the language.
func NewClient(prov Provider, source, target string) *Client {
	if prov.Timeout <= 0 {
		prov.Timeout = 120 * time.Second
	}

	sourceName := "the source language (detect it)"
	if source != "" && source != "auto" {
		sourceName = langmeta.Resolve(source).Name
	}
	system := strings.ReplaceAll(systemPromptTemplate, "{{targetLang}}", langmeta.Resolve(target).Name)
	system = strings.ReplaceAll(system, "{{sourceLang}}", sourceName)

	return &Client{
		prov:       prov,
		source:     source,
		target:     target,
		maxRetries: 3,
		httpClient: makeHTTPClient(prov.Proxy, prov.Timeout),
		system:     system,
	}
}

// Translate translates a single text.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	var user strings.Builder
	user.WriteString("Translate this string. Return ONLY the translation, nothing else:\n\n")
	user.WriteString(text)

	resp, err := c.call(ctx, user.String())
	if err != nil {
		return "", err
	}
	return parseSingle(resp), nil
}

// TranslateBatch translates texts in one provider call, preserving order
// and count. A malformed response is an error; the caller's fallback path
// handles it.
func (c *Client) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var user strings.Builder
	user.WriteString("Translate these entries:\n\n")
	for i, t := range texts {
		enc, _ := json.Marshal(t)
		fmt.Fprintf(&user, "%d. %s\n", i+1, enc)
	}
	fmt.Fprintf(&user, "\nReturn ONLY a JSON array of exactly %d translated strings, in the same order.", len(texts))

	resp, err := c.call(ctx, user.String())
	if err != nil {
		return nil, err
	}
	return parseTranslations(resp, len(texts))
}

// ---------------------------------------------------------------------------
// HTTP call with retry, backoff and rate-limit handling
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

func (c *Client) call(ctx context.Context, userPrompt string) (string, error) {
	endpoint, headers, body, err := c.buildRequest(userPrompt)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("creating request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		log.Debug().Str("provider", c.prov.ID).Int("attempt", attempt+1).Msg("Provider request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				if werr := waitBackoff(ctx, attempt); werr != nil {
					return "", werr
				}
				continue
			}
			return "", fmt.Errorf("API request failed: %w", err)
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := parseRetryDelay(respBody)
			log.Warn().Dur("delay", delay).Int("attempt", attempt+1).Msg("Rate limited (429)")
			if attempt < c.maxRetries {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return "", fmt.Errorf("rate limited after %d retries", c.maxRetries)
		}

		if resp.StatusCode != http.StatusOK {
			if attempt < c.maxRetries && resp.StatusCode >= 500 {
				if werr := waitBackoff(ctx, attempt); werr != nil {
					return "", werr
				}
				continue
			}
			return "", fmt.Errorf("API returned status %d: %s",
				resp.StatusCode, truncate(string(respBody), 500))
		}

		return extractResponseText(respBody)
	}
	return "", fmt.Errorf("exhausted all %d retries", c.maxRetries)
}

func waitBackoff(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// buildRequest constructs the endpoint, headers and body for the provider.
// Google uses the Gemini generateContent format; everything else speaks
// OpenAI chat completions.
func (c *Client) buildRequest(userPrompt string) (string, map[string]string, []byte, error) {
	headers := map[string]string{"Content-Type": "application/json"}

	if c.prov.ID == ProviderGoogle {
		endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
			strings.TrimRight(c.prov.BaseURL, "/"), c.prov.Model)
		if c.prov.APIKey != "" {
			headers["x-goog-api-key"] = c.prov.APIKey
		}
		body, err := buildGeminiRequest(c.system, userPrompt, 0.3)
		return endpoint, headers, body, err
	}

	endpoint := strings.TrimRight(c.prov.BaseURL, "/")
	if !strings.HasSuffix(endpoint, "/chat/completions") {
		endpoint += "/chat/completions"
	}
	if c.prov.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.prov.APIKey
	}
	body, err := buildOpenAIChatRequest(c.prov.Model, c.system, userPrompt, 0.3)
	return endpoint, headers, body, err
}

func buildOpenAIChatRequest(model, systemPrompt, userPrompt string, temperature float64) ([]byte, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	req := struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature"`
		Stream      bool    `json:"stream"`
	}{
		Model: model,
		Messages: []msg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
	}
	return json.Marshal(req)
}

func buildGeminiRequest(systemPrompt, userPrompt string, temperature float64) ([]byte, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}
	type genConfig struct {
		Temperature float64 `json:"temperature"`
	}
	req := struct {
		Contents          []content `json:"contents"`
		GenerationConfig  genConfig `json:"generationConfig"`
		SystemInstruction *content  `json:"systemInstruction,omitempty"`
	}{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userPrompt}}},
		},
		GenerationConfig: genConfig{Temperature: temperature},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}
	return json.Marshal(req)
}

// extractResponseText pulls the text out of either response format.
func extractResponseText(body []byte) (string, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	if errObj, ok := raw["error"]; ok {
		if errMap, ok := errObj.(map[string]any); ok {
			if msg, ok := errMap["message"].(string); ok {
				return "", fmt.Errorf("API error: %s", msg)
			}
		}
		return "", fmt.Errorf("API error: %v", errObj)
	}

	// OpenAI chat format: choices[0].message.content
	if choices, ok := raw["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					return content, nil
				}
			}
		}
	}

	// Gemini format: candidates[0].content.parts[0].text
	if candidates, ok := raw["candidates"].([]any); ok && len(candidates) > 0 {
		if candidate, ok := candidates[0].(map[string]any); ok {
			if content, ok := candidate["content"].(map[string]any); ok {
				if parts, ok := content["parts"].([]any); ok && len(parts) > 0 {
					if part, ok := parts[0].(map[string]any); ok {
						if text, ok := part["text"].(string); ok {
							return text, nil
						}
					}
				}
			}
		}
	}

	return "", fmt.Errorf("could not extract text from response: %s", truncate(string(body), 500))
}

// parseRetryDelay extracts the retry delay from a 429 response body,
// looking for Google's RetryInfo detail. Defaults to 60s plus a buffer.
func parseRetryDelay(body []byte) time.Duration {
	const defaultDelay = 65 * time.Second

	var errResp struct {
		Error struct {
			Details []struct {
				Type       string `json:"@type"`
				RetryDelay string `json:"retryDelay"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return defaultDelay
	}

	for _, detail := range errResp.Error.Details {
		if strings.Contains(detail.Type, "RetryInfo") && detail.RetryDelay != "" {
			d := strings.TrimSuffix(detail.RetryDelay, "s")
			if secs, err := strconv.ParseFloat(d, 64); err == nil {
				return time.Duration(secs*1000)*time.Millisecond + 5*time.Second
			}
		}
	}
	return defaultDelay
}
