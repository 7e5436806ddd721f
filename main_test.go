package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/jslok/config"
	"github.com/minios-linux/jslok/jsfile"
	"github.com/minios-linux/jslok/translate"
)

func TestResolveProvider(t *testing.T) {
	cfg := &config.Config{APIKey: "key"}

	prov, err := resolveProvider(cfg, "google", "")
	if err != nil {
		t.Fatal(err)
	}
	if prov.APIKey != "key" || prov.Model != "gemini-2.5-flash" {
		t.Errorf("prov = %+v", prov)
	}

	prov, err = resolveProvider(cfg, "google", "gemini-2.0-pro")
	if err != nil {
		t.Fatal(err)
	}
	if prov.Model != "gemini-2.0-pro" {
		t.Errorf("flag should override model, got %q", prov.Model)
	}

	if _, err := resolveProvider(cfg, "bogus", ""); err == nil {
		t.Error("unknown provider should error")
	}
	if _, err := resolveProvider(cfg, "custom-openai", ""); err == nil {
		t.Error("custom-openai without a base URL should error")
	}

	cfg.BaseURL = "http://localhost:9999/v1"
	cfg.Model = "local-model"
	prov, err = resolveProvider(cfg, "custom-openai", "")
	if err != nil {
		t.Fatal(err)
	}
	if prov.BaseURL != cfg.BaseURL || prov.Model != "local-model" {
		t.Errorf("prov = %+v", prov)
	}
}

func TestParseInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.js")
	src := "export default {\n  greeting: \"Hello\",\n};\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := parseInput(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Len() != 1 {
		t.Errorf("got %d entries", doc.Root.Len())
	}

	if _, err := parseInput(filepath.Join(dir, "missing.js"), false); err == nil {
		t.Error("missing input should be an error")
	}

	bad := filepath.Join(dir, "bad.js")
	if err := os.WriteFile(bad, []byte("{ a: !!! }"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseInput(bad, true); err == nil {
		t.Error("strict mode should reject malformed input")
	}
	if doc, err := parseInput(bad, false); err != nil || !doc.Empty() {
		t.Errorf("lenient mode should yield an empty document, got %v, %v", doc, err)
	}
}

// echoProvider serves an OpenAI-compatible endpoint that answers every
// batch with uppercase translations.
func echoProvider(t *testing.T) translate.Provider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		user := req.Messages[len(req.Messages)-1].Content

		// Pull the numbered JSON-encoded entries back out of the prompt.
		var entries []string
		for _, line := range strings.Split(user, "\n") {
			if idx := strings.Index(line, ". \""); idx > 0 {
				var s string
				if err := json.Unmarshal([]byte(line[idx+2:]), &s); err == nil {
					entries = append(entries, strings.ToUpper(s))
				}
			}
		}
		enc, _ := json.Marshal(entries)
		content, _ := json.Marshal(string(enc))
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%s}}]}`, content)
	}))
	t.Cleanup(srv.Close)

	prov := translate.DefaultProviders()["custom-openai"]
	prov.BaseURL = srv.URL
	prov.Model = "test-model"
	return prov
}

func TestTranslateFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "en.js")
	output := filepath.Join(dir, "out", "ru.js")
	src := "export default {\n  greeting: \"hello\",\n  menu: {\n    title: \"main\",\n  },\n};\n"
	if err := os.WriteFile(input, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	opts := fileOptions{source: "en", target: "ru", indent: 2}
	if err := translateFile(context.Background(), input, output, echoProvider(t), opts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `greeting: "HELLO",`) {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, `title: "MAIN",`) {
		t.Errorf("nested entry missing:\n%s", out)
	}
	if !strings.HasPrefix(out, "export default {") {
		t.Errorf("framing lost:\n%s", out)
	}

	doc := jsfile.Parse(data)
	if leaves, _ := doc.Stats(); leaves != 2 {
		t.Errorf("output has %d leaves, want 2", leaves)
	}
}

func TestTranslateFile_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "en.js")
	output := filepath.Join(dir, "ru.js")
	if err := os.WriteFile(input, []byte("// nothing here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := fileOptions{source: "en", target: "ru"}
	if err := translateFile(context.Background(), input, output, echoProvider(t), opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output should be written for an empty document")
	}
}

func TestTranslateFile_Update(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "en.js")
	output := filepath.Join(dir, "ru.js")
	src := "export default {\n  greeting: \"hello\",\n  farewell: \"bye\",\n};\n"
	old := "export default {\n  greeting: \"СТАРОЕ\",\n};\n"
	if err := os.WriteFile(input, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(output, []byte(old), 0644); err != nil {
		t.Fatal(err)
	}

	opts := fileOptions{source: "en", target: "ru", indent: 2, update: true}
	if err := translateFile(context.Background(), input, output, echoProvider(t), opts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `greeting: "СТАРОЕ",`) {
		t.Errorf("existing translation should be kept:\n%s", out)
	}
	if !strings.Contains(out, `farewell: "BYE",`) {
		t.Errorf("new entry should be translated:\n%s", out)
	}
}

func TestRunStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.js")
	if err := os.WriteFile(path, []byte(`{ a: "x", b: { c: "y" } }`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := runStatus(path, false); err != nil {
		t.Fatal(err)
	}
	if err := runStatus(filepath.Join(dir, "missing.js"), false); err == nil {
		t.Error("missing input should be an error")
	}
}
