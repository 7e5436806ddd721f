// jslok — JS locale kit: translates JavaScript object-literal locale files
// while preserving their structure, key order, quoting and placeholders.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/minios-linux/jslok/cache"
	"github.com/minios-linux/jslok/config"
	"github.com/minios-linux/jslok/i18n"
	"github.com/minios-linux/jslok/jsfile"
	"github.com/minios-linux/jslok/langmeta"
	"github.com/minios-linux/jslok/merge"
	"github.com/minios-linux/jslok/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jslok",
		Short: "Translate JS object-literal locale files with AI providers",
		Long: `jslok — JS locale kit.

Translates the string values of a JavaScript-style locale file (flat or
nested object literal, optional export default wrapper) into another
language, preserving key order, quoting style, nesting and {placeholder}
tokens.

Commands:
  translate   Translate a locale file (or all .jslok.yaml targets)
  status      Parse a locale file and show its structure
  version     Show version information

Providers (JSLOK_PROVIDER / --provider):
  google         Google AI (Gemini) — JSLOK_API_KEY
  groq           Groq — JSLOK_API_KEY
  ollama         Ollama local server
  custom-openai  OpenAI-compatible endpoint — JSLOK_BASE_URL`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTranslateCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	i18n.Init("")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()
	return ctx, cancel
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jslok version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: parse + structure statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "status <input>",
		Short: "Parse a locale file and show its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Use the strict JSON-compatible parser")
	return cmd
}

func runStatus(input string, strict bool) error {
	doc, err := parseInput(input, strict)
	if err != nil {
		return err
	}

	leaves, nodes := doc.Stats()
	framing := "flat (no braces)"
	switch {
	case doc.ExportDefault:
		framing = "export default { ... };"
	case doc.WrapBraces:
		framing = "{ ... }"
	}

	fmt.Fprintf(os.Stderr, "  File:     %s\n", input)
	fmt.Fprintf(os.Stderr, "  Framing:  %s\n", framing)
	fmt.Fprintf(os.Stderr, "  Strings:  %d\n", leaves)
	fmt.Fprintf(os.Stderr, "  Blocks:   %d\n", nodes)

	if doc.Empty() {
		log.Info().Msg(i18n.T("No translatable content found."))
	}
	return nil
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var (
		lang       string
		sourceLang string
		provider   string
		model      string
		batchSize  int
		indent     int
		strict     bool
		update     bool
	)

	cmd := &cobra.Command{
		Use:   "translate [<input> <output>]",
		Short: "Translate a locale file (or all .jslok.yaml targets)",
		Long: `Translate the string values of a locale file into --lang.

With <input> and <output> arguments a single file is translated. With no
arguments, targets are read from .jslok.yaml in the current directory.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			if provider == "" {
				provider = cfg.Provider
			}
			if batchSize <= 0 {
				batchSize = cfg.BatchSize
			}
			prov, err := resolveProvider(cfg, provider, model)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if lang == "" {
					return fmt.Errorf("--lang is required")
				}
				warnUnknownLang(lang)
				opts := fileOptions{
					source:    sourceLang,
					target:    lang,
					batchSize: batchSize,
					indent:    indent,
					strict:    strict,
					update:    update,
				}
				return translateFile(ctx, args[0], args[1], prov, opts)
			}
			if len(args) == 1 {
				return fmt.Errorf("translate needs both <input> and <output> (or neither, with .jslok.yaml)")
			}
			return translateProject(ctx, prov, lang, sourceLang, batchSize, indent, strict, update)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Target language code (e.g. ru, de, zh-CN)")
	cmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code, or auto")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "AI provider (google, groq, ollama, custom-openai)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (provider default when empty)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Strings per provider call")
	cmd.Flags().IntVar(&indent, "indent", jsfile.DefaultIndent, "Output indentation width")
	cmd.Flags().BoolVar(&strict, "strict", false, "Use the strict JSON-compatible parser")
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Keep translations from an existing output file, translate only new entries")
	return cmd
}

type fileOptions struct {
	source    string
	target    string
	batchSize int
	indent    int
	strict    bool
	update    bool
	memo      *cache.Memo
}

// resolveProvider merges the provider definition with environment
// configuration and flags.
func resolveProvider(cfg *config.Config, id, model string) (translate.Provider, error) {
	prov, ok := translate.DefaultProviders()[id]
	if !ok {
		return translate.Provider{}, fmt.Errorf("unknown provider %q (valid: google, groq, ollama, custom-openai)", id)
	}
	prov.APIKey = cfg.APIKey
	prov.Proxy = cfg.Proxy
	if cfg.BaseURL != "" {
		prov.BaseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		prov.Model = cfg.Model
	}
	if model != "" {
		prov.Model = model
	}
	if prov.BaseURL == "" {
		return translate.Provider{}, fmt.Errorf("provider %q needs JSLOK_BASE_URL", id)
	}
	return prov, nil
}

func warnUnknownLang(lang string) {
	if !langmeta.Known(lang) {
		log.Warn().Str("lang", lang).Msg("Unrecognized language code, passing it to the provider as-is")
	}
}

// parseInput reads and parses a locale file. A missing input is fatal; so
// is a strict-mode parse failure.
func parseInput(input string, strict bool) (*jsfile.Document, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input file %q does not exist", input)
	}
	log.Info().Msg(fmt.Sprintf(i18n.T("Reading file: %s"), input))

	if strict {
		return jsfile.ParseFileStrict(input)
	}
	return jsfile.ParseFile(input)
}

// translateFile runs the parse → translate → serialize pipeline for one
// file.
func translateFile(ctx context.Context, input, output string, prov translate.Provider, opts fileOptions) error {
	doc, err := parseInput(input, opts.strict)
	if err != nil {
		return err
	}

	if doc.Empty() {
		log.Info().Msg(i18n.T("No translatable content found."))
		return nil
	}

	// In update mode the existing output contributes its translations and
	// only the remaining entries go to the provider.
	base, todo := doc, doc
	if opts.update {
		if data, err := os.ReadFile(output); err == nil {
			existing := jsfile.Parse(data)
			base = merge.Merge(doc, existing)
			todo = merge.Missing(doc, existing)
			kept, _ := base.Stats()
			pending, _ := todo.Stats()
			log.Info().Int("existing", kept-pending).Int("pending", pending).Msg("Updating existing translation")
		}
	}

	leaves, _ := todo.Stats()
	log.Info().Msg(fmt.Sprintf(i18n.N("Found %d string", "Found %d strings", leaves), leaves))

	client := translate.NewClient(prov, opts.source, opts.target)
	start := time.Now()
	final := base
	if !todo.Empty() {
		translated := translate.TranslateDocument(ctx, todo, client, translate.DocumentOptions{
			BatchSize: opts.batchSize,
			Memo:      opts.memo,
			OnProgress: func(done, total int) {
				log.Info().Int("done", done).Int("total", total).Msg("Translating")
			},
		})
		if opts.update && base != doc {
			final = merge.Apply(base, translated)
		} else {
			final = translated
		}
	}

	data, err := final.MarshalIndent(opts.indent)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg(i18n.T("Translation completed successfully."))
	log.Info().Msg(fmt.Sprintf(i18n.T("Output file: %s"), output))
	return nil
}

// translateProject translates every .jslok.yaml target for every
// configured language. A per-language memo is shared across targets so
// repeated strings are translated once.
func translateProject(ctx context.Context, prov translate.Provider, langFlag, sourceFlag string, batchSize, indent int, strictFlag, update bool) error {
	jf, err := config.LoadJslokFile(".")
	if err != nil {
		return err
	}
	if jf == nil {
		return fmt.Errorf("no %s found; pass <input> and <output> to translate a single file", config.JslokFileName)
	}

	source := jf.SourceLang
	if sourceFlag != "" && sourceFlag != "auto" {
		source = sourceFlag
	}
	strict := strictFlag || jf.Strict
	if indent == jsfile.DefaultIndent && jf.Indent > 0 {
		indent = jf.Indent
	}

	memos := make(map[string]*cache.Memo)
	for _, target := range jf.Targets {
		langs := target.Languages
		if langFlag != "" {
			langs = []string{langFlag}
		}
		if len(langs) == 0 {
			return fmt.Errorf("target %q has no languages (set languages: in %s or pass --lang)", target.Name, config.JslokFileName)
		}

		for _, lang := range langs {
			if memos[lang] == nil {
				memos[lang] = cache.NewMemo()
			}
			warnUnknownLang(lang)
			log.Info().Str("target", target.Name).Str("lang", langmeta.Resolve(lang).Native).Msg("Translating target")
			opts := fileOptions{
				source:    source,
				target:    lang,
				batchSize: batchSize,
				indent:    indent,
				strict:    strict,
				update:    update,
				memo:      memos[lang],
			}
			if err := translateFile(ctx, target.Input, target.OutputPath(lang), prov, opts); err != nil {
				return fmt.Errorf("target %q (%s): %w", target.Name, lang, err)
			}
		}
	}
	return nil
}
