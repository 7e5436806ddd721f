// .jslok.yaml project file support.
//
// When a .jslok.yaml file exists in the project root it declares the
// translation targets; flags on the command line override its values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// JslokFile is the top-level .jslok.yaml structure.
type JslokFile struct {
	// SourceLang is the source language code (default "auto").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages is the default target language list for all targets.
	Languages []string `yaml:"languages,omitempty"`
	// Indent is the serialization indent width (default 2).
	Indent int `yaml:"indent,omitempty"`
	// Strict selects the strict JSON-compatible parser.
	Strict bool `yaml:"strict,omitempty"`
	// Targets is the list of translation targets.
	Targets []Target `yaml:"targets"`
}

// Target describes one locale file to translate.
type Target struct {
	// Name is a human-readable label shown in logs.
	Name string `yaml:"name"`
	// Input is the source locale file, relative to .jslok.yaml.
	Input string `yaml:"input"`
	// OutputDir is where <lang>.js files are written (default: the
	// input file's directory).
	OutputDir string `yaml:"output_dir,omitempty"`
	// Languages overrides the global language list for this target.
	Languages []string `yaml:"languages,omitempty"`
}

// JslokFileName is the default config file name.
const JslokFileName = ".jslok.yaml"

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadJslokFile loads and validates .jslok.yaml from the given directory.
// Returns nil if no .jslok.yaml exists.
func LoadJslokFile(rootDir string) (*JslokFile, error) {
	path := filepath.Join(rootDir, JslokFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var jf JslokFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if jf.SourceLang == "" {
		jf.SourceLang = "auto"
	}
	if jf.Indent <= 0 {
		jf.Indent = 2
	}

	for i := range jf.Targets {
		t := &jf.Targets[i]
		if t.Name == "" {
			return nil, fmt.Errorf("%s: target #%d has no name", path, i+1)
		}
		if t.Input == "" {
			return nil, fmt.Errorf("%s: target %q has no input file", path, t.Name)
		}
		if t.OutputDir == "" {
			t.OutputDir = filepath.Dir(t.Input)
		}
		if len(t.Languages) == 0 {
			t.Languages = jf.Languages
		}
	}
	return &jf, nil
}

// OutputPath returns the output file path for a target language.
func (t *Target) OutputPath(lang string) string {
	ext := filepath.Ext(t.Input)
	if ext == "" {
		ext = ".js"
	}
	return filepath.Join(t.OutputDir, lang+ext)
}
