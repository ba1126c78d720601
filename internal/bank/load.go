package bank

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultBankYAML []byte

// SupportedMajor is the bank format major version this build understands.
const SupportedMajor = "v1"

// file is the on-disk YAML representation of a bank.
type file struct {
	Version    string            `yaml:"version"`
	Categories []CategoryInfo    `yaml:"categories"`
	Baseline   map[Category]Seed `yaml:"baseline,omitempty"`
	Questions  []Question        `yaml:"questions"`
}

// Default returns the embedded question bank.
func Default() (*Bank, error) {
	b, err := Parse(defaultBankYAML)
	if err != nil {
		return nil, fmt.Errorf("parse embedded bank: %w", err)
	}
	return b, nil
}

// Load reads and parses a bank from a YAML file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse bank %s: %w", path, err)
	}
	return b, nil
}

// LoadOrDefault loads the bank at path, or the embedded bank when path is empty.
func LoadOrDefault(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes, schema-checks, and validates a YAML bank document.
func Parse(data []byte) (*Bank, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("empty bank document")
	}
	if err := checkSchema(doc); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	return New(f.Version, f.Categories, f.Baseline, f.Questions)
}

func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid bank version %q", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("unsupported bank version %s (want %s.x)", v, SupportedMajor)
	}
	return nil
}

// Marshal encodes a bank as YAML.
func Marshal(b *Bank) ([]byte, error) {
	f := file{
		Version:    b.Version,
		Categories: b.Categories,
		Baseline:   b.Baseline,
		Questions:  b.Questions,
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return out, nil
}

// WithQuestions returns a copy of b with extra questions appended.
// The result is validated as a whole.
func (b *Bank) WithQuestions(extra []Question) (*Bank, error) {
	qs := make([]Question, 0, len(b.Questions)+len(extra))
	qs = append(qs, b.Questions...)
	qs = append(qs, extra...)
	return New(b.Version, b.Categories, b.Baseline, qs)
}
