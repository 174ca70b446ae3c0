package prompts

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Manifest indexes the prompt templates available to the registry.
type Manifest struct {
	Prompts []Entry `yaml:"prompts"`
}

// Entry describes one version of a named prompt template.
type Entry struct {
	Name        string  `yaml:"name"`
	Version     string  `yaml:"version"`
	File        string  `yaml:"file"`
	Description string  `yaml:"description"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ParseManifest decodes a manifest, rejecting unknown keys and entries
// with missing fields, invalid semantic versions or duplicate versions.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse manifest: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]bool)
	for i, e := range m.Prompts {
		switch {
		case e.Name == "":
			return fmt.Errorf("manifest entry %d: name is required", i)
		case e.File == "":
			return fmt.Errorf("manifest entry %s: file is required", e.Name)
		case !semver.IsValid(e.Version):
			return fmt.Errorf("manifest entry %s: invalid version %q", e.Name, e.Version)
		case e.MaxTokens <= 0:
			return fmt.Errorf("manifest entry %s@%s: max_tokens must be positive", e.Name, e.Version)
		case e.Temperature < 0 || e.Temperature > 1:
			return fmt.Errorf("manifest entry %s@%s: temperature must be within [0, 1]", e.Name, e.Version)
		}
		key := e.Name + "@" + semver.Canonical(e.Version)
		if seen[key] {
			return fmt.Errorf("manifest entry %s: duplicate version %s", e.Name, e.Version)
		}
		seen[key] = true
	}
	return nil
}
