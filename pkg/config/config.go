// Package config loads metron configuration from TOML, YAML or JSON
// files with sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for metron.
type Config struct {
	// Analysis toggles individual analyzers.
	Analysis AnalysisConfig `koanf:"analysis"`

	// CodeRank parameterizes coupling graph construction and the
	// rank iteration.
	CodeRank CodeRankConfig `koanf:"coderank"`

	// Output controls report rendering.
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls which analyzers run.
type AnalysisConfig struct {
	NodeCount   bool `koanf:"node_count"`
	Hierarchy   bool `koanf:"hierarchy"`
	Inheritance bool `koanf:"inheritance"`
	CodeRank    bool `koanf:"coderank"`
}

// CodeRankConfig defines rank iteration parameters and the graph
// construction strategies.
type CodeRankConfig struct {
	Damping       float64 `koanf:"damping"`
	Epsilon       float64 `koanf:"epsilon"`
	MaxIterations int     `koanf:"max_iterations"`
	// Strategies names the coupling sources: "method", "property".
	Strategies []string `koanf:"strategies"`
	// IncludeExternal admits non-user-defined types into the graphs.
	IncludeExternal bool `koanf:"include_external"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
	// TopN limits ranked tables.
	TopN int `koanf:"top_n"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			NodeCount:   true,
			Hierarchy:   true,
			Inheritance: true,
			CodeRank:    true,
		},
		CodeRank: CodeRankConfig{
			Damping:         0.85,
			Epsilon:         1e-6,
			MaxIterations:   100,
			Strategies:      []string{"method"},
			IncludeExternal: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			TopN:   10,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"metron.toml",
		"metron.yaml",
		"metron.yml",
		"metron.json",
		".metron.toml",
		".metron.yaml",
		".metron.yml",
		".metron.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}
