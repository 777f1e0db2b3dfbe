package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Analysis.Inheritance)
	assert.True(t, cfg.Analysis.CodeRank)
	assert.Equal(t, 0.85, cfg.CodeRank.Damping)
	assert.Equal(t, 1e-6, cfg.CodeRank.Epsilon)
	assert.Equal(t, 100, cfg.CodeRank.MaxIterations)
	assert.Equal(t, []string{"method"}, cfg.CodeRank.Strategies)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metron.yaml")
	data := []byte(`
analysis:
  coderank: false
coderank:
  damping: 0.9
  strategies: [method, property]
output:
  format: json
  top_n: 5
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Analysis.CodeRank)
	assert.True(t, cfg.Analysis.Hierarchy, "untouched values keep defaults")
	assert.Equal(t, 0.9, cfg.CodeRank.Damping)
	assert.Equal(t, []string{"method", "property"}, cfg.CodeRank.Strategies)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.TopN)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metron.toml")
	data := []byte(`
[coderank]
max_iterations = 50
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.CodeRank.MaxIterations)
	assert.Equal(t, 0.85, cfg.CodeRank.Damping)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
