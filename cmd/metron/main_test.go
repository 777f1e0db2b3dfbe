package main

import (
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/metron-dev/metron/pkg/config"
)

// TestModelPath verifies positional argument handling.
func TestModelPath(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name:    "no args is an error",
			args:    []string{},
			wantErr: true,
		},
		{
			name: "single path",
			args: []string{"model.json"},
			want: "model.json",
		},
		{
			name:    "multiple paths rejected",
			args:    []string{"a.json", "b.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Action: func(c *cli.Context) error {
					got, err := modelPath(c)
					if tt.wantErr {
						if err == nil {
							t.Errorf("modelPath() error = nil, want error")
						}
						return nil
					}
					if err != nil {
						t.Errorf("modelPath() error = %v", err)
						return nil
					}
					if got != tt.want {
						t.Errorf("modelPath() = %q, want %q", got, tt.want)
					}
					return nil
				},
			}
			args := append([]string{"test"}, tt.args...)
			_ = app.Run(args)
		})
	}
}

// TestEnabledWalks verifies progress sizing against the config.
func TestEnabledWalks(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := enabledWalks(cfg); got != 4 {
		t.Errorf("enabledWalks() = %d, want 4", got)
	}

	cfg.Analysis.CodeRank = false
	cfg.Analysis.Hierarchy = false
	if got := enabledWalks(cfg); got != 2 {
		t.Errorf("enabledWalks() = %d, want 2", got)
	}
}

// TestFormatValues verifies metric value rendering.
func TestFormatValues(t *testing.T) {
	if got := formatCount(7); got != "7" {
		t.Errorf("formatCount(7) = %q, want %q", got, "7")
	}
	if got := formatCount(0); got != "0" {
		t.Errorf("formatCount(0) = %q, want %q", got, "0")
	}
	if got := formatScore(0.5); got != "0.5000" {
		t.Errorf("formatScore(0.5) = %q, want %q", got, "0.5000")
	}
}

// TestBuildAnalyzers verifies the analyzer set honors config toggles.
func TestBuildAnalyzers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.Inheritance = false

	analyzers := buildAnalyzers(cfg, nil)
	if len(analyzers) != 4 {
		t.Fatalf("buildAnalyzers() returned %d analyzers, want 4", len(analyzers))
	}
	for _, a := range analyzers {
		enabled := a.Name() != "inheritance"
		if a.Enabled() != enabled {
			t.Errorf("analyzer %s enabled = %v, want %v", a.Name(), a.Enabled(), enabled)
		}
	}
}
