package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/metron-dev/metron/internal/output"
	"github.com/metron-dev/metron/pkg/analyzer"
	"github.com/metron-dev/metron/pkg/analyzer/coderank"
	"github.com/metron-dev/metron/pkg/analyzer/hierarchy"
	"github.com/metron-dev/metron/pkg/analyzer/inheritance"
	"github.com/metron-dev/metron/pkg/analyzer/nodecount"
	"github.com/metron-dev/metron/pkg/config"
	"github.com/metron-dev/metron/pkg/model"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "metron",
		Usage:   "Software metrics over resolved program models",
		Version: version,
		Description: `Metron computes size, hierarchy, inheritance and coupling metrics
(including CodeRank, a PageRank-style structural importance score)
from a program model produced by an upstream parser.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"METRON_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			rankCommand(),
			hierarchyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration, letting CLI flags
// override file values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if f := c.String("format"); f != "" {
		cfg.Output.Format = f
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
}

// modelPath returns the positional model document argument.
func modelPath(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one model document argument")
	}
	return c.Args().First(), nil
}

// rankConfig maps the config section onto the engine parameters.
func rankConfig(cfg *config.Config) coderank.RankConfig {
	return coderank.RankConfig{
		Damping:       cfg.CodeRank.Damping,
		Epsilon:       cfg.CodeRank.Epsilon,
		MaxIterations: cfg.CodeRank.MaxIterations,
	}
}

func coderankOptions(cfg *config.Config, l model.Listener) []coderank.Option {
	var strategies []coderank.Strategy
	for _, name := range cfg.CodeRank.Strategies {
		if s := coderank.StrategyByName(name); s != nil {
			strategies = append(strategies, s)
		}
	}

	filter := coderank.AllTypes
	if !cfg.CodeRank.IncludeExternal {
		filter = coderank.UserDefinedOnly
	}

	return []coderank.Option{
		coderank.WithRankConfig(rankConfig(cfg)),
		coderank.WithStrategies(strategies...),
		coderank.WithFilter(filter),
		coderank.WithListener(l),
		coderank.WithEnabled(cfg.Analysis.CodeRank),
	}
}

// buildAnalyzers assembles the full analyzer set from configuration.
func buildAnalyzers(cfg *config.Config, l model.Listener) []analyzer.Analyzer {
	return []analyzer.Analyzer{
		nodecount.New(nodecount.WithEnabled(cfg.Analysis.NodeCount), nodecount.WithListener(l)),
		hierarchy.New(hierarchy.WithEnabled(cfg.Analysis.Hierarchy), hierarchy.WithListener(l)),
		inheritance.New(inheritance.WithEnabled(cfg.Analysis.Inheritance), inheritance.WithListener(l)),
		coderank.New(coderankOptions(cfg, l)...),
	}
}

// enabledWalks counts how many analyzers will traverse the model, to
// size the shared progress bar.
func enabledWalks(cfg *config.Config) int {
	n := 0
	for _, on := range []bool{
		cfg.Analysis.NodeCount,
		cfg.Analysis.Hierarchy,
		cfg.Analysis.Inheritance,
		cfg.Analysis.CodeRank,
	} {
		if on {
			n++
		}
	}
	return n
}
