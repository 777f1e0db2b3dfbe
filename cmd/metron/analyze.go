package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/metron-dev/metron/internal/loader"
	"github.com/metron-dev/metron/internal/output"
	"github.com/metron-dev/metron/internal/progress"
	"github.com/metron-dev/metron/pkg/analyzer"
	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run all enabled analyzers over a model document",
		ArgsUsage: "<model-file>",
		Action:    runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	path, err := modelPath(c)
	if err != nil {
		return err
	}

	pkgs, err := loader.Load(path)
	if err != nil {
		return err
	}

	walks := enabledWalks(cfg)
	tracker := progress.NewTracker("Analyzing model...", model.CountNodes(pkgs)*walks)
	analyzers := buildAnalyzers(cfg, tracker)

	err = analyzer.Run(pkgs, analyzers)
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(jsonReport(pkgs, analyzers))
	}
	return renderSummaries(formatter, analyzers)
}

// jsonReport bundles project metrics and per-entity metrics of every
// enabled analyzer, keyed by entity identity in traversal order.
func jsonReport(pkgs []*model.Package, analyzers []analyzer.Analyzer) any {
	type entityReport struct {
		ID      string                    `json:"id"`
		Name    string                    `json:"name"`
		Kind    model.Kind                `json:"kind"`
		Metrics map[string]metrics.Values `json:"metrics"`
	}
	type report struct {
		Project  map[string]metrics.Values `json:"project"`
		Entities []entityReport            `json:"entities"`
	}

	out := report{Project: make(map[string]metrics.Values)}
	for _, a := range analyzers {
		if a.Enabled() {
			out.Project[a.Name()] = a.ProjectMetrics()
		}
	}

	_ = model.Walk(pkgs, func(n model.Node) error {
		kind, id, name := model.Describe(n)
		er := entityReport{ID: id, Name: name, Kind: kind, Metrics: make(map[string]metrics.Values)}
		for _, a := range analyzers {
			if !a.Enabled() {
				continue
			}
			if vals := a.NodeMetrics(id); len(vals) > 0 {
				er.Metrics[a.Name()] = vals
			}
		}
		if len(er.Metrics) > 0 {
			out.Entities = append(out.Entities, er)
		}
		return nil
	}, nil)

	return out
}

func renderSummaries(formatter *output.Formatter, analyzers []analyzer.Analyzer) error {
	for _, a := range analyzers {
		if !a.Enabled() {
			continue
		}
		var tbl *output.Table
		switch a.Name() {
		case "nodecount":
			tbl = countTable(a.ProjectMetrics())
		case "hierarchy":
			tbl = hierarchyTable(a.ProjectMetrics())
		case "inheritance":
			tbl = inheritanceTable(a.ProjectMetrics())
		case "coderank":
			tbl = couplingTable(a.ProjectMetrics())
		}
		if tbl == nil {
			continue
		}
		if err := formatter.Render(tbl); err != nil {
			return err
		}
	}
	return nil
}

func countTable(vals metrics.Values) *output.Table {
	return &output.Table{
		Title:   "Project Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Packages", formatCount(vals[metrics.KeyPackages])},
			{"Classes", formatCount(vals[metrics.KeyClasses])},
			{"Interfaces", formatCount(vals[metrics.KeyInterfaces])},
			{"Methods", formatCount(vals[metrics.KeyMethods])},
			{"Functions", formatCount(vals[metrics.KeyFunctions])},
		},
	}
}

func hierarchyTable(vals metrics.Values) *output.Table {
	return &output.Table{
		Title:   "Class Hierarchy",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Abstract classes", formatCount(vals[metrics.KeyAbstractClasses])},
			{"Concrete classes", formatCount(vals[metrics.KeyConcreteClasses])},
			{"Root classes", formatCount(vals[metrics.KeyRootClasses])},
			{"Leaf classes", formatCount(vals[metrics.KeyLeafClasses])},
		},
	}
}

func inheritanceTable(vals metrics.Values) *output.Table {
	return &output.Table{
		Title:   "Inheritance",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Avg derived classes (ANDC)", formatScore(vals[metrics.KeyANDC])},
			{"Avg hierarchy height (AHH)", formatScore(vals[metrics.KeyAHH])},
			{"Max depth of inheritance", formatCount(vals[metrics.KeyMaxDIT])},
		},
	}
}

func couplingTable(vals metrics.Values) *output.Table {
	return &output.Table{
		Title:   "Coupling",
		Headers: []string{"Metric", "Types", "Packages"},
		Rows: [][]string{
			{"Graph nodes", formatCount(vals[metrics.KeyGraphNodes]), formatCount(vals[metrics.KeyPkgGraphNodes])},
			{"Graph edges", formatCount(vals[metrics.KeyGraphEdges]), formatCount(vals[metrics.KeyPkgGraphEdges])},
			{"Dependency cycles", formatCount(vals[metrics.KeyGraphCycles]), formatCount(vals[metrics.KeyPkgGraphCycles])},
			{"Largest tangle", formatCount(vals[metrics.KeyGraphTangle]), formatCount(vals[metrics.KeyPkgGraphTangle])},
		},
	}
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
