package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/metron-dev/metron/internal/loader"
	"github.com/metron-dev/metron/internal/output"
	"github.com/metron-dev/metron/internal/progress"
	"github.com/metron-dev/metron/pkg/analyzer/hierarchy"
	"github.com/metron-dev/metron/pkg/model"
)

func hierarchyCommand() *cli.Command {
	return &cli.Command{
		Name:      "hierarchy",
		Usage:     "Summarize the class hierarchy",
		ArgsUsage: "<model-file>",
		Action:    runHierarchy,
	}
}

func runHierarchy(c *cli.Context) error {
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

	tracker := progress.NewTracker("Classifying hierarchy...", model.CountNodes(pkgs))
	a := hierarchy.New(hierarchy.WithListener(tracker))
	err = a.Analyze(pkgs)
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
		return formatter.Output(a.ProjectMetrics())
	}
	return formatter.Render(hierarchyTable(a.ProjectMetrics()))
}
