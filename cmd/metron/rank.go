package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/metron-dev/metron/internal/loader"
	"github.com/metron-dev/metron/internal/output"
	"github.com/metron-dev/metron/internal/progress"
	"github.com/metron-dev/metron/pkg/analyzer/coderank"
	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

func rankCommand() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Compute CodeRank over the coupling graphs",
		ArgsUsage: "<model-file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of nodes to show per graph (0 = config default)",
			},
		},
		Action: runRank,
	}
}

func runRank(c *cli.Context) error {
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

	topN := cfg.Output.TopN
	if n := c.Int("top"); n > 0 {
		topN = n
	}

	tracker := progress.NewTracker("Ranking model...", model.CountNodes(pkgs))
	opts := coderankOptions(cfg, tracker)
	opts = append(opts, coderank.WithEnabled(true))
	a := coderank.New(opts...)
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
		return formatter.Output(map[string]any{
			"types":    rankedNodes(a, a.TypeGraph(), 0),
			"packages": rankedNodes(a, a.PackageGraph(), 0),
			"summary":  a.ProjectMetrics(),
		})
	}

	if err := formatter.Render(rankTable("Top Types by CodeRank", a, a.TypeGraph(), topN)); err != nil {
		return err
	}
	if err := formatter.Render(rankTable("Top Packages by CodeRank", a, a.PackageGraph(), topN)); err != nil {
		return err
	}
	return formatter.Render(couplingTable(a.ProjectMetrics()))
}

type rankedNode struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Rank    float64 `json:"cr"`
	Reverse float64 `json:"rcr"`
	In      int     `json:"in"`
	Out     int     `json:"out"`
}

// rankedNodes returns graph nodes sorted by descending rank, limited
// to top entries when top > 0. Name breaks ties to keep output stable.
func rankedNodes(a *coderank.Analyzer, g *coderank.Graph, top int) []rankedNode {
	nodes := make([]rankedNode, 0, g.Len())
	for _, id := range g.IDs() {
		n := g.Node(id)
		vals := a.NodeMetrics(id)
		nodes = append(nodes, rankedNode{
			ID:      n.ID,
			Name:    n.Name,
			Kind:    string(n.Kind),
			Rank:    vals[metrics.KeyCodeRank],
			Reverse: vals[metrics.KeyReverseCodeRank],
			In:      len(n.In),
			Out:     len(n.Out),
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Rank != nodes[j].Rank {
			return nodes[i].Rank > nodes[j].Rank
		}
		return nodes[i].Name < nodes[j].Name
	})
	if top > 0 && len(nodes) > top {
		nodes = nodes[:top]
	}
	return nodes
}

func rankTable(title string, a *coderank.Analyzer, g *coderank.Graph, top int) *output.Table {
	rows := make([][]string, 0, top)
	for _, n := range rankedNodes(a, g, top) {
		rows = append(rows, []string{
			n.Name,
			n.Kind,
			formatScore(n.Rank),
			formatScore(n.Reverse),
			fmt.Sprintf("%d", n.In),
			fmt.Sprintf("%d", n.Out),
		})
	}
	return &output.Table{
		Title:   title,
		Headers: []string{"Name", "Kind", "CR", "RCR", "In", "Out"},
		Rows:    rows,
	}
}
