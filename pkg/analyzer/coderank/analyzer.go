package coderank

import (
	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// Analyzer builds the type-level and package-level coupling graphs and
// exposes the rank scores of both as node metrics. The forward rank
// (cr) rewards being depended on; the reverse rank (rcr) rewards
// depending on much of the codebase.
type Analyzer struct {
	store    *metrics.Store
	listener model.Listener
	enabled  bool

	cfg        RankConfig
	strategies []Strategy
	filter     TypeFilter

	typeGraph *Graph
	pkgGraph  *Graph
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithListener sets the traversal listener.
func WithListener(l model.Listener) Option {
	return func(a *Analyzer) {
		a.listener = l
	}
}

// WithEnabled toggles the analyzer.
func WithEnabled(enabled bool) Option {
	return func(a *Analyzer) {
		a.enabled = enabled
	}
}

// WithRankConfig overrides the rank iteration parameters.
func WithRankConfig(cfg RankConfig) Option {
	return func(a *Analyzer) {
		a.cfg = cfg
	}
}

// WithStrategies sets the graph construction strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(a *Analyzer) {
		a.strategies = strategies
	}
}

// WithFilter sets the type filter. The default admits every type,
// external ones included; pass UserDefinedOnly to restrict the graph
// to analyzed code.
func WithFilter(f TypeFilter) Option {
	return func(a *Analyzer) {
		a.filter = f
	}
}

// New creates a CodeRank analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		enabled: true,
		cfg:     DefaultRankConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "coderank" }

// Enabled reports whether the analyzer should run.
func (a *Analyzer) Enabled() bool { return a.enabled }

// Analyze builds both graphs and ranks them. Re-invocation is a no-op.
func (a *Analyzer) Analyze(pkgs []*model.Package) error {
	if a.store != nil {
		return nil
	}
	a.store = metrics.NewStore()

	b := NewBuilder(a.strategies, a.filter)
	a.typeGraph, a.pkgGraph = b.BuildWithListener(pkgs, a.listener)

	a.rankInto(a.typeGraph)
	a.rankInto(a.pkgGraph)

	ts := Summarize(a.typeGraph)
	a.store.SetProject(metrics.KeyGraphNodes, float64(ts.Nodes))
	a.store.SetProject(metrics.KeyGraphEdges, float64(ts.Edges))
	a.store.SetProject(metrics.KeyGraphCycles, float64(ts.Cycles))
	a.store.SetProject(metrics.KeyGraphTangle, float64(ts.MaxTangle))

	ps := Summarize(a.pkgGraph)
	a.store.SetProject(metrics.KeyPkgGraphNodes, float64(ps.Nodes))
	a.store.SetProject(metrics.KeyPkgGraphEdges, float64(ps.Edges))
	a.store.SetProject(metrics.KeyPkgGraphCycles, float64(ps.Cycles))
	a.store.SetProject(metrics.KeyPkgGraphTangle, float64(ps.MaxTangle))
	return nil
}

func (a *Analyzer) rankInto(g *Graph) {
	forward := Rank(g, a.cfg)
	reverse := Rank(g.Transpose(), a.cfg)
	for _, id := range g.IDs() {
		a.store.Set(id, metrics.KeyCodeRank, forward[id])
		a.store.Set(id, metrics.KeyReverseCodeRank, reverse[id])
	}
}

// TypeGraph returns the type-level coupling graph, nil before Analyze.
func (a *Analyzer) TypeGraph() *Graph { return a.typeGraph }

// PackageGraph returns the package-level coupling graph, nil before
// Analyze.
func (a *Analyzer) PackageGraph() *Graph { return a.pkgGraph }

// ProjectMetrics returns the graph structure summary.
func (a *Analyzer) ProjectMetrics() metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Project()
}

// NodeMetrics returns cr and rcr for a type or package node.
func (a *Analyzer) NodeMetrics(id string) metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Node(id)
}
