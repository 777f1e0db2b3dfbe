// Package hierarchy summarizes the class hierarchy: abstract, concrete,
// root and leaf class counts.
package hierarchy

import (
	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// Analyzer classifies user-defined classes by their position in the
// inheritance hierarchy. Root and leaf classification needs only
// parent-pointer inspection, keeping the pass O(n).
type Analyzer struct {
	store    *metrics.Store
	listener model.Listener
	enabled  bool

	total    float64
	abstract float64
	roots    *model.NodeSet
	nonLeaf  *model.NodeSet
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

// New creates a hierarchy analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{enabled: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "hierarchy" }

// Enabled reports whether the analyzer should run.
func (a *Analyzer) Enabled() bool { return a.enabled }

// Analyze walks the packages once; only a completed run is memoized.
func (a *Analyzer) Analyze(pkgs []*model.Package) error {
	if a.store != nil {
		return nil
	}
	a.store = metrics.NewStore()
	a.roots = model.NewNodeSet()
	a.nonLeaf = model.NewNodeSet()

	if err := model.Walk(pkgs, a.visit, a.listener); err != nil {
		a.store = nil
		a.roots = nil
		a.nonLeaf = nil
		a.total = 0
		a.abstract = 0
		return err
	}

	a.store.SetProject(metrics.KeyAbstractClasses, a.abstract)
	a.store.SetProject(metrics.KeyConcreteClasses, a.total-a.abstract)
	a.store.SetProject(metrics.KeyRootClasses, float64(a.roots.Len()))
	a.store.SetProject(metrics.KeyLeafClasses, a.total-float64(a.nonLeaf.Len()))
	return nil
}

func (a *Analyzer) visit(n model.Node) error {
	c, ok := n.(*model.Class)
	if !ok || !c.UserDefined {
		return nil
	}

	a.total++
	if c.Abstract {
		a.abstract++
	}

	if p := c.Parent; p != nil {
		a.nonLeaf.Add(p)
		if p.Parent == nil {
			a.roots.Add(p)
		}
	}
	return nil
}

// ProjectMetrics returns the hierarchy summary.
func (a *Analyzer) ProjectMetrics() metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Project()
}

// NodeMetrics returns per-entity metrics; the hierarchy analyzer keeps
// none, so this is always empty.
func (a *Analyzer) NodeMetrics(id string) metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Node(id)
}
