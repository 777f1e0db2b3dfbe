// Package inheritance computes inheritance metrics per class (DIT,
// NOCC, NOAM, NOOM) and project-wide (ANDC, AHH, maximum DIT).
package inheritance

import (
	"fmt"

	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// Analyzer visits user-defined classes only; interfaces are excluded.
// Ancestors of visited classes (user-defined or not) receive zeroed
// metric entries so NOCC increments always land on an existing entry.
type Analyzer struct {
	store    *metrics.Store
	listener model.Listener
	enabled  bool

	totalClasses float64
	derived      float64
	maxDIT       float64
	// rootHeights tracks, per hierarchy root identity, the deepest
	// DIT any descendant reached.
	rootHeights map[string]float64
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

// New creates an inheritance analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{enabled: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "inheritance" }

// Enabled reports whether the analyzer should run.
func (a *Analyzer) Enabled() bool { return a.enabled }

// Analyze walks the packages once; only a completed run is memoized.
// A cyclic parent chain aborts the analysis with model.ErrCycle, and a
// re-invocation after the failure reports it again.
func (a *Analyzer) Analyze(pkgs []*model.Package) error {
	if a.store != nil {
		return nil
	}
	a.store = metrics.NewStore()
	a.rootHeights = make(map[string]float64)

	if err := model.Walk(pkgs, a.visit, a.listener); err != nil {
		a.reset()
		return err
	}

	andc := 0.0
	if a.totalClasses > 0 {
		andc = a.derived / a.totalClasses
	}
	ahh := 0.0
	if len(a.rootHeights) > 0 {
		sum := 0.0
		for _, h := range a.rootHeights {
			sum += h
		}
		ahh = sum / float64(len(a.rootHeights))
	}
	a.store.SetProject(metrics.KeyANDC, andc)
	a.store.SetProject(metrics.KeyAHH, ahh)
	a.store.SetProject(metrics.KeyMaxDIT, a.maxDIT)
	return nil
}

// reset discards the partial state of a failed run so the memoization
// guard does not turn the structural error into a silent success.
func (a *Analyzer) reset() {
	a.store = nil
	a.rootHeights = nil
	a.totalClasses = 0
	a.derived = 0
	a.maxDIT = 0
}

func (a *Analyzer) visit(n model.Node) error {
	c, ok := n.(*model.Class)
	if !ok || !c.UserDefined {
		return nil
	}

	if err := a.initClassMetrics(c); err != nil {
		return err
	}

	if p := c.Parent; p != nil && p.UserDefined {
		a.derived++
		a.store.Add(p.ID, metrics.KeyNOCC, 1)
	}

	if c.Parent != nil {
		a.countMethodDeltas(c)
	}

	return a.measureDepth(c)
}

// initClassMetrics gives c and every class on its parent chain a zeroed
// metric entry. The presence check in the store is the "already
// initialized" guard: the global class counter advances exactly once
// per distinct class across the whole run. An explicit loop bounds the
// walk on deep hierarchies and carries the cycle guard.
func (a *Analyzer) initClassMetrics(c *model.Class) error {
	guard := model.NewNodeSet()
	for cur := c; cur != nil; cur = cur.Parent {
		if !guard.Add(cur) {
			return fmt.Errorf("%w: class %q", model.ErrCycle, cur.Name)
		}
		if !a.store.Touch(cur.ID) {
			// Already initialized, and so is everything above it.
			return nil
		}
		a.totalClasses++
		a.store.Set(cur.ID, metrics.KeyDIT, 0)
		a.store.Set(cur.ID, metrics.KeyNOCC, 0)
		a.store.Set(cur.ID, metrics.KeyNOAM, 0)
		a.store.Set(cur.ID, metrics.KeyNOOM, 0)
	}
	return nil
}

// countMethodDeltas stores NOAM and NOOM for a class with a parent. A
// method declared on c that shadows a concrete inherited method counts
// as overridden; a name absent from the parent's reachable methods
// counts as added. Shadowing an abstract inherited method fulfills a
// contract and counts as neither.
func (a *Analyzer) countMethodDeltas(c *model.Class) {
	inherited := c.Parent.ReachableMethods()

	var noam, noom float64
	for _, m := range c.Methods {
		pm, ok := inherited[m.Name]
		switch {
		case !ok:
			noam++
		case !pm.Abstract:
			noom++
		}
	}
	a.store.Set(c.ID, metrics.KeyNOAM, noam)
	a.store.Set(c.ID, metrics.KeyNOOM, noom)
}

// measureDepth computes DIT for c and folds it into the project-wide
// maximum and the per-root hierarchy heights. Stepping onto an ancestor
// outside the analyzed codebase costs an extra level: the analysis
// cannot see further up from there.
func (a *Analyzer) measureDepth(c *model.Class) error {
	guard := model.NewNodeSet()
	guard.Add(c)

	dit := 0.0
	root := c
	for anc := c.Parent; anc != nil; anc = anc.Parent {
		if !guard.Add(anc) {
			return fmt.Errorf("%w: class %q", model.ErrCycle, anc.Name)
		}
		dit++
		if !anc.UserDefined {
			dit++
		}
		root = anc
	}

	a.store.Set(c.ID, metrics.KeyDIT, dit)
	if dit > a.maxDIT {
		a.maxDIT = dit
	}
	if h, ok := a.rootHeights[root.ID]; !ok || dit > h {
		a.rootHeights[root.ID] = dit
	}
	return nil
}

// ProjectMetrics returns ANDC, AHH and the maximum DIT.
func (a *Analyzer) ProjectMetrics() metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Project()
}

// NodeMetrics returns the per-class inheritance metrics.
func (a *Analyzer) NodeMetrics(id string) metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Node(id)
}
