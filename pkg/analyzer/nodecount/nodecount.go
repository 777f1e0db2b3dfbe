// Package nodecount counts packages, classes, interfaces, methods and
// functions, globally and per containing package.
package nodecount

import (
	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// Analyzer counts model nodes. Non-user-defined classes and interfaces
// are skipped entirely, including their methods.
type Analyzer struct {
	store    *metrics.Store
	listener model.Listener
	enabled  bool
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

// New creates a node count analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{enabled: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "nodecount" }

// Enabled reports whether the analyzer should run.
func (a *Analyzer) Enabled() bool { return a.enabled }

// Analyze walks the packages once; only a completed run is memoized.
func (a *Analyzer) Analyze(pkgs []*model.Package) error {
	if a.store != nil {
		return nil
	}
	a.store = metrics.NewStore()
	if err := model.Walk(pkgs, a.visit, a.listener); err != nil {
		a.store = nil
		return err
	}
	return nil
}

func (a *Analyzer) visit(n model.Node) error {
	switch v := n.(type) {
	case *model.Package:
		a.store.AddProject(metrics.KeyPackages, 1)
		a.store.Touch(v.ID)

	case *model.Class:
		if !v.UserDefined {
			return nil
		}
		a.store.AddProject(metrics.KeyClasses, 1)
		a.store.Add(v.Pkg.ID, metrics.KeyClasses, 1)
		// Seed the method counter so a method-less class still
		// reports nom = 0.
		a.store.Add(v.ID, metrics.KeyMethods, 0)

	case *model.Interface:
		if !v.UserDefined {
			return nil
		}
		a.store.AddProject(metrics.KeyInterfaces, 1)
		a.store.Add(v.Pkg.ID, metrics.KeyInterfaces, 1)
		a.store.Add(v.ID, metrics.KeyMethods, 0)

	case *model.Method:
		if !v.Owner.IsUserDefined() {
			return nil
		}
		a.store.AddProject(metrics.KeyMethods, 1)
		a.store.Add(v.Owner.Identity(), metrics.KeyMethods, 1)
		a.store.Add(v.Owner.OwningPackage().ID, metrics.KeyMethods, 1)

	case *model.Function:
		a.store.AddProject(metrics.KeyFunctions, 1)
		a.store.Add(v.Pkg.ID, metrics.KeyFunctions, 1)
	}
	return nil
}

// ProjectMetrics returns the global counters.
func (a *Analyzer) ProjectMetrics() metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Project()
}

// NodeMetrics returns the counters for one entity or package.
func (a *Analyzer) NodeMetrics(id string) metrics.Values {
	if a.store == nil {
		return metrics.Values{}
	}
	return a.store.Node(id)
}
