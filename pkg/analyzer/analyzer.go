// Package analyzer defines the contract shared by all metric analyzers
// and a runner that executes independent analyzers concurrently.
package analyzer

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// Analyzer is implemented by every metric analyzer. Analyze traverses
// the model exactly once; a second call on the same instance is a
// no-op. Metric queries for unknown identities return empty maps.
type Analyzer interface {
	// Name returns the analyzer's stable short name.
	Name() string

	// Analyze walks the packages and accumulates metrics into the
	// analyzer's own store. It is idempotent.
	Analyze(pkgs []*model.Package) error

	// ProjectMetrics returns the project-wide metric map.
	ProjectMetrics() metrics.Values

	// NodeMetrics returns the metric map for one entity identity,
	// empty if the entity is unknown or was not visited.
	NodeMetrics(id string) metrics.Values

	// Enabled reports whether the analyzer should run.
	Enabled() bool
}

// Run executes every enabled analyzer over the same immutable model.
// Analyzers own their stores exclusively, so they run in parallel; the
// traversal inside each one stays sequential.
func Run(pkgs []*model.Package, analyzers []Analyzer) error {
	p := pool.New().WithErrors()
	for _, a := range analyzers {
		if !a.Enabled() {
			continue
		}
		p.Go(func() error {
			return a.Analyze(pkgs)
		})
	}
	return p.Wait()
}
