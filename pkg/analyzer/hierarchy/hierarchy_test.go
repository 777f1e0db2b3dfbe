package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

// chain builds A <- B <- C plus an abstract standalone class D.
func chainModel() []*model.Package {
	p := &model.Package{ID: "pkg:app", Name: "app"}
	a := p.AddClass(&model.Class{ID: "c:A", Name: "A", UserDefined: true})
	b := p.AddClass(&model.Class{ID: "c:B", Name: "B", UserDefined: true, Parent: a})
	p.AddClass(&model.Class{ID: "c:C", Name: "C", UserDefined: true, Parent: b})
	p.AddClass(&model.Class{ID: "c:D", Name: "D", UserDefined: true, Abstract: true})
	return []*model.Package{p}
}

func TestAnalyze_Summary(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(chainModel()))

	got := a.ProjectMetrics()
	assert.Equal(t, 1.0, got[metrics.KeyAbstractClasses])
	assert.Equal(t, 3.0, got[metrics.KeyConcreteClasses])
	// A is the only top-level ancestor that is extended.
	assert.Equal(t, 1.0, got[metrics.KeyRootClasses])
	// A and B are parents; C and D are leaves.
	assert.Equal(t, 2.0, got[metrics.KeyLeafClasses])
}

func TestAnalyze_LeafInvariant(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(chainModel()))

	got := a.ProjectMetrics()
	total := got[metrics.KeyAbstractClasses] + got[metrics.KeyConcreteClasses]
	nonLeaf := total - got[metrics.KeyLeafClasses]
	assert.Equal(t, total, got[metrics.KeyLeafClasses]+nonLeaf)
	assert.Equal(t, 2.0, nonLeaf)
}

func TestAnalyze_SkipsNonClasses(t *testing.T) {
	p := &model.Package{ID: "pkg:app", Name: "app"}
	p.AddClass(&model.Class{ID: "c:Ext", Name: "Ext"}) // not user-defined
	p.AddInterface(&model.Interface{ID: "i:I", Name: "I", UserDefined: true})

	a := New()
	require.NoError(t, a.Analyze([]*model.Package{p}))

	got := a.ProjectMetrics()
	assert.Equal(t, 0.0, got[metrics.KeyAbstractClasses])
	assert.Equal(t, 0.0, got[metrics.KeyConcreteClasses])
	assert.Equal(t, 0.0, got[metrics.KeyRootClasses])
	assert.Equal(t, 0.0, got[metrics.KeyLeafClasses])
}

func TestAnalyze_Idempotent(t *testing.T) {
	pkgs := chainModel()
	a := New()
	require.NoError(t, a.Analyze(pkgs))
	first := a.ProjectMetrics()

	require.NoError(t, a.Analyze(pkgs))
	assert.Equal(t, first, a.ProjectMetrics())
}

func TestNodeMetrics_AlwaysEmpty(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(chainModel()))
	assert.Empty(t, a.NodeMetrics("c:A"))
}
