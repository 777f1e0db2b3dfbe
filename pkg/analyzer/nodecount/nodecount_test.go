package nodecount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metron-dev/metron/pkg/metrics"
	"github.com/metron-dev/metron/pkg/model"
)

func sampleModel() []*model.Package {
	app := &model.Package{ID: "pkg:app", Name: "app"}
	a := app.AddClass(&model.Class{ID: "class:app.A", Name: "A", UserDefined: true})
	a.AddMethod(&model.Method{ID: "m:app.A.run", Name: "run"})
	a.AddMethod(&model.Method{ID: "m:app.A.stop", Name: "stop"})

	lib := app.AddClass(&model.Class{ID: "class:app.Lib", Name: "Lib"})
	lib.AddMethod(&model.Method{ID: "m:app.Lib.x", Name: "x"})

	iface := app.AddInterface(&model.Interface{ID: "iface:app.Runner", Name: "Runner", UserDefined: true})
	iface.AddMethod(&model.Method{ID: "m:app.Runner.run", Name: "run"})

	app.AddFunction(&model.Function{ID: "fn:app.main", Name: "main"})

	util := &model.Package{ID: "pkg:util", Name: "util"}
	util.AddClass(&model.Class{ID: "class:util.B", Name: "B", UserDefined: true})

	return []*model.Package{app, util}
}

func TestAnalyze_ProjectCounts(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(sampleModel()))

	got := a.ProjectMetrics()
	assert.Equal(t, 2.0, got[metrics.KeyPackages])
	assert.Equal(t, 2.0, got[metrics.KeyClasses], "external class must not be counted")
	assert.Equal(t, 1.0, got[metrics.KeyInterfaces])
	assert.Equal(t, 3.0, got[metrics.KeyMethods], "external class methods must not be counted")
	assert.Equal(t, 1.0, got[metrics.KeyFunctions])
}

func TestAnalyze_PerPackageCounts(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(sampleModel()))

	app := a.NodeMetrics("pkg:app")
	assert.Equal(t, 1.0, app[metrics.KeyClasses])
	assert.Equal(t, 1.0, app[metrics.KeyInterfaces])
	assert.Equal(t, 3.0, app[metrics.KeyMethods])
	assert.Equal(t, 1.0, app[metrics.KeyFunctions])

	util := a.NodeMetrics("pkg:util")
	assert.Equal(t, 1.0, util[metrics.KeyClasses])
	assert.Equal(t, 0.0, util[metrics.KeyMethods])
}

func TestAnalyze_PerTypeMethodCounts(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(sampleModel()))

	assert.Equal(t, 2.0, a.NodeMetrics("class:app.A")[metrics.KeyMethods])
	assert.Equal(t, 1.0, a.NodeMetrics("iface:app.Runner")[metrics.KeyMethods])

	// Method-less user-defined class is seeded at zero.
	b := a.NodeMetrics("class:util.B")
	v, ok := b[metrics.KeyMethods]
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	// External class was never visited.
	assert.Empty(t, a.NodeMetrics("class:app.Lib"))
}

func TestAnalyze_UnknownIdentity(t *testing.T) {
	a := New()
	require.NoError(t, a.Analyze(sampleModel()))
	assert.Empty(t, a.NodeMetrics("no-such-id"))

	// Queries before Analyze are empty too, never an error.
	fresh := New()
	assert.Empty(t, fresh.ProjectMetrics())
	assert.Empty(t, fresh.NodeMetrics("pkg:app"))
}

func TestAnalyze_Idempotent(t *testing.T) {
	pkgs := sampleModel()
	a := New()
	require.NoError(t, a.Analyze(pkgs))
	first := a.ProjectMetrics()

	require.NoError(t, a.Analyze(pkgs))
	assert.Equal(t, first, a.ProjectMetrics())
}

func TestWithEnabled(t *testing.T) {
	assert.True(t, New().Enabled())
	assert.False(t, New(WithEnabled(false)).Enabled())
}
