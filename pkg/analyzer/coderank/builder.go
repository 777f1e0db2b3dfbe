package coderank

import "github.com/metron-dev/metron/pkg/model"

// Strategy extracts the coupling targets of one type. Multiple
// strategies may feed the same builder; edges are deduplicated.
type Strategy interface {
	Name() string
	// Dependencies returns the model types t structurally depends on.
	// Entries may repeat and may include t itself; the builder
	// filters both.
	Dependencies(t model.Type) []model.Type
}

// MethodStrategy derives coupling from method signatures and bodies:
// class return types, declared thrown types, and the general type
// dependencies resolved upstream.
type MethodStrategy struct{}

func (MethodStrategy) Name() string { return "method" }

func (MethodStrategy) Dependencies(t model.Type) []model.Type {
	var deps []model.Type
	for _, m := range t.DeclaredMethods() {
		if m.Returns != nil {
			deps = append(deps, m.Returns)
		}
		deps = append(deps, m.Throws...)
		deps = append(deps, m.Dependencies...)
	}
	return deps
}

// PropertyStrategy derives coupling from class property types.
// Interfaces carry no properties and contribute nothing.
type PropertyStrategy struct{}

func (PropertyStrategy) Name() string { return "property" }

func (PropertyStrategy) Dependencies(t model.Type) []model.Type {
	c, ok := t.(*model.Class)
	if !ok {
		return nil
	}
	var deps []model.Type
	for _, p := range c.Properties {
		if p.TypeRef != nil {
			deps = append(deps, p.TypeRef)
		}
	}
	return deps
}

// StrategyByName maps a config name to a strategy; unknown names
// return nil.
func StrategyByName(name string) Strategy {
	switch name {
	case "method":
		return MethodStrategy{}
	case "property":
		return PropertyStrategy{}
	}
	return nil
}

// TypeFilter selects which types enter the graph. The builder itself
// is filter-agnostic: callers decide whether external types couple.
type TypeFilter func(model.Type) bool

// UserDefinedOnly keeps only user-defined types.
func UserDefinedOnly(t model.Type) bool { return t.IsUserDefined() }

// AllTypes keeps everything.
func AllTypes(model.Type) bool { return true }

// Builder constructs a type-level and a package-level coupling graph
// in a single pass. It performs no ranking.
type Builder struct {
	strategies []Strategy
	filter     TypeFilter
}

// NewBuilder creates a builder. With no strategies it defaults to the
// method strategy; with no filter it keeps all types.
func NewBuilder(strategies []Strategy, filter TypeFilter) *Builder {
	if len(strategies) == 0 {
		strategies = []Strategy{MethodStrategy{}}
	}
	if filter == nil {
		filter = AllTypes
	}
	return &Builder{strategies: strategies, filter: filter}
}

// Build walks every type of every package and returns the type-level
// and package-level graphs. Every visited type becomes a node even
// when it has no couplings, so isolated types still receive a rank.
func (b *Builder) Build(pkgs []*model.Package) (types, packages *Graph) {
	return b.BuildWithListener(pkgs, nil)
}

// BuildWithListener builds both graphs while reporting traversal
// progress to l.
func (b *Builder) BuildWithListener(pkgs []*model.Package, l model.Listener) (types, packages *Graph) {
	types = NewGraph()
	packages = NewGraph()

	// The visit callbacks never fail; the walk error is structural
	// and cannot occur here.
	_ = model.Walk(pkgs, func(n model.Node) error {
		switch v := n.(type) {
		case *model.Class:
			b.addType(types, packages, v, NodeClass)
		case *model.Interface:
			b.addType(types, packages, v, NodeInterface)
		}
		return nil
	}, l)
	return types, packages
}

func (b *Builder) addType(types, packages *Graph, t model.Type, kind NodeKind) {
	if !b.filter(t) {
		return
	}
	tid := t.Identity()
	types.Ensure(tid, t.TypeName(), kind)
	tp := t.OwningPackage()
	packages.Ensure(tp.ID, tp.Name, NodePackage)

	for _, s := range b.strategies {
		for _, dep := range s.Dependencies(t) {
			if dep == nil || !b.filter(dep) {
				continue
			}
			did := dep.Identity()
			if did == tid {
				continue
			}
			dk := NodeClass
			if _, ok := dep.(*model.Interface); ok {
				dk = NodeInterface
			}
			types.Ensure(did, dep.TypeName(), dk)
			types.AddEdge(tid, did)

			if dp := dep.OwningPackage(); dp.ID != tp.ID {
				packages.Ensure(dp.ID, dp.Name, NodePackage)
				packages.AddEdge(tp.ID, dp.ID)
			}
		}
	}
}
