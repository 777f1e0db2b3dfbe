// Package loader reads program-model interchange documents (JSON or
// YAML) and resolves them into the immutable model the analyzers
// consume: identities assigned, type references linked, ancestor
// chains precomputed, parent-chain cycles rejected.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/metron-dev/metron/pkg/model"
)

// Document is the top-level interchange shape.
type Document struct {
	Packages []PackageDoc `json:"packages" yaml:"packages"`
}

// PackageDoc describes one namespace.
type PackageDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Classes    []ClassDoc     `json:"classes,omitempty" yaml:"classes"`
	Interfaces []InterfaceDoc `json:"interfaces,omitempty" yaml:"interfaces"`
	Functions  []FunctionDoc  `json:"functions,omitempty" yaml:"functions"`
}

// ClassDoc describes a class. External marks types outside the
// analyzed codebase; references to undeclared types are materialized
// as external automatically.
type ClassDoc struct {
	Name       string        `json:"name" yaml:"name"`
	ID         string        `json:"id,omitempty" yaml:"id"`
	Abstract   bool          `json:"abstract,omitempty" yaml:"abstract"`
	External   bool          `json:"external,omitempty" yaml:"external"`
	Extends    string        `json:"extends,omitempty" yaml:"extends"`
	Methods    []MethodDoc   `json:"methods,omitempty" yaml:"methods"`
	Properties []PropertyDoc `json:"properties,omitempty" yaml:"properties"`
}

// InterfaceDoc describes an interface.
type InterfaceDoc struct {
	Name     string      `json:"name" yaml:"name"`
	ID       string      `json:"id,omitempty" yaml:"id"`
	External bool        `json:"external,omitempty" yaml:"external"`
	Methods  []MethodDoc `json:"methods,omitempty" yaml:"methods"`
}

// MethodDoc describes a method. Type references are qualified
// ("pkg.Type") or bare names resolved against the owning package.
type MethodDoc struct {
	Name         string   `json:"name" yaml:"name"`
	Abstract     bool     `json:"abstract,omitempty" yaml:"abstract"`
	Returns      string   `json:"returns,omitempty" yaml:"returns"`
	Throws       []string `json:"throws,omitempty" yaml:"throws"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies"`
}

// PropertyDoc describes a class property.
type PropertyDoc struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type"`
}

// FunctionDoc describes a package-level function.
type FunctionDoc struct {
	Name string `json:"name" yaml:"name"`
}

// Load reads, validates and resolves a model document.
func Load(path string) ([]*model.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model document: %w", err)
	}

	var inst any
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &inst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := compileSchema().Validate(inst); err != nil {
			return nil, fmt.Errorf("invalid model document %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		inst, err = jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := compileSchema().Validate(inst); err != nil {
			return nil, fmt.Errorf("invalid model document %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return Resolve(&doc)
}

// Resolve turns a decoded document into linked model packages.
func Resolve(doc *Document) ([]*model.Package, error) {
	r := newResolver()

	// First pass: declare everything so forward references resolve.
	// Qualified names must be unique: the second pass links by name,
	// so a collision would silently rebind earlier references.
	for _, pd := range doc.Packages {
		pkg := r.pkg(pd.Name)
		for _, cd := range pd.Classes {
			if _, ok := r.classes[pd.Name+"."+cd.Name]; ok {
				return nil, fmt.Errorf("duplicate class %q in package %q", cd.Name, pd.Name)
			}
			c := &model.Class{
				ID:          cd.ID,
				Name:        cd.Name,
				Abstract:    cd.Abstract,
				UserDefined: !cd.External,
				Index:       r.nextIndex(),
			}
			if c.ID == "" {
				c.ID = deriveID("class", pd.Name+"."+cd.Name)
			}
			pkg.AddClass(c)
			r.classes[pd.Name+"."+cd.Name] = c
			r.classOrder = append(r.classOrder, pd.Name+"."+cd.Name)

			for mi, md := range cd.Methods {
				c.AddMethod(&model.Method{
					ID:       deriveID("method", pd.Name+"."+cd.Name+"."+md.Name+"#"+strconv.Itoa(mi)),
					Name:     md.Name,
					Abstract: md.Abstract,
				})
			}
			for _, prd := range cd.Properties {
				c.AddProperty(&model.Property{
					ID:   deriveID("property", pd.Name+"."+cd.Name+"."+prd.Name),
					Name: prd.Name,
				})
			}
		}
		for _, id := range pd.Interfaces {
			if _, ok := r.interfaces[pd.Name+"."+id.Name]; ok {
				return nil, fmt.Errorf("duplicate interface %q in package %q", id.Name, pd.Name)
			}
			iface := &model.Interface{
				ID:          id.ID,
				Name:        id.Name,
				UserDefined: !id.External,
				Index:       r.nextIndex(),
			}
			if iface.ID == "" {
				iface.ID = deriveID("interface", pd.Name+"."+id.Name)
			}
			pkg.AddInterface(iface)
			r.interfaces[pd.Name+"."+id.Name] = iface

			for mi, md := range id.Methods {
				iface.AddMethod(&model.Method{
					ID:   deriveID("method", pd.Name+"."+id.Name+"."+md.Name+"#"+strconv.Itoa(mi)),
					Name: md.Name,
					// Interface methods are contracts by nature.
					Abstract: true,
				})
			}
		}
		for _, fd := range pd.Functions {
			pkg.AddFunction(&model.Function{
				ID:   deriveID("function", pd.Name+"."+fd.Name),
				Name: fd.Name,
			})
		}
	}

	// Second pass: link parents and type references.
	for _, pd := range doc.Packages {
		for _, cd := range pd.Classes {
			c := r.classes[pd.Name+"."+cd.Name]
			if cd.Extends != "" {
				c.Parent = r.class(cd.Extends, pd.Name)
			}
			for mi, md := range cd.Methods {
				m := c.Methods[mi]
				if md.Returns != "" {
					m.Returns = r.typeRef(md.Returns, pd.Name)
				}
				for _, th := range md.Throws {
					m.Throws = append(m.Throws, r.typeRef(th, pd.Name))
				}
				for _, dep := range md.Dependencies {
					m.Dependencies = append(m.Dependencies, r.typeRef(dep, pd.Name))
				}
			}
			for pi, prd := range cd.Properties {
				if prd.Type != "" {
					c.Properties[pi].TypeRef = r.typeRef(prd.Type, pd.Name)
				}
			}
		}
	}

	// Third pass: ancestor chains, rejecting cyclic parent links.
	for _, key := range r.classOrder {
		c := r.classes[key]
		guard := model.NewNodeSet()
		guard.Add(c)
		for p := c.Parent; p != nil; p = p.Parent {
			if !guard.Add(p) {
				return nil, fmt.Errorf("%w: class %q", model.ErrCycle, p.Name)
			}
			c.Ancestors = append(c.Ancestors, p)
		}
	}

	return r.order, nil
}

type resolver struct {
	packages   map[string]*model.Package
	order      []*model.Package
	classes    map[string]*model.Class
	classOrder []string
	interfaces map[string]*model.Interface
	index      int
}

func newResolver() *resolver {
	return &resolver{
		packages:   make(map[string]*model.Package),
		classes:    make(map[string]*model.Class),
		interfaces: make(map[string]*model.Interface),
	}
}

func (r *resolver) nextIndex() int {
	r.index++
	return r.index
}

func (r *resolver) pkg(name string) *model.Package {
	if p, ok := r.packages[name]; ok {
		return p
	}
	p := &model.Package{ID: deriveID("package", name), Name: name}
	r.packages[name] = p
	r.order = append(r.order, p)
	return p
}

// class resolves a class reference, materializing an external
// placeholder when the name was never declared. The upstream resolver
// cannot see into library code, so an unknown name is by definition
// outside the analyzed codebase.
func (r *resolver) class(ref, currentPkg string) *model.Class {
	pkgName, typeName := splitRef(ref, currentPkg)
	key := pkgName + "." + typeName
	if c, ok := r.classes[key]; ok {
		return c
	}
	c := &model.Class{
		ID:    deriveID("class", key),
		Name:  typeName,
		Index: r.nextIndex(),
	}
	r.pkg(pkgName).AddClass(c)
	r.classes[key] = c
	r.classOrder = append(r.classOrder, key)
	return c
}

// typeRef resolves a class-or-interface reference, preferring a
// declared interface over materializing a new class.
func (r *resolver) typeRef(ref, currentPkg string) model.Type {
	pkgName, typeName := splitRef(ref, currentPkg)
	key := pkgName + "." + typeName
	if i, ok := r.interfaces[key]; ok {
		return i
	}
	return r.class(ref, currentPkg)
}

func splitRef(ref, currentPkg string) (pkgName, typeName string) {
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return currentPkg, ref
}

func deriveID(kind, qualified string) string {
	return kind + ":" + strconv.FormatUint(xxhash.Sum64String(kind+":"+qualified), 16)
}
