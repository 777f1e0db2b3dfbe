// Package model defines the resolved program model the metric analyzers
// consume: packages, classes, interfaces, methods, properties and functions.
// Entities are immutable once loaded; analyzers only read them.
package model

// Kind identifies the concrete kind of a model node.
type Kind string

const (
	KindPackage   Kind = "package"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindMethod    Kind = "method"
	KindProperty  Kind = "property"
	KindFunction  Kind = "function"
)

// Node is the closed set of program-model entities. Traversal code
// switches on the concrete type; no new kinds can be added outside
// this package.
type Node interface {
	isNode()
}

// Type is a model node that can own methods and participate in the
// coupling graph (classes and interfaces).
type Type interface {
	Node
	Identity() string
	TypeName() string
	OwningPackage() *Package
	DeclaredMethods() []*Method
	IsUserDefined() bool
}

// Package groups the types and functions of one namespace.
type Package struct {
	ID         string
	Name       string
	Classes    []*Class
	Interfaces []*Interface
	Functions  []*Function
}

// Class is a class declaration, user-defined or external.
type Class struct {
	ID          string
	Name        string
	Abstract    bool
	UserDefined bool
	Parent      *Class
	// Ancestors is the parent chain from nearest parent to root,
	// precomputed by the loader. The chain is guaranteed acyclic.
	Ancestors  []*Class
	Methods    []*Method
	Properties []*Property
	Pkg        *Package
	// Index is a dense 1-based position assigned at load time.
	// Zero means no index was assigned (hand-built models).
	Index int
}

// Interface is an interface declaration.
type Interface struct {
	ID          string
	Name        string
	UserDefined bool
	Methods     []*Method
	Pkg         *Package
	Index       int
}

// Method is a method declared on a class or interface.
type Method struct {
	ID       string
	Name     string
	Abstract bool
	Owner    Type
	// Returns is the declared return type when it is a model type,
	// nil otherwise (builtin or void).
	Returns Type
	Throws  []Type
	// Dependencies are the model types referenced by the method's
	// signature and body, as resolved upstream.
	Dependencies []Type
}

// Property is a field declared on a class.
type Property struct {
	ID    string
	Name  string
	Owner *Class
	// TypeRef is the property's declared type when it is a model
	// type, nil otherwise.
	TypeRef Type
}

// Function is a package-level function.
type Function struct {
	ID   string
	Name string
	Pkg  *Package
}

func (*Package) isNode()   {}
func (*Class) isNode()     {}
func (*Interface) isNode() {}
func (*Method) isNode()    {}
func (*Property) isNode()  {}
func (*Function) isNode()  {}

func (c *Class) Identity() string           { return c.ID }
func (c *Class) TypeName() string           { return c.Name }
func (c *Class) OwningPackage() *Package    { return c.Pkg }
func (c *Class) DeclaredMethods() []*Method { return c.Methods }
func (c *Class) IsUserDefined() bool        { return c.UserDefined }

func (i *Interface) Identity() string           { return i.ID }
func (i *Interface) TypeName() string           { return i.Name }
func (i *Interface) OwningPackage() *Package    { return i.Pkg }
func (i *Interface) DeclaredMethods() []*Method { return i.Methods }
func (i *Interface) IsUserDefined() bool        { return i.UserDefined }

// ReachableMethods returns every method visible on c keyed by name,
// including inherited ones. A declaration on a nearer type shadows the
// same name further up the chain.
func (c *Class) ReachableMethods() map[string]*Method {
	out := make(map[string]*Method, len(c.Methods))
	for _, m := range c.Methods {
		if _, ok := out[m.Name]; !ok {
			out[m.Name] = m
		}
	}
	for _, anc := range c.Ancestors {
		for _, m := range anc.Methods {
			if _, ok := out[m.Name]; !ok {
				out[m.Name] = m
			}
		}
	}
	return out
}

// AddClass attaches c to p and returns c.
func (p *Package) AddClass(c *Class) *Class {
	c.Pkg = p
	p.Classes = append(p.Classes, c)
	return c
}

// AddInterface attaches i to p and returns i.
func (p *Package) AddInterface(i *Interface) *Interface {
	i.Pkg = p
	p.Interfaces = append(p.Interfaces, i)
	return i
}

// AddFunction attaches f to p and returns f.
func (p *Package) AddFunction(f *Function) *Function {
	f.Pkg = p
	p.Functions = append(p.Functions, f)
	return f
}

// AddMethod attaches m to c and returns m.
func (c *Class) AddMethod(m *Method) *Method {
	m.Owner = c
	c.Methods = append(c.Methods, m)
	return m
}

// AddMethod attaches m to i and returns m.
func (i *Interface) AddMethod(m *Method) *Method {
	m.Owner = i
	i.Methods = append(i.Methods, m)
	return m
}

// AddProperty attaches prop to c and returns prop.
func (c *Class) AddProperty(prop *Property) *Property {
	prop.Owner = c
	c.Properties = append(c.Properties, prop)
	return prop
}

// Describe returns the kind, identity and display name of any node.
func Describe(n Node) (Kind, string, string) {
	switch v := n.(type) {
	case *Package:
		return KindPackage, v.ID, v.Name
	case *Class:
		return KindClass, v.ID, v.Name
	case *Interface:
		return KindInterface, v.ID, v.Name
	case *Method:
		return KindMethod, v.ID, v.Name
	case *Property:
		return KindProperty, v.ID, v.Name
	case *Function:
		return KindFunction, v.ID, v.Name
	}
	return "", "", ""
}
