// Package coderank builds directed coupling graphs between types and
// between their owning packages, and computes a PageRank-style
// structural importance score over them.
package coderank

// NodeKind labels a graph node for downstream reporting.
type NodeKind string

const (
	NodeClass     NodeKind = "class"
	NodeInterface NodeKind = "interface"
	NodePackage   NodeKind = "package"
)

// Node is one vertex of a coupling graph. An edge A -> B means B is
// used by A: B's identity appears in A's Out set and A's in B's In set.
type Node struct {
	ID   string
	Name string
	Kind NodeKind
	In   map[string]struct{}
	Out  map[string]struct{}
}

// Graph is a directed coupling graph. Edges are deduplicated; only
// existence is preserved, not multiplicity. Node iteration order is
// insertion order, keeping rank computation deterministic.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Ensure returns the node for id, creating it on first use.
func (g *Graph) Ensure(id, name string, kind NodeKind) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{
		ID:   id,
		Name: name,
		Kind: kind,
		In:   make(map[string]struct{}),
		Out:  make(map[string]struct{}),
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge records that the node from uses the node to. Self-loops are
// rejected; both nodes must already exist.
func (g *Graph) AddEdge(from, to string) {
	if from == to {
		return
	}
	src, ok := g.nodes[from]
	if !ok {
		return
	}
	dst, ok := g.nodes[to]
	if !ok {
		return
	}
	src.Out[to] = struct{}{}
	dst.In[from] = struct{}{}
}

// Node returns the node for id, nil if absent.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// IDs returns node identities in insertion order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, id := range g.order {
		n += len(g.nodes[id].Out)
	}
	return n
}

// Transpose returns a copy of g with every edge reversed. Used to
// compute the reverse rank (importance by what a node depends on).
func (g *Graph) Transpose() *Graph {
	t := NewGraph()
	for _, id := range g.order {
		n := g.nodes[id]
		t.Ensure(n.ID, n.Name, n.Kind)
	}
	for _, id := range g.order {
		n := g.nodes[id]
		for to := range n.Out {
			t.AddEdge(to, id)
		}
	}
	return t
}
