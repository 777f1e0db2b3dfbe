package coderank

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Structure summarizes the shape of one coupling graph.
type Structure struct {
	Nodes int
	Edges int
	// Cycles is the number of strongly connected components holding
	// more than one node, i.e. dependency tangles.
	Cycles int
	// MaxTangle is the node count of the largest such component.
	MaxTangle int
}

// Summarize converts g into a gonum directed graph and reports its
// structure. Tangles at the package level usually indicate layering
// violations; at the type level, mutual coupling.
func Summarize(g *Graph) Structure {
	s := Structure{Nodes: g.Len(), Edges: g.EdgeCount()}
	if s.Nodes == 0 {
		return s
	}

	ids := g.IDs()
	index := make(map[string]int64, len(ids))
	d := simple.NewDirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		d.AddNode(simple.Node(int64(i)))
	}
	for _, id := range ids {
		from := index[id]
		for to := range g.Node(id).Out {
			d.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(index[to])})
		}
	}

	for _, comp := range topo.TarjanSCC(d) {
		if len(comp) > 1 {
			s.Cycles++
			if len(comp) > s.MaxTangle {
				s.MaxTangle = len(comp)
			}
		}
	}
	return s
}
