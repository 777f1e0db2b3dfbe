package coderank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_SingleEdge(t *testing.T) {
	g := NewGraph()
	g.Ensure("a", "A", NodeClass)
	g.Ensure("b", "B", NodeClass)
	g.AddEdge("a", "b")

	scores := Rank(g, DefaultRankConfig())
	assert.Greater(t, scores["b"], scores["a"], "the used node outranks its user")
}

func TestRank_IsolatedNode(t *testing.T) {
	g := NewGraph()
	g.Ensure("solo", "Solo", NodeClass)

	scores := Rank(g, DefaultRankConfig())
	assert.InDelta(t, 1.0, scores["solo"], 1e-4)
}

func TestRank_EmptyGraph(t *testing.T) {
	assert.Empty(t, Rank(NewGraph(), DefaultRankConfig()))
}

func TestRank_IterationCap(t *testing.T) {
	// A two-node cycle with an absurdly tight epsilon: the cap, not
	// convergence, must end the loop, and the scores stay finite.
	g := NewGraph()
	g.Ensure("a", "A", NodeClass)
	g.Ensure("b", "B", NodeClass)
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	cfg := RankConfig{Damping: 0.85, Epsilon: 0, MaxIterations: 3}
	scores := Rank(g, cfg)
	assert.Len(t, scores, 2)
	assert.InDelta(t, scores["a"], scores["b"], 1e-9, "symmetric cycle ranks equally")
	assert.Greater(t, scores["a"], 0.0)
}

func TestRank_DanglingMassRedistribution(t *testing.T) {
	// a -> b, b dangles. Without redistribution b's score would
	// drain out of the system and the total would fall below N*(1-d).
	g := NewGraph()
	g.Ensure("a", "A", NodeClass)
	g.Ensure("b", "B", NodeClass)
	g.AddEdge("a", "b")

	scores := Rank(g, DefaultRankConfig())
	total := scores["a"] + scores["b"]
	assert.InDelta(t, 2.0, total, 0.01, "rank mass is conserved")
}

func TestRank_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		g.Ensure("a", "A", NodeClass)
		g.Ensure("b", "B", NodeClass)
		g.Ensure("c", "C", NodeClass)
		g.AddEdge("a", "b")
		g.AddEdge("b", "c")
		g.AddEdge("a", "c")
		return g
	}
	first := Rank(build(), DefaultRankConfig())
	second := Rank(build(), DefaultRankConfig())
	assert.Equal(t, first, second)
}
