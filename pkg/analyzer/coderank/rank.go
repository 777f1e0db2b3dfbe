package coderank

// RankConfig parameterizes the fixed-point rank iteration.
type RankConfig struct {
	// Damping is the probability of following an edge rather than
	// teleporting. Conventionally 0.85.
	Damping float64
	// Epsilon is the convergence threshold on the maximum absolute
	// score change per iteration.
	Epsilon float64
	// MaxIterations bounds the loop on graphs that never converge
	// (isolated nodes, tight cycles). Hitting the cap is not an
	// error; the scores at that point are kept.
	MaxIterations int
}

// DefaultRankConfig returns the PageRank-conventional parameters.
func DefaultRankConfig() RankConfig {
	return RankConfig{
		Damping:       0.85,
		Epsilon:       1e-6,
		MaxIterations: 100,
	}
}

// Rank computes a structural importance score per node. Scores start
// uniformly at 1; each iteration recomputes every node as
//
//	(1 - d) + d * (sum(score(pred) / outDegree(pred)) + dangling/N)
//
// where dangling is the combined score of zero-out-degree nodes,
// redistributed uniformly so rank cannot leak out of the graph.
func Rank(g *Graph, cfg RankConfig) map[string]float64 {
	ids := g.IDs()
	n := len(ids)
	scores := make(map[string]float64, n)
	if n == 0 {
		return scores
	}
	for _, id := range ids {
		scores[id] = 1.0
	}

	next := make(map[string]float64, n)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		dangling := 0.0
		for _, id := range ids {
			if len(g.Node(id).Out) == 0 {
				dangling += scores[id]
			}
		}
		dangling /= float64(n)

		maxDelta := 0.0
		for _, id := range ids {
			sum := 0.0
			for pred := range g.Node(id).In {
				sum += scores[pred] / float64(len(g.Node(pred).Out))
			}
			v := (1 - cfg.Damping) + cfg.Damping*(sum+dangling)
			next[id] = v

			delta := v - scores[id]
			if delta < 0 {
				delta = -delta
			}
			if delta > maxDelta {
				maxDelta = delta
			}
		}

		for _, id := range ids {
			scores[id] = next[id]
		}
		if maxDelta < cfg.Epsilon {
			break
		}
	}
	return scores
}
