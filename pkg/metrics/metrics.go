// Package metrics defines the metric key vocabulary and the per-analyzer
// metric store. Keys are short stable codes consumed by report renderers;
// renaming one is a breaking change.
package metrics

// Node count keys.
const (
	KeyPackages   = "nop"
	KeyClasses    = "noc"
	KeyInterfaces = "noi"
	KeyMethods    = "nom"
	KeyFunctions  = "nof"
)

// Hierarchy keys.
const (
	KeyAbstractClasses = "clsa"
	KeyConcreteClasses = "clsc"
	KeyRootClasses     = "roots"
	KeyLeafClasses     = "leafs"
)

// Inheritance keys.
const (
	KeyDIT    = "dit"
	KeyNOCC   = "nocc"
	KeyNOAM   = "noam"
	KeyNOOM   = "noom"
	KeyANDC   = "andc"
	KeyAHH    = "ahh"
	KeyMaxDIT = "maxDIT"
)

// Coupling and rank keys.
const (
	KeyCodeRank        = "cr"
	KeyReverseCodeRank = "rcr"

	KeyGraphNodes     = "graphNodes"
	KeyGraphEdges     = "graphEdges"
	KeyGraphCycles    = "cycles"
	KeyGraphTangle    = "maxTangle"
	KeyPkgGraphNodes  = "pkgGraphNodes"
	KeyPkgGraphEdges  = "pkgGraphEdges"
	KeyPkgGraphCycles = "pkgCycles"
	KeyPkgGraphTangle = "pkgMaxTangle"
)

// Values maps metric keys to numeric values.
type Values map[string]float64

// Store holds per-entity metric maps plus one project-wide map. Each
// analyzer instance owns exactly one Store; there is no shared state
// between analyzers. A per-entity map exists iff the entity was touched
// during analysis.
type Store struct {
	nodes   map[string]Values
	project Values
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nodes:   make(map[string]Values),
		project: make(Values),
	}
}

// Touch ensures an entry exists for id and reports whether it was
// created by this call. First touch initializes an empty metric map.
func (s *Store) Touch(id string) bool {
	if _, ok := s.nodes[id]; ok {
		return false
	}
	s.nodes[id] = make(Values)
	return true
}

// Has reports whether id has been touched.
func (s *Store) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Add increments a per-entity metric, creating the entry and the key on
// first use.
func (s *Store) Add(id, key string, delta float64) {
	vals, ok := s.nodes[id]
	if !ok {
		vals = make(Values)
		s.nodes[id] = vals
	}
	vals[key] += delta
}

// Set assigns a per-entity metric, creating the entry on first use.
func (s *Store) Set(id, key string, v float64) {
	vals, ok := s.nodes[id]
	if !ok {
		vals = make(Values)
		s.nodes[id] = vals
	}
	vals[key] = v
}

// Get returns a single per-entity metric, zero if absent.
func (s *Store) Get(id, key string) float64 {
	return s.nodes[id][key]
}

// Node returns a copy of the metric map for id. Unknown or unvisited
// identities yield an empty map, never an error.
func (s *Store) Node(id string) Values {
	vals, ok := s.nodes[id]
	if !ok {
		return Values{}
	}
	out := make(Values, len(vals))
	for k, v := range vals {
		out[k] = v
	}
	return out
}

// Nodes returns the identities with at least one touched entry.
func (s *Store) Nodes() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	return ids
}

// AddProject increments a project-wide metric.
func (s *Store) AddProject(key string, delta float64) {
	s.project[key] += delta
}

// SetProject assigns a project-wide metric.
func (s *Store) SetProject(key string, v float64) {
	s.project[key] = v
}

// Project returns a copy of the project-wide metric map.
func (s *Store) Project() Values {
	out := make(Values, len(s.project))
	for k, v := range s.project {
		out[k] = v
	}
	return out
}
