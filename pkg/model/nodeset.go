package model

import "github.com/RoaringBitmap/roaring/v2"

// NodeSet is a class membership set backed by a roaring bitmap over the
// loader-assigned dense indices, falling back to an identity map for
// classes without an index (hand-built models).
type NodeSet struct {
	dense  *roaring.Bitmap
	sparse map[string]struct{}
}

// NewNodeSet returns an empty set.
func NewNodeSet() *NodeSet {
	return &NodeSet{dense: roaring.New()}
}

// Add inserts c and reports whether it was not already present.
func (s *NodeSet) Add(c *Class) bool {
	if c.Index > 0 {
		return s.dense.CheckedAdd(uint32(c.Index))
	}
	if s.sparse == nil {
		s.sparse = make(map[string]struct{})
	}
	if _, ok := s.sparse[c.ID]; ok {
		return false
	}
	s.sparse[c.ID] = struct{}{}
	return true
}

// Has reports whether c is in the set.
func (s *NodeSet) Has(c *Class) bool {
	if c.Index > 0 {
		return s.dense.Contains(uint32(c.Index))
	}
	_, ok := s.sparse[c.ID]
	return ok
}

// Len returns the number of classes in the set.
func (s *NodeSet) Len() int {
	return int(s.dense.GetCardinality()) + len(s.sparse)
}
