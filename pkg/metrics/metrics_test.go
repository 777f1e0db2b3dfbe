package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_TouchFirstUse(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Touch("a"))
	assert.False(t, s.Touch("a"), "second touch is a no-op")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("b"))
}

func TestStore_UnknownIdentityIsEmpty(t *testing.T) {
	s := NewStore()
	got := s.Node("ghost")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0.0, s.Get("ghost", KeyDIT))
}

func TestStore_AddCreatesOnFirstTouch(t *testing.T) {
	s := NewStore()
	s.Add("a", KeyNOCC, 1)
	s.Add("a", KeyNOCC, 1)
	assert.Equal(t, 2.0, s.Get("a", KeyNOCC))
	assert.True(t, s.Has("a"))
}

func TestStore_NodeReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Set("a", KeyDIT, 3)

	got := s.Node("a")
	got[KeyDIT] = 99
	assert.Equal(t, 3.0, s.Get("a", KeyDIT), "mutating the copy must not leak back")
}

func TestStore_Project(t *testing.T) {
	s := NewStore()
	s.AddProject(KeyClasses, 1)
	s.AddProject(KeyClasses, 1)
	s.SetProject(KeyANDC, 0.5)

	got := s.Project()
	assert.Equal(t, 2.0, got[KeyClasses])
	assert.Equal(t, 0.5, got[KeyANDC])

	got[KeyClasses] = 42
	assert.Equal(t, 2.0, s.Project()[KeyClasses], "project map is copied out")
}

func TestStore_Nodes(t *testing.T) {
	s := NewStore()
	s.Touch("a")
	s.Touch("b")
	assert.ElementsMatch(t, []string{"a", "b"}, s.Nodes())
}
