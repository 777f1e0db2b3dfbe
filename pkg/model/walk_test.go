package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	events []string
}

func (r *recordingListener) Enter(n Node) {
	_, id, _ := Describe(n)
	r.events = append(r.events, "enter:"+id)
}

func (r *recordingListener) Leave(n Node) {
	_, id, _ := Describe(n)
	r.events = append(r.events, "leave:"+id)
}

func walkFixture() []*Package {
	p := &Package{ID: "p", Name: "p"}
	c := p.AddClass(&Class{ID: "c", Name: "C"})
	c.AddMethod(&Method{ID: "cm", Name: "m"})
	i := p.AddInterface(&Interface{ID: "i", Name: "I"})
	i.AddMethod(&Method{ID: "im", Name: "m"})
	p.AddFunction(&Function{ID: "f", Name: "f"})
	return []*Package{p}
}

func TestWalk_PreOrder(t *testing.T) {
	var visited []string
	err := Walk(walkFixture(), func(n Node) error {
		_, id, _ := Describe(n)
		visited = append(visited, id)
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "c", "cm", "i", "im", "f"}, visited)
}

func TestWalk_ListenerPairing(t *testing.T) {
	l := &recordingListener{}
	require.NoError(t, Walk(walkFixture(), func(Node) error { return nil }, l))

	assert.Equal(t, []string{
		"enter:p",
		"enter:c", "enter:cm", "leave:cm", "leave:c",
		"enter:i", "enter:im", "leave:im", "leave:i",
		"enter:f", "leave:f",
		"leave:p",
	}, l.events)
}

func TestWalk_AbortsOnError(t *testing.T) {
	sentinel := errors.New("stop")
	count := 0
	err := Walk(walkFixture(), func(n Node) error {
		count++
		if _, id, _ := Describe(n); id == "c" {
			return sentinel
		}
		return nil
	}, nil)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, count, "nothing after the failing node is visited")
}

func TestCountNodes(t *testing.T) {
	assert.Equal(t, 6, CountNodes(walkFixture()))
	assert.Equal(t, 0, CountNodes(nil))
}
