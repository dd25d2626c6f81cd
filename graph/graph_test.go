package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProp struct {
	name     string
	disposed bool
}

func (p *fakeProp) Disposed() bool { return p.disposed }
func (p *fakeProp) Name() string   { return p.name }

func TestConnectAndListEdges(t *testing.T) {
	g := New()
	parent := &fakeProp{name: "mesh"}
	child := &fakeProp{name: "primitive"}

	h, err := g.Connect(parent, child, "primitives", nil, false)
	assert.NoError(t, err)

	edges := g.ListChildEdges(parent)
	assert.Len(t, edges, 1)
	assert.Equal(t, h, edges[0].Handle)
	assert.Equal(t, "primitives", edges[0].Name)

	assert.Len(t, g.ListParentEdges(child), 1)
	assert.Len(t, g.ListEdges(), 1)
}

func TestConnectRejectsDisposed(t *testing.T) {
	g := New()
	parent := &fakeProp{name: "mesh", disposed: true}
	child := &fakeProp{name: "primitive"}

	_, err := g.Connect(parent, child, "primitives", nil, false)
	assert.Error(t, err)
}

func TestDisconnectNotifiesBothEndpoints(t *testing.T) {
	g := New()
	parent := &fakeProp{name: "primitive"}
	child := &fakeProp{name: "accessor"}
	h, _ := g.Connect(parent, child, "POSITION", nil, false)

	var parentEvents, childEvents []Event
	g.Subscribe(parent, nil, func(e Event) { parentEvents = append(parentEvents, e) })
	g.Subscribe(child, nil, func(e Event) { childEvents = append(childEvents, e) })

	g.Disconnect(h)

	assert.Len(t, parentEvents, 1)
	assert.Equal(t, EdgeRemoved, parentEvents[0].Kind)
	assert.Len(t, childEvents, 1)
	assert.Equal(t, EdgeRemoved, childEvents[0].Kind)

	assert.Empty(t, g.ListChildEdges(parent))
	assert.Empty(t, g.ListParentEdges(child))
}

func TestSwapPropagatesOnlyToAffectedParent(t *testing.T) {
	// Scenario 3 from spec.md §8: Accessor A referenced as POSITION by P1
	// and as a morph-target attribute by P2. Swapping on P1 must not
	// affect P2's edge to A.
	g := New()
	p1 := &fakeProp{name: "P1"}
	p2 := &fakeProp{name: "P2"}
	a := &fakeProp{name: "A"}
	b := &fakeProp{name: "B"}

	g.Connect(p1, a, "POSITION", nil, false)
	g.Connect(p2, a, "POSITION", Attrs{"target": 0}, false)

	err := g.Swap(p1, a, b)
	assert.NoError(t, err)

	p1Edges := g.ListChildEdges(p1)
	assert.Len(t, p1Edges, 1)
	assert.Equal(t, b, p1Edges[0].Child)

	aParents := g.ListParentEdges(a)
	assert.Len(t, aParents, 1)
	assert.Equal(t, p2, aParents[0].Parent)

	bParents := g.ListParentEdges(b)
	assert.Len(t, bParents, 1)
	assert.Equal(t, p1, bParents[0].Parent)
}

func TestDisposePropertyRemovesAllIncidentEdges(t *testing.T) {
	g := New()
	mesh := &fakeProp{name: "mesh"}
	prim := &fakeProp{name: "primitive"}
	g.Connect(mesh, prim, "primitives", nil, false)

	var disposeEvents []Event
	g.Subscribe(prim, nil, func(e Event) { disposeEvents = append(disposeEvents, e) })

	g.DisposeProperty(prim)

	assert.Empty(t, g.ListChildEdges(mesh))
	assert.Empty(t, g.ListParentEdges(prim))
	assert.Len(t, disposeEvents, 1)
	assert.Equal(t, Disposed, disposeEvents[0].Kind)

	for _, e := range g.ListEdges() {
		assert.NotEqual(t, prim, e.Parent)
		assert.NotEqual(t, prim, e.Child)
	}
}

func TestConnectDetectsOwnershipCycle(t *testing.T) {
	g := New()
	a := &fakeProp{name: "a"}
	b := &fakeProp{name: "b"}
	c := &fakeProp{name: "c"}

	g.Connect(a, b, "children", nil, true)
	g.Connect(b, c, "children", nil, true)

	_, err := g.Connect(c, a, "children", nil, true)
	assert.Error(t, err)
}
