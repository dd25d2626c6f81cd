package property

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/graph"
)

// leaf is a minimal Property used only to exercise the generic
// Clone/Equals/Hash/Dispose machinery without pulling in proptype.
type leaf struct {
	Base
	value int
}

func newLeaf(g *graph.Graph, value int) *leaf {
	l := &leaf{value: value}
	l.Init(g, l, "leaf")
	return l
}

func (l *leaf) EdgeFields() []EdgeFieldSpec {
	return []EdgeFieldSpec{{Name: "children", Kind: UnorderedSet}}
}

func (l *leaf) EqualAttrs(other Property) bool {
	o, ok := other.(*leaf)
	return ok && l.value == o.value
}

func (l *leaf) CloneAttrs(dst Property) {
	dst.(*leaf).value = l.value
}

func (l *leaf) HashAttrs() uint32 {
	return uint32(l.value)
}

func TestEqualsIgnoresUnorderedEdgeOrder(t *testing.T) {
	g := graph.New()
	a := newLeaf(g, 1)
	c1 := newLeaf(g, 10)
	c2 := newLeaf(g, 20)
	g.Connect(a, c1, "children", nil, false)
	g.Connect(a, c2, "children", nil, false)

	b := newLeaf(g, 1)
	c2b := newLeaf(g, 20)
	c1b := newLeaf(g, 10)
	g.Connect(b, c2b, "children", nil, false)
	g.Connect(b, c1b, "children", nil, false)

	assert.True(t, Equals(a, b, nil))
	assert.Equal(t, Hash(a, nil, nil), Hash(b, nil, nil))
}

func TestEqualsDetectsAttributeDivergence(t *testing.T) {
	g := graph.New()
	a := newLeaf(g, 1)
	b := newLeaf(g, 2)
	assert.False(t, Equals(a, b, nil))
}

func TestCloneCopiesAttrsAndEdges(t *testing.T) {
	g := graph.New()
	src := newLeaf(g, 7)
	child := newLeaf(g, 8)
	g.Connect(src, child, "children", nil, false)

	dst := newLeaf(g, 0)
	Clone(g, src, dst, IdentityResolve)

	assert.True(t, Equals(src, dst, nil))
	edges := g.ListChildEdges(dst)
	assert.Len(t, edges, 1)
	assert.Equal(t, child, edges[0].Child)
}

func TestDisposeCascadesThroughGraph(t *testing.T) {
	g := graph.New()
	parent := newLeaf(g, 1)
	child := newLeaf(g, 2)
	g.Connect(parent, child, "children", nil, false)

	parent.Dispose()

	assert.True(t, parent.Disposed())
	assert.Empty(t, g.ListChildEdges(parent))
	assert.Empty(t, g.ListParentEdges(child))
}
