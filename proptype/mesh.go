package proptype

import (
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Mesh is an ordered list of Primitives.
type Mesh struct {
	property.Base
}

// NewMesh constructs an empty Mesh registered under g.
func NewMesh(g *graph.Graph) *Mesh {
	m := &Mesh{}
	m.Init(g, m, "Mesh")
	return m
}

// AddPrimitive appends a Primitive.
func (m *Mesh) AddPrimitive(p *Primitive) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	_, err := m.Graph().Connect(m, p, "primitives", nil, false)
	return err
}

func (m *Mesh) Primitives() []*Primitive {
	var out []*Primitive
	for _, e := range m.Graph().ListChildEdges(m) {
		if e.Name == "primitives" {
			if p, ok := e.Child.(*Primitive); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func (m *Mesh) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{{Name: "primitives", Kind: property.OrderedList}}
}

func (m *Mesh) EqualAttrs(other property.Property) bool {
	_, ok := other.(*Mesh)
	return ok
}

func (m *Mesh) CloneAttrs(property.Property) {}

func (m *Mesh) HashAttrs() uint32 { return 0 }

// Skin binds a joint hierarchy to a mesh: an ordered list of joint Nodes,
// an optional skeleton root Node, and an optional inverseBindMatrices
// Accessor.
type Skin struct {
	property.Base
}

// NewSkin constructs an empty Skin registered under g.
func NewSkin(g *graph.Graph) *Skin {
	s := &Skin{}
	s.Init(g, s, "Skin")
	return s
}

func (s *Skin) AddJoint(n *Node) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	_, err := s.Graph().Connect(s, n, "joints", nil, false)
	return err
}

func (s *Skin) Joints() []*Node {
	var out []*Node
	for _, e := range s.Graph().ListChildEdges(s) {
		if e.Name == "joints" {
			if n, ok := e.Child.(*Node); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

func (s *Skin) SetSkeleton(n *Node) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	g := s.Graph()
	for _, e := range g.ListChildEdges(s) {
		if e.Name == "skeleton" {
			g.Disconnect(e.Handle)
		}
	}
	if n != nil {
		if _, err := g.Connect(s, n, "skeleton", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Skin) Skeleton() *Node {
	for _, e := range s.Graph().ListChildEdges(s) {
		if e.Name == "skeleton" {
			if n, ok := e.Child.(*Node); ok {
				return n
			}
		}
	}
	return nil
}

// SetInverseBindMatrices connects (or, with nil, disconnects) the
// inverseBindMatrices Accessor. Per spec.md §3's invariant, when present
// its count must equal the joint count.
func (s *Skin) SetInverseBindMatrices(acc *Accessor) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	if acc != nil && acc.Count() != len(s.Joints()) {
		return &gerr.InvariantViolation{PropertyType: "Skin", Reason: "inverseBindMatrices count must equal joint count"}
	}
	g := s.Graph()
	for _, e := range g.ListChildEdges(s) {
		if e.Name == "inverseBindMatrices" {
			g.Disconnect(e.Handle)
		}
	}
	if acc != nil {
		if _, err := g.Connect(s, acc, "inverseBindMatrices", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Skin) InverseBindMatrices() *Accessor {
	for _, e := range s.Graph().ListChildEdges(s) {
		if e.Name == "inverseBindMatrices" {
			if a, ok := e.Child.(*Accessor); ok {
				return a
			}
		}
	}
	return nil
}

func (s *Skin) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "joints", Kind: property.OrderedList},
		{Name: "skeleton", Kind: property.SingleEdge},
		{Name: "inverseBindMatrices", Kind: property.SingleEdge},
	}
}

func (s *Skin) EqualAttrs(other property.Property) bool {
	_, ok := other.(*Skin)
	return ok
}

func (s *Skin) CloneAttrs(property.Property) {}

func (s *Skin) HashAttrs() uint32 { return 0 }
