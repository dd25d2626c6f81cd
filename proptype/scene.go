package proptype

import (
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Scene is an ordered list of root Nodes.
type Scene struct {
	property.Base
}

// NewScene constructs an empty Scene registered under g.
func NewScene(g *graph.Graph) *Scene {
	s := &Scene{}
	s.Init(g, s, "Scene")
	return s
}

func (s *Scene) AddChild(n *Node) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	_, err := s.Graph().Connect(s, n, "children", nil, false)
	return err
}

func (s *Scene) RemoveChild(n *Node) {
	g := s.Graph()
	for _, e := range g.ListChildEdges(s) {
		if e.Name == "children" && e.Child == n {
			g.Disconnect(e.Handle)
		}
	}
}

func (s *Scene) Children() []*Node {
	var out []*Node
	for _, e := range s.Graph().ListChildEdges(s) {
		if e.Name == "children" {
			if n, ok := e.Child.(*Node); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

func (s *Scene) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{{Name: "children", Kind: property.OrderedList}}
}

func (s *Scene) EqualAttrs(other property.Property) bool {
	_, ok := other.(*Scene)
	return ok
}

func (s *Scene) CloneAttrs(property.Property) {}

func (s *Scene) HashAttrs() uint32 { return 0 }
