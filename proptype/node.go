package proptype

import (
	"github.com/g3n/gltfedit/gmath"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Node is a scene-graph transform: either TRS (translation/rotation/scale)
// or an explicit 4x4 matrix, plus optional Mesh/Skin/Camera attachments
// and an ordered list of child Nodes. A Node has at most one parent Node
// or one parent Scene, enforced by Document operations rather than
// structurally (spec.md §3).
//
// Grounded on core/node.go's position/rotation/scale fields and its
// matrix-from-TRS composition, generalized to the mutually-exclusive
// TRS-or-matrix representation glTF nodes allow.
type Node struct {
	property.Base

	translation gmath.Vector3
	rotation    gmath.Quaternion
	scale       gmath.Vector3
	matrix      *gmath.Matrix4
}

// NewNode constructs a Node at the identity transform, registered under g.
func NewNode(g *graph.Graph) *Node {
	n := &Node{
		rotation: gmath.Quaternion{W: 1},
		scale:    gmath.Vector3{X: 1, Y: 1, Z: 1},
	}
	n.Init(g, n, "Node")
	return n
}

func (n *Node) Translation() gmath.Vector3 { return n.translation }
func (n *Node) Rotation() gmath.Quaternion { return n.rotation }
func (n *Node) Scale() gmath.Vector3       { return n.scale }

// Matrix returns the explicit matrix representation, or nil if the node
// uses TRS.
func (n *Node) Matrix() *gmath.Matrix4 { return n.matrix }

// SetTRS sets the translation/rotation/scale representation, clearing any
// explicit matrix (the two representations are mutually exclusive).
func (n *Node) SetTRS(t gmath.Vector3, r gmath.Quaternion, s gmath.Vector3) error {
	if err := n.RequireLive(); err != nil {
		return err
	}
	n.translation, n.rotation, n.scale = t, r, s
	n.matrix = nil
	return nil
}

// SetMatrix sets the explicit matrix representation, clearing TRS.
func (n *Node) SetMatrix(m gmath.Matrix4) error {
	if err := n.RequireLive(); err != nil {
		return err
	}
	n.matrix = &m
	n.translation = gmath.Vector3{}
	n.rotation = gmath.Quaternion{W: 1}
	n.scale = gmath.Vector3{X: 1, Y: 1, Z: 1}
	return nil
}

func (n *Node) SetMesh(mesh *Mesh) error {
	if mesh == nil {
		return n.clearSingleChild("mesh")
	}
	return n.setSingleChild("mesh", mesh)
}

func (n *Node) Mesh() *Mesh {
	if m, ok := n.singleChild("mesh").(*Mesh); ok {
		return m
	}
	return nil
}

func (n *Node) SetSkin(skin *Skin) error {
	if skin == nil {
		return n.clearSingleChild("skin")
	}
	return n.setSingleChild("skin", skin)
}

func (n *Node) Skin() *Skin {
	if s, ok := n.singleChild("skin").(*Skin); ok {
		return s
	}
	return nil
}

func (n *Node) SetCamera(cam *Camera) error {
	if cam == nil {
		return n.clearSingleChild("camera")
	}
	return n.setSingleChild("camera", cam)
}

func (n *Node) Camera() *Camera {
	if c, ok := n.singleChild("camera").(*Camera); ok {
		return c
	}
	return nil
}

// AddChild appends a child Node, rejecting the connection with
// gerr.CycleError if child already (transitively) owns n.
func (n *Node) AddChild(child *Node) error {
	if err := n.RequireLive(); err != nil {
		return err
	}
	_, err := n.Graph().Connect(n, child, "children", nil, true)
	return err
}

func (n *Node) RemoveChild(child *Node) {
	g := n.Graph()
	for _, e := range g.ListChildEdges(n) {
		if e.Name == "children" && e.Child == child {
			g.Disconnect(e.Handle)
		}
	}
}

func (n *Node) Children() []*Node {
	var out []*Node
	for _, e := range n.Graph().ListChildEdges(n) {
		if e.Name == "children" {
			if c, ok := e.Child.(*Node); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func (n *Node) clearSingleChild(name string) error {
	if err := n.RequireLive(); err != nil {
		return err
	}
	g := n.Graph()
	for _, e := range g.ListChildEdges(n) {
		if e.Name == name {
			g.Disconnect(e.Handle)
		}
	}
	return nil
}

func (n *Node) setSingleChild(name string, child property.Property) error {
	if err := n.clearSingleChild(name); err != nil {
		return err
	}
	_, err := n.Graph().Connect(n, child, name, nil, false)
	return err
}

func (n *Node) singleChild(name string) interface{} {
	for _, e := range n.Graph().ListChildEdges(n) {
		if e.Name == name {
			return e.Child
		}
	}
	return nil
}

func (n *Node) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "mesh", Kind: property.SingleEdge},
		{Name: "skin", Kind: property.SingleEdge},
		{Name: "camera", Kind: property.SingleEdge},
		{Name: "children", Kind: property.OrderedList},
	}
}

func (n *Node) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Node)
	if !ok {
		return false
	}
	if (n.matrix == nil) != (o.matrix == nil) {
		return false
	}
	if n.matrix != nil {
		return *n.matrix == *o.matrix
	}
	return n.translation == o.translation && n.rotation == o.rotation && n.scale == o.scale
}

func (n *Node) CloneAttrs(dst property.Property) {
	o := dst.(*Node)
	o.translation, o.rotation, o.scale = n.translation, n.rotation, n.scale
	if n.matrix != nil {
		m := *n.matrix
		o.matrix = &m
	} else {
		o.matrix = nil
	}
}

func (n *Node) HashAttrs() uint32 {
	h := uint32(2166136261)
	mix := func(f float32) { h = (h ^ floatToBits(f)) * 16777619 }
	if n.matrix != nil {
		for _, f := range *n.matrix {
			mix(f)
		}
		return h
	}
	mix(n.translation.X)
	mix(n.translation.Y)
	mix(n.translation.Z)
	mix(n.rotation.X)
	mix(n.rotation.Y)
	mix(n.rotation.Z)
	mix(n.rotation.W)
	mix(n.scale.X)
	mix(n.scale.Y)
	mix(n.scale.Z)
	return h
}
