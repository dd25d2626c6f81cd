package proptype

import (
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Asset is Root's required asset metadata block.
type Asset struct {
	Version   string
	Generator string
	Copyright string
	MinVersion string
}

// rootLists are Root's top-level ownership edges. Their comparison kind is
// UnorderedSet: spec.md §9 tolerates round-trips that re-index these lists
// (a dedup transform may reorder or compact them) as long as membership is
// unchanged, unlike a Mesh's ordered Primitive list.
var rootLists = []string{
	"scenes", "nodes", "meshes", "materials", "textures",
	"accessors", "buffers", "skins", "animations", "extensions",
}

// Root is the aggregate every other Property is (transitively) reachable
// from. It is the only Property the process owns by design (spec.md §3);
// Document holds exactly one Root per graph.
type Root struct {
	property.Base
	asset Asset
}

// NewRoot constructs a Root with default asset metadata, registered under g.
func NewRoot(g *graph.Graph, generator string) *Root {
	r := &Root{asset: Asset{Version: "2.0", Generator: generator}}
	r.Init(g, r, "Root")
	return r
}

func (r *Root) Asset() Asset { return r.asset }

func (r *Root) SetAsset(a Asset) error {
	if err := r.RequireLive(); err != nil {
		return err
	}
	if a.Version == "" {
		a.Version = "2.0"
	}
	r.asset = a
	return nil
}

func (r *Root) addList(list string, child property.Property) error {
	if err := r.RequireLive(); err != nil {
		return err
	}
	_, err := r.Graph().Connect(r, child, list, nil, false)
	return err
}

func (r *Root) removeFromList(list string, child property.Property) {
	g := r.Graph()
	for _, e := range g.ListChildEdges(r) {
		if e.Name == list && e.Child == child {
			g.Disconnect(e.Handle)
		}
	}
}

func (r *Root) listOf(list string) []graph.Edge {
	var out []graph.Edge
	for _, e := range r.Graph().ListChildEdges(r) {
		if e.Name == list {
			out = append(out, e)
		}
	}
	return out
}

func (r *Root) AddScene(s *Scene) error         { return r.addList("scenes", s) }
func (r *Root) RemoveScene(s *Scene)            { r.removeFromList("scenes", s) }
func (r *Root) AddNode(n *Node) error           { return r.addList("nodes", n) }
func (r *Root) RemoveNode(n *Node)              { r.removeFromList("nodes", n) }
func (r *Root) AddMesh(m *Mesh) error           { return r.addList("meshes", m) }
func (r *Root) RemoveMesh(m *Mesh)              { r.removeFromList("meshes", m) }
func (r *Root) AddMaterial(m *Material) error   { return r.addList("materials", m) }
func (r *Root) RemoveMaterial(m *Material)      { r.removeFromList("materials", m) }
func (r *Root) AddTexture(t *Texture) error     { return r.addList("textures", t) }
func (r *Root) RemoveTexture(t *Texture)        { r.removeFromList("textures", t) }
func (r *Root) AddAccessor(a *Accessor) error   { return r.addList("accessors", a) }
func (r *Root) RemoveAccessor(a *Accessor)      { r.removeFromList("accessors", a) }
func (r *Root) AddBuffer(b *Buffer) error       { return r.addList("buffers", b) }
func (r *Root) RemoveBuffer(b *Buffer)          { r.removeFromList("buffers", b) }
func (r *Root) AddSkin(s *Skin) error           { return r.addList("skins", s) }
func (r *Root) RemoveSkin(s *Skin)              { r.removeFromList("skins", s) }
func (r *Root) AddAnimation(a *Animation) error { return r.addList("animations", a) }
func (r *Root) RemoveAnimation(a *Animation)    { r.removeFromList("animations", a) }

func (r *Root) Scenes() []*Scene {
	var out []*Scene
	for _, e := range r.listOf("scenes") {
		if s, ok := e.Child.(*Scene); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *Root) Nodes() []*Node {
	var out []*Node
	for _, e := range r.listOf("nodes") {
		if n, ok := e.Child.(*Node); ok {
			out = append(out, n)
		}
	}
	return out
}

func (r *Root) Meshes() []*Mesh {
	var out []*Mesh
	for _, e := range r.listOf("meshes") {
		if m, ok := e.Child.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *Root) Materials() []*Material {
	var out []*Material
	for _, e := range r.listOf("materials") {
		if m, ok := e.Child.(*Material); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *Root) Textures() []*Texture {
	var out []*Texture
	for _, e := range r.listOf("textures") {
		if t, ok := e.Child.(*Texture); ok {
			out = append(out, t)
		}
	}
	return out
}

func (r *Root) Accessors() []*Accessor {
	var out []*Accessor
	for _, e := range r.listOf("accessors") {
		if a, ok := e.Child.(*Accessor); ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *Root) Buffers() []*Buffer {
	var out []*Buffer
	for _, e := range r.listOf("buffers") {
		if b, ok := e.Child.(*Buffer); ok {
			out = append(out, b)
		}
	}
	return out
}

func (r *Root) Skins() []*Skin {
	var out []*Skin
	for _, e := range r.listOf("skins") {
		if s, ok := e.Child.(*Skin); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *Root) Animations() []*Animation {
	var out []*Animation
	for _, e := range r.listOf("animations") {
		if a, ok := e.Child.(*Animation); ok {
			out = append(out, a)
		}
	}
	return out
}

// SetDefaultScene connects (or, with nil, disconnects) the Scene used
// when a viewer does not choose one explicitly.
func (r *Root) SetDefaultScene(s *Scene) error {
	if err := r.RequireLive(); err != nil {
		return err
	}
	g := r.Graph()
	for _, e := range g.ListChildEdges(r) {
		if e.Name == "defaultScene" {
			g.Disconnect(e.Handle)
		}
	}
	if s != nil {
		if _, err := g.Connect(r, s, "defaultScene", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *Root) DefaultScene() *Scene {
	for _, e := range r.Graph().ListChildEdges(r) {
		if e.Name == "defaultScene" {
			if s, ok := e.Child.(*Scene); ok {
				return s
			}
		}
	}
	return nil
}

func (r *Root) EdgeFields() []property.EdgeFieldSpec {
	specs := make([]property.EdgeFieldSpec, 0, len(rootLists)+1)
	for _, name := range rootLists {
		specs = append(specs, property.EdgeFieldSpec{Name: name, Kind: property.UnorderedSet})
	}
	specs = append(specs, property.EdgeFieldSpec{Name: "defaultScene", Kind: property.SingleEdge})
	return specs
}

func (r *Root) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Root)
	return ok && r.asset == o.asset
}

func (r *Root) CloneAttrs(dst property.Property) {
	dst.(*Root).asset = r.asset
}

func (r *Root) HashAttrs() uint32 {
	return fnvString(r.asset.Version) ^ fnvString(r.asset.Generator)
}
