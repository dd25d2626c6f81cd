package proptype

import (
	"sort"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// PrimitiveTarget is one morph target of a Primitive: a keyed map of
// semantic -> Accessor, matching the parent Primitive's own attribute
// semantics at reduced (position/normal/tangent-only) scope per spec.md
// §3.
type PrimitiveTarget struct {
	property.Base
}

// NewPrimitiveTarget constructs an empty PrimitiveTarget registered under g.
func NewPrimitiveTarget(g *graph.Graph) *PrimitiveTarget {
	t := &PrimitiveTarget{}
	t.Init(g, t, "PrimitiveTarget")
	return t
}

// SetAttribute connects (or, with nil, disconnects) the Accessor for a
// morph-target semantic (e.g. "POSITION").
func (t *PrimitiveTarget) SetAttribute(semantic string, acc *Accessor) error {
	if err := t.RequireLive(); err != nil {
		return err
	}
	g := t.Graph()
	for _, e := range g.ListChildEdges(t) {
		if e.Name == semantic {
			g.Disconnect(e.Handle)
		}
	}
	if acc != nil {
		if _, err := g.Connect(t, acc, semantic, nil, false); err != nil {
			return err
		}
	}
	return nil
}

// Attribute returns the Accessor for semantic, or nil.
func (t *PrimitiveTarget) Attribute(semantic string) *Accessor {
	for _, e := range t.Graph().ListChildEdges(t) {
		if e.Name == semantic {
			if a, ok := e.Child.(*Accessor); ok {
				return a
			}
		}
	}
	return nil
}

// Semantics returns every semantic name currently set, sorted.
func (t *PrimitiveTarget) Semantics() []string {
	var out []string
	for _, e := range t.Graph().ListChildEdges(t) {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

// EdgeFields is empty: every edge on a PrimitiveTarget is keyed by a
// unique morph semantic name, so the default OrderedList comparison
// (positional within a same-name group of exactly one) already behaves
// as a keyed-map comparison would.
func (t *PrimitiveTarget) EdgeFields() []property.EdgeFieldSpec { return nil }

func (t *PrimitiveTarget) EqualAttrs(other property.Property) bool {
	_, ok := other.(*PrimitiveTarget)
	return ok
}

func (t *PrimitiveTarget) CloneAttrs(property.Property) {}

func (t *PrimitiveTarget) HashAttrs() uint32 { return 0 }

// Primitive is one draw call's worth of geometry: an optional index
// Accessor, a keyed map of vertex-attribute Accessors, an optional
// Material, and zero or more morph PrimitiveTargets.
type Primitive struct {
	property.Base
	mode PrimitiveMode
}

// NewPrimitive constructs a Primitive in TRIANGLES mode, registered under g.
func NewPrimitive(g *graph.Graph) *Primitive {
	p := &Primitive{mode: ModeTriangles}
	p.Init(g, p, "Primitive")
	return p
}

func (p *Primitive) Mode() PrimitiveMode { return p.mode }

func (p *Primitive) SetMode(mode PrimitiveMode) error {
	if err := p.RequireLive(); err != nil {
		return err
	}
	p.mode = mode
	return nil
}

// SetIndices connects (or, with nil, disconnects) the index Accessor. Per
// spec.md §3's invariant, when present its componentType must be
// u8/u16/u32 and its elementType SCALAR.
func (p *Primitive) SetIndices(acc *Accessor) error {
	if err := p.RequireLive(); err != nil {
		return err
	}
	if acc != nil {
		if acc.ElementType() != TypeScalar {
			return &gerr.InvariantViolation{PropertyType: "Primitive", Reason: "indices accessor must be SCALAR"}
		}
		switch acc.ComponentType() {
		case ComponentU8, ComponentU16, ComponentU32:
		default:
			return &gerr.InvariantViolation{PropertyType: "Primitive", Reason: "indices accessor componentType must be u8/u16/u32"}
		}
	}
	g := p.Graph()
	for _, e := range g.ListChildEdges(p) {
		if e.Name == "indices" {
			g.Disconnect(e.Handle)
		}
	}
	if acc != nil {
		if _, err := g.Connect(p, acc, "indices", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (p *Primitive) Indices() *Accessor {
	for _, e := range p.Graph().ListChildEdges(p) {
		if e.Name == "indices" {
			if a, ok := e.Child.(*Accessor); ok {
				return a
			}
		}
	}
	return nil
}

// SetAttribute connects (or, with nil, disconnects) the Accessor for a
// vertex-attribute semantic such as "POSITION" or "TEXCOORD_0". All
// attribute accessors of a Primitive must have equal count per spec.md
// §3; this is enforced at codec/validate time rather than here, since
// attributes are set incrementally.
func (p *Primitive) SetAttribute(semantic string, acc *Accessor) error {
	if err := p.RequireLive(); err != nil {
		return err
	}
	g := p.Graph()
	for _, e := range g.ListChildEdges(p) {
		if e.Name == semantic {
			g.Disconnect(e.Handle)
		}
	}
	if acc != nil {
		if _, err := g.Connect(p, acc, semantic, nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (p *Primitive) Attribute(semantic string) *Accessor {
	for _, e := range p.Graph().ListChildEdges(p) {
		if e.Name == semantic {
			if a, ok := e.Child.(*Accessor); ok {
				return a
			}
		}
	}
	return nil
}

// Semantics returns every vertex-attribute semantic currently set, sorted.
func (p *Primitive) Semantics() []string {
	var out []string
	reserved := map[string]bool{"indices": true, "material": true, "targets": true}
	for _, e := range p.Graph().ListChildEdges(p) {
		if !reserved[e.Name] {
			out = append(out, e.Name)
		}
	}
	sort.Strings(out)
	return out
}

func (p *Primitive) SetMaterial(mat *Material) error {
	if err := p.RequireLive(); err != nil {
		return err
	}
	g := p.Graph()
	for _, e := range g.ListChildEdges(p) {
		if e.Name == "material" {
			g.Disconnect(e.Handle)
		}
	}
	if mat != nil {
		if _, err := g.Connect(p, mat, "material", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (p *Primitive) Material() *Material {
	for _, e := range p.Graph().ListChildEdges(p) {
		if e.Name == "material" {
			if m, ok := e.Child.(*Material); ok {
				return m
			}
		}
	}
	return nil
}

// AddTarget appends a morph PrimitiveTarget.
func (p *Primitive) AddTarget(target *PrimitiveTarget) error {
	if err := p.RequireLive(); err != nil {
		return err
	}
	_, err := p.Graph().Connect(p, target, "targets", nil, false)
	return err
}

func (p *Primitive) Targets() []*PrimitiveTarget {
	var out []*PrimitiveTarget
	for _, e := range p.Graph().ListChildEdges(p) {
		if e.Name == "targets" {
			if t, ok := e.Child.(*PrimitiveTarget); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func (p *Primitive) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "indices", Kind: property.SingleEdge},
		{Name: "material", Kind: property.SingleEdge},
		{Name: "targets", Kind: property.OrderedList},
	}
}

func (p *Primitive) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Primitive)
	return ok && p.mode == o.mode
}

func (p *Primitive) CloneAttrs(dst property.Property) {
	dst.(*Primitive).mode = p.mode
}

func (p *Primitive) HashAttrs() uint32 {
	return uint32(p.mode) * 2654435761
}
