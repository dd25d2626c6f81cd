package proptype

import (
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Texture slot edge names. Grounded on the teacher's loadMaterial /
// loadTextureInfo dispatch over BaseColorTexture / MetallicRoughnessTexture
// / NormalTexture / OcclusionTexture / EmissiveTexture, generalized from
// direct struct fields into named optional edges so ExtensionRegistry
// hooks (KHR_materials_pbrSpecularGlossiness) can add further slots without
// modifying Material.
const (
	SlotBaseColor         = "baseColorTexture"
	SlotMetallicRoughness = "metallicRoughnessTexture"
	SlotNormal            = "normalTexture"
	SlotOcclusion         = "occlusionTexture"
	SlotEmissive          = "emissiveTexture"
)

var materialTextureSlots = []string{
	SlotBaseColor, SlotMetallicRoughness, SlotNormal, SlotOcclusion, SlotEmissive,
}

// Material is the PBR metallic-roughness material record. Texture slots
// are optional edges to Texture, each carrying a TextureInfo in the
// edge's attribute bag; extensions (e.g. KHR_materials_unlit) are owned
// through property.Base's extensions map.
type Material struct {
	property.Base

	alphaMode       AlphaMode
	alphaCutoff     float32
	doubleSided     bool
	baseColorFactor [4]float32
	metallicFactor  float32
	roughnessFactor float32
	emissiveFactor  [3]float32
}

// NewMaterial constructs a Material with glTF-default factors, registered
// under g.
func NewMaterial(g *graph.Graph) *Material {
	m := &Material{
		alphaMode:       AlphaOpaque,
		alphaCutoff:     0.5,
		baseColorFactor: [4]float32{1, 1, 1, 1},
		metallicFactor:  1,
		roughnessFactor: 1,
	}
	m.Init(g, m, "Material")
	return m
}

func (m *Material) AlphaMode() AlphaMode       { return m.alphaMode }
func (m *Material) AlphaCutoff() float32       { return m.alphaCutoff }
func (m *Material) DoubleSided() bool          { return m.doubleSided }
func (m *Material) BaseColorFactor() [4]float32 { return m.baseColorFactor }
func (m *Material) MetallicFactor() float32    { return m.metallicFactor }
func (m *Material) RoughnessFactor() float32   { return m.roughnessFactor }
func (m *Material) EmissiveFactor() [3]float32 { return m.emissiveFactor }

func (m *Material) SetAlphaMode(mode AlphaMode) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.alphaMode = mode
	return nil
}

// SetAlphaCutoff sets the cutoff, valid only in MASK mode per spec.md §3's
// Material invariant ("alpha-cutoff meaningful only in MASK mode").
func (m *Material) SetAlphaCutoff(cutoff float32) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	if m.alphaMode != AlphaMask {
		return &gerr.InvariantViolation{PropertyType: "Material", Reason: "alphaCutoff is only meaningful in MASK mode"}
	}
	m.alphaCutoff = cutoff
	return nil
}

func (m *Material) SetDoubleSided(v bool) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.doubleSided = v
	return nil
}

func (m *Material) SetBaseColorFactor(rgba [4]float32) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.baseColorFactor = rgba
	return nil
}

func (m *Material) SetMetallicFactor(v float32) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.metallicFactor = v
	return nil
}

func (m *Material) SetRoughnessFactor(v float32) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.roughnessFactor = v
	return nil
}

func (m *Material) SetEmissiveFactor(rgb [3]float32) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	m.emissiveFactor = rgb
	return nil
}

// SetTexture connects (or, with tex nil, disconnects) the Texture under
// slot, recording info in the edge's attribute bag.
func (m *Material) SetTexture(slot string, tex *Texture, info TextureInfo) error {
	if err := m.RequireLive(); err != nil {
		return err
	}
	g := m.Graph()
	for _, e := range g.ListChildEdges(m) {
		if e.Name == slot {
			g.Disconnect(e.Handle)
		}
	}
	if tex != nil {
		attrs := graph.Attrs{"textureInfo": info}
		if _, err := g.Connect(m, tex, slot, attrs, false); err != nil {
			return err
		}
	}
	return nil
}

// Texture returns the Texture and TextureInfo connected under slot, or
// (nil, zero value) if unset.
func (m *Material) Texture(slot string) (*Texture, TextureInfo) {
	for _, e := range m.Graph().ListChildEdges(m) {
		if e.Name == slot {
			if tex, ok := e.Child.(*Texture); ok {
				info, _ := e.Attrs["textureInfo"].(TextureInfo)
				return tex, info
			}
		}
	}
	return nil, TextureInfo{}
}

func (m *Material) EdgeFields() []property.EdgeFieldSpec {
	specs := make([]property.EdgeFieldSpec, 0, len(materialTextureSlots))
	for _, slot := range materialTextureSlots {
		specs = append(specs, property.EdgeFieldSpec{Name: slot, Kind: property.SingleEdge})
	}
	return specs
}

func (m *Material) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Material)
	if !ok {
		return false
	}
	return m.alphaMode == o.alphaMode &&
		m.alphaCutoff == o.alphaCutoff &&
		m.doubleSided == o.doubleSided &&
		m.baseColorFactor == o.baseColorFactor &&
		m.metallicFactor == o.metallicFactor &&
		m.roughnessFactor == o.roughnessFactor &&
		m.emissiveFactor == o.emissiveFactor
}

func (m *Material) CloneAttrs(dst property.Property) {
	o := dst.(*Material)
	o.alphaMode = m.alphaMode
	o.alphaCutoff = m.alphaCutoff
	o.doubleSided = m.doubleSided
	o.baseColorFactor = m.baseColorFactor
	o.metallicFactor = m.metallicFactor
	o.roughnessFactor = m.roughnessFactor
	o.emissiveFactor = m.emissiveFactor
}

func (m *Material) HashAttrs() uint32 {
	h := uint32(2166136261)
	mix := func(f float32) {
		h = (h ^ floatToBits(f)) * 16777619
	}
	for i := 0; i < len(m.alphaMode); i++ {
		h = (h ^ uint32(m.alphaMode[i])) * 16777619
	}
	mix(m.alphaCutoff)
	for _, f := range m.baseColorFactor {
		mix(f)
	}
	mix(m.metallicFactor)
	mix(m.roughnessFactor)
	for _, f := range m.emissiveFactor {
		mix(f)
	}
	return h
}
