package extension

import (
	"encoding/json"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

const NameMaterialsPbrSpecularGlossiness = "KHR_materials_pbrSpecularGlossiness"

// MaterialsPbrSpecularGlossiness is the specular/glossiness alternative
// workflow to Material's default metallic/roughness factors. Grounded on
// the teacher's khr_materials_pbr_specular_glossiness.go field set
// (DiffuseFactor/SpecularFactor/GlossinessFactor plus two texture slots),
// rewritten against the edge/TextureInfo model instead of direct
// material.IMaterial construction.
type MaterialsPbrSpecularGlossiness struct {
	property.Base

	diffuseFactor    [4]float32
	specularFactor   [3]float32
	glossinessFactor float32
}

// NewMaterialsPbrSpecularGlossiness constructs the extension with glTF
// defaults, registered under g.
func NewMaterialsPbrSpecularGlossiness(g *graph.Graph) *MaterialsPbrSpecularGlossiness {
	e := &MaterialsPbrSpecularGlossiness{
		diffuseFactor:    [4]float32{1, 1, 1, 1},
		specularFactor:   [3]float32{1, 1, 1},
		glossinessFactor: 1,
	}
	e.Init(g, e, NameMaterialsPbrSpecularGlossiness)
	return e
}

func (e *MaterialsPbrSpecularGlossiness) ExtensionName() string { return NameMaterialsPbrSpecularGlossiness }

func (e *MaterialsPbrSpecularGlossiness) DiffuseFactor() [4]float32  { return e.diffuseFactor }
func (e *MaterialsPbrSpecularGlossiness) SpecularFactor() [3]float32 { return e.specularFactor }
func (e *MaterialsPbrSpecularGlossiness) GlossinessFactor() float32  { return e.glossinessFactor }

func (e *MaterialsPbrSpecularGlossiness) SetDiffuseFactor(v [4]float32) error {
	if err := e.RequireLive(); err != nil {
		return err
	}
	e.diffuseFactor = v
	return nil
}

func (e *MaterialsPbrSpecularGlossiness) SetSpecularFactor(v [3]float32) error {
	if err := e.RequireLive(); err != nil {
		return err
	}
	e.specularFactor = v
	return nil
}

func (e *MaterialsPbrSpecularGlossiness) SetGlossinessFactor(v float32) error {
	if err := e.RequireLive(); err != nil {
		return err
	}
	e.glossinessFactor = v
	return nil
}

const (
	SlotDiffuse            = "diffuseTexture"
	SlotSpecularGlossiness = "specularGlossinessTexture"
)

func (e *MaterialsPbrSpecularGlossiness) SetTexture(slot string, tex *proptype.Texture, info proptype.TextureInfo) error {
	if err := e.RequireLive(); err != nil {
		return err
	}
	g := e.Graph()
	for _, edge := range g.ListChildEdges(e) {
		if edge.Name == slot {
			g.Disconnect(edge.Handle)
		}
	}
	if tex != nil {
		if _, err := g.Connect(e, tex, slot, graph.Attrs{"textureInfo": info}, false); err != nil {
			return err
		}
	}
	return nil
}

func (e *MaterialsPbrSpecularGlossiness) Texture(slot string) (*proptype.Texture, proptype.TextureInfo) {
	for _, edge := range e.Graph().ListChildEdges(e) {
		if edge.Name == slot {
			if t, ok := edge.Child.(*proptype.Texture); ok {
				info, _ := edge.Attrs["textureInfo"].(proptype.TextureInfo)
				return t, info
			}
		}
	}
	return nil, proptype.TextureInfo{}
}

func (e *MaterialsPbrSpecularGlossiness) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: SlotDiffuse, Kind: property.SingleEdge},
		{Name: SlotSpecularGlossiness, Kind: property.SingleEdge},
	}
}

func (e *MaterialsPbrSpecularGlossiness) EqualAttrs(other property.Property) bool {
	o, ok := other.(*MaterialsPbrSpecularGlossiness)
	return ok && e.diffuseFactor == o.diffuseFactor && e.specularFactor == o.specularFactor && e.glossinessFactor == o.glossinessFactor
}

func (e *MaterialsPbrSpecularGlossiness) CloneAttrs(dst property.Property) {
	o := dst.(*MaterialsPbrSpecularGlossiness)
	o.diffuseFactor = e.diffuseFactor
	o.specularFactor = e.specularFactor
	o.glossinessFactor = e.glossinessFactor
}

func (e *MaterialsPbrSpecularGlossiness) HashAttrs() uint32 {
	h := uint32(2166136261)
	return h ^ uint32(e.glossinessFactor*1000)
}

type wireSpecGloss struct {
	DiffuseFactor            *[4]float32          `json:"diffuseFactor,omitempty"`
	SpecularFactor           *[3]float32          `json:"specularFactor,omitempty"`
	GlossinessFactor         *float32             `json:"glossinessFactor,omitempty"`
	DiffuseTexture           *wireTextureInfoRef  `json:"diffuseTexture,omitempty"`
	SpecularGlossinessTexture *wireTextureInfoRef `json:"specularGlossinessTexture,omitempty"`
}

type wireTextureInfoRef struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

func registerMaterialsPbrSpecularGlossiness(r *Registry) {
	r.Register(NameMaterialsPbrSpecularGlossiness,
		func(raw json.RawMessage, parent property.Property, ctx *ReadContext) (property.ExtensionProperty, error) {
			var wire wireSpecGloss
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &wire); err != nil {
					return nil, err
				}
			}
			e := NewMaterialsPbrSpecularGlossiness(parent.Graph())
			if wire.DiffuseFactor != nil {
				e.diffuseFactor = *wire.DiffuseFactor
			}
			if wire.SpecularFactor != nil {
				e.specularFactor = *wire.SpecularFactor
			}
			if wire.GlossinessFactor != nil {
				e.glossinessFactor = *wire.GlossinessFactor
			}
			if wire.DiffuseTexture != nil {
				if tex, ok := ctx.TextureAt(wire.DiffuseTexture.Index).(*proptype.Texture); ok {
					e.SetTexture(SlotDiffuse, tex, proptype.TextureInfo{TexCoord: wire.DiffuseTexture.TexCoord})
				}
			}
			if wire.SpecularGlossinessTexture != nil {
				if tex, ok := ctx.TextureAt(wire.SpecularGlossinessTexture.Index).(*proptype.Texture); ok {
					e.SetTexture(SlotSpecularGlossiness, tex, proptype.TextureInfo{TexCoord: wire.SpecularGlossinessTexture.TexCoord})
				}
			}
			return e, nil
		},
		func(ext property.ExtensionProperty, ctx *WriteContext) (json.RawMessage, error) {
			e := ext.(*MaterialsPbrSpecularGlossiness)
			wire := wireSpecGloss{
				DiffuseFactor:    &e.diffuseFactor,
				SpecularFactor:   &e.specularFactor,
				GlossinessFactor: &e.glossinessFactor,
			}
			if tex, info := e.Texture(SlotDiffuse); tex != nil {
				if idx, ok := ctx.IndexOfTexture(tex); ok {
					wire.DiffuseTexture = &wireTextureInfoRef{Index: idx, TexCoord: info.TexCoord}
				}
			}
			if tex, info := e.Texture(SlotSpecularGlossiness); tex != nil {
				if idx, ok := ctx.IndexOfTexture(tex); ok {
					wire.SpecularGlossinessTexture = &wireTextureInfoRef{Index: idx, TexCoord: info.TexCoord}
				}
			}
			return json.Marshal(wire)
		},
	)
}
