package extension

import (
	"encoding/json"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

const NameTextureBasisu = "KHR_texture_basisu"

// TextureBasisu attaches an alternate KTX2/Basis-Universal-encoded
// Texture under a parent Texture's extensions map. Its reader and writer
// are registered with the Registry, but the codec does not call them:
// texture extensions are neither read nor written, and an encoded texture
// always carries the core `source` field when it has an image.
type TextureBasisu struct {
	property.Base
}

// NewTextureBasisu constructs the extension registered under g.
func NewTextureBasisu(g *graph.Graph) *TextureBasisu {
	e := &TextureBasisu{}
	e.Init(g, e, NameTextureBasisu)
	return e
}

func (e *TextureBasisu) ExtensionName() string { return NameTextureBasisu }

// SetSource connects (or, with nil, disconnects) the Basis-encoded
// Texture.
func (e *TextureBasisu) SetSource(tex *proptype.Texture) error {
	if err := e.RequireLive(); err != nil {
		return err
	}
	g := e.Graph()
	for _, edge := range g.ListChildEdges(e) {
		if edge.Name == "source" {
			g.Disconnect(edge.Handle)
		}
	}
	if tex != nil {
		if _, err := g.Connect(e, tex, "source", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (e *TextureBasisu) Source() *proptype.Texture {
	for _, edge := range e.Graph().ListChildEdges(e) {
		if edge.Name == "source" {
			if t, ok := edge.Child.(*proptype.Texture); ok {
				return t
			}
		}
	}
	return nil
}

func (e *TextureBasisu) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{{Name: "source", Kind: property.SingleEdge}}
}

func (e *TextureBasisu) EqualAttrs(other property.Property) bool {
	_, ok := other.(*TextureBasisu)
	return ok
}

func (e *TextureBasisu) CloneAttrs(property.Property) {}

func (e *TextureBasisu) HashAttrs() uint32 { return 0 }

type wireBasisu struct {
	Source int `json:"source"`
}

func registerTextureBasisu(r *Registry) {
	r.Register(NameTextureBasisu,
		func(raw json.RawMessage, parent property.Property, ctx *ReadContext) (property.ExtensionProperty, error) {
			var wire wireBasisu
			if err := json.Unmarshal(raw, &wire); err != nil {
				return nil, err
			}
			e := NewTextureBasisu(parent.Graph())
			if tex, ok := ctx.TextureAt(wire.Source).(*proptype.Texture); ok {
				e.SetSource(tex)
			}
			return e, nil
		},
		func(ext property.ExtensionProperty, ctx *WriteContext) (json.RawMessage, error) {
			e := ext.(*TextureBasisu)
			wire := wireBasisu{}
			if src := e.Source(); src != nil {
				if idx, ok := ctx.IndexOfTexture(src); ok {
					wire.Source = idx
				}
			}
			return json.Marshal(wire)
		},
	)
}
