package extension

import (
	"encoding/json"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

const NameMaterialsUnlit = "KHR_materials_unlit"

// MaterialsUnlit is a marker extension: its wire form is an empty JSON
// object `{}`, signaling the attached Material should be shaded without
// lighting. Grounded on the teacher's khr_materials_unlit.go, which is
// itself just a flag on the loaded material rather than a value-bearing
// struct.
type MaterialsUnlit struct {
	property.Base
}

// NewMaterialsUnlit constructs a MaterialsUnlit extension registered
// under g.
func NewMaterialsUnlit(g *graph.Graph) *MaterialsUnlit {
	u := &MaterialsUnlit{}
	u.Init(g, u, "KHR_materials_unlit")
	return u
}

func (u *MaterialsUnlit) ExtensionName() string { return NameMaterialsUnlit }

func (u *MaterialsUnlit) EdgeFields() []property.EdgeFieldSpec { return nil }
func (u *MaterialsUnlit) EqualAttrs(other property.Property) bool {
	_, ok := other.(*MaterialsUnlit)
	return ok
}
func (u *MaterialsUnlit) CloneAttrs(property.Property) {}
func (u *MaterialsUnlit) HashAttrs() uint32             { return 0 }

func registerMaterialsUnlit(r *Registry) {
	r.Register(NameMaterialsUnlit,
		func(raw json.RawMessage, parent property.Property, ctx *ReadContext) (property.ExtensionProperty, error) {
			return NewMaterialsUnlit(parent.Graph()), nil
		},
		func(ext property.ExtensionProperty, ctx *WriteContext) (json.RawMessage, error) {
			return json.RawMessage("{}"), nil
		},
	)
}
