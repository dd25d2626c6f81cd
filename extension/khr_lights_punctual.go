package extension

import (
	"encoding/json"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

const NameLightsPunctual = "KHR_lights_punctual"

// LightType discriminates a Light's falloff model.
type LightType string

const (
	LightDirectional LightType = "directional"
	LightPoint       LightType = "point"
	LightSpot        LightType = "spot"
)

// Light is KHR_lights_punctual's per-Node light definition. Grounded on
// the teacher's light package (DirectionalLight/PointLight/SpotLight as
// first-class render types) but modeled here as an ExtensionProperty per
// spec.md §3/§4.3's explicit classification of Light as "extension" —
// it carries no edges of its own, only scalar attributes, and attaches
// to a Node via extensions["KHR_lights_punctual"].
type Light struct {
	property.Base

	lightType        LightType
	color            [3]float32
	intensity        float32
	lightRange       float32 // 0 means "unset" (infinite range), per glTF
	innerConeAngle   float32
	outerConeAngle   float32
}

// NewLight constructs a Light of the given type with glTF defaults,
// registered under g.
func NewLight(g *graph.Graph, lightType LightType) *Light {
	l := &Light{lightType: lightType, color: [3]float32{1, 1, 1}, intensity: 1, outerConeAngle: 0.785398}
	l.Init(g, l, NameLightsPunctual)
	return l
}

func (l *Light) ExtensionName() string { return NameLightsPunctual }

func (l *Light) Type() LightType          { return l.lightType }
func (l *Light) Color() [3]float32        { return l.color }
func (l *Light) Intensity() float32       { return l.intensity }
func (l *Light) Range() float32           { return l.lightRange }
func (l *Light) InnerConeAngle() float32  { return l.innerConeAngle }
func (l *Light) OuterConeAngle() float32  { return l.outerConeAngle }

func (l *Light) SetColor(c [3]float32) error {
	if err := l.RequireLive(); err != nil {
		return err
	}
	l.color = c
	return nil
}

func (l *Light) SetIntensity(v float32) error {
	if err := l.RequireLive(); err != nil {
		return err
	}
	l.intensity = v
	return nil
}

func (l *Light) SetRange(v float32) error {
	if err := l.RequireLive(); err != nil {
		return err
	}
	l.lightRange = v
	return nil
}

func (l *Light) SetConeAngles(inner, outer float32) error {
	if err := l.RequireLive(); err != nil {
		return err
	}
	l.innerConeAngle, l.outerConeAngle = inner, outer
	return nil
}

func (l *Light) EdgeFields() []property.EdgeFieldSpec { return nil }

func (l *Light) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Light)
	return ok && l.lightType == o.lightType && l.color == o.color && l.intensity == o.intensity &&
		l.lightRange == o.lightRange && l.innerConeAngle == o.innerConeAngle && l.outerConeAngle == o.outerConeAngle
}

func (l *Light) CloneAttrs(dst property.Property) {
	o := dst.(*Light)
	o.lightType, o.color, o.intensity = l.lightType, l.color, l.intensity
	o.lightRange, o.innerConeAngle, o.outerConeAngle = l.lightRange, l.innerConeAngle, l.outerConeAngle
}

func (l *Light) HashAttrs() uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(l.lightType); i++ {
		h = (h ^ uint32(l.lightType[i])) * 16777619
	}
	return h ^ uint32(l.intensity*1000)
}

type wireLight struct {
	Type                     LightType   `json:"type"`
	Color                    [3]float32  `json:"color,omitempty"`
	Intensity                float32     `json:"intensity,omitempty"`
	Range                    float32     `json:"range,omitempty"`
	Spot                     *wireSpot   `json:"spot,omitempty"`
}

type wireSpot struct {
	InnerConeAngle float32 `json:"innerConeAngle,omitempty"`
	OuterConeAngle float32 `json:"outerConeAngle,omitempty"`
}

func registerLightsPunctual(r *Registry) {
	r.Register(NameLightsPunctual,
		func(raw json.RawMessage, parent property.Property, ctx *ReadContext) (property.ExtensionProperty, error) {
			var wire wireLight
			if err := json.Unmarshal(raw, &wire); err != nil {
				return nil, err
			}
			l := NewLight(parent.Graph(), wire.Type)
			l.color = wire.Color
			l.intensity = wire.Intensity
			l.lightRange = wire.Range
			if wire.Spot != nil {
				l.innerConeAngle, l.outerConeAngle = wire.Spot.InnerConeAngle, wire.Spot.OuterConeAngle
			}
			return l, nil
		},
		func(ext property.ExtensionProperty, ctx *WriteContext) (json.RawMessage, error) {
			l := ext.(*Light)
			wire := wireLight{Type: l.lightType, Color: l.color, Intensity: l.intensity, Range: l.lightRange}
			if l.lightType == LightSpot {
				wire.Spot = &wireSpot{InnerConeAngle: l.innerConeAngle, OuterConeAngle: l.outerConeAngle}
			}
			return json.Marshal(wire)
		},
	)
}
