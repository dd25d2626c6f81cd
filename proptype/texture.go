package proptype

import (
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Texture is raw image bytes plus either a URI (external image) or a
// MIME type (inline image held in memory). Exactly one of those two must
// supply the bytes, per spec.md §3's Texture invariant.
type Texture struct {
	property.Base

	uri      string
	mimeType string
	data     []byte
}

// NewTexture constructs an empty Texture registered under g.
func NewTexture(g *graph.Graph) *Texture {
	t := &Texture{}
	t.Init(g, t, "Texture")
	return t
}

func (t *Texture) URI() string      { return t.uri }
func (t *Texture) MimeType() string { return t.mimeType }
func (t *Texture) Data() []byte     { return t.data }

// SetURI marks the texture as externally referenced, clearing any inline
// image bytes (the invariant is "exactly one of uri or inline image", so
// setting one always clears the other).
func (t *Texture) SetURI(uri string) error {
	if err := t.RequireLive(); err != nil {
		return err
	}
	t.uri = uri
	if uri != "" {
		t.mimeType = ""
		t.data = nil
	}
	return nil
}

// SetImage installs inline image bytes with the given MIME type, clearing
// any URI.
func (t *Texture) SetImage(mimeType string, data []byte) error {
	if err := t.RequireLive(); err != nil {
		return err
	}
	if mimeType == "" || data == nil {
		return &gerr.InvariantViolation{PropertyType: "Texture", Reason: "inline image requires both mimeType and data"}
	}
	t.mimeType = mimeType
	t.data = data
	t.uri = ""
	return nil
}

// RequireResolvable returns an InvariantViolation if neither a URI nor
// inline image bytes are present.
func (t *Texture) RequireResolvable() error {
	if t.uri == "" && t.data == nil {
		return &gerr.InvariantViolation{PropertyType: "Texture", Reason: "neither uri nor inline image bytes are set"}
	}
	return nil
}

func (t *Texture) EdgeFields() []property.EdgeFieldSpec { return nil }

func (t *Texture) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Texture)
	if !ok {
		return false
	}
	if t.uri != o.uri || t.mimeType != o.mimeType || len(t.data) != len(o.data) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (t *Texture) CloneAttrs(dst property.Property) {
	o := dst.(*Texture)
	o.uri = t.uri
	o.mimeType = t.mimeType
	o.data = append([]byte(nil), t.data...)
}

func (t *Texture) HashAttrs() uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(t.uri); i++ {
		h = (h ^ uint32(t.uri[i])) * 16777619
	}
	for i := 0; i < len(t.mimeType); i++ {
		h = (h ^ uint32(t.mimeType[i])) * 16777619
	}
	for _, b := range t.data {
		h = (h ^ uint32(b)) * 16777619
	}
	return h
}
