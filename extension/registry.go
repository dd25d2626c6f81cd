// Package extension implements the pluggable extension mechanism spec.md
// §4.3 describes: a name-keyed table of read/write hooks that attach
// user-defined Properties under a parent's `extensions` map, plus the
// bundled extensions bootstrapped into every new Document.
//
// Grounded on the teacher's ad hoc dispatch in loader.go's loadMaterial
// (a hardcoded switch over KhrMaterialsUnlit / KhrMaterialsPbrSpecularGlossiness
// constants) and the per-extension files material_common.go / material_pbr.go
// / khr_materials_unlit.go / khr_materials_pbr_specular_glossiness.go,
// generalized into a registry table of name-keyed hooks. The codec
// dispatches these hooks for Material extensions only; the Light (Node)
// and basisu (Texture) hooks are registered but the codec does not call
// them.
package extension

import (
	"encoding/json"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// ReadContext is the state a Reader hook needs to materialize an
// ExtensionProperty: the owning graph and index-based lookups into
// Root's already-read collections (textures, accessors). The BinaryCodec
// constructs one per document read.
type ReadContext struct {
	Graph        *graph.Graph
	TextureAt    func(index int) property.Property
	AccessorAt   func(index int) property.Property
}

// WriteContext is the inverse: index lookups a Writer hook needs to
// serialize edges back to wire indices.
type WriteContext struct {
	IndexOfTexture  func(p property.Property) (int, bool)
	IndexOfAccessor func(p property.Property) (int, bool)
}

// Reader materializes an ExtensionProperty from its raw JSON object body,
// owned by parent (already constructed, already registered under Root).
type Reader func(raw json.RawMessage, parent property.Property, ctx *ReadContext) (property.ExtensionProperty, error)

// Writer serializes ext back to its raw JSON object body.
type Writer func(ext property.ExtensionProperty, ctx *WriteContext) (json.RawMessage, error)

// Registry is a name -> {Reader, Writer} table consulted by BinaryCodec
// on both the read and write paths. Registration order is preserved as
// the dispatch/serialization order (stable iteration), per spec.md §4.3.
type Registry struct {
	names   []string
	readers map[string]Reader
	writers map[string]Writer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader), writers: make(map[string]Writer)}
}

// Register adds (or replaces, without reordering) the hooks for name.
func (r *Registry) Register(name string, reader Reader, writer Writer) {
	if _, exists := r.readers[name]; !exists {
		r.names = append(r.names, name)
	}
	r.readers[name] = reader
	r.writers[name] = writer
}

// Names returns every registered extension name, in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Reader returns the reader hook for name, or an UnsupportedExtensionError
// if none is registered.
func (r *Registry) Reader(name string) (Reader, error) {
	fn, ok := r.readers[name]
	if !ok {
		return nil, &gerr.UnsupportedExtensionError{Name: name}
	}
	return fn, nil
}

// Writer returns the writer hook for name, or an UnsupportedExtensionError
// if none is registered.
func (r *Registry) Writer(name string) (Writer, error) {
	fn, ok := r.writers[name]
	if !ok {
		return nil, &gerr.UnsupportedExtensionError{Name: name}
	}
	return fn, nil
}

// RegisterBundled installs every extension this module ships with:
// KHR_materials_unlit, KHR_materials_pbrSpecularGlossiness,
// KHR_lights_punctual, and KHR_texture_basisu. Document calls this for
// every new or read Document so bundled extensions need no explicit
// opt-in, matching the teacher's loader.go treating KHR_materials_* as
// always-understood rather than plugin-registered.
func RegisterBundled(r *Registry) {
	registerMaterialsUnlit(r)
	registerMaterialsPbrSpecularGlossiness(r)
	registerLightsPunctual(r)
	registerTextureBasisu(r)
}
