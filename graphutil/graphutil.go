// Package graphutil implements cross-document structural operations that
// need to see every concrete proptype: copying a whole property graph
// into a fresh Graph (used by Document.Clone/Merge), listing a
// property's parent edges, and deep "swap" across an entire reachable
// set rather than one parent at a time.
//
// Grounded on g3n's core.Node.Clone(), generalized from a single-tree
// recursive copy into a two-pass graph copy: distinct blank counterparts
// are constructed first (breaking reference cycles/diamonds), then every
// pair's attributes and edges are filled in via property.Clone.
package graphutil

import (
	"github.com/g3n/gltfedit/extension"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

// Reachable returns every Property reachable from root by following
// outbound edges and extension attachments, including root itself, each
// exactly once.
func Reachable(root property.Property) []property.Property {
	var order []property.Property
	seen := map[property.Property]bool{}
	var visit func(p property.Property)
	visit = func(p property.Property) {
		if p == nil || seen[p] {
			return
		}
		seen[p] = true
		order = append(order, p)
		for _, e := range p.Graph().ListChildEdges(p) {
			if cp, ok := e.Child.(property.Property); ok {
				visit(cp)
			}
		}
		for _, name := range p.ExtensionNames() {
			visit(p.GetExtension(name))
		}
	}
	visit(root)
	return order
}

// blank constructs an empty destination counterpart of src's concrete
// type, registered under dst. Attribute values are filled in afterward by
// property.Clone, so any zero-value constructor arguments here are
// immediately overwritten.
func blank(src property.Property, dst *graph.Graph) property.Property {
	switch src.(type) {
	case *proptype.Buffer:
		return proptype.NewBuffer(dst)
	case *proptype.Accessor:
		s := src.(*proptype.Accessor)
		return proptype.NewAccessor(dst, s.ElementType(), s.ComponentType())
	case *proptype.Texture:
		return proptype.NewTexture(dst)
	case *proptype.Material:
		return proptype.NewMaterial(dst)
	case *proptype.Primitive:
		return proptype.NewPrimitive(dst)
	case *proptype.PrimitiveTarget:
		return proptype.NewPrimitiveTarget(dst)
	case *proptype.Mesh:
		return proptype.NewMesh(dst)
	case *proptype.Skin:
		return proptype.NewSkin(dst)
	case *proptype.Node:
		return proptype.NewNode(dst)
	case *proptype.Scene:
		return proptype.NewScene(dst)
	case *proptype.Animation:
		return proptype.NewAnimation(dst)
	case *proptype.AnimationSampler:
		return proptype.NewAnimationSampler(dst)
	case *proptype.AnimationChannel:
		s := src.(*proptype.AnimationChannel)
		return proptype.NewAnimationChannel(dst, s.TargetPath())
	case *proptype.Camera:
		s := src.(*proptype.Camera)
		if s.Type() == proptype.CameraPerspective {
			return proptype.NewPerspectiveCamera(dst, 0, 0)
		}
		return proptype.NewOrthographicCamera(dst, 0, 0, 0, 0)
	case *proptype.Root:
		return proptype.NewRoot(dst, "")
	case *extension.MaterialsUnlit:
		return extension.NewMaterialsUnlit(dst)
	case *extension.MaterialsPbrSpecularGlossiness:
		return extension.NewMaterialsPbrSpecularGlossiness(dst)
	case *extension.Light:
		s := src.(*extension.Light)
		return extension.NewLight(dst, s.Type())
	case *extension.TextureBasisu:
		return extension.NewTextureBasisu(dst)
	default:
		return nil
	}
}

// CopyGraph clones every Property reachable from root into dstGraph and
// returns the copied root plus a resolver mapping any src Property
// reachable from root to its destination counterpart. Properties outside
// root's reachable set resolve to nil — callers merging a subgraph (e.g.
// Document.Merge with a restricted Property list) should pre-seed the
// returned map's misses accordingly.
func CopyGraph(root property.Property, dstGraph *graph.Graph) (property.Property, property.ResolveFunc) {
	order := Reachable(root)
	mapping := make(map[property.Property]property.Property, len(order))
	for _, src := range order {
		mapping[src] = blank(src, dstGraph)
	}
	resolve := func(p property.Property) property.Property {
		if p == nil {
			return nil
		}
		if dst, ok := mapping[p]; ok {
			return dst
		}
		return nil
	}
	for _, src := range order {
		property.Clone(dstGraph, src, mapping[src], resolve)
	}
	return mapping[root], resolve
}

// SwapDeep replaces oldChild with newChild in every parent across the
// entire graph reachable from root, not just oldChild's current parents —
// useful after a transform has already disposed oldChild's direct parent
// edges and needs to sweep for any edge still pointing at it.
func SwapDeep(root property.Property, oldChild, newChild property.Property) error {
	for _, p := range Reachable(root) {
		if err := p.Graph().Swap(p, oldChild, newChild); err != nil {
			return err
		}
	}
	return nil
}

// ListParentEdges is a package-level convenience wrapping
// Property.ListParentEdges, kept here so callers that only import
// graphutil (not property) for traversal helpers have one entry point.
func ListParentEdges(p property.Property) []graph.Edge {
	return p.ListParentEdges()
}
