// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package property defines the abstract record every graph vertex in
// proptype embeds: a discriminant propertyType, a name, an opaque extras
// blob, an extension map, and the shared clone/equals/hash/dispose
// machinery that operates generically across edges while leaving each
// concrete type responsible only for its own value (attribute) fields.
//
// This generalizes the teacher's core.Node/INode split (a shared struct
// embedded by every node type, exposed through an interface, with
// per-type Clone() doing field-by-field copying) from a render-scene tree
// into a schema-driven multi-parent property graph.
package property

import (
	"reflect"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
)

// EdgeFieldKind classifies how a Property's named edge group should be
// compared and iterated: positionally (ordered), as a single optional
// edge, by key (KeyedMap — at most one edge per distinct Attrs key), or
// as a multiset with no significant order (UnorderedSet, used only for
// Root's top-level collections per spec.md §8's "round-trip up to
// re-indexing of Root-level lists").
type EdgeFieldKind int

const (
	SingleEdge EdgeFieldKind = iota
	OrderedList
	KeyedMap
	UnorderedSet
)

// EdgeFieldSpec is one entry of a Property type's edge-field schema.
type EdgeFieldSpec struct {
	Name string
	Kind EdgeFieldKind
}

// ResolveFunc maps a source Property (in a possibly different graph) to
// its counterpart in the destination graph. The identity resolver (used
// by default within one graph) is IdentityResolve.
type ResolveFunc func(Property) Property

// IdentityResolve returns p unchanged; the default resolver for
// within-document copies.
func IdentityResolve(p Property) Property { return p }

// Property is the capability set every proptype record implements.
// Concrete types additionally implement EqualAttrs/CloneAttrs/HashAttrs
// for their own value fields, and EdgeFields for their schema.
type Property interface {
	graph.Node

	PropertyType() string
	Name() string
	SetName(string)
	Extras() interface{}
	SetExtras(interface{})

	Disposed() bool
	Dispose()

	Graph() *graph.Graph
	ListParents() []Property
	ListParentEdges() []graph.Edge

	GetExtension(name string) ExtensionProperty
	SetExtension(name string, ext ExtensionProperty)
	ExtensionNames() []string

	EdgeFields() []EdgeFieldSpec
	EqualAttrs(other Property) bool
	CloneAttrs(dst Property)
	HashAttrs() uint32
}

// ExtensionProperty is a Property additionally owned under a parent's
// extensions map (keyed by extension name) rather than a plain edge
// field. See spec.md §4.3.
type ExtensionProperty interface {
	Property
	ExtensionName() string
}

// Base is embedded by every concrete proptype record. It owns identity
// (propertyType, name), the opaque extras/extensions bags, the disposed
// flag, and the graph back-reference used for parent lookup and disposal.
//
// Base cannot dispatch virtual methods on itself (Go has no inheritance),
// so constructors must call Init with self set to the outer pointer —
// the same workaround the teacher's core.Node/INode pair uses via
// GetNode()/embedding, generalized here to a single stored reference.
type Base struct {
	g            *graph.Graph
	self         graph.Node
	propertyType string
	name         string
	extras       interface{}
	extensions   map[string]ExtensionProperty
	disposed     bool
}

// Init wires Base to its owning graph and outer (self) pointer. Concrete
// constructors call this first.
func (b *Base) Init(g *graph.Graph, self graph.Node, propertyType string) {
	b.g = g
	b.self = self
	b.propertyType = propertyType
	b.extensions = make(map[string]ExtensionProperty)
}

func (b *Base) PropertyType() string     { return b.propertyType }
func (b *Base) Name() string             { return b.name }
func (b *Base) SetName(name string)      { b.name = name }
func (b *Base) Extras() interface{}      { return b.extras }
func (b *Base) SetExtras(e interface{})  { b.extras = e }
func (b *Base) Disposed() bool           { return b.disposed }
func (b *Base) Graph() *graph.Graph      { return b.g }

// ListParentEdges returns the inbound edges of the owning Property.
func (b *Base) ListParentEdges() []graph.Edge {
	return b.g.ListParentEdges(b.self)
}

// ListParents returns the distinct parent Properties of the owning
// Property, found by scanning edge lists rather than a back-pointer field
// (per spec.md §9's "multi-parent graph with cyclic look-up" design note).
func (b *Base) ListParents() []Property {
	edges := b.ListParentEdges()
	out := make([]Property, 0, len(edges))
	for _, e := range edges {
		if p, ok := e.Parent.(Property); ok {
			out = append(out, p)
		}
	}
	return out
}

// GetExtension returns the ExtensionProperty registered under name, or
// nil.
func (b *Base) GetExtension(name string) ExtensionProperty {
	return b.extensions[name]
}

// SetExtension attaches (or, if ext is nil, detaches) the ExtensionProperty
// under name. Detaching does not dispose the previous extension: callers
// that want that must call Dispose() on it explicitly (mirrors the
// Material-texture-slot-to-null behavior in spec.md §8's boundary list,
// which removes the edge/ownership record but leaves disposal to the
// caller or a later prune).
func (b *Base) SetExtension(name string, ext ExtensionProperty) {
	if ext == nil {
		delete(b.extensions, name)
		return
	}
	b.extensions[name] = ext
}

// ExtensionNames returns the names of every attached extension in Go map
// iteration order, which is neither insertion order nor stable between
// calls; callers needing a deterministic order must sort the slice.
func (b *Base) ExtensionNames() []string {
	out := make([]string, 0, len(b.extensions))
	for name := range b.extensions {
		out = append(out, name)
	}
	return out
}

// Dispose severs every edge incident to the owning Property, recursively
// disposes every attached extension, and marks the Property disposed.
// Subsequent operations against it fail with gerr.DisposedError (enforced
// by Graph.Connect's disposable check and by proptype setters that
// consult Disposed() directly). Extensions are not reachable via graph
// edges (they live in Base.extensions), so Dispose walks them explicitly
// — the one place the generic edge-only traversal in CopyEdges/Equals/Hash
// does not suffice on its own.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, name := range b.ExtensionNames() {
		if ext := b.extensions[name]; ext != nil {
			ext.Dispose()
		}
	}
	b.g.DisposeProperty(b.self)
}

// RequireLive returns gerr.DisposedError if the owning Property has
// already been disposed; proptype setters call this before mutating.
func (b *Base) RequireLive() error {
	if b.disposed {
		return &gerr.DisposedError{PropertyType: b.propertyType, Name: b.name}
	}
	return nil
}

// CopyEdges re-creates every outbound edge of src under dst, resolving
// each child through resolve. It knows nothing about src's concrete
// edge-field layout — Graph.ListChildEdges already carries each edge's
// name and attributes, so no per-type schema is needed to copy them,
// only to classify them for Equals/Hash.
func CopyEdges(g *graph.Graph, src, dst Property, resolve ResolveFunc) {
	for _, e := range src.Graph().ListChildEdges(src) {
		childProp, ok := e.Child.(Property)
		if !ok {
			continue
		}
		target := resolve(childProp)
		if target == nil {
			continue
		}
		g.Connect(dst, target, e.Name, e.Attrs, false)
	}
}

// edgeKind looks up the declared kind of a named edge field, defaulting to
// OrderedList for names the type's schema does not mention (the common
// case: a single-occurrence field behaves identically under positional
// and set comparison).
func edgeKind(p Property, name string) EdgeFieldKind {
	for _, f := range p.EdgeFields() {
		if f.Name == name {
			return f.Kind
		}
	}
	return OrderedList
}

func groupByName(edges []graph.Edge) map[string][]graph.Edge {
	out := make(map[string][]graph.Edge)
	for _, e := range edges {
		out[e.Name] = append(out[e.Name], e)
	}
	return out
}

type pairKey struct{ a, b Property }

// Equals reports whether a and b are structurally equal: same
// propertyType, equal attribute fields (per EqualAttrs), equal extras, the
// same set of attached extensions (recursively equal), and equal edges —
// compared positionally for OrderedList/SingleEdge/KeyedMap fields, as an
// unordered multiset for UnorderedSet fields (Root's top-level lists).
// skip names top-level attribute or edge-field names to ignore, used by
// transforms that intentionally compare "everything but X".
func Equals(a, b Property, skip map[string]bool) bool {
	return equalsRec(a, b, skip, map[pairKey]bool{})
}

func equalsRec(a, b Property, skip map[string]bool, visited map[pairKey]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.PropertyType() != b.PropertyType() {
		return false
	}
	key := pairKey{a, b}
	if visited[key] {
		return true
	}
	visited[key] = true

	if !skip["extras"] && !deepEqual(a.Extras(), b.Extras()) {
		return false
	}
	if !a.EqualAttrs(b) {
		return false
	}
	if !equalExtensions(a, b, skip, visited) {
		return false
	}
	return equalEdges(a, b, skip, visited)
}

func equalExtensions(a, b Property, skip map[string]bool, visited map[pairKey]bool) bool {
	an, bn := a.ExtensionNames(), b.ExtensionNames()
	if len(an) != len(bn) {
		return false
	}
	for _, name := range an {
		if skip[name] {
			continue
		}
		ae, be := a.GetExtension(name), b.GetExtension(name)
		if (ae == nil) != (be == nil) {
			return false
		}
		if ae != nil && !equalsRec(ae, be, skip, visited) {
			return false
		}
	}
	return true
}

func equalEdges(a, b Property, skip map[string]bool, visited map[pairKey]bool) bool {
	ag := groupByName(a.Graph().ListChildEdges(a))
	bg := groupByName(b.Graph().ListChildEdges(b))
	if len(ag) != len(bg) {
		return false
	}
	for name, aEdges := range ag {
		if skip[name] {
			continue
		}
		bEdges, ok := bg[name]
		if !ok || len(aEdges) != len(bEdges) {
			return false
		}
		switch edgeKind(a, name) {
		case UnorderedSet:
			if !equalUnordered(aEdges, bEdges, skip, visited) {
				return false
			}
		default:
			for i := range aEdges {
				if !equalEdgePair(aEdges[i], bEdges[i], skip, visited) {
					return false
				}
			}
		}
	}
	return true
}

func equalEdgePair(ae, be graph.Edge, skip map[string]bool, visited map[pairKey]bool) bool {
	if !deepEqual(map[string]interface{}(ae.Attrs), map[string]interface{}(be.Attrs)) {
		return false
	}
	ap, aok := ae.Child.(Property)
	bp, bok := be.Child.(Property)
	if aok != bok {
		return false
	}
	if !aok {
		return ae.Child == be.Child
	}
	return equalsRec(ap, bp, skip, visited)
}

func equalUnordered(aEdges, bEdges []graph.Edge, skip map[string]bool, visited map[pairKey]bool) bool {
	used := make([]bool, len(bEdges))
	for _, ae := range aEdges {
		matched := false
		for j, be := range bEdges {
			if used[j] {
				continue
			}
			if equalEdgePair(ae, be, skip, visited) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func deepEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

// Hash returns a structural hash consistent with Equals: two Properties
// that Equals reports equal always hash equal (the converse need not
// hold). cache memoizes per-Property hashes within one call tree so
// diamond-shaped references (an Accessor used by two Primitives) are
// hashed once; pass a fresh map per top-level call.
func Hash(p Property, skip map[string]bool, cache map[Property]uint32) uint32 {
	if cache == nil {
		cache = make(map[Property]uint32)
	}
	return hashRec(p, skip, cache)
}

func hashRec(p Property, skip map[string]bool, cache map[Property]uint32) uint32 {
	if h, ok := cache[p]; ok {
		return h
	}
	cache[p] = 0x9e3779b9 // break cycles: provisional value while descending
	h := fnv32(p.PropertyType())
	h = combineHash(h, p.HashAttrs())
	for _, name := range p.ExtensionNames() {
		if skip[name] {
			continue
		}
		if ext := p.GetExtension(name); ext != nil {
			h = combineHash(h, fnv32(name))
			h = combineHash(h, hashRec(ext, skip, cache))
		}
	}
	for _, e := range p.Graph().ListChildEdges(p) {
		if skip[e.Name] {
			continue
		}
		eh := fnv32(e.Name)
		if cp, ok := e.Child.(Property); ok {
			eh = combineHash(eh, hashRec(cp, skip, cache))
		}
		if edgeKind(p, e.Name) == UnorderedSet {
			h ^= eh // order-independent combine for unordered fields
		} else {
			h = combineHash(h, eh)
		}
	}
	cache[p] = h
	return h
}

func fnv32(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func combineHash(a, b uint32) uint32 {
	return (a*16777619 + b) ^ (a >> 13)
}

// Clone creates edges and attributes of src onto an already-constructed
// dst of the same concrete type (the caller obtains dst from the
// appropriate Document factory so it is registered under the target
// graph's Root). See spec.md §4.2 copy().
func Clone(g *graph.Graph, src, dst Property, resolve ResolveFunc) {
	dst.SetName(src.Name())
	dst.SetExtras(src.Extras())
	src.CloneAttrs(dst)
	CopyEdges(g, src, dst, resolve)
	for _, name := range src.ExtensionNames() {
		ext := src.GetExtension(name)
		if ext == nil {
			continue
		}
		if cloned, ok := resolve(ext).(ExtensionProperty); ok {
			dst.SetExtension(name, cloned)
		}
	}
}
