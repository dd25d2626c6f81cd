package proptype

import (
	"math"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Sparse holds a sparse accessor's substitution record: count values at
// given indices override the dense (or implicit zero) array. Grounded on
// spec.md §3's Accessor row ("sparse?") and glTF's sparse accessor object;
// kept as a plain attribute rather than sub-Property edges since its
// indices/values arrays have no independent identity in the graph.
type Sparse struct {
	Count           int
	Indices         []uint32
	IndexComponent  ComponentType
	Values          []float32
}

// Accessor is the numeric core Property: a flat, already-dequantized
// []float32 array (see accessorio for the componentType<->float
// conversion arithmetic applied when reading/writing the backing buffer
// bytes), tagged with the element layout needed to interpret it.
//
// Grounded on math32/array.go's ArrayF32 (flat backing slice, itemSize
// bookkeeping, Append/Get accessors) generalized with componentType and
// normalization metadata the teacher's array never needed, since it only
// ever stored already-float render data.
type Accessor struct {
	property.Base

	elementType   ElementType
	componentType ComponentType
	normalized    bool
	data          []float32 // len == count * elementType.NumComponents()
	byteOffset    int
	sparse        *Sparse
}

// NewAccessor constructs an Accessor with the given element/component
// layout and zero elements, registered under g.
func NewAccessor(g *graph.Graph, elementType ElementType, componentType ComponentType) *Accessor {
	a := &Accessor{elementType: elementType, componentType: componentType}
	a.Init(g, a, "Accessor")
	return a
}

func (a *Accessor) ElementType() ElementType     { return a.elementType }
func (a *Accessor) ComponentType() ComponentType { return a.componentType }
func (a *Accessor) Normalized() bool             { return a.normalized }
func (a *Accessor) ByteOffset() int              { return a.byteOffset }
func (a *Accessor) Sparse() *Sparse              { return a.sparse }

// SetNormalized sets the normalized flag. Per spec.md §3's invariant,
// normalized is only meaningful with an integer componentType.
func (a *Accessor) SetNormalized(normalized bool) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	if normalized && !a.componentType.IsInteger() {
		return &gerr.InvariantViolation{PropertyType: "Accessor", Reason: "normalized requires an integer componentType"}
	}
	a.normalized = normalized
	return nil
}

// ItemSize is the number of scalar components per element.
func (a *Accessor) ItemSize() int { return a.elementType.NumComponents() }

// Count is the number of elements currently stored.
func (a *Accessor) Count() int {
	if a.ItemSize() == 0 {
		return 0
	}
	return len(a.data) / a.ItemSize()
}

// Array returns the flat backing array directly (length == Count() *
// ItemSize()). Callers needing per-element access should use accessorio's
// typed Get/Set helpers instead, which respect normalization.
func (a *Accessor) Array() []float32 { return a.data }

// SetArray replaces the backing array wholesale. Enforces spec.md §3's
// "array.length == count × itemSize" invariant by construction: count is
// derived from the new array's length, never stored or checked against a
// stale value.
func (a *Accessor) SetArray(data []float32) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	itemSize := a.ItemSize()
	if itemSize == 0 || len(data)%itemSize != 0 {
		return &gerr.InvariantViolation{PropertyType: "Accessor", Reason: "array length is not a multiple of itemSize"}
	}
	a.data = data
	return nil
}

// SetByteOffset sets the accessor's offset into its bufferView, used only
// by the codec's read/write pipeline.
func (a *Accessor) SetByteOffset(off int) { a.byteOffset = off }

// SetSparse installs (or, with nil, clears) the sparse substitution
// record.
func (a *Accessor) SetSparse(s *Sparse) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	if s != nil && s.Count > a.Count() {
		return &gerr.InvariantViolation{PropertyType: "Accessor", Reason: "sparse count exceeds accessor count"}
	}
	a.sparse = s
	return nil
}

// SetBuffer connects (or, with nil, disconnects) the Buffer this accessor
// is backed by at write time. Most accessors share a document-wide buffer
// assigned by the codec's write pipeline; setting one explicitly pins the
// accessor to it instead.
func (a *Accessor) SetBuffer(buf *Buffer) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	g := a.Graph()
	for _, e := range g.ListChildEdges(a) {
		if e.Name == "buffer" {
			g.Disconnect(e.Handle)
		}
	}
	if buf != nil {
		if _, err := g.Connect(a, buf, "buffer", nil, false); err != nil {
			return err
		}
	}
	return nil
}

// Buffer returns the connected Buffer, or nil.
func (a *Accessor) Buffer() *Buffer {
	for _, e := range a.Graph().ListChildEdges(a) {
		if e.Name == "buffer" {
			if b, ok := e.Child.(*Buffer); ok {
				return b
			}
		}
	}
	return nil
}

func (a *Accessor) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{{Name: "buffer", Kind: property.SingleEdge}}
}

func (a *Accessor) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Accessor)
	if !ok {
		return false
	}
	if a.elementType != o.elementType || a.componentType != o.componentType || a.normalized != o.normalized {
		return false
	}
	if len(a.data) != len(o.data) {
		return false
	}
	for i := range a.data {
		if a.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (a *Accessor) CloneAttrs(dst property.Property) {
	o := dst.(*Accessor)
	o.elementType = a.elementType
	o.componentType = a.componentType
	o.normalized = a.normalized
	o.data = append([]float32(nil), a.data...)
	o.byteOffset = a.byteOffset
	if a.sparse != nil {
		cp := *a.sparse
		cp.Indices = append([]uint32(nil), a.sparse.Indices...)
		cp.Values = append([]float32(nil), a.sparse.Values...)
		o.sparse = &cp
	}
}

func (a *Accessor) HashAttrs() uint32 {
	h := uint32(2166136261)
	h = (h ^ uint32(a.componentType)) * 16777619
	for i := 0; i < len(a.elementType); i++ {
		h = (h ^ uint32(a.elementType[i])) * 16777619
	}
	for _, f := range a.data {
		h = (h ^ math.Float32bits(f)) * 16777619
	}
	return h
}
