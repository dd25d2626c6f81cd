// Package accessorio implements the typed arithmetic spec.md §4.5
// describes: normalized integer<->float conversion per component type,
// element get/set, min/max (raw and normalized), and sparse
// materialize/compact logic.
//
// Grounded on math32/array.go's ArrayF32/ArrayU32 (flat backing slice,
// itemSize-based Get/Append) and the teacher loader's
// loadAccessorF32/loadAccessorU32 component-type dispatch, generalized
// from the teacher's widening-only integer-to-float reads into full
// bidirectional conversion — the teacher never wrote data back to a
// normalized integer accessor, only ever read render data forward.
package accessorio

import (
	"math"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/proptype"
)

// DecodeComponent converts one raw stored component value to normalized
// float space, per spec.md §4.5's int->float column. raw is the bit
// pattern of the component as stored (already sign/zero-extended to
// int64 by the caller for integer types, or the float32 bits for f32).
func DecodeComponent(ct proptype.ComponentType, normalized bool, raw int64) float32 {
	if ct == proptype.ComponentF32 {
		return math.Float32frombits(uint32(raw))
	}
	if !normalized {
		return float32(raw)
	}
	switch ct {
	case proptype.ComponentU8:
		return float32(raw) / 255
	case proptype.ComponentI8:
		v := float32(raw) / 127
		if v < -1 {
			v = -1
		}
		return v
	case proptype.ComponentU16:
		return float32(raw) / 65535
	case proptype.ComponentI16:
		v := float32(raw) / 32767
		if v < -1 {
			v = -1
		}
		return v
	default: // u32
		return float32(raw)
	}
}

// EncodeComponent converts one normalized-float-space value back to its
// raw stored component value, per spec.md §4.5's float->int column.
// Normalized integer types are scaled, rounded and clamped to their range;
// non-normalized integer types are rounded only; ComponentF32 returns the
// value's float32 bit pattern.
func EncodeComponent(ct proptype.ComponentType, normalized bool, f float32) int64 {
	if ct == proptype.ComponentF32 {
		return int64(math.Float32bits(f))
	}
	if !normalized {
		return int64(math.Round(float64(f)))
	}
	switch ct {
	case proptype.ComponentU8:
		return clampRound(f*255, 0, 255)
	case proptype.ComponentI8:
		return clampRound(f*127, -128, 127)
	case proptype.ComponentU16:
		return clampRound(f*65535, 0, 65535)
	case proptype.ComponentI16:
		return clampRound(f*32767, -32768, 32767)
	default: // u32
		return clampRound(f, 0, math.MaxUint32)
	}
}

func clampRound(f float32, lo, hi float64) int64 {
	v := math.Round(float64(f))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return int64(v)
}

// GetElement returns the itemSize scalars at index (in normalized float
// space, i.e. exactly as proptype.Accessor stores them internally).
func GetElement(a *proptype.Accessor, index int) ([]float32, error) {
	itemSize := a.ItemSize()
	if index < 0 || index >= a.Count() {
		return nil, &gerr.OutOfRangeError{What: "accessor element", Index: index, Limit: a.Count()}
	}
	start := index * itemSize
	out := make([]float32, itemSize)
	copy(out, a.Array()[start:start+itemSize])
	return out, nil
}

// SetElement overwrites the itemSize scalars at index.
func SetElement(a *proptype.Accessor, index int, value []float32) error {
	itemSize := a.ItemSize()
	if len(value) != itemSize {
		return &gerr.InvariantViolation{PropertyType: "Accessor", Reason: "setElement value length must equal itemSize"}
	}
	if index < 0 || index >= a.Count() {
		return &gerr.OutOfRangeError{What: "accessor element", Index: index, Limit: a.Count()}
	}
	arr := a.Array()
	copy(arr[index*itemSize:index*itemSize+itemSize], value)
	return nil
}

// GetMinMaxNormalized returns per-component min/max across every element,
// in the same normalized float space Array() stores. NaN components are
// skipped entirely (first non-NaN value wins ties), per spec.md §4.5.
func GetMinMaxNormalized(a *proptype.Accessor) (min, max []float32) {
	itemSize := a.ItemSize()
	min = make([]float32, itemSize)
	max = make([]float32, itemSize)
	seen := make([]bool, itemSize)
	arr := a.Array()
	for i := 0; i < len(arr); i++ {
		comp := i % itemSize
		v := arr[i]
		if v != v { // NaN
			continue
		}
		if !seen[comp] {
			min[comp], max[comp] = v, v
			seen[comp] = true
			continue
		}
		if v < min[comp] {
			min[comp] = v
		}
		if v > max[comp] {
			max[comp] = v
		}
	}
	return min, max
}

// GetMinMaxRaw returns per-component min/max in the numeric space glTF's
// accessor min/max JSON arrays store: the encoded integer code for
// integer component types, and the float value itself (not its bit
// pattern) for ComponentF32.
func GetMinMaxRaw(a *proptype.Accessor) (min, max []float64) {
	normMin, normMax := GetMinMaxNormalized(a)
	min = make([]float64, len(normMin))
	max = make([]float64, len(normMax))
	for i := range normMin {
		min[i] = rawJSONValue(a.ComponentType(), a.Normalized(), normMin[i])
		max[i] = rawJSONValue(a.ComponentType(), a.Normalized(), normMax[i])
	}
	return min, max
}

// rawJSONValue converts one normalized-float-space component to the
// value glTF's accessor min/max arrays store for it. EncodeComponent's
// int64 result is the float32 bit pattern for ComponentF32, not the
// value, so f32 bypasses it and is returned as-is.
func rawJSONValue(ct proptype.ComponentType, normalized bool, f float32) float64 {
	if ct == proptype.ComponentF32 {
		return float64(f)
	}
	return float64(EncodeComponent(ct, normalized, f))
}

// MaterializeSparse returns a copy of a's dense array with every sparse
// substitution applied, leaving the Accessor itself untouched. Per
// spec.md §4.5, reads always see the dense interpretation.
func MaterializeSparse(a *proptype.Accessor) []float32 {
	dense := append([]float32(nil), a.Array()...)
	s := a.Sparse()
	if s == nil {
		return dense
	}
	itemSize := a.ItemSize()
	for i, idx := range s.Indices {
		if int(idx) >= a.Count() {
			continue
		}
		copy(dense[int(idx)*itemSize:int(idx)*itemSize+itemSize], s.Values[i*itemSize:i*itemSize+itemSize])
	}
	return dense
}

// CompactSparse examines a dense array against its zero/base value and
// proposes a sparse representation if the fraction of elements differing
// from zero stays under threshold (the "implementation threshold" spec.md
// §4.5 leaves open; this function takes it from the caller).
// When the density exceeds threshold, ok is false and the caller should
// write the accessor dense instead.
func CompactSparse(dense []float32, itemSize int, threshold float32) (sparse *proptype.Sparse, ok bool) {
	count := len(dense) / itemSize
	var indices []uint32
	var values []float32
	for i := 0; i < count; i++ {
		elem := dense[i*itemSize : i*itemSize+itemSize]
		nonZero := false
		for _, v := range elem {
			if v != 0 {
				nonZero = true
				break
			}
		}
		if nonZero {
			indices = append(indices, uint32(i))
			values = append(values, elem...)
		}
	}
	if count == 0 || float32(len(indices))/float32(count) > threshold {
		return nil, false
	}
	return &proptype.Sparse{Count: len(indices), Indices: indices, Values: values}, true
}
