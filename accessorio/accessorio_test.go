package accessorio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/proptype"
)

func TestNormalizedU8RoundTrip(t *testing.T) {
	raw := EncodeComponent(proptype.ComponentU8, true, 1.0)
	assert.Equal(t, int64(255), raw)
	f := DecodeComponent(proptype.ComponentU8, true, raw)
	assert.InDelta(t, 1.0, f, 0.001)

	raw = EncodeComponent(proptype.ComponentU8, true, 0)
	assert.Equal(t, int64(0), raw)
}

func TestNormalizedI16ClampsNegativeOne(t *testing.T) {
	f := DecodeComponent(proptype.ComponentI16, true, -32768)
	assert.Equal(t, float32(-1), f)
}

func TestF32IsIdentityThroughBits(t *testing.T) {
	raw := EncodeComponent(proptype.ComponentF32, false, 3.25)
	f := DecodeComponent(proptype.ComponentF32, false, raw)
	assert.Equal(t, float32(3.25), f)
}

func TestGetSetElementRoundTrips(t *testing.T) {
	g := graph.New()
	a := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	assert.NoError(t, a.SetArray([]float32{1, 2, 3, 4, 5, 6}))

	err := SetElement(a, 1, []float32{7, 8, 9})
	assert.NoError(t, err)

	elem, err := GetElement(a, 1)
	assert.NoError(t, err)
	assert.Equal(t, []float32{7, 8, 9}, elem)

	_, err = GetElement(a, 5)
	assert.Error(t, err)
}

func TestGetMinMaxNormalizedSkipsNaN(t *testing.T) {
	g := graph.New()
	a := proptype.NewAccessor(g, proptype.TypeScalar, proptype.ComponentF32)
	nan := float32(0)
	nan = nan / nan
	assert.NoError(t, a.SetArray([]float32{nan, 3, 1, nan, 2}))

	min, max := GetMinMaxNormalized(a)
	assert.Equal(t, []float32{1}, min)
	assert.Equal(t, []float32{3}, max)
}

func TestGetMinMaxRawConvertsToStorageSpace(t *testing.T) {
	g := graph.New()
	a := proptype.NewAccessor(g, proptype.TypeScalar, proptype.ComponentU8)
	assert.NoError(t, a.SetNormalized(true))
	assert.NoError(t, a.SetArray([]float32{0, 1, 0.5}))

	min, max := GetMinMaxRaw(a)
	assert.Equal(t, []float64{0}, min)
	assert.Equal(t, []float64{255}, max)
}

func TestGetMinMaxRawKeepsF32ValuesNotBitPatterns(t *testing.T) {
	g := graph.New()
	a := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	assert.NoError(t, a.SetArray([]float32{
		0, 0, 0,
		1, 2, 3,
		-1, 0.5, 2,
	}))

	min, max := GetMinMaxRaw(a)
	assert.Equal(t, []float64{-1, 0, 0}, min)
	assert.Equal(t, []float64{1, 2, 3}, max)
}

func TestMaterializeSparseAppliesSubstitutions(t *testing.T) {
	g := graph.New()
	a := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	assert.NoError(t, a.SetArray([]float32{0, 0, 0, 0, 0, 0, 0, 0, 0}))
	assert.NoError(t, a.SetSparse(&proptype.Sparse{
		Count:   1,
		Indices: []uint32{1},
		Values:  []float32{9, 9, 9},
	}))

	dense := MaterializeSparse(a)
	assert.Equal(t, []float32{0, 0, 0, 9, 9, 9, 0, 0, 0}, dense)
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0, 0}, a.Array())
}

func TestCompactSparseRejectsDenseData(t *testing.T) {
	dense := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	sparse, ok := CompactSparse(dense, 3, 0.5)
	assert.False(t, ok)
	assert.Nil(t, sparse)
}

func TestCompactSparseAcceptsSparseData(t *testing.T) {
	dense := []float32{0, 0, 0, 9, 9, 9, 0, 0, 0, 0, 0, 0}
	sparse, ok := CompactSparse(dense, 3, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 1, sparse.Count)
	assert.Equal(t, []uint32{1}, sparse.Indices)
	assert.Equal(t, []float32{9, 9, 9}, sparse.Values)
}
