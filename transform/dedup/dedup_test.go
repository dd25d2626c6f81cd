package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/proptype"
)

func buildDocWithDuplicateIndexAccessors(t *testing.T) (*document.Document, *proptype.Primitive, *proptype.Primitive) {
	t.Helper()
	doc := document.New("dedup-test")

	a1 := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, a1.SetArray([]float32{0, 1, 2}))
	a2 := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, a2.SetArray([]float32{0, 1, 2}))

	positions := doc.CreateAccessor(proptype.TypeVec3, proptype.ComponentF32)
	require.NoError(t, positions.SetArray([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}))

	p1 := doc.CreatePrimitive()
	require.NoError(t, p1.SetAttribute("POSITION", positions))
	require.NoError(t, p1.SetIndices(a1))

	p2 := doc.CreatePrimitive()
	require.NoError(t, p2.SetAttribute("POSITION", positions))
	require.NoError(t, p2.SetIndices(a2))

	mesh := doc.CreateMesh()
	require.NoError(t, mesh.AddPrimitive(p1))
	require.NoError(t, mesh.AddPrimitive(p2))

	return doc, p1, p2
}

func TestDedupCollapsesIdenticalAccessors(t *testing.T) {
	doc, p1, p2 := buildDocWithDuplicateIndexAccessors(t)
	require.Len(t, doc.Root().Accessors(), 3)

	require.NoError(t, doc.Transform(New(DefaultOptions())))

	assert.Len(t, doc.Root().Accessors(), 2)
	assert.Same(t, p1.Indices(), p2.Indices())
}

func TestDedupIsIdempotent(t *testing.T) {
	doc, _, _ := buildDocWithDuplicateIndexAccessors(t)

	require.NoError(t, doc.Transform(New(DefaultOptions())))
	after1 := doc.Root().Accessors()

	require.NoError(t, doc.Transform(New(DefaultOptions())))
	after2 := doc.Root().Accessors()

	assert.Equal(t, after1, after2)
}

func TestDedupLeavesDistinctAccessorsAlone(t *testing.T) {
	doc := document.New("dedup-test")
	a1 := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, a1.SetArray([]float32{0, 1, 2}))
	a2 := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, a2.SetArray([]float32{2, 1, 0}))

	require.NoError(t, doc.Transform(New(DefaultOptions())))
	assert.Len(t, doc.Root().Accessors(), 2)
}

func TestDedupMaterialsWhenRequested(t *testing.T) {
	doc := document.New("dedup-test")
	m1 := doc.CreateMaterial()
	require.NoError(t, m1.SetBaseColorFactor([4]float32{1, 0, 0, 1}))
	m2 := doc.CreateMaterial()
	require.NoError(t, m2.SetBaseColorFactor([4]float32{1, 0, 0, 1}))
	require.Len(t, doc.Root().Materials(), 2)

	require.NoError(t, doc.Transform(New(Options{PropertyTypes: []PropertyType{TypeMaterial}})))
	assert.Len(t, doc.Root().Materials(), 1)
}
