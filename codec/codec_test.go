package codec

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/gmath"
	"github.com/g3n/gltfedit/ioplatform"
	"github.com/g3n/gltfedit/proptype"
)

// buildTriangle constructs a minimal but representative document: one
// indexed triangle primitive, a material, a skinned/camera-bearing node
// tree, and a scene, exercising every collection the wire format covers.
func buildTriangle(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("gltfedit-test")

	positions := doc.CreateAccessor(proptype.TypeVec3, proptype.ComponentF32)
	require.NoError(t, positions.SetArray([]float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}))

	indices := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, indices.SetArray([]float32{0, 1, 2}))

	mat := doc.CreateMaterial()
	require.NoError(t, mat.SetBaseColorFactor([4]float32{0.2, 0.4, 0.6, 1}))
	require.NoError(t, mat.SetDoubleSided(true))

	prim := doc.CreatePrimitive()
	require.NoError(t, prim.SetAttribute("POSITION", positions))
	require.NoError(t, prim.SetIndices(indices))
	require.NoError(t, prim.SetMaterial(mat))
	require.NoError(t, prim.SetMode(proptype.ModeTriangles))

	mesh := doc.CreateMesh()
	require.NoError(t, mesh.AddPrimitive(prim))

	root := doc.CreateNode()
	require.NoError(t, root.SetTRS(
		gmath.Vector3{X: 1, Y: 2, Z: 3},
		gmath.Quaternion{X: 0, Y: 0, Z: 0, W: 1},
		gmath.Vector3{X: 1, Y: 1, Z: 1},
	))

	child := doc.CreateNode()
	require.NoError(t, child.SetMesh(mesh))
	require.NoError(t, root.AddChild(child))

	cam := doc.CreatePerspectiveCamera(0.8, 0.1)
	camNode := doc.CreateNode()
	require.NoError(t, camNode.SetCamera(cam))
	require.NoError(t, root.AddChild(camNode))

	scene := doc.CreateScene()
	require.NoError(t, scene.AddChild(root))
	require.NoError(t, doc.Root().SetDefaultScene(scene))

	return doc
}

func TestEncodeDecodeGLBRoundTrip(t *testing.T) {
	doc := buildTriangle(t)

	raw, err := EncodeGLBBytes(doc)
	require.NoError(t, err)

	got, err := DecodeGLBReader(bytes.NewReader(raw), "", ioplatform.Default)
	require.NoError(t, err)

	assert.Len(t, got.Root().Accessors(), 2)
	assert.Len(t, got.Root().Materials(), 1)
	assert.Len(t, got.Root().Meshes(), 1)
	assert.Len(t, got.Root().Nodes(), 3)
	assert.Len(t, got.Root().Scenes(), 1)
	require.NotNil(t, got.Root().DefaultScene())

	positions := got.Root().Accessors()[0]
	assert.Equal(t, proptype.TypeVec3, positions.ElementType())
	assert.InDeltaSlice(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, positions.Array(), 1e-6)

	indices := got.Root().Accessors()[1]
	assert.InDeltaSlice(t, []float32{0, 1, 2}, indices.Array(), 1e-6)

	mat := got.Root().Materials()[0]
	assert.InDeltaSlice(t, []float32{0.2, 0.4, 0.6, 1}, mat.BaseColorFactor()[:], 1e-6)
	assert.True(t, mat.DoubleSided())

	var root *proptype.Node
	for _, n := range got.Root().Nodes() {
		if len(n.Children()) == 2 {
			root = n
		}
	}
	require.NotNil(t, root)
	assert.Equal(t, gmath.Vector3{X: 1, Y: 2, Z: 3}, root.Translation())

	var meshNode, camNode *proptype.Node
	for _, n := range root.Children() {
		if n.Mesh() != nil {
			meshNode = n
		}
		if n.Camera() != nil {
			camNode = n
		}
	}
	require.NotNil(t, meshNode)
	require.NotNil(t, camNode)
	assert.Equal(t, proptype.CameraPerspective, camNode.Camera().Type())
}

func TestEncodeDecodeJSONRoundTripViaFile(t *testing.T) {
	doc := buildTriangle(t)
	path := filepath.Join(t.TempDir(), "scene.gltf")

	require.NoError(t, EncodeJSON(doc, path, ioplatform.Default))

	got, err := DecodeJSON(path, ioplatform.Default)
	require.NoError(t, err)
	assert.Len(t, got.Root().Meshes(), 1)
	assert.Len(t, got.Root().Nodes(), 3)
}

func TestEncodeDecodeGLBPreservesSparseAccessor(t *testing.T) {
	doc := document.New("gltfedit-test")
	a := doc.CreateAccessor(proptype.TypeVec3, proptype.ComponentF32)
	require.NoError(t, a.SetArray(make([]float32, 4*3)))
	require.NoError(t, a.SetSparse(&proptype.Sparse{
		Count:          2,
		Indices:        []uint32{0, 3},
		IndexComponent: proptype.ComponentU16,
		Values:         []float32{1, 1, 1, 2, 2, 2},
	}))

	raw, err := EncodeGLBBytes(doc)
	require.NoError(t, err)

	got, err := DecodeGLBReader(bytes.NewReader(raw), "", ioplatform.Default)
	require.NoError(t, err)

	gotAcc := got.Root().Accessors()[0]
	assert.Equal(t, 4, gotAcc.Count())
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, gotAcc.Array())
}

func TestDecodeGLBRejectsBadMagic(t *testing.T) {
	bad := []byte("not-a-glb-file-at-all-but-long-enough")
	_, err := DecodeGLBReader(bytes.NewReader(bad), "", ioplatform.Default)
	require.Error(t, err)
	var containerErr *gerr.InvalidContainerError
	assert.ErrorAs(t, err, &containerErr)
}

func TestDecodeGLBRejectsTruncatedChunk(t *testing.T) {
	doc := buildTriangle(t)
	raw, err := EncodeGLBBytes(doc)
	require.NoError(t, err)

	truncated := raw[:len(raw)-10]
	_, err = DecodeGLBReader(bytes.NewReader(truncated), "", ioplatform.Default)
	require.Error(t, err)
	var containerErr *gerr.InvalidContainerError
	assert.ErrorAs(t, err, &containerErr)
}

func TestDecodeBuffersReportsUnresolvedExternalURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gltf")
	manifest := []byte(`{"asset":{"version":"2.0"},"buffers":[{"uri":"missing.bin","byteLength":4}]}`)
	require.NoError(t, ioplatform.Default.WriteFile(path, manifest))

	_, err := DecodeJSON(path, ioplatform.Default)
	assert.Error(t, err)
}

// TestEncodeCategorizesAccessorsByEdgeUsageNotType covers spec.md §8
// scenario 6: accessors are bucketed into bufferViews by which edge
// kind references them, not by element/component type, and the
// emitted bufferViews appear in a fixed index -> vertex -> other order.
func TestEncodeCategorizesAccessorsByEdgeUsageNotType(t *testing.T) {
	doc := buildTriangle(t)

	// An inverse-bind-matrices accessor is MAT4/f32, the same element and
	// component type a vertex attribute could use, but it is reached by
	// neither an index nor an attribute/morph-target edge, so it must
	// land in the "other" category rather than being mistaken for a
	// vertex attribute by its type alone.
	joint := doc.CreateNode()
	skin := doc.CreateSkin()
	require.NoError(t, skin.AddJoint(joint))
	ibm := doc.CreateAccessor(proptype.TypeMat4, proptype.ComponentF32)
	require.NoError(t, ibm.SetArray(make([]float32, 16)))
	require.NoError(t, skin.SetInverseBindMatrices(ibm))

	w, _, err := encode(doc, true)
	require.NoError(t, err)

	require.Len(t, w.BufferViews, 3, "one bufferView per usage category: index, vertex, other")
	assert.Equal(t, targetElementArrayBuffer, w.BufferViews[0].Target, "index view must come first")
	assert.Equal(t, targetArrayBuffer, w.BufferViews[1].Target, "vertex view must come second")
	assert.Equal(t, 0, w.BufferViews[2].Target, "other view must come last and be untargeted")

	accessorIx := newIndexer(toProperties(doc.Root().Accessors()))

	positions := doc.Root().Accessors()[0] // POSITION, a vertex attribute
	posIx, ok := accessorIx.of(positions)
	require.True(t, ok)
	assert.Equal(t, 1, *w.Accessors[posIx].BufferView, "vertex attribute accessor must land in the vertex bufferView")

	indices := doc.Root().Accessors()[1] // the triangle's index accessor
	idxIx, ok := accessorIx.of(indices)
	require.True(t, ok)
	assert.Equal(t, 0, *w.Accessors[idxIx].BufferView, "index accessor must land in the index bufferView")

	ibmIx, ok := accessorIx.of(ibm)
	require.True(t, ok)
	assert.Equal(t, 2, *w.Accessors[ibmIx].BufferView, "IBM accessor must land in the 'other' bufferView")
}

// TestEncodeRejectsAccessorUsedAsBothIndexAndVertexAttribute covers the
// GLOSSARY's "Accessor usage category" invariant: an accessor cannot be
// both an index buffer and a vertex attribute at once.
func TestEncodeRejectsAccessorUsedAsBothIndexAndVertexAttribute(t *testing.T) {
	doc := document.New("gltfedit-test")
	shared := doc.CreateAccessor(proptype.TypeScalar, proptype.ComponentU16)
	require.NoError(t, shared.SetArray([]float32{0, 1, 2}))

	p1 := doc.CreatePrimitive()
	require.NoError(t, p1.SetIndices(shared))
	p2 := doc.CreatePrimitive()
	require.NoError(t, p2.SetAttribute("POSITION", shared))

	mesh := doc.CreateMesh()
	require.NoError(t, mesh.AddPrimitive(p1))
	require.NoError(t, mesh.AddPrimitive(p2))

	_, _, err := encode(doc, true)
	require.Error(t, err)
	var invErr *gerr.InvariantViolation
	assert.ErrorAs(t, err, &invErr)
}

func TestDecodeAccessorsRejectsOutOfRangeBufferView(t *testing.T) {
	jsonBytes := []byte(`{
		"asset": {"version": "2.0"},
		"accessors": [{"bufferView": 5, "componentType": 5126, "count": 1, "type": "SCALAR"}]
	}`)
	_, err := DecodeJSONReader(bytes.NewReader(jsonBytes), "", ioplatform.Default)
	require.Error(t, err)
	var rangeErr *gerr.OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
}
