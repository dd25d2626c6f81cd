package proptype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/graph"
)

func TestAccessorSetArrayEnforcesItemSize(t *testing.T) {
	g := graph.New()
	a := NewAccessor(g, TypeVec3, ComponentF32)
	assert.NoError(t, a.SetArray([]float32{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, 2, a.Count())
	assert.Error(t, a.SetArray([]float32{1, 2}))
}

func TestAccessorNormalizedRequiresIntegerComponent(t *testing.T) {
	g := graph.New()
	a := NewAccessor(g, TypeVec3, ComponentF32)
	assert.Error(t, a.SetNormalized(true))

	b := NewAccessor(g, TypeVec3, ComponentU8)
	assert.NoError(t, b.SetNormalized(true))
}

func TestPrimitiveRejectsNonIntegerIndices(t *testing.T) {
	g := graph.New()
	p := NewPrimitive(g)
	bad := NewAccessor(g, TypeScalar, ComponentF32)
	assert.Error(t, p.SetIndices(bad))

	good := NewAccessor(g, TypeScalar, ComponentU16)
	assert.NoError(t, p.SetIndices(good))
	assert.Equal(t, good, p.Indices())
}

func TestSkinInverseBindMatricesCountMustMatchJoints(t *testing.T) {
	g := graph.New()
	s := NewSkin(g)
	j1, j2 := NewNode(g), NewNode(g)
	assert.NoError(t, s.AddJoint(j1))
	assert.NoError(t, s.AddJoint(j2))

	ibm := NewAccessor(g, TypeMat4, ComponentF32)
	assert.NoError(t, ibm.SetArray(make([]float32, 16)))
	assert.Error(t, s.SetInverseBindMatrices(ibm))

	assert.NoError(t, ibm.SetArray(make([]float32, 32)))
	assert.NoError(t, s.SetInverseBindMatrices(ibm))
}

func TestAnimationRejectsChannelWithForeignSampler(t *testing.T) {
	g := graph.New()
	anim := NewAnimation(g)
	otherAnim := NewAnimation(g)
	sampler := NewAnimationSampler(g)
	assert.NoError(t, otherAnim.AddSampler(sampler))

	ch := NewAnimationChannel(g, PathTranslation)
	assert.NoError(t, ch.SetSampler(sampler))

	assert.Error(t, anim.AddChannel(ch))

	assert.NoError(t, anim.AddSampler(sampler))
	assert.NoError(t, anim.AddChannel(ch))
}

func TestNodeAddChildRejectsCycle(t *testing.T) {
	g := graph.New()
	a, b, c := NewNode(g), NewNode(g), NewNode(g)
	assert.NoError(t, a.AddChild(b))
	assert.NoError(t, b.AddChild(c))
	assert.Error(t, c.AddChild(a))
}

func TestMaterialAlphaCutoffRequiresMaskMode(t *testing.T) {
	g := graph.New()
	m := NewMaterial(g)
	assert.Error(t, m.SetAlphaCutoff(0.3))
	assert.NoError(t, m.SetAlphaMode(AlphaMask))
	assert.NoError(t, m.SetAlphaCutoff(0.3))
}

func TestRootAddMeshListsMesh(t *testing.T) {
	g := graph.New()
	root := NewRoot(g, "gltfedit-test")
	mesh := NewMesh(g)
	assert.NoError(t, root.AddMesh(mesh))

	assert.Len(t, root.Meshes(), 1)
	assert.Equal(t, mesh, root.Meshes()[0])
}
