package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/proptype"
)

func TestFactoriesRegisterUnderRoot(t *testing.T) {
	d := New("gltfedit-test")
	mesh := d.CreateMesh()
	acc := d.CreateAccessor(proptype.TypeVec3, proptype.ComponentF32)

	assert.Contains(t, d.Root().Meshes(), mesh)
	assert.Contains(t, d.Root().Accessors(), acc)
}

func TestCloneIsStructurallyEqualAndIndependent(t *testing.T) {
	d := New("gltfedit-test")
	mesh := d.CreateMesh()
	mesh.AddPrimitive(d.CreatePrimitive())

	clone := d.Clone()
	assert.NotSame(t, d.Root(), clone.Root())
	assert.Len(t, clone.Root().Meshes(), 1)

	clone.CreateMesh()
	assert.Len(t, d.Root().Meshes(), 1)
	assert.Len(t, clone.Root().Meshes(), 2)
}

func TestMergeAppendsIntoThisRoot(t *testing.T) {
	a := New("a")
	a.CreateMesh()

	b := New("b")
	b.CreateMesh()
	b.CreateMesh()

	a.Merge(b)
	assert.Len(t, a.Root().Meshes(), 3)
}

func TestTransformPipelineTracksStack(t *testing.T) {
	d := New("gltfedit-test")
	var sawPending bool

	inner := Transform{Name: "inner", Run: func(d *Document, ctx *TransformContext) error {
		sawPending = IsTransformPending(ctx, "inner", "outer")
		return nil
	}}
	outer := Transform{Name: "outer", Run: func(d *Document, ctx *TransformContext) error {
		return d.TransformWithContext(ctx, inner)
	}}

	err := d.Transform(outer)
	assert.NoError(t, err)
	assert.True(t, sawPending)
}

func TestWithDefaultsShallowMerges(t *testing.T) {
	defaults := map[string]interface{}{"a": 1, "b": 2}
	merged := WithDefaults(defaults, map[string]interface{}{"b": 3})
	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 3, merged["b"])
	assert.Equal(t, 2, defaults["b"])
}
