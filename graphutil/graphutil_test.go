package graphutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

func TestCopyGraphProducesStructurallyEqualRoot(t *testing.T) {
	g := graph.New()
	root := proptype.NewRoot(g, "gltfedit-test")
	mesh := proptype.NewMesh(g)
	prim := proptype.NewPrimitive(g)
	pos := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	pos.SetArray([]float32{0, 0, 0, 1, 1, 1})
	prim.SetAttribute("POSITION", pos)
	mesh.AddPrimitive(prim)
	root.AddMesh(mesh)
	root.AddAccessor(pos)

	dstGraph := graph.New()
	dstRootProp, _ := CopyGraph(root, dstGraph)
	dstRoot := dstRootProp.(*proptype.Root)

	assert.True(t, property.Equals(root, dstRoot, nil))
	assert.Len(t, dstRoot.Meshes(), 1)
	assert.NotSame(t, mesh, dstRoot.Meshes()[0])
}

func TestCopyGraphSharesDiamondReferencesOnce(t *testing.T) {
	g := graph.New()
	root := proptype.NewRoot(g, "gltfedit-test")
	acc := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	acc.SetArray([]float32{0, 0, 0})
	p1 := proptype.NewPrimitive(g)
	p2 := proptype.NewPrimitive(g)
	p1.SetAttribute("POSITION", acc)
	p2.SetAttribute("POSITION", acc)
	mesh := proptype.NewMesh(g)
	mesh.AddPrimitive(p1)
	mesh.AddPrimitive(p2)
	root.AddMesh(mesh)
	root.AddAccessor(acc)

	dstGraph := graph.New()
	dstRootProp, _ := CopyGraph(root, dstGraph)
	dstMesh := dstRootProp.(*proptype.Root).Meshes()[0]
	prims := dstMesh.Primitives()

	assert.Same(t, prims[0].Attribute("POSITION"), prims[1].Attribute("POSITION"))
}

func TestSwapDeepReplacesEveryReference(t *testing.T) {
	g := graph.New()
	root := proptype.NewRoot(g, "gltfedit-test")
	oldAcc := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	newAcc := proptype.NewAccessor(g, proptype.TypeVec3, proptype.ComponentF32)
	p1 := proptype.NewPrimitive(g)
	p2 := proptype.NewPrimitive(g)
	p1.SetAttribute("POSITION", oldAcc)
	p2.SetAttribute("POSITION", oldAcc)
	mesh := proptype.NewMesh(g)
	mesh.AddPrimitive(p1)
	mesh.AddPrimitive(p2)
	root.AddMesh(mesh)

	err := SwapDeep(root, oldAcc, newAcc)
	assert.NoError(t, err)
	assert.Equal(t, newAcc, p1.Attribute("POSITION"))
	assert.Equal(t, newAcc, p2.Attribute("POSITION"))
}
