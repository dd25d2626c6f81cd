// Package document implements the Document façade: the entry point
// application code drives to build, read, transform, and write a glTF-like
// asset. Factories construct Properties and register them under the
// shared graph's Root automatically, mirroring the teacher's implicit
// factory style (core.NewNode, graphic.NewMesh, camera.NewPerspective)
// generalized to auto-register under a Root aggregate instead of a
// render scene (spec.md §4.4).
package document

import (
	"github.com/g3n/gltfedit/extension"
	"github.com/g3n/gltfedit/glog"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/graphutil"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

// Document owns one property graph and its Root aggregate, plus the
// extension registry and logger a read/write/transform pass consults.
type Document struct {
	g        *graph.Graph
	root     *proptype.Root
	registry *extension.Registry
	logger   *glog.Logger
}

// New constructs an empty Document with every bundled extension
// registered (spec.md §4.3) and a default logger (spec.md's Logger /
// I/O platform shim).
func New(generator string) *Document {
	g := graph.New()
	d := &Document{
		g:        g,
		root:     proptype.NewRoot(g, generator),
		registry: extension.NewRegistry(),
		logger:   glog.Default,
	}
	extension.RegisterBundled(d.registry)
	return d
}

func (d *Document) Graph() *graph.Graph         { return d.g }
func (d *Document) Root() *proptype.Root        { return d.root }
func (d *Document) Registry() *extension.Registry { return d.registry }

// GetLogger returns the injected diagnostic sink.
func (d *Document) GetLogger() *glog.Logger { return d.logger }

// SetLogger replaces the injected diagnostic sink.
func (d *Document) SetLogger(l *glog.Logger) { d.logger = l }

// --- Factories -------------------------------------------------------

func (d *Document) CreateBuffer() *proptype.Buffer {
	b := proptype.NewBuffer(d.g)
	d.root.AddBuffer(b)
	return b
}

func (d *Document) CreateAccessor(elementType proptype.ElementType, componentType proptype.ComponentType) *proptype.Accessor {
	a := proptype.NewAccessor(d.g, elementType, componentType)
	d.root.AddAccessor(a)
	return a
}

func (d *Document) CreateTexture() *proptype.Texture {
	t := proptype.NewTexture(d.g)
	d.root.AddTexture(t)
	return t
}

func (d *Document) CreateMaterial() *proptype.Material {
	m := proptype.NewMaterial(d.g)
	d.root.AddMaterial(m)
	return m
}

// CreatePrimitive constructs a Primitive not yet owned by any Mesh;
// callers attach it via Mesh.AddPrimitive.
func (d *Document) CreatePrimitive() *proptype.Primitive {
	return proptype.NewPrimitive(d.g)
}

func (d *Document) CreatePrimitiveTarget() *proptype.PrimitiveTarget {
	return proptype.NewPrimitiveTarget(d.g)
}

func (d *Document) CreateMesh() *proptype.Mesh {
	m := proptype.NewMesh(d.g)
	d.root.AddMesh(m)
	return m
}

func (d *Document) CreateSkin() *proptype.Skin {
	s := proptype.NewSkin(d.g)
	d.root.AddSkin(s)
	return s
}

func (d *Document) CreateNode() *proptype.Node {
	n := proptype.NewNode(d.g)
	d.root.AddNode(n)
	return n
}

func (d *Document) CreateScene() *proptype.Scene {
	s := proptype.NewScene(d.g)
	d.root.AddScene(s)
	return s
}

func (d *Document) CreateAnimation() *proptype.Animation {
	a := proptype.NewAnimation(d.g)
	d.root.AddAnimation(a)
	return a
}

func (d *Document) CreateAnimationSampler() *proptype.AnimationSampler {
	return proptype.NewAnimationSampler(d.g)
}

func (d *Document) CreateAnimationChannel(path proptype.TargetPath) *proptype.AnimationChannel {
	return proptype.NewAnimationChannel(d.g, path)
}

func (d *Document) CreatePerspectiveCamera(yfov, znear float32) *proptype.Camera {
	return proptype.NewPerspectiveCamera(d.g, yfov, znear)
}

func (d *Document) CreateOrthographicCamera(xmag, ymag, znear, zfar float32) *proptype.Camera {
	return proptype.NewOrthographicCamera(d.g, xmag, ymag, znear, zfar)
}

// --- Whole-document operations ----------------------------------------

// Clone returns a deep copy of the Document in a fresh graph, sharing no
// mutable state with the original. Grounded on graphutil.CopyGraph (§9's
// resolver pattern), walked from this Document's Root.
func (d *Document) Clone() *Document {
	dstGraph := graph.New()
	dstRootProp, _ := graphutil.CopyGraph(d.root, dstGraph)
	clone := &Document{
		g:        dstGraph,
		root:     dstRootProp.(*proptype.Root),
		registry: extension.NewRegistry(),
		logger:   d.logger,
	}
	extension.RegisterBundled(clone.registry)
	return clone
}

// Merge copies every Property reachable from other's Root into this
// Document's graph and appends the copies to this Document's Root lists,
// returning the resolver from other's Properties to their new
// counterparts here (§9's "merge(other, resolve?)").
func (d *Document) Merge(other *Document) property.ResolveFunc {
	dstRootProp, resolve := graphutil.CopyGraph(other.root, d.g)
	mergedRoot := dstRootProp.(*proptype.Root)

	for _, s := range mergedRoot.Scenes() {
		d.root.AddScene(s)
	}
	for _, n := range mergedRoot.Nodes() {
		d.root.AddNode(n)
	}
	for _, m := range mergedRoot.Meshes() {
		d.root.AddMesh(m)
	}
	for _, m := range mergedRoot.Materials() {
		d.root.AddMaterial(m)
	}
	for _, t := range mergedRoot.Textures() {
		d.root.AddTexture(t)
	}
	for _, a := range mergedRoot.Accessors() {
		d.root.AddAccessor(a)
	}
	for _, b := range mergedRoot.Buffers() {
		d.root.AddBuffer(b)
	}
	for _, s := range mergedRoot.Skins() {
		d.root.AddSkin(s)
	}
	for _, a := range mergedRoot.Animations() {
		d.root.AddAnimation(a)
	}
	mergedRoot.Dispose()
	return resolve
}
