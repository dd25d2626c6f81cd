package proptype

import (
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// CameraType discriminates a Camera's projection.
type CameraType string

const (
	CameraPerspective  CameraType = "perspective"
	CameraOrthographic CameraType = "orthographic"
)

// Camera holds either perspective or orthographic projection parameters.
// Grounded on the teacher's camera.Perspective/camera.Orthographic split
// (two concrete render-camera types) generalized into one Property with a
// discriminant, matching glTF's single "camera" object with a type field.
type Camera struct {
	property.Base

	camType CameraType

	// Perspective
	yfov        float32
	aspectRatio float32 // 0 means "undefined", matching glTF's optional field
	// Orthographic
	xmag, ymag float32

	znear, zfar float32 // zfar 0 means "infinite" for perspective
}

// NewPerspectiveCamera constructs a perspective Camera, registered under g.
func NewPerspectiveCamera(g *graph.Graph, yfov, znear float32) *Camera {
	c := &Camera{camType: CameraPerspective, yfov: yfov, znear: znear}
	c.Init(g, c, "Camera")
	return c
}

// NewOrthographicCamera constructs an orthographic Camera, registered
// under g.
func NewOrthographicCamera(g *graph.Graph, xmag, ymag, znear, zfar float32) *Camera {
	c := &Camera{camType: CameraOrthographic, xmag: xmag, ymag: ymag, znear: znear, zfar: zfar}
	c.Init(g, c, "Camera")
	return c
}

func (c *Camera) Type() CameraType      { return c.camType }
func (c *Camera) YFov() float32         { return c.yfov }
func (c *Camera) AspectRatio() float32  { return c.aspectRatio }
func (c *Camera) XMag() float32         { return c.xmag }
func (c *Camera) YMag() float32         { return c.ymag }
func (c *Camera) ZNear() float32        { return c.znear }
func (c *Camera) ZFar() float32         { return c.zfar }

func (c *Camera) SetAspectRatio(v float32) error {
	if err := c.RequireLive(); err != nil {
		return err
	}
	c.aspectRatio = v
	return nil
}

func (c *Camera) SetZFar(v float32) error {
	if err := c.RequireLive(); err != nil {
		return err
	}
	c.zfar = v
	return nil
}

func (c *Camera) EdgeFields() []property.EdgeFieldSpec { return nil }

func (c *Camera) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Camera)
	if !ok || c.camType != o.camType {
		return false
	}
	if c.camType == CameraPerspective {
		return c.yfov == o.yfov && c.aspectRatio == o.aspectRatio && c.znear == o.znear && c.zfar == o.zfar
	}
	return c.xmag == o.xmag && c.ymag == o.ymag && c.znear == o.znear && c.zfar == o.zfar
}

func (c *Camera) CloneAttrs(dst property.Property) {
	o := dst.(*Camera)
	*o = Camera{Base: o.Base, camType: c.camType, yfov: c.yfov, aspectRatio: c.aspectRatio,
		xmag: c.xmag, ymag: c.ymag, znear: c.znear, zfar: c.zfar}
}

func (c *Camera) HashAttrs() uint32 {
	h := uint32(2166136261)
	mix := func(f float32) { h = (h ^ floatToBits(f)) * 16777619 }
	mix(c.yfov)
	mix(c.aspectRatio)
	mix(c.xmag)
	mix(c.ymag)
	mix(c.znear)
	mix(c.zfar)
	return h
}
