// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proptype implements the concrete Property records of the graph:
// Buffer, Accessor, Texture, Material, Primitive, PrimitiveTarget, Mesh,
// Skin, Node, Scene, Animation (+Sampler/Channel), Camera, and Root, each
// with the attribute/edge layout and invariants from spec.md §3.
//
// Every type embeds property.Base and is constructed only through
// document.Document's factories, which register it under the owning
// graph's Root — mirroring the teacher's implicit-factory style
// (core.NewNode, graphic.NewMesh, camera.NewPerspective) generalized to
// auto-register under a Root aggregate instead of a render scene.
package proptype

import "math"

// floatToBits is the shared float32-to-uint32 bit-pattern conversion used
// by every concrete type's HashAttrs.
func floatToBits(f float32) uint32 { return math.Float32bits(f) }

// ComponentType is the glTF accessor componentType enum, using the wire
// integer values directly (grounded on the teacher's loader.go switch over
// gl.BYTE/UNSIGNED_BYTE/... style constants).
type ComponentType int

const (
	ComponentI8  ComponentType = 5120
	ComponentU8  ComponentType = 5121
	ComponentI16 ComponentType = 5122
	ComponentU16 ComponentType = 5123
	ComponentU32 ComponentType = 5125
	ComponentF32 ComponentType = 5126
)

// ElementType is the glTF accessor "type" enum (SCALAR..MAT4).
type ElementType string

const (
	TypeScalar ElementType = "SCALAR"
	TypeVec2   ElementType = "VEC2"
	TypeVec3   ElementType = "VEC3"
	TypeVec4   ElementType = "VEC4"
	TypeMat2   ElementType = "MAT2"
	TypeMat3   ElementType = "MAT3"
	TypeMat4   ElementType = "MAT4"
)

// NumComponents returns the number of scalar components one element of t
// occupies (e.g. VEC3 -> 3, MAT4 -> 16).
func (t ElementType) NumComponents() int {
	switch t {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// ByteSize returns the width in bytes of one scalar component.
func (c ComponentType) ByteSize() int {
	switch c {
	case ComponentI8, ComponentU8:
		return 1
	case ComponentI16, ComponentU16:
		return 2
	case ComponentU32, ComponentF32:
		return 4
	default:
		return 0
	}
}

// IsInteger reports whether c is one of the integer component types
// (the only ones for which Accessor.Normalized is meaningful).
func (c ComponentType) IsInteger() bool {
	return c != ComponentF32
}

// PrimitiveMode is the glTF primitive rendering mode enum.
type PrimitiveMode int

const (
	ModePoints        PrimitiveMode = 0
	ModeLines         PrimitiveMode = 1
	ModeLineLoop      PrimitiveMode = 2
	ModeLineStrip     PrimitiveMode = 3
	ModeTriangles     PrimitiveMode = 4
	ModeTriangleStrip PrimitiveMode = 5
	ModeTriangleFan   PrimitiveMode = 6
)

// AlphaMode is Material's alpha-blending mode.
type AlphaMode string

const (
	AlphaOpaque AlphaMode = "OPAQUE"
	AlphaMask   AlphaMode = "MASK"
	AlphaBlend  AlphaMode = "BLEND"
)

// Interpolation is an AnimationSampler's interpolation mode.
type Interpolation string

const (
	InterpStep        Interpolation = "STEP"
	InterpLinear      Interpolation = "LINEAR"
	InterpCubicSpline Interpolation = "CUBICSPLINE"
)

// TargetPath is an AnimationChannel's target property.
type TargetPath string

const (
	PathTranslation TargetPath = "translation"
	PathRotation    TargetPath = "rotation"
	PathScale       TargetPath = "scale"
	PathWeights     TargetPath = "weights"
)

// WrapMode is a texture sampler wrap mode.
type WrapMode int

const (
	WrapRepeat         WrapMode = 10497
	WrapClampToEdge    WrapMode = 33071
	WrapMirroredRepeat WrapMode = 33648
)

// FilterMode is a texture sampler min/mag filter.
type FilterMode int

const (
	FilterNearest              FilterMode = 9728
	FilterLinear               FilterMode = 9729
	FilterNearestMipmapNearest FilterMode = 9984
	FilterLinearMipmapNearest  FilterMode = 9985
	FilterNearestMipmapLinear  FilterMode = 9986
	FilterLinearMipmapLinear   FilterMode = 9987
)

// TextureInfo is attached to a Material/extension's texture-slot edge via
// Edge.Attrs["textureInfo"], not as a first-class Property — its lifetime
// is tied entirely to the edge (spec.md §3's TextureInfo row).
type TextureInfo struct {
	TexCoord  int
	MagFilter FilterMode
	MinFilter FilterMode
	WrapS     WrapMode
	WrapT     WrapMode
}

// DefaultTextureInfo returns the glTF-default sampler/texCoord settings.
func DefaultTextureInfo() TextureInfo {
	return TextureInfo{WrapS: WrapRepeat, WrapT: WrapRepeat}
}
