// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmath provides the fixed-size vector/matrix value types used by
// the Node TRS/matrix fields and the codec's wire conversions. It is a trimmed descendant of the
// teacher's math32 package: rendering-only helpers (Frustum, Plane, Curve,
// Spline, Ray, Box2/3, Sphere, Triangle, Color) are dropped since nothing in
// a non-rendering asset-editor core consumes them.
package gmath

// Vector2 is a 2-component vector, sized for VEC2 accessor elements and
// TEXCOORD data.
type Vector2 struct {
	X float32
	Y float32
}

// NewVector2 returns a new Vector2 with the given components.
func NewVector2(x, y float32) *Vector2 {
	return &Vector2{X: x, Y: y}
}

// Set sets both components and returns the receiver for chaining.
func (v *Vector2) Set(x, y float32) *Vector2 {
	v.X = x
	v.Y = y
	return v
}

// Vector3 is a 3-component vector, sized for VEC3 accessor elements,
// POSITION/NORMAL data, and Node translation/scale.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// NewVector3 returns a new Vector3 with the given components.
func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// Set sets all three components and returns the receiver for chaining.
func (v *Vector3) Set(x, y, z float32) *Vector3 {
	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Equals reports whether two vectors are exactly equal component-wise.
func (v *Vector3) Equals(o *Vector3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// Vector4 is a 4-component vector, sized for VEC4 accessor elements,
// TANGENT/COLOR_0/WEIGHTS_0 data. Node rotation uses Quaternion instead.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewVector4 returns a new Vector4 with the given components.
func NewVector4(x, y, z, w float32) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

// Set sets all four components and returns the receiver for chaining.
func (v *Vector4) Set(x, y, z, w float32) *Vector4 {
	v.X = x
	v.Y = y
	v.Z = z
	v.W = w
	return v
}

// Equals reports whether two vectors are exactly equal component-wise.
func (v *Vector4) Equals(o *Vector4) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z && v.W == o.W
}
