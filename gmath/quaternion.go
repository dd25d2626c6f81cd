// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Quaternion is a unit quaternion in (x, y, z, w) order, matching the
// glTF node rotation convention.
type Quaternion struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuaternion returns a new Quaternion with the given components.
func NewQuaternion(x, y, z, w float32) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

// Set assigns all four components and returns the receiver for chaining.
func (q *Quaternion) Set(x, y, z, w float32) *Quaternion {
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Equals reports whether two quaternions are exactly component-wise equal.
func (q *Quaternion) Equals(o *Quaternion) bool {
	return q.X == o.X && q.Y == o.Y && q.Z == o.Z && q.W == o.W
}

// SetFromRotationMatrix extracts a rotation quaternion from a rotation
// matrix (the basis columns must already be unscaled).
func (q *Quaternion) SetFromRotationMatrix(m *Matrix4) *Quaternion {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]
	trace := m11 + m22 + m33

	var s float32
	switch {
	case trace > 0:
		s = 0.5 / sqrt32(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s = 2.0 * sqrt32(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s = 2.0 * sqrt32(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s = 2.0 * sqrt32(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}

func sqrt32(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
