// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Matrix4 is a 4x4 matrix stored column-major, matching the glTF node
// matrix convention.
type Matrix4 [16]float32

// NewMatrix4 returns a new identity matrix.
func NewMatrix4() *Matrix4 {
	var m Matrix4
	m.Identity()
	return &m
}

// Set assigns all sixteen elements row by row.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) *Matrix4 {
	m[0], m[4], m[8], m[12] = n11, n12, n13, n14
	m[1], m[5], m[9], m[13] = n21, n22, n23, n24
	m[2], m[6], m[10], m[14] = n31, n32, n33, n34
	m[3], m[7], m[11], m[15] = n41, n42, n43, n44
	return m
}

// Identity resets the matrix to the identity matrix.
func (m *Matrix4) Identity() *Matrix4 {
	return m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Copy copies src into the receiver.
func (m *Matrix4) Copy(src *Matrix4) *Matrix4 {
	*m = *src
	return m
}

// Equals reports whether two matrices are exactly element-wise equal.
func (m *Matrix4) Equals(o *Matrix4) bool {
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// FromArray sets the matrix elements from array starting at offset.
func (m *Matrix4) FromArray(array []float32, offset int) *Matrix4 {
	copy(m[:], array[offset:offset+16])
	return m
}

// ToArray copies the matrix elements into array starting at offset.
func (m *Matrix4) ToArray(array []float32, offset int) []float32 {
	copy(array[offset:], m[:])
	return array
}

// MultiplyMatrices sets the receiver to a*b.
func (m *Matrix4) MultiplyMatrices(a, b *Matrix4) *Matrix4 {
	var out Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row+k*4] * b[k+col*4]
			}
			out[row+col*4] = sum
		}
	}
	*m = out
	return m
}

// Determinant computes the 4x4 determinant.
func (m *Matrix4) Determinant() float32 {
	n11, n12, n13, n14 := m[0], m[4], m[8], m[12]
	n21, n22, n23, n24 := m[1], m[5], m[9], m[13]
	n31, n32, n33, n34 := m[2], m[6], m[10], m[14]
	n41, n42, n43, n44 := m[3], m[7], m[11], m[15]

	return n41*(+n14*n23*n32-n13*n24*n32-n14*n22*n33+n12*n24*n33+n13*n22*n34-n12*n23*n34) +
		n42*(+n11*n23*n34-n11*n24*n33+n14*n21*n33-n13*n21*n34+n13*n24*n31-n14*n23*n31) +
		n43*(+n11*n24*n32-n11*n22*n34-n14*n21*n32+n12*n21*n34+n14*n22*n31-n12*n24*n31) +
		n44*(-n13*n22*n31-n11*n23*n32+n11*n22*n33+n13*n21*n32-n12*n21*n33+n12*n23*n31)
}

// SetPosition overwrites the translation column.
func (m *Matrix4) SetPosition(v *Vector3) *Matrix4 {
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// scaleBasis post-multiplies the basis columns by v's components (in place,
// as used by Compose).
func (m *Matrix4) scaleBasis(v *Vector3) *Matrix4 {
	m[0] *= v.X
	m[1] *= v.X
	m[2] *= v.X
	m[4] *= v.Y
	m[5] *= v.Y
	m[6] *= v.Y
	m[8] *= v.Z
	m[9] *= v.Z
	m[10] *= v.Z
	return m
}

// MakeRotationFromQuaternion sets the receiver's rotation basis from q
// (translation/scale untouched fields are overwritten to identity values).
func (m *Matrix4) MakeRotationFromQuaternion(q *Quaternion) *Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return m.Set(
		1-(yy+zz), xy-wz, xz+wy, 0,
		xy+wz, 1-(xx+zz), yz-wx, 0,
		xz-wy, yz+wx, 1-(xx+yy), 0,
		0, 0, 0, 1,
	)
}

// Compose builds a TRS transform matrix: T * R * S.
func (m *Matrix4) Compose(position *Vector3, quaternion *Quaternion, scale *Vector3) *Matrix4 {
	m.MakeRotationFromQuaternion(quaternion)
	m.scaleBasis(scale)
	m.SetPosition(position)
	return m
}

// Decompose extracts position, rotation and scale from a TRS matrix. The
// receiver must not carry shear; glTF node matrices never do.
func (m *Matrix4) Decompose(position *Vector3, quaternion *Quaternion, scale *Vector3) *Matrix4 {
	matrix := *m

	position.X, position.Y, position.Z = m[12], m[13], m[14]

	var basisX, basisY, basisZ Vector3
	basisX.Set(m[0], m[1], m[2])
	basisY.Set(m[4], m[5], m[6])
	basisZ.Set(m[8], m[9], m[10])
	scale.X = basisX.length()
	scale.Y = basisY.length()
	scale.Z = basisZ.length()

	if m.Determinant() < 0 {
		scale.X = -scale.X
	}

	invSX, invSY, invSZ := 1/scale.X, 1/scale.Y, 1/scale.Z
	matrix[0] *= invSX
	matrix[1] *= invSX
	matrix[2] *= invSX
	matrix[4] *= invSY
	matrix[5] *= invSY
	matrix[6] *= invSY
	matrix[8] *= invSZ
	matrix[9] *= invSZ
	matrix[10] *= invSZ

	quaternion.SetFromRotationMatrix(&matrix)
	return m
}

func (v *Vector3) length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}
