package codec

import "github.com/g3n/gltfedit/gmath"

func vector3From(a [3]float32) gmath.Vector3 {
	return gmath.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func vector3ToArray(v gmath.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func quaternionFrom(a [4]float32) gmath.Quaternion {
	return gmath.Quaternion{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}

func quaternionToArray(q gmath.Quaternion) [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}

func matrixFromArray(a [16]float32) gmath.Matrix4 {
	return gmath.Matrix4(a)
}

func matrixToArray(m gmath.Matrix4) [16]float32 {
	return [16]float32(m)
}
