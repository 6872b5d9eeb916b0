package common

import (
	"math"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float64: v limited to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b by t, matching the GLSL mix builtin.
//
// Parameters:
//   - a: the start value
//   - b: the end value
//   - t: the interpolation factor
//
// Returns:
//   - float32: a*(1-t) + b*t
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// MixVec3 interpolates two vectors component-wise, matching GLSL mix(vec3, vec3, float).
//
// Parameters:
//   - a: the start vector
//   - b: the end vector
//   - t: the interpolation factor
//
// Returns:
//   - Vec3: the interpolated vector
func MixVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t)}
}

// Add returns the component-wise sum a + b.
func Add(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns the component-wise difference a - b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mul returns the component-wise product a * b.
func Mul(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Cross returns the cross product a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged,
// where GLSL normalize would produce NaN components.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - Vec3: the unit length vector, or v when its length is zero
func Normalize(v Vec3) Vec3 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// QuatFromAxisAngle builds a unit quaternion (x, y, z, w) rotating angle radians
// around axis. Mirrors quatFromAxisAngle in the quaternion_rotation shader chunk.
//
// Parameters:
//   - axis: the rotation axis, expected to be normalized
//   - angle: the rotation angle in radians
//
// Returns:
//   - Vec4: the quaternion with w in the last component
func QuatFromAxisAngle(axis Vec3, angle float32) Vec4 {
	half := float64(angle) * 0.5
	s := float32(math.Sin(half))
	return Vec4{axis[0] * s, axis[1] * s, axis[2] * s, float32(math.Cos(half))}
}

// RotateVector rotates v by the unit quaternion q.
// Mirrors rotateVector in the quaternion_rotation shader chunk:
// v + 2 * cross(q.xyz, cross(q.xyz, v) + q.w * v).
//
// Parameters:
//   - q: the unit quaternion (x, y, z, w)
//   - v: the vector to rotate
//
// Returns:
//   - Vec3: the rotated vector
func RotateVector(q Vec4, v Vec3) Vec3 {
	qv := Vec3{q[0], q[1], q[2]}
	t := Cross(qv, v)
	t = Add(t, Vec3{q[3] * v[0], q[3] * v[1], q[3] * v[2]})
	c := Cross(qv, t)
	return Vec3{v[0] + 2*c[0], v[1] + 2*c[1], v[2] + 2*c[2]}
}
