// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Vec3 is a three component vector. It is used for positions, scales, axes and origins
// that end up embedded as vec3 literals in generated shader source.
type Vec3 [3]float32

// Vec4 is a four component vector. Axis-angle rotations are embedded in generated
// shader source as a vec4 where xyz holds the axis and w holds the angle.
type Vec4 [4]float32

// AxisAngle describes a rotation of Angle radians around Axis.
// The axis does not need to be normalized; consumers normalize it before use.
type AxisAngle struct {
	// Axis is the rotation axis.
	Axis Vec3

	// Angle is the rotation angle in radians.
	Angle float32
}

// Vec4 packs the axis-angle pair into a Vec4 with the angle stored in w.
//
// Returns:
//   - Vec4: the packed (axis.x, axis.y, axis.z, angle) vector
func (a AxisAngle) Vec4() Vec4 {
	return Vec4{a.Axis[0], a.Axis[1], a.Axis[2], a.Angle}
}
