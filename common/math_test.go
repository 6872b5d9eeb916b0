package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 2))
	assert.Equal(t, 2.0, Clamp(5, 0, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 0, 2))
}

func TestMixVec3(t *testing.T) {
	got := MixVec3(Vec3{0, 0, 0}, Vec3{2, 4, -2}, 0.5)
	assert.Equal(t, Vec3{1, 2, -1}, got)
}

func TestNormalize(t *testing.T) {
	n := Normalize(Vec3{0, 3, 4})
	assert.InDelta(t, 0.6, n[1], 1e-6)
	assert.InDelta(t, 0.8, n[2], 1e-6)

	assert.Equal(t, Vec3{}, Normalize(Vec3{}))
}

func TestRotateVector(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	r := RotateVector(q, Vec3{1, 0, 0})

	assert.InDelta(t, 0, r[0], 1e-6)
	assert.InDelta(t, 1, r[1], 1e-6)
	assert.InDelta(t, 0, r[2], 1e-6)
}

func TestRotateVectorIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0)
	assert.Equal(t, Vec3{1, 2, 3}, RotateVector(q, Vec3{1, 2, 3}))
}

func TestAxisAngleVec4(t *testing.T) {
	a := AxisAngle{Axis: Vec3{0, 1, 0}, Angle: 1.5}
	assert.Equal(t, Vec4{0, 1, 0, 1.5}, a.Vec4())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "tTime", Coalesce("", "tTime", "other"))
	assert.Equal(t, "", Coalesce[string]())
}
