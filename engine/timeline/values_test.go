package timeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVec3(t *testing.T) {
	v, err := DecodeVec3([]any{1, 2.5, int64(3)})
	require.NoError(t, err)
	assert.Equal(t, common.Vec3{1, 2.5, 3}, v)

	v, err = DecodeVec3(map[string]any{"x": 1, "y": 2.0})
	require.NoError(t, err)
	assert.Equal(t, common.Vec3{1, 2, 0}, v)

	v, err = DecodeVec3(common.Vec3{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, common.Vec3{4, 5, 6}, v)

	_, err = DecodeVec3([]any{1, 2})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = DecodeVec3([]any{1, "two", 3})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = DecodeVec3("up")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDecodeAxisAngle(t *testing.T) {
	a, err := DecodeAxisAngle(map[string]any{"axis": []any{0, 1, 0}, "angle": 1.5})
	require.NoError(t, err)
	assert.Equal(t, common.AxisAngle{Axis: common.Vec3{0, 1, 0}, Angle: 1.5}, a)

	a, err = DecodeAxisAngle([]any{0, 0, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, common.AxisAngle{Axis: common.Vec3{0, 0, 1}, Angle: 3}, a)

	a, err = DecodeAxisAngle(common.Vec4{1, 0, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, common.AxisAngle{Axis: common.Vec3{1, 0, 0}, Angle: 2}, a)

	_, err = DecodeAxisAngle(map[string]any{"angle": "half"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = DecodeAxisAngle([]any{0, 1})
	assert.ErrorIs(t, err, ErrInvalidValue)
}
