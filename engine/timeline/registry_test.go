package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fadeDefinition() Definition {
	return Definition{
		DefaultFrom: 1.0,
		Compiler: func(seg Segment) (string, error) {
			return "void " + seg.FunctionName() + "(float time, inout vec3 v) {}", nil
		},
	}
}

func TestDefaultRegistryKinds(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.Equal(t, []string{KindRotate, KindScale, KindTranslate}, reg.Kinds())

	def, err := reg.Lookup(KindRotate)
	require.NoError(t, err)
	assert.Equal(t, []string{"quaternion_rotation"}, def.Chunks)

	_, err = reg.Lookup("fade")
	assert.ErrorIs(t, err, ErrKindNotFound)
}

func TestRegistryRegister(t *testing.T) {
	reg := NewDefaultRegistry()

	_, err := reg.Register("fade", Definition{})
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = reg.Register("fade", fadeDefinition())
	require.NoError(t, err)
	assert.Contains(t, reg.Kinds(), "fade")

	// later registrations replace earlier ones
	_, err = reg.Register(KindTranslate, fadeDefinition())
	require.NoError(t, err)
	def, err := reg.Lookup(KindTranslate)
	require.NoError(t, err)
	assert.Equal(t, 1.0, def.DefaultFrom)
}

func TestRegistryStrict(t *testing.T) {
	reg := NewDefaultRegistry(WithStrictRegistration())

	_, err := reg.Register(KindScale, fadeDefinition())
	assert.ErrorIs(t, err, ErrKindExists)

	_, err = reg.Register("fade", fadeDefinition())
	require.NoError(t, err)
	_, err = reg.Register("fade", fadeDefinition())
	assert.ErrorIs(t, err, ErrKindExists)
}
