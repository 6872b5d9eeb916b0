package material

import "errors"

var (
	// ErrUniformNotFound is returned when setting a uniform the material does not hold.
	ErrUniformNotFound = errors.New("material: uniform not found")

	// ErrInvalidUniform is returned for a uniform of unknown type or with a value count
	// that does not fit its type.
	ErrInvalidUniform = errors.New("material: invalid uniform")
)
