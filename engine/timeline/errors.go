package timeline

import "errors"

var (
	// ErrKindNotFound is returned when a segment kind has no registered definition.
	ErrKindNotFound = errors.New("segment kind not found")

	// ErrKindExists is returned by a strict registry when a kind is registered twice.
	ErrKindExists = errors.New("segment kind already registered")

	// ErrInvalidDefinition is returned when a definition has no compiler.
	ErrInvalidDefinition = errors.New("invalid segment kind definition")

	// ErrInvalidOffset is returned when a position offset does not match the offset grammar.
	ErrInvalidOffset = errors.New("invalid position offset")

	// ErrSegmentOverlap is returned by a timeline with OverlapReject when a new segment
	// overlaps an existing segment of the same kind.
	ErrSegmentOverlap = errors.New("segment overlaps existing segment")

	// ErrInvalidValue is returned when a transition value has the wrong shape for its kind.
	ErrInvalidValue = errors.New("invalid transition value")

	// ErrNotSampleable is returned when a kind has no CPU evaluation.
	ErrNotSampleable = errors.New("segment kind cannot be sampled")
)
