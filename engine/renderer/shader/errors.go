package shader

import "errors"

var (
	// ErrMalformedAnnotation is returned when a //@bas: line has the wrong number of arguments.
	ErrMalformedAnnotation = errors.New("malformed annotation")

	// ErrAnchorNotFound is returned when a template lacks the annotation for one of its declared anchors.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrDuplicateAnchor is returned when an anchor annotation appears more than once in a template.
	ErrDuplicateAnchor = errors.New("duplicate anchor")

	// ErrUnterminatedAnchor is returned when an override anchor has no matching //@bas:end line.
	ErrUnterminatedAnchor = errors.New("override anchor without end annotation")

	// ErrChunkNotFound is returned when a chunk name is not registered.
	ErrChunkNotFound = errors.New("chunk not found")

	// ErrIncludeDepth is returned when chunk includes nest deeper than maxIncludeDepth.
	ErrIncludeDepth = errors.New("include depth exceeded")

	// ErrTemplateNotFound is returned when no template exists for a flavor and shader type.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrSlotNotFound is returned when a slot name is not one of the known material slots.
	ErrSlotNotFound = errors.New("slot not found")
)
