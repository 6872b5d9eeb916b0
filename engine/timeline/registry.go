package timeline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

const (
	KindTranslate = "translate"
	KindScale     = "scale"
	KindRotate    = "rotate"
)

// Compiler generates the GLSL source for one segment: constant declarations and a
// function named Segment.FunctionName() with the signature (float time, inout vec3 v).
type Compiler func(seg Segment) (string, error)

// Applier evaluates a segment on the CPU at an already eased progress.
type Applier func(seg Segment, progress float64, v common.Vec3) (common.Vec3, error)

// Decoder converts a loosely typed value (as produced by a YAML or JSON decoder) into
// the value type the kind's compiler expects.
type Decoder func(value any) (any, error)

// Definition describes a segment kind.
type Definition struct {
	// DefaultFrom is the From value used by the first segment of the kind when the
	// transition leaves From unset.
	DefaultFrom any

	// Compiler generates the segment's GLSL. Required.
	Compiler Compiler

	// Apply evaluates the segment on the CPU. Optional; kinds without it cannot be sampled.
	Apply Applier

	// Decode converts config values for this kind. Optional; values are used as-is without it.
	Decode Decoder

	// Chunks lists the chunk names the generated GLSL calls into.
	Chunks []string
}

// Registry maps kind names to definitions. It is populated during start-up and only
// read afterwards; it has no locking.
type Registry struct {
	defs   map[string]Definition
	strict bool
}

// RegistryBuilderOption is a functional option for configuring a Registry.
type RegistryBuilderOption func(*Registry)

// WithStrictRegistration makes Register fail with ErrKindExists instead of replacing an
// existing definition.
//
// Returns:
//   - RegistryBuilderOption: a function that applies the strict registration option
func WithStrictRegistration() RegistryBuilderOption {
	return func(r *Registry) {
		r.strict = true
	}
}

// NewRegistry creates an empty registry.
//
// Parameters:
//   - options: functional options for configuring the registry
//
// Returns:
//   - *Registry: the registry
func NewRegistry(options ...RegistryBuilderOption) *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with the translate, scale and rotate kinds.
//
// Parameters:
//   - options: functional options for configuring the registry
//
// Returns:
//   - *Registry: the registry
func NewDefaultRegistry(options ...RegistryBuilderOption) *Registry {
	r := NewRegistry(options...)
	r.defs[KindTranslate] = TranslateDefinition()
	r.defs[KindScale] = ScaleDefinition()
	r.defs[KindRotate] = RotateDefinition()
	return r
}

// Register stores the definition for a kind. By default the last registration wins.
//
// Parameters:
//   - kind: the kind name
//   - def: the definition
//
// Returns:
//   - Definition: the stored definition
//   - error: ErrInvalidDefinition if def has no compiler, ErrKindExists for a duplicate
//     kind on a strict registry
func (r *Registry) Register(kind string, def Definition) (Definition, error) {
	if def.Compiler == nil {
		return Definition{}, fmt.Errorf("kind %q: no compiler: %w", kind, ErrInvalidDefinition)
	}
	if _, exists := r.defs[kind]; exists && r.strict {
		return Definition{}, fmt.Errorf("kind %q: %w", kind, ErrKindExists)
	}
	def.Chunks = slices.Clone(def.Chunks)
	r.defs[kind] = def
	return def, nil
}

// Lookup returns the definition of a kind.
//
// Parameters:
//   - kind: the kind name
//
// Returns:
//   - Definition: the definition
//   - error: ErrKindNotFound if the kind is not registered
func (r *Registry) Lookup(kind string) (Definition, error) {
	def, ok := r.defs[kind]
	if !ok {
		return Definition{}, fmt.Errorf("kind %q: %w", kind, ErrKindNotFound)
	}
	return def, nil
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.defs))
}
