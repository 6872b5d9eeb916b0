package loader

import (
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRegistry is an option builder that sets the segment kind registry used to look
// up and decode transitions.
//
// Parameters:
//   - reg: the registry, timeline.NewDefaultRegistry() when unset
//
// Returns:
//   - LoaderBuilderOption: a function that applies the registry option to a loader
func WithRegistry(reg *timeline.Registry) LoaderBuilderOption {
	return func(l *loader) {
		l.registry = reg
	}
}

// WithMaterialOptions is an option builder that adds material options applied to every
// material before the document's own settings, e.g. a shared compositor or logger.
//
// Parameters:
//   - options: the material options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the material options to a loader
func WithMaterialOptions(options ...material.MaterialBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.materialOptions = append(l.materialOptions, options...)
	}
}

// WithStrictFields is an option builder that makes decoding fail on unknown document fields.
func WithStrictFields() LoaderBuilderOption {
	return func(l *loader) {
		l.strict = true
	}
}

// WithTimeline is an option builder that pre-populates the timeline cache.
//
// Parameters:
//   - key: the cache key for the timeline
//   - tl: the timeline to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the timeline option to a loader
func WithTimeline(key string, tl timeline.Timeline) LoaderBuilderOption {
	return func(l *loader) {
		l.timelineCache[key] = tl
	}
}

// WithMaterial is an option builder that pre-populates the material cache.
//
// Parameters:
//   - key: the cache key for the material
//   - m: the material to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the material option to a loader
func WithMaterial(key string, m material.Material) LoaderBuilderOption {
	return func(l *loader) {
		l.materialCache[key] = m
	}
}
