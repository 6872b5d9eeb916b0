package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables material build profiling output.
//
// Parameters:
//   - enabled: if true, enables build profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithRegistry sets the transition registry shared by the engine's timelines and loader.
// A nil registry keeps the default one holding scale, rotate and translate.
//
// Parameters:
//   - reg: the transition registry
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRegistry(reg *timeline.Registry) EngineBuilderOption {
	return func(e *engine) {
		e.registry = reg
	}
}

// WithChunks sets the chunk library every material include resolves against.
//
// Parameters:
//   - chunks: the chunk registry
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithChunks(chunks *shader.ChunkRegistry) EngineBuilderOption {
	return func(e *engine) {
		e.chunks = chunks
	}
}

// WithWorkers sets how many materials BuildMaterials compiles at once.
// Values < 1 are treated as 1. Defaults to runtime.NumCPU().
//
// Parameters:
//   - n: maximum concurrent builds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		e.workers = n
	}
}

// WithLogger sets the logger for the engine. It is also installed as the package
// wide logger through common.SetLogger.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
