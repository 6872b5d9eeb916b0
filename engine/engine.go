package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/loader"
	"github.com/Carmen-Shannon/oxy-bas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// engine implements the Engine interface.
// Owns the shared registries and the worker pool materials are built on.
type engine struct {
	mu       sync.Mutex
	released bool

	registry   *timeline.Registry
	chunks     *shader.ChunkRegistry
	compositor shader.Compositor
	loader     loader.Loader
	logger     *slog.Logger

	workers int
	pool    worker.DynamicWorkerPool

	profiler         *profiler.Profiler
	profilingEnabled bool
	activeProfiler   atomic.Pointer[profiler.Profiler]
}

// MaterialRequest describes one material for BuildMaterials.
type MaterialRequest struct {
	Flavor  shader.Flavor
	Options []material.MaterialBuilderOption
}

// Engine is the main entry point for building animated materials.
// It holds the transition registry and chunk library shared by every timeline and
// material it creates, and compiles batches of materials concurrently.
type Engine interface {
	// Registry returns the transition registry used by timelines created through the engine.
	Registry() *timeline.Registry

	// Chunks returns the chunk library includes resolve against.
	Chunks() *shader.ChunkRegistry

	// Compositor returns the compositor shared by every material the engine builds.
	Compositor() shader.Compositor

	// Loader returns a document loader bound to the engine's registry and chunks.
	Loader() loader.Loader

	// NewTimeline creates an empty timeline bound to the engine's registry.
	//
	// Parameters:
	//   - options: variadic list of TimelineBuilderOption functions
	//
	// Returns:
	//   - timeline.Timeline: the new timeline
	NewTimeline(options ...timeline.TimelineBuilderOption) timeline.Timeline

	// NewMaterial composes a single material using the engine's chunks and logger.
	// Options given here are applied after the engine defaults.
	//
	// Parameters:
	//   - flavor: the lighting model
	//   - options: variadic list of MaterialBuilderOption functions
	//
	// Returns:
	//   - material.Material: the composed material
	//   - error: the build error, ErrEngineReleased after Release
	NewMaterial(flavor shader.Flavor, options ...material.MaterialBuilderOption) (material.Material, error)

	// BuildMaterials composes independent materials concurrently on the worker pool.
	// The result slice is in request order; a failed request leaves a nil entry.
	//
	// Parameters:
	//   - requests: the materials to build
	//
	// Returns:
	//   - []material.Material: the built materials, indexed like requests
	//   - error: every request error joined, nil if all succeeded
	BuildMaterials(requests []MaterialRequest) ([]material.Material, error)

	// EnableProfiler enables build profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables build profiling output.
	DisableProfiler()

	// Profiler returns the build profiler, nil if profiling was never enabled.
	Profiler() *profiler.Profiler

	// Release stops the worker pool. Later build calls return ErrEngineReleased.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
//
// Parameters:
//   - options: variadic list of EngineBuilderOption functions to configure the engine
//
// Returns:
//   - Engine: a new Engine instance configured with the specified options
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		workers: runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.logger != nil {
		common.SetLogger(e.logger)
	} else {
		e.logger = common.Logger()
	}
	if e.registry == nil {
		e.registry = timeline.NewDefaultRegistry()
	}
	if e.chunks == nil {
		e.chunks = shader.NewChunkRegistry()
	}
	e.compositor = shader.NewCompositor(e.chunks)
	e.loader = loader.NewLoader(
		loader.WithRegistry(e.registry),
		loader.WithMaterialOptions(e.materialDefaults()...),
	)
	if e.workers < 1 {
		e.workers = 1
	}
	e.pool = worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger)
		e.activeProfiler.Store(e.profiler)
	}
	return e
}

func (e *engine) Registry() *timeline.Registry {
	return e.registry
}

func (e *engine) Chunks() *shader.ChunkRegistry {
	return e.chunks
}

func (e *engine) Compositor() shader.Compositor {
	return e.compositor
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) NewTimeline(options ...timeline.TimelineBuilderOption) timeline.Timeline {
	return timeline.NewTimeline(e.registry, options...)
}

func (e *engine) NewMaterial(flavor shader.Flavor, options ...material.MaterialBuilderOption) (material.Material, error) {
	e.mu.Lock()
	released := e.released
	e.mu.Unlock()
	if released {
		return nil, ErrEngineReleased
	}
	return e.build(flavor, options)
}

func (e *engine) BuildMaterials(requests []MaterialRequest) ([]material.Material, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return nil, ErrEngineReleased
	}

	results := make([]material.Material, len(requests))
	errs := make([]error, len(requests))
	start := time.Now()

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		e.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				m, err := e.build(req.Flavor, req.Options)
				if err != nil {
					errs[i] = fmt.Errorf("request %d (%s): %w", i, req.Flavor, err)
					return nil, err
				}
				results[i] = m
				return m, nil
			},
		})
	}
	wg.Wait()

	err := errors.Join(errs...)
	e.logger.Info("built materials",
		"requests", len(requests),
		"workers", e.workers,
		"elapsed", time.Since(start),
		"failed", err != nil,
	)
	return results, err
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	e.profilingEnabled = true
	e.activeProfiler.Store(e.profiler)
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
	e.activeProfiler.Store(nil)
}

func (e *engine) Profiler() *profiler.Profiler {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profiler
}

func (e *engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.released = true
	e.pool.ClearTaskQueue()
	e.pool.Stop()
	e.logger.Debug("engine released")
}

// build composes one material with the engine defaults ahead of the caller options.
func (e *engine) build(flavor shader.Flavor, options []material.MaterialBuilderOption) (material.Material, error) {
	opts := append(e.materialDefaults(), options...)
	start := time.Now()
	m, err := material.NewMaterial(flavor, opts...)
	if p := e.activeProfiler.Load(); p != nil {
		p.Record(time.Since(start), err != nil)
	}
	return m, err
}

func (e *engine) materialDefaults() []material.MaterialBuilderOption {
	return []material.MaterialBuilderOption{
		material.WithChunks(e.chunks),
		material.WithCompositor(e.compositor),
		material.WithLogger(e.logger),
	}
}
