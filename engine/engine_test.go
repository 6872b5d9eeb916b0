package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine()
	defer e.Release()

	assert.ElementsMatch(t,
		[]string{timeline.KindScale, timeline.KindRotate, timeline.KindTranslate},
		e.Registry().Kinds())
	assert.True(t, e.Chunks().Has("quaternion_rotation"))
	assert.NotNil(t, e.Compositor())
	assert.NotNil(t, e.Loader())
	assert.Nil(t, e.Profiler())
}

func TestEngineNewTimelineUsesRegistry(t *testing.T) {
	reg := timeline.NewRegistry()
	e := NewEngine(WithRegistry(reg), WithWorkers(1))
	defer e.Release()

	tl := e.NewTimeline()
	err := tl.Add(1, timeline.Transitions{timeline.KindScale: {To: common.Vec3{2, 2, 2}}}, timeline.Append())
	assert.ErrorIs(t, err, timeline.ErrKindNotFound)
}

func TestEngineNewMaterial(t *testing.T) {
	e := NewEngine(WithWorkers(1))
	defer e.Release()

	tl := e.NewTimeline()
	require.NoError(t, tl.Add(1, timeline.Transitions{timeline.KindScale: {To: common.Vec3{2, 2, 2}}}, timeline.Append()))

	m, err := e.NewMaterial(shader.FlavorLambert, material.WithName("grow"), material.WithTimeline(tl))
	require.NoError(t, err)
	assert.Equal(t, "grow", m.Name())
	assert.Contains(t, m.VertexSource(), "uniform float tTime;")
}

func TestEngineBuildMaterialsKeepsOrder(t *testing.T) {
	e := NewEngine(WithWorkers(4))
	defer e.Release()

	flavors := shader.Flavors()
	var requests []MaterialRequest
	for i := 0; i < 3; i++ {
		for _, f := range flavors {
			requests = append(requests, MaterialRequest{
				Flavor:  f,
				Options: []material.MaterialBuilderOption{material.WithName(fmt.Sprintf("%s-%d", f, i))},
			})
		}
	}

	results, err := e.BuildMaterials(requests)
	require.NoError(t, err)
	require.Len(t, results, len(requests))
	for i, m := range results {
		require.NotNil(t, m)
		assert.Equal(t, requests[i].Flavor, m.Flavor())
		assert.Equal(t, fmt.Sprintf("%s-%d", requests[i].Flavor, i/len(flavors)), m.Name())
	}
}

func TestEngineBuildMaterialsErrors(t *testing.T) {
	e := NewEngine(WithWorkers(2))
	defer e.Release()

	results, err := e.BuildMaterials([]MaterialRequest{
		{Flavor: shader.FlavorBasic},
		{Flavor: "chrome"},
		{Flavor: shader.FlavorPhong, Options: []material.MaterialBuilderOption{
			material.WithChunks(shader.NewChunkRegistryFrom(nil)),
		}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shader.ErrTemplateNotFound)
	assert.ErrorIs(t, err, shader.ErrChunkNotFound)
	assert.Contains(t, err.Error(), "request 1")
	assert.Contains(t, err.Error(), "request 2")

	require.Len(t, results, 3)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
}

func TestEngineBuildMaterialsEmpty(t *testing.T) {
	e := NewEngine()
	defer e.Release()

	results, err := e.BuildMaterials(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEngineRelease(t *testing.T) {
	e := NewEngine(WithWorkers(1))
	e.Release()
	e.Release()

	_, err := e.BuildMaterials([]MaterialRequest{{Flavor: shader.FlavorBasic}})
	assert.ErrorIs(t, err, ErrEngineReleased)
	_, err = e.NewMaterial(shader.FlavorBasic)
	assert.ErrorIs(t, err, ErrEngineReleased)
}

func TestEngineLoaderSharesRegistry(t *testing.T) {
	e := NewEngine(WithWorkers(1))
	defer e.Release()

	m, err := e.Loader().DecodeMaterial(strings.NewReader("flavor: phong\nname: shell\n"))
	require.NoError(t, err)
	assert.Equal(t, shader.FlavorPhong, m.Flavor())
	assert.Equal(t, "shell", m.Name())
}

func TestEngineProfiling(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	defer common.SetLogger(nil)

	e := NewEngine(WithLogger(logger), WithProfiling(true), WithWorkers(2))
	defer e.Release()
	require.NotNil(t, e.Profiler())

	_, err := e.BuildMaterials([]MaterialRequest{{Flavor: shader.FlavorBasic}, {Flavor: shader.FlavorToon}})
	require.NoError(t, err)
	assert.Equal(t, 2, e.Profiler().Stats().Builds)
	assert.Contains(t, buf.String(), "built materials")

	e.DisableProfiler()
	_, err = e.NewMaterial(shader.FlavorBasic)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Profiler().Stats().Builds)

	e.EnableProfiler()
	_, err = e.NewMaterial(shader.FlavorBasic)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Profiler().Stats().Builds)
}
