package timeline

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaleTo(to common.Vec3, ease string) Transitions {
	return Transitions{KindScale: {To: to, Ease: ease}}
}

func starts(segs []Segment) []float64 {
	out := make([]float64, len(segs))
	for i, s := range segs {
		out[i] = s.Start
	}
	return out
}

func trails(segs []Segment) []float64 {
	out := make([]float64, len(segs))
	for i, s := range segs {
		out[i] = s.Trail
	}
	return out
}

func TestTimelineAppendedScale(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1.0, scaleTo(common.Vec3{2, 2, 2}, "easeCubicOut"), Append()))
	require.NoError(t, tl.Add(0.5, scaleTo(common.Vec3{1, 1, 1}, "easeCubicIn"), Append()))

	assert.Equal(t, 1.5, tl.Duration())
	assert.Equal(t, []string{KindScale}, tl.Kinds())

	segs := tl.Segments(KindScale)
	require.Len(t, segs, 2)
	assert.Equal(t, []float64{0, 1.0}, starts(segs))
	assert.Equal(t, []float64{0, 0}, trails(segs))

	calls := strings.Split(tl.TransformCalls(KindScale), "\n")
	require.Len(t, calls, 2)
	assert.NotEqual(t, calls[0], calls[1])
	assert.Equal(t, segs[0].CallStatement("tTime", "transformed"), calls[0])
	assert.Equal(t, segs[1].CallStatement("tTime", "transformed"), calls[1])

	fns, err := tl.Compile()
	require.NoError(t, err)
	require.Len(t, fns, 2)
	assert.Contains(t, fns[0], "progress = easeCubicOut(progress);")
	assert.Contains(t, fns[1], "progress = easeCubicIn(progress);")
}

func TestTimelineCompileScaleSource(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{2, 2, 2}, "easeCubicOut"), Append()))

	fns, err := tl.Compile()
	require.NoError(t, err)
	require.Len(t, fns, 1)

	k := tl.Segments(KindScale)[0].Key
	want := fmt.Sprintf(`float cDelay%[1]d = 0.000;
float cDuration%[1]d = 1.000;
vec3 cScaleFrom%[1]d = vec3(1.0, 1.0, 1.0);
vec3 cScaleTo%[1]d = vec3(2.0, 2.0, 2.0);
void applyTransform%[1]d(float time, inout vec3 v) {
	if (time < 0.000 || time > 1.000) return;
	float progress = clamp(time - cDelay%[1]d, 0.0, cDuration%[1]d) / cDuration%[1]d;
	progress = easeCubicOut(progress);
	v *= mix(cScaleFrom%[1]d, cScaleTo%[1]d, progress);
}`, k)
	assert.Equal(t, want, fns[0])
}

func TestTimelineRelativeOffsets(t *testing.T) {
	tl := NewTimeline(nil)
	tr := Transitions{KindTranslate: {To: common.Vec3{1, 0, 0}}}
	require.NoError(t, tl.Add(1, tr, Append()))

	off, err := ParseOffset("+=5")
	require.NoError(t, err)
	require.NoError(t, tl.Add(2, tr, off))

	assert.Equal(t, 8.0, tl.Duration())
	segs := tl.Segments(KindTranslate)
	assert.Equal(t, []float64{0, 6}, starts(segs))
	assert.Equal(t, []float64{5, 0}, trails(segs))
}

func TestTimelineOverlapAllowed(t *testing.T) {
	tl := NewTimeline(nil)
	tr := Transitions{KindTranslate: {To: common.Vec3{1, 0, 0}}}
	require.NoError(t, tl.Add(2, tr, Append()))
	require.NoError(t, tl.Add(1, tr, Before(1.5)))

	assert.Equal(t, 2.0, tl.Duration())
	segs := tl.Segments(KindTranslate)
	assert.Equal(t, []float64{0, 0.5}, starts(segs))
	assert.Equal(t, []float64{-1.5, 0.5}, trails(segs))
}

func TestTimelineOverlapRejected(t *testing.T) {
	tl := NewTimeline(nil, WithOverlapPolicy(OverlapReject))
	tr := Transitions{KindTranslate: {To: common.Vec3{1, 0, 0}}}
	require.NoError(t, tl.Add(1, tr, Append()))

	err := tl.Add(1, tr, At(0.5))
	assert.ErrorIs(t, err, ErrSegmentOverlap)
	assert.Equal(t, 1.0, tl.Duration())
	assert.Len(t, tl.Segments(KindTranslate), 1)

	// touching intervals do not overlap
	require.NoError(t, tl.Add(1, tr, At(1)))
	// a different kind is never checked against translate
	require.NoError(t, tl.Add(1, Transitions{KindScale: {To: common.Vec3{2, 2, 2}}}, At(0)))
}

func TestTimelineUnknownKindLeavesTimelineUnchanged(t *testing.T) {
	tl := NewTimeline(nil)
	err := tl.Add(1, Transitions{
		KindTranslate: {To: common.Vec3{1, 0, 0}},
		"wobble":      {To: 1.0},
	}, Append())
	assert.ErrorIs(t, err, ErrKindNotFound)
	assert.Equal(t, 0.0, tl.Duration())
	assert.Empty(t, tl.Kinds())
	assert.Empty(t, tl.Segments(KindTranslate))
}

func TestTimelineEmptyTransitionsAdvance(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{KindTranslate: {To: common.Vec3{1, 0, 0}}}, Append()))
	require.NoError(t, tl.Add(2, nil, Append()))

	assert.Equal(t, 3.0, tl.Duration())
	assert.Equal(t, []float64{2}, trails(tl.Segments(KindTranslate)))
}

func TestTimelineTrailsNeverNegativeWhenAppending(t *testing.T) {
	tl := NewTimeline(nil)
	for i, d := range []float64{0.3, 1, 0.25, 2} {
		tr := Transitions{KindTranslate: {To: common.Vec3{float32(i), 0, 0}}}
		if i%2 == 0 {
			tr[KindScale] = Transition{To: common.Vec3{2, 2, 2}}
		}
		require.NoError(t, tl.Add(d, tr, Append()))
	}
	for _, kind := range tl.Kinds() {
		for _, seg := range tl.Segments(kind) {
			assert.GreaterOrEqual(t, seg.Trail, 0.0, "kind %s segment %d", kind, seg.Key)
		}
	}
	scale := tl.Segments(KindScale)
	require.Len(t, scale, 2)
	assert.InDelta(t, 1.0, scale[0].Trail, 1e-9)
	assert.InDelta(t, 2.0, scale[1].Trail, 1e-9)
}

func TestTimelineCompileIsRepeatable(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{
		KindTranslate: {To: common.Vec3{0, 5, 0}},
		KindRotate:    {To: common.AxisAngle{Axis: common.Vec3{0, 1, 0}, Angle: math.Pi}},
	}, Append()))
	require.NoError(t, tl.Add(1, Transitions{KindTranslate: {To: common.Vec3{0, 0, 0}}}, After(0.5)))

	first, err := tl.Compile()
	require.NoError(t, err)
	second, err := tl.Compile()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestTimelineFromChaining(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{2, 2, 2}, ""), Append()))
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{3, 3, 3}, ""), Append()))
	require.NoError(t, tl.Add(1, Transitions{KindScale: {From: common.Vec3{5, 5, 5}, To: common.Vec3{1, 1, 1}}}, Append()))

	segs := tl.Segments(KindScale)
	require.Len(t, segs, 3)
	assert.Equal(t, common.Vec3{1, 1, 1}, segs[0].Transition.From)
	assert.Equal(t, common.Vec3{2, 2, 2}, segs[1].Transition.From)
	assert.Equal(t, common.Vec3{5, 5, 5}, segs[2].Transition.From)
}

func TestTimelineCopiesTransition(t *testing.T) {
	tl := NewTimeline(nil)
	origin := common.Vec3{1, 0, 0}
	params := []float32{2}
	require.NoError(t, tl.Add(1, Transitions{KindScale: {
		To: common.Vec3{2, 2, 2}, Ease: "easeBackOut", EaseParams: params, Origin: &origin,
	}}, Append()))

	params[0] = 9
	origin[0] = 9

	seg := tl.Segments(KindScale)[0]
	assert.Equal(t, []float32{2}, seg.Transition.EaseParams)
	assert.Equal(t, common.Vec3{1, 0, 0}, *seg.Transition.Origin)
}

func TestTimelineZeroDuration(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(0, Transitions{KindTranslate: {To: common.Vec3{1, 0, 0}}}, At(2)))

	fns, err := tl.Compile()
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Contains(t, fns[0], "\tfloat progress = 1.0;\n")
	assert.NotContains(t, fns[0], "clamp(")
	assert.Contains(t, fns[0], "if (time < 2.000 || time > 2.000) return;")
}

func TestTimelineEaseParams(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{KindTranslate: {
		To: common.Vec3{1, 0, 0}, Ease: "easeElasticOut", EaseParams: []float32{1, 0.25},
	}}, Append()))

	fns, err := tl.Compile()
	require.NoError(t, err)
	assert.Contains(t, fns[0], "progress = easeElasticOut(progress, 1.000, 0.2500);")
}

func TestTimelineCompileRotate(t *testing.T) {
	tl := NewTimeline(nil)
	origin := common.Vec3{0, 1, 0}
	require.NoError(t, tl.Add(1, Transitions{KindRotate: {
		To:     common.AxisAngle{Axis: common.Vec3{0, 0, 1}, Angle: 2},
		Origin: &origin,
	}}, Append()))

	fns, err := tl.Compile()
	require.NoError(t, err)
	require.Len(t, fns, 1)

	k := tl.Segments(KindRotate)[0].Key
	src := fns[0]
	assert.Contains(t, src, fmt.Sprintf("vec4 cRotationFrom%d = vec4(0.0000000, 0.0000000, 1.0000000, 0.0000000);", k))
	assert.Contains(t, src, fmt.Sprintf("vec4 cRotationTo%d = vec4(0.0000000, 0.0000000, 1.0000000, 2.0000000);", k))
	assert.Contains(t, src, fmt.Sprintf("vec3 cOrigin%d = vec3(0.0, 1.0, 0.0);", k))
	assert.Contains(t, src, "\tvec4 q = quatFromAxisAngle(axis, angle);\n")
	assert.Contains(t, src, fmt.Sprintf("\tv -= cOrigin%[1]d;\n\tv = rotateVector(q, v);\n\tv += cOrigin%[1]d;\n", k))
}

func TestTimelineCompileTranslateWithoutOriginLines(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1.5, Transitions{KindTranslate: {To: common.Vec3{0.05, 12, -3}}}, Append()))

	fns, err := tl.Compile()
	require.NoError(t, err)
	k := tl.Segments(KindTranslate)[0].Key
	assert.Contains(t, fns[0], fmt.Sprintf("vec3 cTranslateTo%d = vec3(0.050, 12.0, -3.0);", k))
	assert.Contains(t, fns[0], fmt.Sprintf("\tv += mix(cTranslateFrom%[1]d, cTranslateTo%[1]d, progress);\n}", k))
	assert.NotContains(t, fns[0], "cOrigin")
}

func TestTimelineCompileInvalidValue(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{KindTranslate: {To: "far away"}}, Append()))

	_, err := tl.Compile()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestTimelineCustomKind(t *testing.T) {
	reg := NewDefaultRegistry()
	_, err := reg.Register("fade", fadeDefinition())
	require.NoError(t, err)

	tl := NewTimeline(reg, WithTimeKey("uTime"), WithTarget("pos"))
	require.NoError(t, tl.Add(1, Transitions{"fade": {To: 0.0}}, Append()))

	seg := tl.Segments("fade")[0]
	assert.Equal(t, 1.0, seg.Transition.From)
	assert.Equal(t, seg.FunctionName()+"(uTime, pos);", tl.TransformCalls("fade"))
	assert.Equal(t, seg.FunctionName()+"(uTime, objectNormal);", tl.TransformCallsFor("fade", "objectNormal"))

	_, err = tl.Sample("fade", 0.5, common.Vec3{})
	assert.ErrorIs(t, err, ErrNotSampleable)
}

func TestTimelineCallOrder(t *testing.T) {
	reg := NewDefaultRegistry()
	_, err := reg.Register("fade", fadeDefinition())
	require.NoError(t, err)

	tl := NewTimeline(reg)
	require.NoError(t, tl.Add(1, Transitions{
		"fade":        {To: 0.0},
		KindTranslate: {To: common.Vec3{1, 0, 0}},
	}, Append()))
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{2, 2, 2}, ""), Append()))

	assert.Equal(t, []string{"fade", KindTranslate, KindScale}, tl.Kinds())
	assert.Equal(t, []string{KindScale, KindTranslate, "fade"}, tl.CallOrder())
	assert.Equal(t, []string{"fade", KindTranslate, KindScale}, tl.CallOrder("fade", KindTranslate, KindRotate))
	assert.Empty(t, tl.TransformCalls(KindRotate))
}

func TestTimelineRequiredChunks(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{
		KindRotate:    {To: common.AxisAngle{Axis: common.Vec3{0, 1, 0}, Angle: 1}, Ease: "easeCubicOut"},
		KindTranslate: {To: common.Vec3{1, 0, 0}, Ease: "easeBounceInOut"},
		KindScale:     {To: common.Vec3{2, 2, 2}},
	}, Append()))

	assert.Equal(t, []string{"ease_bounce_in_out", "ease_cubic_out", "quaternion_rotation"}, tl.RequiredChunks())
	assert.Equal(t, []string{"ease_bounce_in_out", "ease_cubic_out"}, tl.EaseChunks())
}

func TestTimelineSample(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{2, 2, 2}, "easeCubicIn"), Append()))

	v, err := tl.Sample(KindScale, 0.5, common.Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.125, v[0], 1e-6)

	v, err = tl.Sample(KindScale, 1, common.Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2, v[1], 1e-6)

	// past the end plus trail the segment has no effect
	v, err = tl.Sample(KindScale, 5, common.Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, common.Vec3{1, 1, 1}, v)

	_, err = tl.Sample("wobble", 0, common.Vec3{})
	assert.ErrorIs(t, err, ErrKindNotFound)
}

func TestTimelineSampleUnknownEaseIsLinear(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, scaleTo(common.Vec3{2, 2, 2}, "easeWobble"), Append()))

	v, err := tl.Sample(KindScale, 0.5, common.Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v[2], 1e-6)
	assert.False(t, HasEasing("easeWobble"))
	assert.True(t, HasEasing("easeCubicIn"))
}

func TestTimelineRotateWithoutAxis(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{KindRotate: {To: common.AxisAngle{Angle: 1}}}, Append()))

	fns, err := tl.Compile()
	require.NoError(t, err)
	require.Len(t, fns, 1)
	key := tl.Segments(KindRotate)[0].Key
	assert.Contains(t, fns[0], fmt.Sprintf("vec4 cRotationFrom%d = vec4(0.0000000, 1.0000000, 0.0000000, 0.0000000);", key))
	assert.Contains(t, fns[0], fmt.Sprintf("vec4 cRotationTo%d = vec4(0.0000000, 1.0000000, 0.0000000, 1.0000000);", key))

	v, err := tl.Sample(KindRotate, 1, common.Vec3{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(1), v[0], 1e-6)
	assert.InDelta(t, 0, v[1], 1e-6)
	assert.InDelta(t, -math.Sin(1), v[2], 1e-6)
}

func TestTimelineSampleRotate(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{KindRotate: {
		To: common.AxisAngle{Axis: common.Vec3{0, 0, 1}, Angle: math.Pi / 2},
	}}, Append()))

	v, err := tl.Sample(KindRotate, 1, common.Vec3{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, v[0], 1e-6)
	assert.InDelta(t, 1, v[1], 1e-6)
	assert.InDelta(t, 0, v[2], 1e-6)
}

func TestTimelineSampleAll(t *testing.T) {
	tl := NewTimeline(nil)
	require.NoError(t, tl.Add(1, Transitions{
		KindTranslate: {To: common.Vec3{1, 0, 0}},
		KindScale:     {To: common.Vec3{2, 2, 2}},
	}, Append()))

	v, err := tl.SampleAll(1, common.Vec3{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 3, v[0], 1e-6)

	v, err = tl.SampleAll(1, common.Vec3{1, 0, 0}, KindTranslate, KindScale)
	require.NoError(t, err)
	assert.InDelta(t, 4, v[0], 1e-6)
}
