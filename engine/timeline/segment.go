package timeline

import (
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

// keySeq hands out segment keys. Keys are unique across every timeline in the
// process so generated function names never collide when sources are combined.
var keySeq atomic.Uint64

func nextKey() uint64 {
	return keySeq.Add(1)
}

// Transition describes what a segment animates. From and To hold kind-specific values:
// common.Vec3 for translate and scale, common.AxisAngle for rotate.
type Transition struct {
	// From is the start value. Nil chains from the previous segment of the same kind,
	// or falls back to the kind's default.
	From any

	// To is the end value.
	To any

	// Ease names a GLSL easing function such as "easeCubicOut". Empty means linear.
	Ease string

	// EaseParams are extra arguments passed to the easing function after progress.
	EaseParams []float32

	// Origin, when set, is the pivot for scale and rotate.
	Origin *common.Vec3
}

func (t Transition) clone() Transition {
	out := t
	out.EaseParams = slices.Clone(t.EaseParams)
	if t.Origin != nil {
		o := *t.Origin
		out.Origin = &o
	}
	return out
}

// Segment is one timed transition of a single kind.
type Segment struct {
	Key        uint64
	Kind       string
	Start      float64
	Duration   float64
	Trail      float64
	Transition Transition
}

// End returns Start + Duration.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// FunctionName returns the name of the GLSL function generated for this segment.
func (s Segment) FunctionName() string {
	return "applyTransform" + strconv.FormatUint(s.Key, 10)
}

// Progress mirrors the generated function's time handling on the CPU.
//
// Parameters:
//   - t: the time value
//
// Returns:
//   - float64: linear progress in [0, 1]
//   - bool: false when t is outside [Start, End+Trail] and the segment has no effect
func (s Segment) Progress(t float64) (float64, bool) {
	if t < s.Start || t > s.End()+s.Trail {
		return 0, false
	}
	if s.Duration == 0 {
		return 1, true
	}
	return common.Clamp(t-s.Start, 0, s.Duration) / s.Duration, true
}

// CallStatement formats the GLSL statement that invokes the segment's function.
//
// Parameters:
//   - timeKey: the name of the time uniform
//   - target: the vec3 variable to transform
//
// Returns:
//   - string: e.g. "applyTransform3(tTime, transformed);"
func (s Segment) CallStatement(timeKey, target string) string {
	return s.FunctionName() + "(" + timeKey + ", " + target + ");"
}

// withTrails returns a copy of segs with trails computed against the timeline duration.
func withTrails(segs []Segment, duration float64) []Segment {
	out := slices.Clone(segs)
	for i := range out {
		if i+1 < len(out) {
			out[i].Trail = out[i+1].Start - out[i].End()
		} else {
			out[i].Trail = duration - out[i].End()
		}
	}
	return out
}
