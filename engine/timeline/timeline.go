// timeline.go implements the timeline compiler. A timeline collects transform segments
// per kind as they are added and turns them into GLSL: one uniquely named function per
// segment plus the call statements that run them against a vertex attribute.
package timeline

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
)

const (
	defaultTimeKey = "tTime"
	defaultTarget  = "transformed"
)

// DefaultOrder is the call order used when callers do not pick one: scale first, then
// rotate, then translate.
var DefaultOrder = []string{KindScale, KindRotate, KindTranslate}

// Transitions maps kind names to the transition added for that kind.
type Transitions map[string]Transition

// timeline is the implementation of the Timeline interface.
type timeline struct {
	registry *Registry
	timeKey  string
	target   string
	overlap  OverlapPolicy

	duration float64
	kinds    []string
	segments map[string][]Segment
}

// Timeline is an append-only list of transform segments grouped by kind, compiled into
// GLSL functions and call statements.
type Timeline interface {
	// Add appends one segment per kind in transitions, all sharing the same start and
	// duration. Kinds are processed in sorted order so keys are assigned
	// deterministically. A transition without From chains from the previous segment
	// of its kind, or uses the kind's DefaultFrom for the first one.
	//
	// Parameters:
	//   - duration: the segment duration in seconds
	//   - transitions: the transition per kind
	//   - offset: where the segments start; Append() places them at the running end
	//
	// Returns:
	//   - error: ErrKindNotFound for an unregistered kind, ErrSegmentOverlap under
	//     OverlapReject; the timeline is unchanged on error
	Add(duration float64, transitions Transitions, offset Offset) error

	// Compile generates the source of every segment, kind by kind in first-appearance
	// order and segment by segment in insertion order. Trails are computed on copies,
	// so compiling is repeatable and yields identical output.
	//
	// Returns:
	//   - []string: one generated source per segment
	//   - error: a compiler error, or ErrKindNotFound if a kind was removed
	Compile() ([]string, error)

	// TransformCalls returns the newline-joined call statements of a kind's segments,
	// applied to the configured target. Empty when the kind has no segments.
	//
	// Parameters:
	//   - kind: the kind name
	//
	// Returns:
	//   - string: the call statements
	TransformCalls(kind string) string

	// TransformCallsFor is TransformCalls with an explicit target variable.
	//
	// Parameters:
	//   - kind: the kind name
	//   - target: the vec3 variable to transform
	//
	// Returns:
	//   - string: the call statements
	TransformCallsFor(kind, target string) string

	// Duration returns the running end of the timeline in seconds.
	Duration() float64

	// Kinds returns the kinds with at least one segment, in first-appearance order.
	Kinds() []string

	// Segments returns copies of a kind's segments with trails filled in.
	Segments(kind string) []Segment

	// TimeKey returns the name of the time uniform.
	TimeKey() string

	// Target returns the default variable transformed by the call statements.
	Target() string

	// CallOrder returns the kinds to invoke in order. Kinds listed in order come first
	// when present; the remaining kinds follow in first-appearance order. An empty
	// order means DefaultOrder.
	//
	// Parameters:
	//   - order: the preferred kind order
	//
	// Returns:
	//   - []string: the present kinds in call order
	CallOrder(order ...string) []string

	// RequiredChunks returns the sorted chunk names the generated source depends on:
	// the chunks of each present kind and the chunk of every easing used.
	RequiredChunks() []string

	// EaseChunks returns the sorted chunk names of the easings used. An easing the
	// caller defines in its own source has no chunk, so callers resolving these should
	// skip names their chunk registry does not hold.
	EaseChunks() []string

	// Sample evaluates a kind's segments on the CPU at time t, mirroring the
	// generated functions.
	//
	// Parameters:
	//   - kind: the kind name
	//   - t: the time value
	//   - v: the input vector
	//
	// Returns:
	//   - common.Vec3: the transformed vector
	//   - error: ErrKindNotFound, ErrNotSampleable or an invalid value error
	Sample(kind string, t float64, v common.Vec3) (common.Vec3, error)

	// SampleAll runs Sample for every present kind in CallOrder(order...).
	SampleAll(t float64, v common.Vec3, order ...string) (common.Vec3, error)
}

var _ Timeline = &timeline{}

// NewTimeline creates an empty timeline whose kinds resolve against reg.
//
// Parameters:
//   - reg: the segment kind registry; nil uses a fresh default registry
//   - options: functional options for configuring the timeline
//
// Returns:
//   - Timeline: the timeline
func NewTimeline(reg *Registry, options ...TimelineBuilderOption) Timeline {
	if reg == nil {
		reg = NewDefaultRegistry()
	}
	t := &timeline{
		registry: reg,
		timeKey:  defaultTimeKey,
		target:   defaultTarget,
		segments: make(map[string][]Segment),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *timeline) Add(duration float64, transitions Transitions, offset Offset) error {
	kinds := slices.Sorted(maps.Keys(transitions))
	defs := make([]Definition, len(kinds))
	for i, kind := range kinds {
		def, err := t.registry.Lookup(kind)
		if err != nil {
			return err
		}
		defs[i] = def
	}

	start, total := offset.resolve(t.duration, duration)
	if t.overlap == OverlapReject {
		for _, kind := range kinds {
			for _, seg := range t.segments[kind] {
				if start < seg.End() && seg.Start < start+duration {
					return fmt.Errorf("%s segment [%g, %g] overlaps segment %d [%g, %g]: %w",
						kind, start, start+duration, seg.Key, seg.Start, seg.End(), ErrSegmentOverlap)
				}
			}
		}
	}

	for i, kind := range kinds {
		tr := transitions[kind].clone()
		if tr.From == nil {
			if prev := t.segments[kind]; len(prev) > 0 {
				tr.From = prev[len(prev)-1].Transition.To
			} else {
				tr.From = defs[i].DefaultFrom
			}
		}

		seg := Segment{
			Key:        nextKey(),
			Kind:       kind,
			Start:      start,
			Duration:   duration,
			Transition: tr,
		}
		if len(t.segments[kind]) == 0 {
			t.kinds = append(t.kinds, kind)
		}
		t.segments[kind] = append(t.segments[kind], seg)
		common.Logger().Debug("timeline segment added", "kind", kind, "key", seg.Key, "start", start, "duration", duration)
	}
	t.duration = total
	return nil
}

func (t *timeline) Compile() ([]string, error) {
	var out []string
	for _, kind := range t.kinds {
		def, err := t.registry.Lookup(kind)
		if err != nil {
			return nil, err
		}
		for _, seg := range withTrails(t.segments[kind], t.duration) {
			src, err := def.Compiler(seg)
			if err != nil {
				return nil, fmt.Errorf("compile %s segment %d: %w", kind, seg.Key, err)
			}
			out = append(out, src)
		}
	}
	common.Logger().Debug("timeline compiled", "functions", len(out), "duration", t.duration)
	return out, nil
}

func (t *timeline) TransformCalls(kind string) string {
	return t.TransformCallsFor(kind, t.target)
}

func (t *timeline) TransformCallsFor(kind, target string) string {
	segs := t.segments[kind]
	calls := make([]string, 0, len(segs))
	for _, seg := range segs {
		calls = append(calls, seg.CallStatement(t.timeKey, target))
	}
	return strings.Join(calls, "\n")
}

func (t *timeline) Duration() float64 {
	return t.duration
}

func (t *timeline) Kinds() []string {
	return slices.Clone(t.kinds)
}

func (t *timeline) Segments(kind string) []Segment {
	return withTrails(t.segments[kind], t.duration)
}

func (t *timeline) TimeKey() string {
	return t.timeKey
}

func (t *timeline) Target() string {
	return t.target
}

func (t *timeline) CallOrder(order ...string) []string {
	if len(order) == 0 {
		order = DefaultOrder
	}
	out := make([]string, 0, len(t.kinds))
	for _, kind := range order {
		if len(t.segments[kind]) > 0 && !slices.Contains(out, kind) {
			out = append(out, kind)
		}
	}
	for _, kind := range t.kinds {
		if !slices.Contains(out, kind) {
			out = append(out, kind)
		}
	}
	return out
}

func (t *timeline) EaseChunks() []string {
	set := make(map[string]struct{})
	for _, kind := range t.kinds {
		for _, seg := range t.segments[kind] {
			if name, ok := shader.EaseChunkName(seg.Transition.Ease); ok {
				set[name] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func (t *timeline) RequiredChunks() []string {
	set := make(map[string]struct{})
	for _, kind := range t.kinds {
		if def, err := t.registry.Lookup(kind); err == nil {
			for _, c := range def.Chunks {
				set[c] = struct{}{}
			}
		}
		for _, seg := range t.segments[kind] {
			if name, ok := shader.EaseChunkName(seg.Transition.Ease); ok {
				set[name] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func (t *timeline) Sample(kind string, at float64, v common.Vec3) (common.Vec3, error) {
	def, err := t.registry.Lookup(kind)
	if err != nil {
		return v, err
	}
	if def.Apply == nil {
		return v, fmt.Errorf("kind %q: %w", kind, ErrNotSampleable)
	}

	for _, seg := range withTrails(t.segments[kind], t.duration) {
		p, ok := seg.Progress(at)
		if !ok {
			continue
		}
		v, err = def.Apply(seg, applyEasing(seg.Transition.Ease, p), v)
		if err != nil {
			return v, fmt.Errorf("sample %s segment %d: %w", kind, seg.Key, err)
		}
	}
	return v, nil
}

func (t *timeline) SampleAll(at float64, v common.Vec3, order ...string) (common.Vec3, error) {
	var err error
	for _, kind := range t.CallOrder(order...) {
		v, err = t.Sample(kind, at, v)
		if err != nil {
			return v, err
		}
	}
	return v, nil
}
