package timeline

// OverlapPolicy controls whether segments of the same kind may overlap in time.
type OverlapPolicy int

const (
	// OverlapAllow accepts overlapping segments. A segment followed by an earlier
	// starting one gets a negative trail and stops taking effect at whichever time
	// bound is reached first.
	OverlapAllow OverlapPolicy = iota

	// OverlapReject makes Add fail with ErrSegmentOverlap instead.
	OverlapReject
)

// TimelineBuilderOption is a functional option for configuring a Timeline.
type TimelineBuilderOption func(*timeline)

// WithTimeKey sets the name of the time uniform the transform calls pass in.
//
// Parameters:
//   - key: the uniform name, "tTime" by default
//
// Returns:
//   - TimelineBuilderOption: a function that applies the time key option
func WithTimeKey(key string) TimelineBuilderOption {
	return func(t *timeline) {
		if key != "" {
			t.timeKey = key
		}
	}
}

// WithTarget sets the vec3 variable the transform calls modify.
//
// Parameters:
//   - target: the variable name, "transformed" by default
//
// Returns:
//   - TimelineBuilderOption: a function that applies the target option
func WithTarget(target string) TimelineBuilderOption {
	return func(t *timeline) {
		if target != "" {
			t.target = target
		}
	}
}

// WithOverlapPolicy sets how Add treats same-kind overlaps.
//
// Parameters:
//   - policy: OverlapAllow (default) or OverlapReject
//
// Returns:
//   - TimelineBuilderOption: a function that applies the overlap policy option
func WithOverlapPolicy(policy OverlapPolicy) TimelineBuilderOption {
	return func(t *timeline) {
		t.overlap = policy
	}
}
