package timeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OffsetKind tags how an Offset resolves a segment's start time.
type OffsetKind int

const (
	// OffsetAppend starts the segment at the timeline's running end.
	OffsetAppend OffsetKind = iota

	// OffsetAbsolute starts the segment at a fixed time.
	OffsetAbsolute

	// OffsetForward starts the segment a number of seconds after the running end ("+=N").
	OffsetForward

	// OffsetBackward starts the segment a number of seconds before the running end ("-=N").
	OffsetBackward
)

// Offset positions a new segment on a timeline. The zero value appends.
type Offset struct {
	kind    OffsetKind
	seconds float64
}

// Append returns the offset that places a segment at the timeline's running end.
func Append() Offset {
	return Offset{}
}

// At returns an absolute offset.
func At(seconds float64) Offset {
	return Offset{kind: OffsetAbsolute, seconds: seconds}
}

// After returns an offset relative to the running end, equivalent to "+=N".
func After(seconds float64) Offset {
	return Offset{kind: OffsetForward, seconds: seconds}
}

// Before returns an offset relative to the running end, equivalent to "-=N".
func Before(seconds float64) Offset {
	return Offset{kind: OffsetBackward, seconds: seconds}
}

// Kind returns how the offset resolves.
func (o Offset) Kind() OffsetKind {
	return o.kind
}

// Seconds returns the offset's numeric operand, 0 for Append.
func (o Offset) Seconds() float64 {
	return o.seconds
}

// resolve computes the segment start and the new timeline duration.
//
// Parameters:
//   - runningEnd: the timeline duration before the segment is added
//   - duration: the segment duration
//
// Returns:
//   - float64: the segment start
//   - float64: the timeline duration after the segment is added
func (o Offset) resolve(runningEnd, duration float64) (float64, float64) {
	var start float64
	switch o.kind {
	case OffsetAbsolute:
		start = o.seconds
	case OffsetForward:
		start = runningEnd + o.seconds
	case OffsetBackward:
		start = runningEnd - o.seconds
	default:
		return runningEnd, runningEnd + duration
	}
	return start, max(runningEnd, start+duration)
}

func (o Offset) String() string {
	n := strconv.FormatFloat(o.seconds, 'g', -1, 64)
	switch o.kind {
	case OffsetAbsolute:
		return n
	case OffsetForward:
		return "+=" + n
	case OffsetBackward:
		return "-=" + n
	default:
		return ""
	}
}

// offsetRegex is the whole offset grammar: an optional relative sign token followed by
// an unsigned decimal literal, or an optionally negative absolute literal.
var offsetRegex = regexp.MustCompile(`^(?:(\+=|-=)\s*([0-9]+(?:\.[0-9]*)?|\.[0-9]+)|(-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)))(?:[eE][+-]?[0-9]+)?$`)

// ParseOffset parses a position offset. Accepted forms are "" (append), a decimal
// number ("1.5", "-2", "3e-1"), "+=N" and "-=N". The input is matched against a fixed
// grammar and never evaluated.
//
// Parameters:
//   - s: the offset text; surrounding whitespace is ignored
//
// Returns:
//   - Offset: the parsed offset
//   - error: ErrInvalidOffset if s does not match the grammar
func ParseOffset(s string) (Offset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Append(), nil
	}

	m := offsetRegex.FindStringSubmatch(s)
	if m == nil {
		return Offset{}, fmt.Errorf("%q: %w", s, ErrInvalidOffset)
	}

	literal := s
	if m[1] != "" {
		literal = strings.TrimSpace(s[2:])
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Offset{}, fmt.Errorf("%q: %w", s, ErrInvalidOffset)
	}

	switch m[1] {
	case "+=":
		return After(v), nil
	case "-=":
		return Before(v), nil
	default:
		return At(v), nil
	}
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseOffset.
func (o *Offset) UnmarshalText(text []byte) error {
	parsed, err := ParseOffset(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
