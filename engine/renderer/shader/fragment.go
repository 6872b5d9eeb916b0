package shader

import "strings"

// Fragment is a piece of caller-written shader source, stored as an ordered list of
// lines. The zero value is an empty fragment.
type Fragment struct {
	lines []string
}

// Lines builds a fragment from individual lines. The slice is copied.
func Lines(lines ...string) Fragment {
	if len(lines) == 0 {
		return Fragment{}
	}
	return Fragment{lines: append([]string(nil), lines...)}
}

// Text builds a fragment from a single string, which may itself contain newlines.
func Text(s string) Fragment {
	if s == "" {
		return Fragment{}
	}
	return Fragment{lines: []string{s}}
}

// Append returns a new fragment with the given lines added after the existing ones.
func (f Fragment) Append(lines ...string) Fragment {
	out := make([]string, 0, len(f.lines)+len(lines))
	out = append(out, f.lines...)
	out = append(out, lines...)
	return Fragment{lines: out}
}

// Concat returns a new fragment holding f followed by other.
func (f Fragment) Concat(other Fragment) Fragment {
	return f.Append(other.lines...)
}

// Lines returns a copy of the fragment's lines.
func (f Fragment) Lines() []string {
	return append([]string(nil), f.lines...)
}

// String joins the fragment's lines with newlines.
func (f Fragment) String() string {
	return strings.Join(f.lines, "\n")
}

// Empty reports whether the fragment joins to an empty string.
func (f Fragment) Empty() bool {
	return f.String() == ""
}
