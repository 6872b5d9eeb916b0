// compositor.go implements the shader template compositor. It splices caller-written
// fragments into a template at the template's anchor annotations and then resolves
// //@bas:include lines against a ChunkRegistry, producing a complete stage source.
//
// Composition is pure text manipulation: nothing in the template or the fragments is
// parsed as GLSL, and the composed output is not validated.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

// maxIncludeDepth bounds how deeply chunks may include other chunks.
const maxIncludeDepth = 8

// compositor is the implementation of the Compositor interface.
type compositor struct {
	chunks *ChunkRegistry
}

// Compositor composes templates and fragments into complete shader stage sources.
type Compositor interface {
	// Compose splices fragments into a template. For every anchor the template defines:
	//   - append anchors keep their annotation line and get the joined fragment text on
	//     the following line
	//   - override anchors have the region from the annotation through the next
	//     //@bas:end line replaced by the fragment text
	//   - anchors without a fragment (or with an empty one) leave the template untouched
	//
	// Fragments keyed by anchors the template does not define are ignored. After
	// splicing, every //@bas:include line is replaced by its chunk source, each chunk
	// being included at most once per composed source.
	//
	// Parameters:
	//   - t: the template to compose
	//   - fragments: fragment text keyed by anchor
	//
	// Returns:
	//   - string: the composed source
	//   - error: ErrAnchorNotFound, ErrDuplicateAnchor or ErrUnterminatedAnchor when the
	//     template's annotations do not match its anchor list; ErrChunkNotFound or
	//     ErrIncludeDepth when an include cannot be resolved
	Compose(t Template, fragments map[Anchor]Fragment) (string, error)

	// Chunks returns the registry used to resolve includes.
	//
	// Returns:
	//   - *ChunkRegistry: the chunk registry, possibly nil
	Chunks() *ChunkRegistry
}

var _ Compositor = &compositor{}

// NewCompositor creates a Compositor that resolves includes against the given registry.
// A nil registry is allowed; any include then fails with ErrChunkNotFound.
//
// Parameters:
//   - chunks: the chunk registry
//
// Returns:
//   - Compositor: a ready-to-use compositor
func NewCompositor(chunks *ChunkRegistry) Compositor {
	return &compositor{chunks: chunks}
}

func (c *compositor) Chunks() *ChunkRegistry {
	return c.chunks
}

func (c *compositor) Compose(t Template, fragments map[Anchor]Fragment) (string, error) {
	lines := strings.Split(t.Source, "\n")
	positions, err := locateAnchors(t, lines)
	if err != nil {
		return "", err
	}

	for anchor, frag := range fragments {
		if !t.HasAnchor(anchor) && !frag.Empty() {
			common.Logger().Debug("fragment ignored, anchor not defined by template",
				"flavor", t.Flavor, "stage", t.ShaderType, "anchor", anchor)
		}
	}

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		anchor, ok := positions[i]
		if !ok {
			out = append(out, line)
			continue
		}
		frag := fragments[anchor]
		if frag.Empty() {
			out = append(out, line)
			continue
		}

		spec, _ := t.AnchorSpec(anchor)
		switch spec.Placement {
		case PlacementOverride:
			out = append(out, frag.String())
			i = findEnd(lines, i+1)
		default:
			out = append(out, line, frag.String())
		}
		common.Logger().Debug("fragment spliced", "flavor", t.Flavor, "stage", t.ShaderType, "anchor", anchor, "placement", spec.Placement)
	}

	// re-split so multi-line fragment strings are scanned line by line for includes
	spliced := strings.Split(strings.Join(out, "\n"), "\n")
	resolved, err := c.resolveIncludes(spliced, 0, make(map[string]bool))
	if err != nil {
		return "", fmt.Errorf("flavor %q stage %s: %w", t.Flavor, t.ShaderType, err)
	}
	return strings.Join(resolved, "\n"), nil
}

// locateAnchors maps line indexes to the declared anchors annotated on them and checks
// that every declared anchor appears exactly once, with override anchors terminated.
func locateAnchors(t Template, lines []string) (map[int]Anchor, error) {
	positions := make(map[int]Anchor)
	seen := make(map[Anchor]int)
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return nil, fmt.Errorf("flavor %q stage %s: %w", t.Flavor, t.ShaderType, err)
		}
		if a == nil || a.Type != AnnotationTypeAnchor || !t.HasAnchor(a.Anchor) {
			continue
		}
		if prev, dup := seen[a.Anchor]; dup {
			return nil, fmt.Errorf("flavor %q stage %s: anchor %q on lines %d and %d: %w",
				t.Flavor, t.ShaderType, a.Anchor, prev+1, i+1, ErrDuplicateAnchor)
		}
		seen[a.Anchor] = i
		positions[i] = a.Anchor
	}

	for _, spec := range t.Anchors {
		i, ok := seen[spec.Anchor]
		if !ok {
			return nil, fmt.Errorf("flavor %q stage %s: anchor %q: %w", t.Flavor, t.ShaderType, spec.Anchor, ErrAnchorNotFound)
		}
		if spec.Placement == PlacementOverride && findEnd(lines, i+1) < 0 {
			return nil, fmt.Errorf("flavor %q stage %s: anchor %q: %w", t.Flavor, t.ShaderType, spec.Anchor, ErrUnterminatedAnchor)
		}
	}
	return positions, nil
}

// findEnd returns the index of the first end annotation at or after from, or -1.
func findEnd(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if a, _ := parseAnnotation(lines[i], i+1); a != nil && a.Type == annotationTypeEnd {
			return i
		}
	}
	return -1
}

// resolveIncludes replaces include lines with chunk sources, recursing into the chunks.
// Chunks already present in seen are dropped so each is emitted once. Other lines,
// annotation-like caller comments included, pass through untouched.
func (c *compositor) resolveIncludes(lines []string, depth int, seen map[string]bool) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		chunk, ok := parseInclude(line)
		if !ok {
			out = append(out, line)
			continue
		}
		if seen[chunk] {
			continue
		}
		if depth >= maxIncludeDepth {
			return nil, fmt.Errorf("chunk %q at depth %d: %w", chunk, depth, ErrIncludeDepth)
		}

		src, err := c.chunks.Lookup(chunk)
		if err != nil {
			return nil, err
		}
		seen[chunk] = true

		nested, err := c.resolveIncludes(strings.Split(src, "\n"), depth+1, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
