// annotations.go defines the annotation vocabulary of the shader template compositor.
// Annotations are single-line GLSL comments prefixed with //@bas: that mark the places
// where caller-supplied fragments are spliced into a template (anchors), close the
// default region of an override anchor (end), or pull a registered chunk into the
// composed source (include). Annotation lines are plain comments, so a composed source
// keeps them and still compiles.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation line. Leading
// whitespace before the prefix is ignored.
const annotationPrefix = "//@bas:"

// AnnotationType identifies the kind of annotation parsed from a GLSL comment line.
type AnnotationType string

const (
	// AnnotationTypeAnchor marks an insertion point. The anchor name is the single
	// argument of the annotation.
	//
	// Syntax: //@bas:<anchor>
	//
	// Example: //@bas:position
	AnnotationTypeAnchor AnnotationType = "anchor"

	// annotationTypeEnd closes the default region of an override anchor. Everything
	// between the override anchor line and the next end line is replaced when a
	// fragment is supplied for that anchor.
	//
	// Syntax: //@bas:end
	annotationTypeEnd AnnotationType = "end"

	// annotationTypeInclude is replaced with the source of a registered chunk after
	// all fragments have been spliced. Chunks may include other chunks.
	//
	// Syntax: //@bas:include <chunk>
	//
	// Example: //@bas:include quaternion_rotation
	annotationTypeInclude AnnotationType = "include"
)

// Annotation represents a single parsed //@bas: annotation line.
type Annotation struct {
	// Type identifies which annotation was parsed (anchor, end or include).
	Type AnnotationType

	// Anchor is the anchor name for AnnotationTypeAnchor, empty otherwise.
	Anchor Anchor

	// Chunk is the chunk name for include annotations, empty otherwise.
	Chunk string

	// Line is the 1-based line number in the source where the annotation was found.
	Line int
}

// Anchor names an insertion point inside a template.
type Anchor string

const (
	// AnchorParameters receives top-level declarations (uniforms, attributes).
	AnchorParameters Anchor = "parameters"

	// AnchorVarying receives varying declarations. Present in both stages.
	AnchorVarying Anchor = "varying"

	// AnchorFunctions receives helper function definitions, placed before main.
	AnchorFunctions Anchor = "functions"

	// AnchorInit is the first statement position inside main.
	AnchorInit Anchor = "init"

	// AnchorNormal follows the declaration of objectNormal in the vertex stage.
	AnchorNormal Anchor = "normal"

	// AnchorPosition follows the declaration of the transformed position.
	AnchorPosition Anchor = "position"

	// AnchorColor follows the per-vertex color assignment.
	AnchorColor Anchor = "color"

	// AnchorPostMorph follows morph target blending.
	AnchorPostMorph Anchor = "post_morph"

	// AnchorPostSkinning follows skinning.
	AnchorPostSkinning Anchor = "post_skinning"

	// AnchorDiffuse follows the declaration of diffuseColor in the fragment stage.
	AnchorDiffuse Anchor = "diffuse"

	// AnchorMap is an override anchor around the diffuse texture lookup.
	AnchorMap Anchor = "map"

	// AnchorAlpha is an override anchor around the alpha texture lookup.
	AnchorAlpha Anchor = "alpha"

	// AnchorEmissive follows the declaration of totalEmissiveRadiance.
	AnchorEmissive Anchor = "emissive"

	// AnchorSpecular follows the declaration of specularColor.
	AnchorSpecular Anchor = "specular"

	// AnchorRoughness follows the declaration of roughnessFactor.
	AnchorRoughness Anchor = "roughness"

	// AnchorMetalness follows the declaration of metalnessFactor.
	AnchorMetalness Anchor = "metalness"

	// AnchorShape precedes the final fragment color write of point sprites.
	AnchorShape Anchor = "shape"
)

// Annotation returns the annotation line that marks this anchor in a template.
//
// Returns:
//   - string: the annotation text, e.g. "//@bas:position"
func (a Anchor) Annotation() string {
	return annotationPrefix + string(a)
}

// Placement describes how a fragment is spliced at an anchor.
type Placement int

const (
	// PlacementAppend inserts the fragment on the lines directly after the anchor
	// annotation. The annotation itself is preserved.
	PlacementAppend Placement = iota

	// PlacementOverride replaces the region from the anchor annotation up to and
	// including the next //@bas:end line. Without a fragment the region is kept.
	PlacementOverride
)

func (p Placement) String() string {
	switch p {
	case PlacementAppend:
		return "append"
	case PlacementOverride:
		return "override"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// AnchorSpec pairs an anchor with its placement rule inside a template.
type AnchorSpec struct {
	Anchor    Anchor
	Placement Placement
}

// IncludeDirective returns the annotation line that includes the named chunk.
//
// Parameters:
//   - chunk: the chunk name, e.g. "ease_cubic_in_out"
//
// Returns:
//   - string: the include annotation, e.g. "//@bas:include ease_cubic_in_out"
func IncludeDirective(chunk string) string {
	return annotationPrefix + string(annotationTypeInclude) + " " + chunk
}

// parseInclude reports the chunk named by a well-formed include line. Anything else,
// including malformed or unknown annotations in caller text, is not an include.
func parseInclude(line string) (string, bool) {
	after, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return "", false
	}
	args := strings.Fields(after)
	if len(args) != 2 || args[0] != string(annotationTypeInclude) {
		return "", false
	}
	return args[1], true
}

// parseAnnotation attempts to parse a single line of GLSL source as a //@bas: annotation.
// Returns nil with no error for lines that do not start with the annotation prefix.
//
// Parameters:
//   - line: the raw source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: ErrMalformedAnnotation if the prefix is present but the arguments are wrong
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	after, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation: %w", lineNum, ErrMalformedAnnotation)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one chunk name: %w", lineNum, ErrMalformedAnnotation)
		}
		return &Annotation{Type: annotationTypeInclude, Chunk: args[1], Line: lineNum}, nil
	case string(annotationTypeEnd):
		if len(args) != 1 {
			return nil, fmt.Errorf("line %d: end annotation takes no arguments: %w", lineNum, ErrMalformedAnnotation)
		}
		return &Annotation{Type: annotationTypeEnd, Line: lineNum}, nil
	default:
		if len(args) != 1 {
			return nil, fmt.Errorf("line %d: anchor annotation %q takes no arguments: %w", lineNum, args[0], ErrMalformedAnnotation)
		}
		return &Annotation{Type: AnnotationTypeAnchor, Anchor: Anchor(args[0]), Line: lineNum}, nil
	}
}
