package shader

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed assets/templates/*.vert assets/templates/*.frag
var templateAssets embed.FS

// Flavor names a lighting model. Each flavor has one vertex and one fragment template.
type Flavor string

const (
	FlavorBasic    Flavor = "basic"
	FlavorLambert  Flavor = "lambert"
	FlavorPhong    Flavor = "phong"
	FlavorStandard Flavor = "standard"
	FlavorToon     Flavor = "toon"
	FlavorPoints   Flavor = "points"
	FlavorDepth    Flavor = "depth"
	FlavorDistance Flavor = "distance"
)

// Template is an immutable base stage source with the anchors it defines.
type Template struct {
	Flavor     Flavor
	ShaderType ShaderType
	Source     string
	Anchors    []AnchorSpec
}

// AnchorSpec returns the placement spec of the given anchor.
//
// Parameters:
//   - a: the anchor to look up
//
// Returns:
//   - AnchorSpec: the spec for the anchor
//   - bool: false if the template does not define the anchor
func (t Template) AnchorSpec(a Anchor) (AnchorSpec, bool) {
	for _, spec := range t.Anchors {
		if spec.Anchor == a {
			return spec, true
		}
	}
	return AnchorSpec{}, false
}

// HasAnchor reports whether the template defines the given anchor.
func (t Template) HasAnchor(a Anchor) bool {
	_, ok := t.AnchorSpec(a)
	return ok
}

// NewTemplate builds a template from caller-provided source. Anchors must appear in
// the source as //@bas:<anchor> lines; this is checked when the template is composed.
//
// Parameters:
//   - flavor: the flavor label
//   - shaderType: the stage the source belongs to
//   - source: the GLSL source with annotation lines
//   - anchors: the anchors the source defines
//
// Returns:
//   - Template: the template
func NewTemplate(flavor Flavor, shaderType ShaderType, source string, anchors ...AnchorSpec) Template {
	return Template{
		Flavor:     flavor,
		ShaderType: shaderType,
		Source:     source,
		Anchors:    slices.Clone(anchors),
	}
}

func appendAnchors(names ...Anchor) []AnchorSpec {
	specs := make([]AnchorSpec, 0, len(names))
	for _, name := range names {
		p := PlacementAppend
		if name == AnchorMap || name == AnchorAlpha {
			p = PlacementOverride
		}
		specs = append(specs, AnchorSpec{Anchor: name, Placement: p})
	}
	return specs
}

var (
	meshVertexAnchors = appendAnchors(
		AnchorParameters, AnchorVarying, AnchorFunctions, AnchorInit,
		AnchorNormal, AnchorColor, AnchorPosition, AnchorPostMorph, AnchorPostSkinning,
	)
	pointsVertexAnchors = appendAnchors(
		AnchorParameters, AnchorVarying, AnchorFunctions, AnchorInit,
		AnchorColor, AnchorPosition, AnchorPostMorph,
	)
	shadowVertexAnchors = appendAnchors(
		AnchorParameters, AnchorVarying, AnchorFunctions, AnchorInit,
		AnchorPosition, AnchorPostMorph, AnchorPostSkinning,
	)
	shadowFragmentAnchors = appendAnchors(
		AnchorParameters, AnchorVarying, AnchorFunctions, AnchorInit,
		AnchorMap, AnchorAlpha,
	)
)

func surfaceFragmentAnchors(extra ...Anchor) []AnchorSpec {
	base := []Anchor{
		AnchorParameters, AnchorVarying, AnchorFunctions, AnchorInit,
		AnchorDiffuse, AnchorMap, AnchorAlpha,
	}
	return appendAnchors(append(base, extra...)...)
}

// templateAsset describes where a flavor's sources live and which anchors they define.
type templateAsset struct {
	vertexFile      string
	fragmentFile    string
	vertexAnchors   []AnchorSpec
	fragmentAnchors []AnchorSpec
}

var templateAssetTable = map[Flavor]templateAsset{
	FlavorBasic:    {"basic.vert", "basic.frag", meshVertexAnchors, surfaceFragmentAnchors()},
	FlavorLambert:  {"lit.vert", "lambert.frag", meshVertexAnchors, surfaceFragmentAnchors(AnchorEmissive)},
	FlavorPhong:    {"lit.vert", "phong.frag", meshVertexAnchors, surfaceFragmentAnchors(AnchorEmissive, AnchorSpecular)},
	FlavorStandard: {"lit.vert", "standard.frag", meshVertexAnchors, surfaceFragmentAnchors(AnchorEmissive, AnchorRoughness, AnchorMetalness)},
	FlavorToon:     {"lit.vert", "toon.frag", meshVertexAnchors, surfaceFragmentAnchors(AnchorEmissive)},
	FlavorPoints:   {"points.vert", "points.frag", pointsVertexAnchors, surfaceFragmentAnchors(AnchorShape)},
	FlavorDepth:    {"depth.vert", "depth.frag", shadowVertexAnchors, shadowFragmentAnchors},
	FlavorDistance: {"distance.vert", "distance.frag", shadowVertexAnchors, shadowFragmentAnchors},
}

// Flavors returns every built-in flavor in declaration order.
func Flavors() []Flavor {
	return []Flavor{
		FlavorBasic, FlavorLambert, FlavorPhong, FlavorStandard,
		FlavorToon, FlavorPoints, FlavorDepth, FlavorDistance,
	}
}

// LookupTemplate returns the built-in template for a flavor and stage.
//
// Parameters:
//   - flavor: the lighting model
//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
//
// Returns:
//   - Template: the template
//   - error: ErrTemplateNotFound if no template exists for the combination
func LookupTemplate(flavor Flavor, shaderType ShaderType) (Template, error) {
	asset, ok := templateAssetTable[flavor]
	if !ok {
		return Template{}, fmt.Errorf("flavor %q: %w", flavor, ErrTemplateNotFound)
	}

	var file string
	var anchors []AnchorSpec
	switch shaderType {
	case ShaderTypeVertex:
		file, anchors = asset.vertexFile, asset.vertexAnchors
	case ShaderTypeFragment:
		file, anchors = asset.fragmentFile, asset.fragmentAnchors
	default:
		return Template{}, fmt.Errorf("flavor %q stage %s: %w", flavor, shaderType, ErrTemplateNotFound)
	}

	data, err := templateAssets.ReadFile("assets/templates/" + file)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read embedded template %q: %v", file, err))
	}
	return NewTemplate(flavor, shaderType, strings.TrimRight(string(data), "\n"), anchors...), nil
}
