package shader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeAppend(t *testing.T) {
	tpl := NewTemplate("custom", ShaderTypeVertex, "a\n\t//@bas:position\nb",
		AnchorSpec{Anchor: AnchorPosition, Placement: PlacementAppend})
	c := NewCompositor(nil)

	out, err := c.Compose(tpl, map[Anchor]Fragment{AnchorPosition: Lines("x += 1.0;", "y += 2.0;")})
	require.NoError(t, err)
	assert.Equal(t, "a\n\t//@bas:position\nx += 1.0;\ny += 2.0;\nb", out)

	out, err = c.Compose(tpl, nil)
	require.NoError(t, err)
	assert.Equal(t, tpl.Source, out)

	out, err = c.Compose(tpl, map[Anchor]Fragment{AnchorPosition: Text("")})
	require.NoError(t, err)
	assert.Equal(t, tpl.Source, out)
}

func TestComposeOverride(t *testing.T) {
	tpl := NewTemplate("custom", ShaderTypeFragment, "a\n//@bas:map\ndefault\n//@bas:end\nb",
		AnchorSpec{Anchor: AnchorMap, Placement: PlacementOverride})
	c := NewCompositor(nil)

	out, err := c.Compose(tpl, map[Anchor]Fragment{AnchorMap: Text("custom")})
	require.NoError(t, err)
	assert.Equal(t, "a\ncustom\nb", out)

	out, err = c.Compose(tpl, nil)
	require.NoError(t, err)
	assert.Equal(t, tpl.Source, out)
}

func TestComposeIgnoresUndefinedAnchor(t *testing.T) {
	tpl := NewTemplate("custom", ShaderTypeVertex, "//@bas:position",
		AnchorSpec{Anchor: AnchorPosition})

	out, err := NewCompositor(nil).Compose(tpl, map[Anchor]Fragment{AnchorShape: Text("discard;")})
	require.NoError(t, err)
	assert.Equal(t, "//@bas:position", out)
}

func TestComposeAnchorErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		spec    AnchorSpec
		wantErr error
	}{
		{"missing", "void main() {}", AnchorSpec{Anchor: AnchorInit}, ErrAnchorNotFound},
		{"duplicate", "//@bas:init\n//@bas:init", AnchorSpec{Anchor: AnchorInit}, ErrDuplicateAnchor},
		{"unterminated", "//@bas:alpha\nx", AnchorSpec{Anchor: AnchorAlpha, Placement: PlacementOverride}, ErrUnterminatedAnchor},
		{"malformed", "//@bas:init extra\n", AnchorSpec{Anchor: AnchorInit}, ErrMalformedAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := NewTemplate("custom", ShaderTypeVertex, tt.source, tt.spec)
			_, err := NewCompositor(nil).Compose(tpl, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComposeIncludes(t *testing.T) {
	chunks := NewChunkRegistryFrom(map[string]string{
		"foo": "float foo() { return 1.0; }",
		"bar": IncludeDirective("foo") + "\nfloat bar() { return foo(); }",
	})
	tpl := NewTemplate("custom", ShaderTypeVertex, IncludeDirective("bar")+"\n//@bas:functions",
		AnchorSpec{Anchor: AnchorFunctions})

	out, err := NewCompositor(chunks).Compose(tpl, map[Anchor]Fragment{
		AnchorFunctions: Lines(IncludeDirective("foo"), "float baz() { return 2.0; }"),
	})
	require.NoError(t, err)
	assert.Equal(t, "float foo() { return 1.0; }\nfloat bar() { return foo(); }\n//@bas:functions\nfloat baz() { return 2.0; }", out)
}

func TestComposeLeavesCallerAnnotationsAlone(t *testing.T) {
	chunks := NewChunkRegistryFrom(map[string]string{"foo": "float foo() { return 1.0; }"})
	tpl := NewTemplate("custom", ShaderTypeVertex, "a\n//@bas:position\nb",
		AnchorSpec{Anchor: AnchorPosition})

	frag := Lines(
		"//@bas: wobble the tip",
		"//@bas:",
		"//@bas:include",
		"//@bas:include foo bar",
		"//@bas:position",
		"//@bas:end",
		IncludeDirective("foo"),
	)
	out, err := NewCompositor(chunks).Compose(tpl, map[Anchor]Fragment{AnchorPosition: frag})
	require.NoError(t, err)
	assert.Equal(t, "a\n//@bas:position\n"+
		"//@bas: wobble the tip\n//@bas:\n//@bas:include\n//@bas:include foo bar\n//@bas:position\n//@bas:end\n"+
		"float foo() { return 1.0; }\nb", out)
}

func TestComposeIncludeErrors(t *testing.T) {
	tpl := NewTemplate("custom", ShaderTypeVertex, IncludeDirective("c0"))

	_, err := NewCompositor(NewChunkRegistryFrom(nil)).Compose(tpl, nil)
	assert.ErrorIs(t, err, ErrChunkNotFound)

	chain := make(map[string]string)
	for i := range 10 {
		chain[fmt.Sprintf("c%d", i)] = IncludeDirective(fmt.Sprintf("c%d", i+1))
	}
	chain["c10"] = "float deep;"
	_, err = NewCompositor(NewChunkRegistryFrom(chain)).Compose(tpl, nil)
	assert.ErrorIs(t, err, ErrIncludeDepth)
}

func TestBuiltinTemplatesCompose(t *testing.T) {
	c := NewCompositor(NewChunkRegistry())

	for _, flavor := range Flavors() {
		for _, st := range []ShaderType{ShaderTypeVertex, ShaderTypeFragment} {
			t.Run(fmt.Sprintf("%s_%s", flavor, st), func(t *testing.T) {
				tpl, err := LookupTemplate(flavor, st)
				require.NoError(t, err)
				require.NotEmpty(t, tpl.Anchors)

				plain, err := c.Compose(tpl, nil)
				require.NoError(t, err)
				assert.NotContains(t, plain, "//@bas:include")
				assert.Contains(t, plain, "void main()")

				fragments := make(map[Anchor]Fragment)
				for _, spec := range tpl.Anchors {
					fragments[spec.Anchor] = Text("// marker " + string(spec.Anchor))
				}
				out, err := c.Compose(tpl, fragments)
				require.NoError(t, err)

				for _, spec := range tpl.Anchors {
					marker := "// marker " + string(spec.Anchor)
					assert.Equal(t, 1, strings.Count(out, marker), spec.Anchor)
					if spec.Placement == PlacementAppend {
						assert.Contains(t, out, spec.Anchor.Annotation()+"\n"+marker)
					}
				}
			})
		}
	}
}

func TestLookupTemplateErrors(t *testing.T) {
	_, err := LookupTemplate("unknown", ShaderTypeVertex)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = LookupTemplate(FlavorBasic, ShaderType(7))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateAnchorAvailability(t *testing.T) {
	tests := []struct {
		flavor Flavor
		st     ShaderType
		anchor Anchor
		want   bool
	}{
		{FlavorBasic, ShaderTypeVertex, AnchorNormal, true},
		{FlavorPoints, ShaderTypeVertex, AnchorNormal, false},
		{FlavorDepth, ShaderTypeVertex, AnchorColor, false},
		{FlavorPhong, ShaderTypeFragment, AnchorSpecular, true},
		{FlavorStandard, ShaderTypeFragment, AnchorSpecular, false},
		{FlavorStandard, ShaderTypeFragment, AnchorRoughness, true},
		{FlavorPoints, ShaderTypeFragment, AnchorShape, true},
		{FlavorBasic, ShaderTypeFragment, AnchorEmissive, false},
		{FlavorDistance, ShaderTypeFragment, AnchorAlpha, true},
	}

	for _, tt := range tests {
		tpl, err := LookupTemplate(tt.flavor, tt.st)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tpl.HasAnchor(tt.anchor), "%s %s %s", tt.flavor, tt.st, tt.anchor)
	}

	tpl, err := LookupTemplate(FlavorBasic, ShaderTypeFragment)
	require.NoError(t, err)
	spec, ok := tpl.AnchorSpec(AnchorMap)
	require.True(t, ok)
	assert.Equal(t, PlacementOverride, spec.Placement)
}
