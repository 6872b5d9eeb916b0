package shader

import "fmt"

// Slot names a caller-facing fragment parameter of a material. Each slot feeds one
// anchor in one or both shader stages.
type Slot string

const (
	SlotVertexParameters   Slot = "vertexParameters"
	SlotVaryingParameters  Slot = "varyingParameters"
	SlotVertexFunctions    Slot = "vertexFunctions"
	SlotVertexInit         Slot = "vertexInit"
	SlotVertexNormal       Slot = "vertexNormal"
	SlotVertexPosition     Slot = "vertexPosition"
	SlotVertexColor        Slot = "vertexColor"
	SlotVertexPostMorph    Slot = "vertexPostMorph"
	SlotVertexPostSkinning Slot = "vertexPostSkinning"
	SlotFragmentParameters Slot = "fragmentParameters"
	SlotFragmentFunctions  Slot = "fragmentFunctions"
	SlotFragmentInit       Slot = "fragmentInit"
	SlotFragmentDiffuse    Slot = "fragmentDiffuse"
	SlotFragmentMap        Slot = "fragmentMap"
	SlotFragmentAlpha      Slot = "fragmentAlpha"
	SlotFragmentEmissive   Slot = "fragmentEmissive"
	SlotFragmentSpecular   Slot = "fragmentSpecular"
	SlotFragmentRoughness  Slot = "fragmentRoughness"
	SlotFragmentMetalness  Slot = "fragmentMetalness"
	SlotFragmentShape      Slot = "fragmentShape"
)

// SlotTarget is one stage and anchor a slot's fragment is spliced into.
type SlotTarget struct {
	ShaderType ShaderType
	Anchor     Anchor
}

// slotOrder lists every slot in the order materials splice them.
var slotOrder = []Slot{
	SlotVertexParameters,
	SlotVaryingParameters,
	SlotVertexFunctions,
	SlotVertexInit,
	SlotVertexNormal,
	SlotVertexPosition,
	SlotVertexColor,
	SlotVertexPostMorph,
	SlotVertexPostSkinning,
	SlotFragmentParameters,
	SlotFragmentFunctions,
	SlotFragmentInit,
	SlotFragmentDiffuse,
	SlotFragmentMap,
	SlotFragmentAlpha,
	SlotFragmentEmissive,
	SlotFragmentSpecular,
	SlotFragmentRoughness,
	SlotFragmentMetalness,
	SlotFragmentShape,
}

var slotTargets = map[Slot][]SlotTarget{
	SlotVertexParameters:   {{ShaderTypeVertex, AnchorParameters}},
	SlotVaryingParameters:  {{ShaderTypeVertex, AnchorVarying}, {ShaderTypeFragment, AnchorVarying}},
	SlotVertexFunctions:    {{ShaderTypeVertex, AnchorFunctions}},
	SlotVertexInit:         {{ShaderTypeVertex, AnchorInit}},
	SlotVertexNormal:       {{ShaderTypeVertex, AnchorNormal}},
	SlotVertexPosition:     {{ShaderTypeVertex, AnchorPosition}},
	SlotVertexColor:        {{ShaderTypeVertex, AnchorColor}},
	SlotVertexPostMorph:    {{ShaderTypeVertex, AnchorPostMorph}},
	SlotVertexPostSkinning: {{ShaderTypeVertex, AnchorPostSkinning}},
	SlotFragmentParameters: {{ShaderTypeFragment, AnchorParameters}},
	SlotFragmentFunctions:  {{ShaderTypeFragment, AnchorFunctions}},
	SlotFragmentInit:       {{ShaderTypeFragment, AnchorInit}},
	SlotFragmentDiffuse:    {{ShaderTypeFragment, AnchorDiffuse}},
	SlotFragmentMap:        {{ShaderTypeFragment, AnchorMap}},
	SlotFragmentAlpha:      {{ShaderTypeFragment, AnchorAlpha}},
	SlotFragmentEmissive:   {{ShaderTypeFragment, AnchorEmissive}},
	SlotFragmentSpecular:   {{ShaderTypeFragment, AnchorSpecular}},
	SlotFragmentRoughness:  {{ShaderTypeFragment, AnchorRoughness}},
	SlotFragmentMetalness:  {{ShaderTypeFragment, AnchorMetalness}},
	SlotFragmentShape:      {{ShaderTypeFragment, AnchorShape}},
}

// Slots returns every known slot in splice order.
func Slots() []Slot {
	return append([]Slot(nil), slotOrder...)
}

// Targets returns the stages and anchors this slot feeds, or nil for an unknown slot.
func (s Slot) Targets() []SlotTarget {
	return append([]SlotTarget(nil), slotTargets[s]...)
}

// ParseSlot converts a slot name such as "vertexPosition" into a Slot.
//
// Parameters:
//   - name: the slot name
//
// Returns:
//   - Slot: the matching slot
//   - error: ErrSlotNotFound if the name is unknown
func ParseSlot(name string) (Slot, error) {
	s := Slot(name)
	if _, ok := slotTargets[s]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrSlotNotFound)
	}
	return s, nil
}
