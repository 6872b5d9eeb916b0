package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"gopkg.in/yaml.v3"
)

// TimelineDocument is the file form of a timeline.
//
//	timeKey: tTime
//	overlap: reject
//	segments:
//	  - duration: 1
//	    transitions:
//	      scale: {to: [2, 2, 2], ease: easeCubicOut}
//	  - duration: 0.5
//	    offset: "+=0.25"
//	    transitions:
//	      rotate: {to: {axis: [0, 1, 0], angle: 3.14159}, origin: [0, 1, 0]}
type TimelineDocument struct {
	TimeKey  string            `yaml:"timeKey"`
	Target   string            `yaml:"target"`
	Overlap  string            `yaml:"overlap"`
	Segments []SegmentDocument `yaml:"segments"`
}

// SegmentDocument is one Add call: a duration, an optional offset and the transitions
// per kind.
type SegmentDocument struct {
	Duration    float64                       `yaml:"duration"`
	Offset      string                        `yaml:"offset"`
	Transitions map[string]TransitionDocument `yaml:"transitions"`
}

// TransitionDocument holds raw transition values. From and To are decoded by the
// kind's Definition.Decode.
type TransitionDocument struct {
	From       any       `yaml:"from"`
	To         any       `yaml:"to"`
	Ease       string    `yaml:"ease"`
	EaseParams []float32 `yaml:"easeParams"`
	Origin     any       `yaml:"origin"`
}

// UniformDocument is a custom uniform value.
type UniformDocument struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Value []float32 `yaml:"value"`
}

// MaterialDocument is the file form of a material. Fragments are keyed by slot name
// and may be a single block of text or a list of lines. The timeline is either inline
// or a path to a timeline document, resolved relative to the material file.
type MaterialDocument struct {
	Name              string                   `yaml:"name"`
	Flavor            string                   `yaml:"flavor"`
	Diffuse           *common.Vec3             `yaml:"diffuse"`
	Opacity           *float32                 `yaml:"opacity"`
	Emissive          *common.Vec3             `yaml:"emissive"`
	Specular          *common.Vec3             `yaml:"specular"`
	Shininess         *float32                 `yaml:"shininess"`
	Roughness         *float32                 `yaml:"roughness"`
	Metalness         *float32                 `yaml:"metalness"`
	Size              *float32                 `yaml:"size"`
	SizeAttenuation   *float32                 `yaml:"sizeAttenuation"`
	ReferencePosition *common.Vec3             `yaml:"referencePosition"`
	DistanceRange     []float32                `yaml:"distanceRange"`
	Defines           map[string]string        `yaml:"defines"`
	Uniforms          []UniformDocument        `yaml:"uniforms"`
	Fragments         map[string]FragmentLines `yaml:"fragments"`
	Timeline          *TimelineDocument        `yaml:"timeline"`
	TimelineFile      string                   `yaml:"timelineFile"`
	TimelineOrder     []string                 `yaml:"timelineOrder"`
}

// FragmentLines is a fragment given either as a block scalar or as a sequence of lines.
type FragmentLines []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FragmentLines) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*f = FragmentLines{value.Value}
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := value.Decode(&lines); err != nil {
			return err
		}
		*f = lines
		return nil
	default:
		return fmt.Errorf("line %d: fragment must be a string or a list of strings: %w", value.Line, ErrInvalidDocument)
	}
}
