package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-bas/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-bas/engine/timeline"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	registry        *timeline.Registry
	materialOptions []material.MaterialBuilderOption
	strict          bool

	timelineCache map[string]timeline.Timeline
	materialCache map[string]material.Material

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching timeline and
// material definitions. Documents are YAML (JSON is read as YAML); values are decoded
// through the kind definitions of the loader's registry.
type Loader interface {
	// LoadTimeline reads a timeline document and caches the result.
	// If the timeline is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the document (.yaml, .yml or .json)
	//
	// Returns:
	//   - timeline.Timeline: the loaded and cached timeline
	//   - error: ErrUnsupportedFormat, ErrInvalidDocument or a timeline error
	LoadTimeline(path string) (timeline.Timeline, error)

	// LoadMaterial reads a material document, composes the material and caches it.
	// A timelineFile referenced by the document is loaded through LoadTimeline,
	// relative to the material file's directory.
	//
	// Parameters:
	//   - path: the file path to the document (.yaml, .yml or .json)
	//
	// Returns:
	//   - material.Material: the loaded and cached material
	//   - error: error if reading, decoding or composing fails
	LoadMaterial(path string) (material.Material, error)

	// DecodeTimeline builds a timeline from a document stream without caching it.
	//
	// Parameters:
	//   - r: the reader providing the document
	//
	// Returns:
	//   - timeline.Timeline: the timeline
	//   - error: error if decoding or building fails
	DecodeTimeline(r io.Reader) (timeline.Timeline, error)

	// DecodeMaterial builds a material from a document stream without caching it.
	// A timelineFile reference is resolved relative to the working directory.
	//
	// Parameters:
	//   - r: the reader providing the document
	//
	// Returns:
	//   - material.Material: the material
	//   - error: error if decoding or composing fails
	DecodeMaterial(r io.Reader) (material.Material, error)

	// Timeline retrieves a cached timeline by path. Returns nil if not found.
	Timeline(path string) timeline.Timeline

	// Material retrieves a cached material by path. Returns nil if not found.
	Material(path string) material.Material
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:            sync.RWMutex{},
		timelineCache: make(map[string]timeline.Timeline),
		materialCache: make(map[string]material.Material),
	}
	for _, option := range options {
		option(l)
	}
	if l.registry == nil {
		l.registry = timeline.NewDefaultRegistry()
	}
	l.backend = newYAMLLoaderBackend(l.strict)
	return l
}

func (l *loader) LoadTimeline(path string) (timeline.Timeline, error) {
	l.mu.RLock()
	if cached, ok := l.timelineCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	tl, err := l.DecodeTimeline(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.timelineCache[path] = tl
	l.mu.Unlock()

	common.Logger().Debug("timeline loaded", "path", path, "duration", tl.Duration())
	return tl, nil
}

func (l *loader) LoadMaterial(path string) (material.Material, error) {
	l.mu.RLock()
	if cached, ok := l.materialCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := l.backend.DecodeMaterial(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	m, err := l.buildMaterial(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.materialCache[path] = m
	l.mu.Unlock()

	common.Logger().Debug("material loaded", "path", path, "flavor", m.Flavor())
	return m, nil
}

func (l *loader) DecodeTimeline(r io.Reader) (timeline.Timeline, error) {
	doc, err := l.backend.DecodeTimeline(r)
	if err != nil {
		return nil, err
	}
	return l.buildTimeline(doc)
}

func (l *loader) DecodeMaterial(r io.Reader) (material.Material, error) {
	doc, err := l.backend.DecodeMaterial(r)
	if err != nil {
		return nil, err
	}
	return l.buildMaterial(doc, ".")
}

func (l *loader) Timeline(path string) timeline.Timeline {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.timelineCache[path]
}

func (l *loader) Material(path string) material.Material {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.materialCache[path]
}

// readFile checks the extension and reads the whole document.
func (l *loader) readFile(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%s: %q: %w", path, ext, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// buildTimeline replays a timeline document as Add calls.
func (l *loader) buildTimeline(doc *TimelineDocument) (timeline.Timeline, error) {
	opts := []timeline.TimelineBuilderOption{
		timeline.WithTimeKey(doc.TimeKey),
		timeline.WithTarget(doc.Target),
	}
	switch strings.ToLower(doc.Overlap) {
	case "", "allow":
	case "reject":
		opts = append(opts, timeline.WithOverlapPolicy(timeline.OverlapReject))
	default:
		return nil, fmt.Errorf("overlap %q: %w", doc.Overlap, ErrInvalidDocument)
	}

	tl := timeline.NewTimeline(l.registry, opts...)
	for i, seg := range doc.Segments {
		if seg.Duration < 0 {
			return nil, fmt.Errorf("segment %d: negative duration %g: %w", i, seg.Duration, ErrInvalidDocument)
		}
		offset, err := timeline.ParseOffset(seg.Offset)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		transitions, err := l.decodeTransitions(seg.Transitions)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if err := tl.Add(seg.Duration, transitions, offset); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return tl, nil
}

func (l *loader) decodeTransitions(docs map[string]TransitionDocument) (timeline.Transitions, error) {
	out := make(timeline.Transitions, len(docs))
	for kind, doc := range docs {
		def, err := l.registry.Lookup(kind)
		if err != nil {
			return nil, err
		}
		tr := timeline.Transition{
			From:       doc.From,
			To:         doc.To,
			Ease:       doc.Ease,
			EaseParams: doc.EaseParams,
		}
		if def.Decode != nil {
			if doc.From != nil {
				if tr.From, err = def.Decode(doc.From); err != nil {
					return nil, fmt.Errorf("%s from: %w", kind, err)
				}
			}
			if tr.To, err = def.Decode(doc.To); err != nil {
				return nil, fmt.Errorf("%s to: %w", kind, err)
			}
		}
		if doc.Origin != nil {
			origin, err := timeline.DecodeVec3(doc.Origin)
			if err != nil {
				return nil, fmt.Errorf("%s origin: %w", kind, err)
			}
			tr.Origin = &origin
		}
		out[kind] = tr
	}
	return out, nil
}

// buildMaterial turns a material document into material options and composes it.
func (l *loader) buildMaterial(doc *MaterialDocument, dir string) (material.Material, error) {
	opts := append([]material.MaterialBuilderOption(nil), l.materialOptions...)
	opts = append(opts, material.WithName(doc.Name))

	if doc.Diffuse != nil {
		opts = append(opts, material.WithDiffuse(*doc.Diffuse))
	}
	if doc.Opacity != nil {
		opts = append(opts, material.WithOpacity(*doc.Opacity))
	}
	if doc.Emissive != nil {
		opts = append(opts, material.WithEmissive(*doc.Emissive))
	}
	if doc.Specular != nil {
		opts = append(opts, material.WithSpecular(*doc.Specular))
	}
	if doc.Shininess != nil {
		opts = append(opts, material.WithShininess(*doc.Shininess))
	}
	if doc.Roughness != nil {
		opts = append(opts, material.WithRoughness(*doc.Roughness))
	}
	if doc.Metalness != nil {
		opts = append(opts, material.WithMetalness(*doc.Metalness))
	}
	if doc.Size != nil {
		opts = append(opts, material.WithSize(*doc.Size))
	}
	if doc.SizeAttenuation != nil {
		opts = append(opts, material.WithSizeAttenuation(*doc.SizeAttenuation))
	}
	if doc.ReferencePosition != nil {
		opts = append(opts, material.WithReferencePosition(*doc.ReferencePosition))
	}
	switch len(doc.DistanceRange) {
	case 0:
	case 2:
		opts = append(opts, material.WithDistanceRange(doc.DistanceRange[0], doc.DistanceRange[1]))
	default:
		return nil, fmt.Errorf("distanceRange needs 2 values, got %d: %w", len(doc.DistanceRange), ErrInvalidDocument)
	}
	for name, value := range doc.Defines {
		opts = append(opts, material.WithDefine(name, value))
	}
	for _, u := range doc.Uniforms {
		opts = append(opts, material.WithUniform(u.Name, u.Type, u.Value...))
	}
	for name, lines := range doc.Fragments {
		slot, err := shader.ParseSlot(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithFragment(slot, lines...))
	}

	tl, err := l.materialTimeline(doc, dir)
	if err != nil {
		return nil, err
	}
	if tl != nil {
		opts = append(opts, material.WithTimeline(tl, doc.TimelineOrder...))
	}

	return material.NewMaterial(shader.Flavor(common.Coalesce(doc.Flavor, string(shader.FlavorBasic))), opts...)
}

func (l *loader) materialTimeline(doc *MaterialDocument, dir string) (timeline.Timeline, error) {
	switch {
	case doc.Timeline != nil && doc.TimelineFile != "":
		return nil, fmt.Errorf("timeline and timelineFile are exclusive: %w", ErrInvalidDocument)
	case doc.Timeline != nil:
		return l.buildTimeline(doc.Timeline)
	case doc.TimelineFile != "":
		path := doc.TimelineFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return l.LoadTimeline(path)
	default:
		return nil, nil
	}
}
