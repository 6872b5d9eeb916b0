package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"unicode"
)

// chunkAssets holds the built-in chunk library. Files under chunks/ are reusable
// math and easing functions; files under lib/ are partials shared by the templates.
//
//go:embed assets/chunks/*.glsl assets/lib/*.glsl
var chunkAssets embed.FS

// ChunkRegistry maps chunk names to GLSL source. A registry is populated once and is
// read-only afterwards; With returns an extended copy instead of mutating.
type ChunkRegistry struct {
	chunks map[string]string
}

// NewChunkRegistry creates a registry holding every built-in chunk. Chunk names are
// file names without extension, e.g. "ease_cubic_in_out" or "quaternion_rotation".
//
// Returns:
//   - *ChunkRegistry: the populated registry
func NewChunkRegistry() *ChunkRegistry {
	r := &ChunkRegistry{chunks: make(map[string]string)}
	for _, dir := range []string{"assets/chunks", "assets/lib"} {
		entries, err := fs.ReadDir(chunkAssets, dir)
		if err != nil {
			panic(fmt.Sprintf("shader: failed to read embedded chunk directory %q: %v", dir, err))
		}
		for _, e := range entries {
			data, err := fs.ReadFile(chunkAssets, path.Join(dir, e.Name()))
			if err != nil {
				panic(fmt.Sprintf("shader: failed to read embedded chunk %q: %v", e.Name(), err))
			}
			r.chunks[strings.TrimSuffix(e.Name(), ".glsl")] = strings.TrimRight(string(data), "\n")
		}
	}
	return r
}

// NewChunkRegistryFrom creates a registry holding exactly the given chunks.
//
// Parameters:
//   - chunks: chunk sources keyed by name; the map is copied
//
// Returns:
//   - *ChunkRegistry: the populated registry
func NewChunkRegistryFrom(chunks map[string]string) *ChunkRegistry {
	return &ChunkRegistry{chunks: maps.Clone(chunks)}
}

// Lookup returns the source of the named chunk.
//
// Parameters:
//   - name: the chunk name
//
// Returns:
//   - string: the chunk source
//   - error: ErrChunkNotFound if the name is not registered
func (r *ChunkRegistry) Lookup(name string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%q: %w", name, ErrChunkNotFound)
	}
	src, ok := r.chunks[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrChunkNotFound)
	}
	return src, nil
}

// Has reports whether the named chunk is registered.
func (r *ChunkRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.chunks[name]
	return ok
}

// Names returns the registered chunk names in sorted order.
func (r *ChunkRegistry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.chunks))
}

// With returns a copy of the registry with one more chunk. An existing chunk of the
// same name is replaced in the copy only.
//
// Parameters:
//   - name: the chunk name
//   - source: the chunk GLSL source
//
// Returns:
//   - *ChunkRegistry: the extended copy
func (r *ChunkRegistry) With(name, source string) *ChunkRegistry {
	out := &ChunkRegistry{chunks: make(map[string]string)}
	if r != nil {
		maps.Copy(out.chunks, r.chunks)
	}
	out.chunks[name] = source
	return out
}

// EaseChunkName maps a GLSL easing function name to the chunk that defines it,
// e.g. "easeCubicInOut" to "ease_cubic_in_out".
//
// Parameters:
//   - fn: the easing function name
//
// Returns:
//   - string: the chunk name
//   - bool: false if fn is not an "ease" prefixed camel case name
func EaseChunkName(fn string) (string, bool) {
	rest, ok := strings.CutPrefix(fn, "ease")
	if !ok || rest == "" || !unicode.IsUpper(rune(rest[0])) {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("ease")
	for _, r := range rest {
		if unicode.IsUpper(r) {
			sb.WriteByte('_')
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}
