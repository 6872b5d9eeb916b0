package loader

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlLoaderBackendImpl is the implementation of yamlLoaderBackend.
type yamlLoaderBackendImpl struct {
	strict bool
}

// yamlLoaderBackend is a loaderBackend implementation for YAML documents. JSON documents
// are read by the same backend.
type yamlLoaderBackend interface {
	loaderBackend
}

var _ yamlLoaderBackend = &yamlLoaderBackendImpl{}

// newYAMLLoaderBackend creates a new YAML loader backend.
//
// Parameters:
//   - strict: reject fields that the document types do not define
//
// Returns:
//   - yamlLoaderBackend: the loader backend for YAML and JSON documents
func newYAMLLoaderBackend(strict bool) yamlLoaderBackend {
	return &yamlLoaderBackendImpl{strict: strict}
}

func (b *yamlLoaderBackendImpl) DecodeTimeline(r io.Reader) (*TimelineDocument, error) {
	var doc TimelineDocument
	if err := b.decode(r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *yamlLoaderBackendImpl) DecodeMaterial(r io.Reader) (*MaterialDocument, error) {
	var doc MaterialDocument
	if err := b.decode(r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *yamlLoaderBackendImpl) decode(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(b.strict)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty document: %w", ErrInvalidDocument)
		}
		if errors.Is(err, ErrInvalidDocument) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}
