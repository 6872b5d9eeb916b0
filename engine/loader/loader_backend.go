package loader

import "io"

// loaderBackend decodes definition documents from a stream. Concrete implementations
// (e.g., yamlLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// DecodeTimeline reads a timeline document.
	//
	// Parameters:
	//   - r: the reader providing the document
	//
	// Returns:
	//   - *TimelineDocument: the decoded document
	//   - error: error if decoding fails
	DecodeTimeline(r io.Reader) (*TimelineDocument, error)

	// DecodeMaterial reads a material document.
	//
	// Parameters:
	//   - r: the reader providing the document
	//
	// Returns:
	//   - *MaterialDocument: the decoded document
	//   - error: error if decoding fails
	DecodeMaterial(r io.Reader) (*MaterialDocument, error)
}
