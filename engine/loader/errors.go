package loader

import "errors"

var (
	// ErrUnsupportedFormat is returned for a file extension no backend reads.
	ErrUnsupportedFormat = errors.New("loader: unsupported format")

	// ErrInvalidDocument is returned when a document cannot be decoded or describes an
	// impossible definition.
	ErrInvalidDocument = errors.New("loader: invalid document")
)
