package docsift

import "errors"

var (
	// ErrExtractionFailed is returned when no text could be read from the PDF.
	ErrExtractionFailed = errors.New("docsift: text extraction failed")

	// ErrNoTOC is returned when no ToC page range could be located.
	ErrNoTOC = errors.New("docsift: table of contents not found")

	// ErrNoChunks is returned when recognition produced no chunks at all.
	ErrNoChunks = errors.New("docsift: no chunks recognized")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("docsift: invalid configuration")
)
