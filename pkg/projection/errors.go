package projection

import "errors"

var (
	ErrInvalidSpec       = errors.New("invalid projection, expected prop:name")
	ErrInvalidOutputName = errors.New("invalid output name")
	ErrCreateOutput      = errors.New("failed to create output file")
	ErrWriteOutput       = errors.New("failed to write output file")
	ErrWriterClosed      = errors.New("projection writer is closed")
)
