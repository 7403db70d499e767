package engine

import "errors"

var (
	ErrInvalidCount = errors.New("record count must be positive")
	ErrUnknownKind  = errors.New("unknown directive kind")
)
