package model

import "errors"

var (
	ErrModelNotFound = errors.New("cannot find model")
	ErrInvalidLine   = errors.New("invalid model line")
	ErrInvalidYAML   = errors.New("invalid yaml model")
	ErrEmptyModel    = errors.New("model has no fields")
)
