package sample

import "errors"

var (
	// ErrInvalidRange is returned for bounds a sampler cannot draw from:
	// max below min, fractional lengths or integers, non-finite values.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidDateRange is returned when the resolved "to" instant is before "from".
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidOffset is returned for relative-time tokens that are not <signed-int><s|m|h|d>.
	ErrInvalidOffset = errors.New("invalid relative time")

	// ErrUnsupportedType is returned when a numeric sampler is asked for a type it does not produce.
	ErrUnsupportedType = errors.New("unsupported range type")
)
