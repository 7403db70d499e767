package hasher

import "errors"

var (
	ErrInvalidCost = errors.New("hasher: bcrypt cost out of range")
	ErrHashFailed  = errors.New("hasher: failed to hash value")
)
