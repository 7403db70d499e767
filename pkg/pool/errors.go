package pool

import "errors"

var (
	ErrPoolNotFound    = errors.New("pool not found")
	ErrPoolEmpty       = errors.New("pool is empty")
	ErrPoolRead        = errors.New("failed to read pool")
	ErrPoolDecode      = errors.New("failed to decode pool value")
	ErrInvalidPoolName = errors.New("invalid pool name")
)
