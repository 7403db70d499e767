package hasher

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxInput is the number of bytes bcrypt actually hashes.
const maxInput = 72

// Hasher produces salted one-way digests.
type Hasher interface {
	Hash(ctx context.Context, value string) (string, error)
}

// Bcrypt hashes with bcrypt. Every call generates a fresh salt,
// so hashing the same value twice yields different digests.
type Bcrypt struct {
	cost int
}

type Option func(*Bcrypt)

// WithCost sets the bcrypt cost. Values outside bcrypt's
// accepted range are rejected by Hash.
func WithCost(cost int) Option {
	return func(b *Bcrypt) {
		b.cost = cost
	}
}

// NewBcrypt returns a bcrypt Hasher with bcrypt.DefaultCost unless overridden.
func NewBcrypt(opts ...Option) *Bcrypt {
	b := &Bcrypt{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Hash returns the modular-crypt encoded digest of value ("$2a$<cost>$...", 60 bytes).
// Input beyond 72 bytes is ignored, as bcrypt would do.
func (b *Bcrypt) Hash(ctx context.Context, value string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.cost < bcrypt.MinCost || b.cost > bcrypt.MaxCost {
		return "", ErrInvalidCost
	}

	input := []byte(value)
	if len(input) > maxInput {
		input = input[:maxInput]
	}

	digest, err := bcrypt.GenerateFromPassword(input, b.cost)
	if err != nil {
		return "", errors.Join(ErrHashFailed, err)
	}
	return string(digest), nil
}

// Compare reports whether digest was produced from value.
func Compare(digest, value string) bool {
	input := []byte(value)
	if len(input) > maxInput {
		input = input[:maxInput]
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), input) == nil
}
