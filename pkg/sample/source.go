package sample

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
)

// Source is the random handle threaded through every sampler.
// It pairs a fast generator used for floats and picks with a cryptographic
// stream used for integer ranges. Safe for concurrent use.
type Source struct {
	mu     sync.Mutex
	rng    *rand.Rand // nil means the process-wide math/rand/v2 generator
	crypto *rand.Rand // nil means crypto/rand
}

// NewSource returns a Source backed by the process-wide generator and crypto/rand.
func NewSource() *Source {
	return &Source{}
}

// NewSeededSource returns a fully deterministic Source.
// Both streams derive from seed, so two sources with the same seed
// produce the same values in the same order.
func NewSeededSource(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], ^seed)
	return &Source{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		crypto: rand.New(rand.NewChaCha8(key)),
	}
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	if s.rng == nil {
		return rand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Uint64 returns a value from the fast generator. It makes Source a
// math/rand/v2 Source, so third-party generators can share the stream.
func (s *Source) Uint64() uint64 {
	if s.rng == nil {
		return rand.Uint64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// CryptoInt returns a uniformly distributed value in [0, n) read from the
// cryptographic stream.
func (s *Source) CryptoInt(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: crypto range must be positive, got %d", ErrInvalidRange, n)
	}
	if s.crypto != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.crypto.Int64N(n), nil
	}
	v, err := cryptorand.Int(cryptorand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("read crypto source: %w", err)
	}
	return v.Int64(), nil
}
