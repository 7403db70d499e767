package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Extension is appended to a pool name to find its file.
const Extension = ".dat"

// Rand is the randomness used to pick a line. *sample.Source satisfies it.
type Rand interface {
	IntN(n int) int
}

// WrapFunc converts a decoded pool value into a storage-native type.
type WrapFunc func(v any) (any, error)

// Sampler picks random values from pool files in a directory.
// Each pool is read once and treated as immutable afterwards.
type Sampler struct {
	dir      string
	rnd      Rand
	wrappers map[string]WrapFunc

	mu    sync.Mutex
	pools map[string]*entry
}

type entry struct {
	once  sync.Once
	lines [][]byte
	err   error
}

type Option func(*Sampler)

// WithWrapper registers fn for values drawn from the pool called name.
func WithWrapper(name string, fn WrapFunc) Option {
	return func(s *Sampler) {
		if fn != nil {
			s.wrappers[name] = fn
		}
	}
}

// New returns a Sampler reading <dir>/<name>.dat files.
func New(dir string, rnd Rand, opts ...Option) *Sampler {
	s := &Sampler{
		dir:      dir,
		rnd:      rnd,
		wrappers: make(map[string]WrapFunc),
		pools:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns one value of the pool chosen uniformly at random, with
// replacement. JSON integers decode to int64, other numbers to float64.
func (s *Sampler) Sample(ctx context.Context, name string) (any, error) {
	lines, err := s.Lines(ctx, name)
	if err != nil {
		return nil, err
	}

	i := s.rnd.IntN(len(lines))
	v, err := decode(lines[i])
	if err != nil {
		return nil, fmt.Errorf("%w: pool %q value %d: %v", ErrPoolDecode, name, i+1, err)
	}

	if wrap, ok := s.wrappers[name]; ok {
		if v, err = wrap(v); err != nil {
			return nil, fmt.Errorf("%w: pool %q value %d: %v", ErrPoolDecode, name, i+1, err)
		}
	}
	return v, nil
}

// Lines returns the non-blank raw lines of a pool, loading it on first use.
func (s *Sampler) Lines(ctx context.Context, name string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || filepath.Base(name) != name || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPoolName, name)
	}

	s.mu.Lock()
	e, ok := s.pools[name]
	if !ok {
		e = &entry{}
		s.pools[name] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		e.lines, e.err = s.load(name)
	})
	return e.lines, e.err
}

// Path returns the file backing the pool called name.
func (s *Sampler) Path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

func (s *Sampler) load(name string) ([][]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, s.Path(name))
		}
		return nil, errors.Join(ErrPoolRead, err)
	}

	var lines [][]byte
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPoolEmpty, s.Path(name))
	}
	return lines, nil
}

func decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after value")
	}
	return normalize(v), nil
}

// normalize replaces json.Number with int64 or float64.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
	}
	return v
}
