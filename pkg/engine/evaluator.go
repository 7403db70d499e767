package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/seedkit/pkg/directive"
	"github.com/dmitrymomot/seedkit/pkg/fakedata"
	"github.com/dmitrymomot/seedkit/pkg/hasher"
	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/pool"
	"github.com/dmitrymomot/seedkit/pkg/sample"
)

// HumanData produces values for "$" generator tokens.
type HumanData interface {
	Generate(ctx context.Context, token string) (string, error)
}

// Hasher produces salted one-way digests for "!" templates.
type Hasher interface {
	Hash(ctx context.Context, value string) (string, error)
}

// PoolSampler draws values for "@" templates.
type PoolSampler interface {
	Sample(ctx context.Context, name string) (any, error)
}

// Evaluator turns templates into values. It holds no per-call state and is
// safe for concurrent use as long as its collaborators are.
type Evaluator struct {
	src    *sample.Source
	human  HumanData
	hasher Hasher
	pools  PoolSampler
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Evaluator)

// WithSource sets the random source used by range directives and by the
// default human-data generator and pool sampler.
func WithSource(src *sample.Source) Option {
	return func(e *Evaluator) { e.src = src }
}

func WithHumanData(h HumanData) Option {
	return func(e *Evaluator) { e.human = h }
}

func WithHasher(h Hasher) Option {
	return func(e *Evaluator) { e.hasher = h }
}

func WithPools(p PoolSampler) Option {
	return func(e *Evaluator) { e.pools = p }
}

// WithClock sets the function giving the instant relative dates and "-now" resolve against.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// NewEvaluator returns an Evaluator. Unset collaborators default to a
// fakedata generator, a bcrypt hasher with the default cost and pools read
// from the working directory, all drawing from the same source.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	if e.src == nil {
		e.src = sample.NewSource()
	}
	if e.human == nil {
		e.human = fakedata.New(e.src)
	}
	if e.hasher == nil {
		e.hasher = hasher.NewBcrypt()
	}
	if e.pools == nil {
		e.pools = pool.New(".", e.src)
	}
	if e.logger == nil {
		e.logger = logger.Discard()
	}
	return e
}

// Evaluate parses template and produces one value for it.
func (e *Evaluator) Evaluate(ctx context.Context, template string) (any, error) {
	d, err := directive.Parse(template)
	if err != nil {
		return nil, err
	}
	return e.Eval(ctx, d)
}

// Eval produces one value for a parsed directive. Every call is independent:
// ranges are re-drawn, hashes re-salted, pools sampled with replacement.
func (e *Evaluator) Eval(ctx context.Context, d *directive.Directive) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case directive.Literal:
		return d.Template, nil

	case directive.Generator:
		v, err := e.human.Generate(ctx, d.Name)
		if err != nil {
			return nil, fmt.Errorf("generate %q: %w", d.Template, err)
		}
		return v, nil

	case directive.Hash:
		inner, err := e.Eval(ctx, d.Inner)
		if err != nil {
			return nil, err
		}
		digest, err := e.hasher.Hash(ctx, Stringify(inner))
		if err != nil {
			return nil, fmt.Errorf("hash %q: %w", d.Template, err)
		}
		return digest, nil

	case directive.Range:
		v, err := e.sampleRange(d.Range)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", d.Template, err)
		}
		return v, nil

	case directive.Pool:
		v, err := e.pools.Sample(ctx, d.Name)
		if err != nil {
			e.logger.DebugContext(ctx, "pool sampling failed", logger.Pool(d.Name), logger.Error(err))
			return nil, fmt.Errorf("sample %q: %w", d.Template, err)
		}
		return v, nil

	case directive.Default:
		v, ok := directive.ResolveDefault(d.Name, e.now())
		if !ok {
			return nil, fmt.Errorf("%w: default %q", directive.ErrUnknownDirective, d.Template)
		}
		return v, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, d.Kind)
}

func (e *Evaluator) sampleRange(b *directive.Bounds) (any, error) {
	if b.Type != sample.TypeDate {
		return sample.Numeric(e.src, b.Type, b.Lo, b.Hi)
	}

	now := e.now()
	if !b.Ranged {
		return sample.At(now, b.From), nil
	}
	return sample.Date(e.src, now, b.From, b.To)
}

// Stringify renders a generated value as the text a hash is computed over.
// Dates use RFC 3339 in UTC, identifiers their hex or canonical form,
// containers JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case interface{ Hex() string }:
		return t.Hex()
	case fmt.Stringer:
		return t.String()
	case nil:
		return "null"
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
