package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/seedkit/pkg/async"
	"github.com/dmitrymomot/seedkit/pkg/directive"
	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/model"
)

// DefaultWorkers bounds how many records are generated at once.
const DefaultWorkers = 16

// Record is one generated document: field name to value.
type Record map[string]any

// Plan is a model with every template parsed. It is read-only and may be
// shared by concurrent generations.
type Plan struct {
	fields     []string
	directives []*directive.Directive
}

// Compile parses every template of m. The first malformed template fails
// the whole plan.
func Compile(m model.Model) (*Plan, error) {
	fields := m.Fields()
	p := &Plan{
		fields:     fields,
		directives: make([]*directive.Directive, len(fields)),
	}
	for i, name := range fields {
		d, err := directive.Parse(m[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		p.directives[i] = d
	}
	return p, nil
}

// Fields returns the field names of the plan in evaluation order.
func (p *Plan) Fields() []string {
	return p.fields
}

// Generator builds records from plans.
type Generator struct {
	eval    *Evaluator
	workers int
	logger  *slog.Logger
}

type GeneratorOption func(*Generator)

// WithWorkers bounds the number of records generated concurrently.
func WithWorkers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

func WithGeneratorLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator returns a Generator evaluating templates with eval.
func NewGenerator(eval *Evaluator, opts ...GeneratorOption) *Generator {
	g := &Generator{
		eval:    eval,
		workers: DefaultWorkers,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Record evaluates every field of p once. Fields never see each other's values.
func (g *Generator) Record(ctx context.Context, p *Plan) (Record, error) {
	rec := make(Record, len(p.fields))
	for i, name := range p.fields {
		v, err := g.eval.Eval(ctx, p.directives[i])
		if err != nil {
			g.logger.DebugContext(ctx, "field evaluation failed",
				logger.Field(name),
				logger.Template(p.directives[i].Template),
				logger.Error(err),
			)
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec[name] = v
	}
	return rec, nil
}

// Generate compiles m and produces n independent records, in request order.
// Any failure aborts the batch and no record is returned.
func (g *Generator) Generate(ctx context.Context, m model.Model, n int) ([]Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	p, err := Compile(m)
	if err != nil {
		return nil, err
	}
	return g.GeneratePlan(ctx, p, n)
}

// GeneratePlan produces n records from an already compiled plan.
func (g *Generator) GeneratePlan(ctx context.Context, p *Plan, n int) ([]Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	start := time.Now()
	records, err := async.Batch(ctx, n, g.workers, func(ctx context.Context, _ int) (Record, error) {
		return g.Record(ctx, p)
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "batch generation failed",
			logger.Component("engine"),
			logger.Count(n),
			logger.Error(err),
		)
		return nil, err
	}

	g.logger.DebugContext(ctx, "batch generated",
		logger.Component("engine"),
		logger.Count(n),
		logger.Duration(time.Since(start)),
	)
	return records, nil
}
