package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/seedkit/pkg/config"
	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/environment"
	"github.com/dmitrymomot/seedkit/pkg/hasher"
	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/model"
	"github.com/dmitrymomot/seedkit/pkg/mongo"
	"github.com/dmitrymomot/seedkit/pkg/pg"
	"github.com/dmitrymomot/seedkit/pkg/pool"
	"github.com/dmitrymomot/seedkit/pkg/projection"
	"github.com/dmitrymomot/seedkit/pkg/sample"
)

const serviceName = "seedkit"

type runIDKey struct{}

// execute generates opts.Count records from the model and hands them to the
// selected sink. Nothing is inserted unless the whole batch was generated.
// When the sink fails midway the ids it did store are still saved with --save-id.
func execute(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if len(opts.EnvFiles) > 0 {
		if err := config.LoadEnv(opts.EnvFiles...); err != nil {
			return err
		}
	}
	app, err := config.LoadApp()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey{}, runID)

	log, err := newLogger(app, opts, stderr)
	if err != nil {
		return err
	}

	m, err := model.Compile(opts.Model)
	if err != nil {
		return err
	}
	plan, err := engine.Compile(m)
	if err != nil {
		return fmt.Errorf("model %s: %w", opts.Model, err)
	}

	poolDir := firstNonEmpty(opts.PoolDir, app.PoolDir, filepath.Dir(opts.Model))
	outDir := firstNonEmpty(opts.OutDir, app.OutDir, poolDir)

	src := sample.NewSource()
	if seed := firstNonZero(opts.Seed, app.Seed); seed != 0 {
		src = sample.NewSeededSource(seed)
	}

	var poolOpts []pool.Option
	switch opts.Sink {
	case sinkMongo:
		poolOpts = append(poolOpts, pool.WithWrapper(projection.IDPool, mongo.ObjectIDWrapper))
	case sinkPostgres:
		poolOpts = append(poolOpts, pool.WithWrapper(projection.IDPool, pg.UUIDWrapper))
	}

	eval := engine.NewEvaluator(
		engine.WithSource(src),
		engine.WithHasher(hasher.NewBcrypt(hasher.WithCost(app.BcryptCost))),
		engine.WithPools(pool.New(poolDir, src, poolOpts...)),
		engine.WithLogger(log),
	)
	gen := engine.NewGenerator(eval,
		engine.WithWorkers(firstNonZero(opts.Workers, app.Workers)),
		engine.WithGeneratorLogger(log),
	)

	sink, closeSink, err := openSink(ctx, opts, log, stdout)
	if err != nil {
		return err
	}
	defer closeSink()

	start := time.Now()
	log.InfoContext(ctx, "generating records",
		logger.Model(opts.Model),
		logger.Count(opts.Count),
		logger.Sink(opts.Sink),
	)

	records, err := gen.GeneratePlan(ctx, plan, opts.Count)
	if err != nil {
		return err
	}

	// Projections are staged beside their pools and only replace them once
	// the batch is stored, so a failed run leaves existing pools untouched.
	writer, err := projection.Open(outDir, opts.Save...)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return errors.Join(err, writer.Abort())
	}

	ids, err := sink.InsertMany(ctx, opts.Collection, records)
	if err != nil {
		err = errors.Join(err, writer.Abort())
		if len(ids) > 0 {
			log.WarnContext(ctx, "batch partially stored",
				logger.Collection(opts.Collection),
				logger.Count(len(ids)),
			)
			if opts.SaveID {
				err = errors.Join(err, projection.SaveIDs(outDir, ids))
			}
		}
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	if opts.SaveID {
		if err := projection.SaveIDs(outDir, ids); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "run finished",
		logger.Collection(opts.Collection),
		logger.Count(len(ids)),
		logger.Duration(time.Since(start)),
	)
	return nil
}

func newLogger(app config.App, opts *options, stderr io.Writer) (*slog.Logger, error) {
	logOpts := []logger.Option{
		logger.WithEnvironment(environment.Parse(app.Env), serviceName),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(runIDFromContext),
	}

	levelName := firstNonEmpty(opts.LogLevel, app.LogLevel)
	formatName := strings.ToLower(firstNonEmpty(opts.LogFormat, app.LogFormat))
	if err := checkLogFlags(levelName, formatName); err != nil {
		return nil, err
	}
	if levelName != "" {
		level, _ := logger.ParseLevel(levelName)
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	if formatName != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(formatName)))
	}

	return logger.New(logOpts...), nil
}

func runIDFromContext(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RunID(id), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero[T int | uint64](values ...T) T {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
