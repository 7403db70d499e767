package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/seedkit/pkg/config"
	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/mongo"
	"github.com/dmitrymomot/seedkit/pkg/pg"
)

const defaultDatabase = "test"

// recordSink persists a generated batch and reports the ids it assigned.
type recordSink interface {
	InsertMany(ctx context.Context, collection string, records []engine.Record) ([]string, error)
}

// openSink connects the sink selected by opts. The returned func releases it.
func openSink(ctx context.Context, opts *options, log *slog.Logger, stdout io.Writer) (recordSink, func(), error) {
	log = log.With(logger.Sink(opts.Sink))

	switch opts.Sink {
	case sinkMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		cfg.Database = firstNonEmpty(opts.DB, cfg.Database, defaultDatabase)
		if cfg.ConnectionURL == "" {
			cfg.ConnectionURL = mongo.HostURL(opts.URL, cfg.Database)
		}

		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.WarnContext(ctx, "mongo disconnect failed", logger.Error(err))
			}
		}
		if err := mongo.Healthcheck(db.Client())(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		log.InfoContext(ctx, "connection established")

		sink := mongo.NewSink(mongo.DatabaseInserter(db),
			mongo.WithBatchSize(cfg.InsertBatchSize),
			mongo.WithLogger(log),
		)
		return sink, closeFn, nil

	case sinkPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}

		conn, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Healthcheck(conn)(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.InfoContext(ctx, "connection established")

		sink := pg.NewSink(conn,
			pg.WithCreateTables(cfg.CreateTables),
			pg.WithLogger(log),
		)
		return sink, conn.Close, nil

	case sinkStdout:
		return &stdoutSink{w: stdout}, func() {}, nil
	}

	return nil, nil, usageError("invalid sink %q", opts.Sink)
}

// stdoutSink prints records as JSON lines; ids are record positions.
// On failure it returns the ids of the lines already written.
type stdoutSink struct {
	w io.Writer
}

func (s *stdoutSink) InsertMany(ctx context.Context, _ string, records []engine.Record) ([]string, error) {
	enc := json.NewEncoder(s.w)
	enc.SetEscapeHTML(false)

	ids := make([]string, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return ids, err
		}
		if err := enc.Encode(rec); err != nil {
			return ids, fmt.Errorf("record %d: %w", i, err)
		}
		ids = append(ids, strconv.Itoa(i))
	}
	return ids, nil
}
