package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/logger"
)

// IDField is the document key MongoDB uses as primary key.
const IDField = "_id"

// Inserter writes documents into a collection and returns their ids in order.
// On error it returns the ids of the documents that were stored anyway.
type Inserter interface {
	InsertMany(ctx context.Context, collection string, docs []any) ([]any, error)
}

type databaseInserter struct {
	db *mongo.Database
}

func (d databaseInserter) InsertMany(ctx context.Context, collection string, docs []any) ([]any, error) {
	res, err := d.db.Collection(collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return insertedBefore(docs, err), err
	}
	return res.InsertedIDs, nil
}

// insertedBefore returns the ids of the documents an ordered insert stored
// before its first write error.
func insertedBefore(docs []any, err error) []any {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return nil
	}
	n := len(docs)
	for _, we := range bwe.WriteErrors {
		n = min(n, we.Index)
	}
	ids := make([]any, 0, n)
	for _, doc := range docs[:max(n, 0)] {
		if m, ok := doc.(bson.M); ok {
			ids = append(ids, m[IDField])
		}
	}
	return ids
}

// DatabaseInserter adapts a database handle to Inserter.
func DatabaseInserter(db *mongo.Database) Inserter {
	return databaseInserter{db: db}
}

// Sink persists generated records into MongoDB.
type Sink struct {
	ins       Inserter
	batchSize int
	logger    *slog.Logger
}

type SinkOption func(*Sink)

// WithBatchSize caps the number of documents sent per InsertMany call.
func WithBatchSize(n int) SinkOption {
	return func(s *Sink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithLogger(l *slog.Logger) SinkOption {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSink returns a Sink writing through ins.
func NewSink(ins Inserter, opts ...SinkOption) *Sink {
	s := &Sink{
		ins:       ins,
		batchSize: 1000,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InsertMany stores records in collection and returns their ids as strings,
// in record order. Records without an "_id" get a fresh ObjectID; the
// records themselves are not modified.
//
// Batches are sent one after another and are not rolled back. When a batch
// fails, the error comes with the ids of every record stored before it,
// including the part of the failing batch the server accepted.
func (s *Sink) InsertMany(ctx context.Context, collection string, records []engine.Record) ([]string, error) {
	if collection == "" {
		return nil, ErrMissingCollection
	}

	start := time.Now()
	ids := make([]string, 0, len(records))
	for offset := 0; offset < len(records); offset += s.batchSize {
		end := min(offset+s.batchSize, len(records))

		docs := make([]any, 0, end-offset)
		for _, rec := range records[offset:end] {
			docs = append(docs, document(rec))
		}

		inserted, err := s.ins.InsertMany(ctx, collection, docs)
		for _, id := range inserted {
			ids = append(ids, engine.Stringify(id))
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "insert aborted",
				logger.Component("mongo"),
				logger.Collection(collection),
				logger.Count(len(ids)),
				logger.Error(err),
			)
			return ids, errors.Join(ErrInsertFailed, err)
		}
	}

	s.logger.InfoContext(ctx, "records inserted",
		logger.Component("mongo"),
		logger.Collection(collection),
		logger.Count(len(ids)),
		logger.Duration(time.Since(start)),
	)
	return ids, nil
}

func document(rec engine.Record) bson.M {
	doc := make(bson.M, len(rec)+1)
	for k, v := range rec {
		doc[k] = v
	}
	if _, ok := doc[IDField]; !ok {
		doc[IDField] = bson.NewObjectID()
	}
	return doc
}

// ObjectIDWrapper turns hex strings drawn from a pool into ObjectIDs so
// references keep their native type. Other values pass through.
func ObjectIDWrapper(v any) (any, error) {
	switch t := v.(type) {
	case string:
		id, err := bson.ObjectIDFromHex(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidObjectID, t)
		}
		return id, nil
	case map[string]any:
		// extended JSON {"$oid": "..."}
		if hex, ok := t["$oid"].(string); ok && len(t) == 1 {
			return ObjectIDWrapper(hex)
		}
	}
	return v, nil
}
