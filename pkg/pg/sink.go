package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/logger"
)

// Column names of a records table.
const (
	ColumnID  = "id"
	ColumnDoc = "doc"
)

// Execer is the part of *pgxpool.Pool the sink needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Sink stores each record as one JSONB row keyed by a random UUID.
type Sink struct {
	db           Execer
	createTables bool
	logger       *slog.Logger
}

type SinkOption func(*Sink)

// WithCreateTables makes the sink create missing tables before inserting.
func WithCreateTables(create bool) SinkOption {
	return func(s *Sink) { s.createTables = create }
}

func WithLogger(l *slog.Logger) SinkOption {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSink(db Execer, opts ...SinkOption) *Sink {
	s := &Sink{db: db, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureTable creates "<table>(id uuid primary key, doc jsonb)" if it is missing.
func (s *Sink) EnsureTable(ctx context.Context, table string) error {
	if table == "" {
		return ErrMissingTable
	}
	sql := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s uuid PRIMARY KEY, %s jsonb NOT NULL)",
		pgx.Identifier{table}.Sanitize(), ColumnID, ColumnDoc,
	)
	if _, err := s.db.Exec(ctx, sql); err != nil {
		return errors.Join(ErrCreateTableFailed, err)
	}
	return nil
}

// InsertMany copies records into table and returns their row ids in record order.
func (s *Sink) InsertMany(ctx context.Context, table string, records []engine.Record) ([]string, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	if s.createTables {
		if err := s.EnsureTable(ctx, table); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	ids := make([]string, len(records))
	rows := make([][]any, len(records))
	for i, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Join(ErrEncodeRecord, fmt.Errorf("record %d: %w", i, err))
		}
		id := uuid.New()
		ids[i] = id.String()
		rows[i] = []any{id, string(doc)}
	}

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{table}, []string{ColumnID, ColumnDoc}, pgx.CopyFromRows(rows))
	if err != nil {
		return nil, classifyInsertError(err)
	}
	if int(n) != len(rows) {
		return nil, fmt.Errorf("%w: copied %d of %d rows", ErrInsertFailed, n, len(rows))
	}

	s.logger.InfoContext(ctx, "records inserted",
		logger.Component("postgres"),
		logger.Collection(table),
		logger.Count(len(ids)),
		logger.Duration(time.Since(start)),
	)
	return ids, nil
}

// classifyInsertError names the usual causes of a failed copy.
func classifyInsertError(err error) error {
	switch {
	case IsUndefinedTableError(err):
		return errors.Join(ErrInsertFailed, ErrTableNotFound, err)
	case IsDuplicateKeyError(err):
		return errors.Join(ErrInsertFailed, ErrDuplicateID, err)
	}
	return errors.Join(ErrInsertFailed, err)
}

// UUIDWrapper turns uuid strings drawn from a pool into uuid.UUID values.
// Other values pass through.
func UUIDWrapper(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return id, nil
}
