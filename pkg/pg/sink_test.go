package pg_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/pg"
)

type fakeDB struct {
	execs   []string
	table   pgx.Identifier
	columns []string
	rows    [][]any
	err     error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.table, f.columns = table, columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.rows = append(f.rows, values)
	}
	return int64(len(f.rows)), src.Err()
}

func TestSinkInsertMany(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}
	sink := pg.NewSink(db, pg.WithCreateTables(true))

	records := []engine.Record{
		{"name": "a", "age": int64(20)},
		{"name": "b", "age": int64(21)},
	}
	ids, err := sink.InsertMany(context.Background(), "users", records)
	require.NoError(t, err)

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], `CREATE TABLE IF NOT EXISTS "users"`)
	assert.Equal(t, pgx.Identifier{"users"}, db.table)
	assert.Equal(t, []string{pg.ColumnID, pg.ColumnDoc}, db.columns)

	require.Len(t, ids, 2)
	require.Len(t, db.rows, 2)
	for i, row := range db.rows {
		assert.Equal(t, ids[i], row[0].(uuid.UUID).String())

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(row[1].(string)), &doc))
		assert.Equal(t, records[i]["name"], doc["name"])
	}
}

func TestSinkInsertManyErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	sink := pg.NewSink(&fakeDB{err: boom})

	_, err := sink.InsertMany(context.Background(), "users", []engine.Record{{"a": 1}})
	assert.ErrorIs(t, err, pg.ErrInsertFailed)
	assert.ErrorIs(t, err, boom)

	_, err = sink.InsertMany(context.Background(), "", nil)
	assert.ErrorIs(t, err, pg.ErrMissingTable)

	_, err = sink.InsertMany(context.Background(), "users", []engine.Record{{"bad": make(chan int)}})
	assert.ErrorIs(t, err, pg.ErrEncodeRecord)
}

func TestSinkInsertManyNamesPostgresErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want error
	}{
		{"missing table", "42P01", pg.ErrTableNotFound},
		{"duplicate id", "23505", pg.ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pgErr := &pgconn.PgError{Code: tt.code}
			sink := pg.NewSink(&fakeDB{err: pgErr})

			ids, err := sink.InsertMany(context.Background(), "users", []engine.Record{{"a": 1}})
			assert.Nil(t, ids)
			assert.ErrorIs(t, err, pg.ErrInsertFailed)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, pgErr)
		})
	}

	_, err := pg.NewSink(&fakeDB{err: errors.New("boom")}).InsertMany(context.Background(), "users", []engine.Record{{"a": 1}})
	assert.NotErrorIs(t, err, pg.ErrTableNotFound)
	assert.NotErrorIs(t, err, pg.ErrDuplicateID)
}

func TestIsPostgresErrorCodes(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("copy: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, pg.IsDuplicateKeyError(wrapped))
	assert.False(t, pg.IsUndefinedTableError(wrapped))
	assert.True(t, pg.IsUndefinedTableError(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, pg.IsDuplicateKeyError(nil))
	assert.False(t, pg.IsUndefinedTableError(errors.New("42P01")))
}

func TestUUIDWrapper(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := pg.UUIDWrapper(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = pg.UUIDWrapper("nope")
	assert.ErrorIs(t, err, pg.ErrInvalidUUID)

	got, err = pg.UUIDWrapper(true)
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestConnect_EmptyConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}
