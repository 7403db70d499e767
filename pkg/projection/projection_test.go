package projection_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/pool"
	"github.com/dmitrymomot/seedkit/pkg/projection"
	"github.com/dmitrymomot/seedkit/pkg/sample"
)

func TestParseSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    projection.Spec
		wantErr error
	}{
		{in: "email:emails", want: projection.Spec{Field: "email", Name: "emails"}},
		{in: " name : names ", want: projection.Spec{Field: "name", Name: "names"}},
		{in: "email", want: projection.Spec{Field: "email", Name: "email"}},
		{in: ":names", wantErr: projection.ErrInvalidSpec},
		{in: "email:", wantErr: projection.ErrInvalidSpec},
		{in: "email:../x", wantErr: projection.ErrInvalidOutputName},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := projection.ParseSpec(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	w, err := projection.Open(dir,
		projection.Spec{Field: "email", Name: "emails"},
		projection.Spec{Field: "age", Name: "ages"},
		projection.Spec{Field: "alt", Name: "emails"},
	)
	require.NoError(t, err)

	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, w.WriteAll([]engine.Record{
		{"email": "a@example.com", "age": int64(20), "alt": ""},
		{"email": "", "age": int64(0), "alt": "b@example.com"},
		{"email": "<c>@example.com", "age": ts},
	}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Write(engine.Record{}), projection.ErrWriterClosed)

	emails, err := os.ReadFile(filepath.Join(dir, "emails.dat"))
	require.NoError(t, err)
	assert.Equal(t, "\"a@example.com\"\n\"b@example.com\"\n\"<c>@example.com\"\n", string(emails))

	ages, err := os.ReadFile(filepath.Join(dir, "ages.dat"))
	require.NoError(t, err)
	assert.Equal(t, "20\n\"2024-05-06T07:08:09Z\"\n", string(ages))
}

func TestWriterOutputIsAPool(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := projection.Open(dir, projection.Spec{Field: "n", Name: "numbers"})
	require.NoError(t, err)
	require.NoError(t, w.WriteAll([]engine.Record{{"n": int64(1)}, {"n": 2.5}}))
	require.NoError(t, w.Close())

	s := pool.New(dir, sample.NewSeededSource(1))
	lines, err := s.Lines(context.Background(), "numbers")
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	v, err := s.Sample(context.Background(), "numbers")
	require.NoError(t, err)
	assert.Contains(t, []any{int64(1), 2.5}, v)
}

func TestWriterKeepsExistingPoolUntilClose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "names.dat")
	require.NoError(t, os.WriteFile(target, []byte("\"Ada\"\n"), 0o644))

	w, err := projection.Open(dir, projection.Spec{Field: "name", Name: "names"})
	require.NoError(t, err)
	require.NoError(t, w.Write(engine.Record{"name": "Grace"}))

	// The pool stays readable while the new lines are pending.
	s := pool.New(dir, sample.NewSeededSource(1))
	v, err := s.Sample(context.Background(), "names")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)

	require.NoError(t, w.Close())
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "\"Grace\"\n", string(data))
	assertNoTempFiles(t, dir)
}

func TestWriterAbortLeavesPoolUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "emails.dat")
	require.NoError(t, os.WriteFile(target, []byte("\"keep@example.com\"\n"), 0o644))

	w, err := projection.Open(dir,
		projection.Spec{Field: "email", Name: "emails"},
		projection.Spec{Field: "age", Name: "ages"},
	)
	require.NoError(t, err)
	require.NoError(t, w.Write(engine.Record{"email": "new@example.com", "age": int64(3)}))
	require.NoError(t, w.Abort())
	require.NoError(t, w.Close(), "close after abort is a no-op")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "\"keep@example.com\"\n", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "ages.dat"))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSaveIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, projection.SaveIDs(dir, []string{"64b7f0c2a1b2c3d4e5f60718", "64b7f0c2a1b2c3d4e5f60719"}))

	data, err := os.ReadFile(filepath.Join(dir, projection.IDPool+pool.Extension))
	require.NoError(t, err)
	assert.Equal(t, "\"64b7f0c2a1b2c3d4e5f60718\"\n\"64b7f0c2a1b2c3d4e5f60719\"\n", string(data))
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, false, "", int64(0), 0, 0.0, math.NaN()} {
		assert.False(t, projection.Truthy(v), "%#v", v)
	}
	for _, v := range []any{true, "x", int64(-1), 1, 0.1, []any{}, map[string]any{}, time.Now()} {
		assert.True(t, projection.Truthy(v), "%#v", v)
	}
}
