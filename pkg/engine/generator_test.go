package engine_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/seedkit/pkg/directive"
	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/model"
	"github.com/dmitrymomot/seedkit/pkg/pool"
)

func TestGenerateRecord(t *testing.T) {
	t.Parallel()

	m := model.Model{
		"name": "$firstname",
		"age":  "#integer{18,30}",
		"tag":  "-hashtag",
	}
	g := engine.NewGenerator(newEvaluator(t))

	records, err := g.Generate(context.Background(), m, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.Len(t, rec, 3)

	name, ok := rec["name"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, name)

	age, ok := rec["age"].(int64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, age, int64(18))
	assert.Less(t, age, int64(30))

	assert.Equal(t, "#", rec["tag"])
}

func TestGenerateBatch(t *testing.T) {
	t.Parallel()

	m := model.Model{
		"code":   "#string{4,4}",
		"score":  "#number{0,1}",
		"active": "-true",
		"tags":   "-array",
	}
	g := engine.NewGenerator(newEvaluator(t), engine.WithWorkers(4))

	records, err := g.Generate(context.Background(), m, 200)
	require.NoError(t, err)
	require.Len(t, records, 200)

	codes := make(map[string]bool)
	for _, rec := range records {
		require.Len(t, rec, 4)
		codes[rec["code"].(string)] = true
		assert.Equal(t, true, rec["active"])
	}
	assert.Greater(t, len(codes), 150, "records should be independent")

	// containers are never shared between records
	records[0]["tags"] = append(records[0]["tags"].([]any), "x")
	assert.Empty(t, records[1]["tags"])
}

func TestGenerateAbortsOnError(t *testing.T) {
	t.Parallel()

	g := engine.NewGenerator(newEvaluator(t))

	t.Run("malformed template fails before generation", func(t *testing.T) {
		records, err := g.Generate(context.Background(), model.Model{"a": "#integer{1}", "b": "#integer{"}, 10)
		assert.ErrorIs(t, err, directive.ErrTemplateSyntax)
		assert.Contains(t, err.Error(), `field "b"`)
		assert.Nil(t, records)
	})

	t.Run("evaluation failure drops the batch", func(t *testing.T) {
		records, err := g.Generate(context.Background(), model.Model{"a": "-true", "owner": "@missing"}, 10)
		assert.ErrorIs(t, err, pool.ErrPoolNotFound)
		assert.Nil(t, records)
	})

	t.Run("count must be positive", func(t *testing.T) {
		_, err := g.Generate(context.Background(), model.Model{"a": "x"}, 0)
		assert.True(t, errors.Is(err, engine.ErrInvalidCount))
	})
}

func TestRecordLogsFailingField(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	g := engine.NewGenerator(newEvaluator(t), engine.WithGeneratorLogger(log))

	p, err := engine.Compile(model.Model{"owner": "@missing"})
	require.NoError(t, err)

	_, err = g.Record(context.Background(), p)
	require.ErrorIs(t, err, pool.ErrPoolNotFound)

	var entry map[string]any
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "field evaluation failed", entry["msg"])
	assert.Equal(t, "owner", entry["field"])
	assert.Equal(t, "@missing", entry["template"])
}

func TestCompile(t *testing.T) {
	p, err := engine.Compile(model.Model{"b": "x", "a": "#integer{1,2}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Fields())

	_, err = engine.Compile(model.Model{"a": "$nope"})
	assert.ErrorIs(t, err, directive.ErrUnknownDirective)
}
