package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter("debug", "json", &buf)
	defer Initialize("info", "text")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	WithRequestID(ctx).Info("handled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "handled", line["msg"])
	assert.Equal(t, "req-42", line["request_id"])
}

func TestPipelineResult_LevelDependsOnError(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter("error", "json", &buf)
	defer Initialize("info", "text")

	PipelineResult("bookings", 3, nil)
	assert.Zero(t, buf.Len(), "success is logged at debug level")

	PipelineResult("bookings", 0, errors.New("connection reset"))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "bookings", line["collection"])
	assert.Equal(t, "connection reset", line["error"])
}
