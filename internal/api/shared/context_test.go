package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	require.NotEmpty(t, traceID)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a valid UUID")
}

func TestSetTraceID_UniquePerCall(t *testing.T) {
	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

func TestGetTraceID_MissingReturnsEmpty(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestGetTraceID_WrongTypeReturnsEmpty(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 12345)
	assert.Empty(t, GetTraceID(ctx))
}
