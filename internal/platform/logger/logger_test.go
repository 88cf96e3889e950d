package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/novatech/taskflow/internal/config"
	"github.com/novatech/taskflow/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug_level", logLevel: "debug"},
		{name: "info_level", logLevel: "info"},
		{name: "warn_level", logLevel: "warn"},
		{name: "error_level", logLevel: "error"},
		{name: "uppercase_accepted", logLevel: "INFO"},
		{name: "invalid_falls_back_to_info", logLevel: "verbose"},
		{name: "empty_falls_back_to_info", logLevel: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Equal(t, log, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	attached := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := logger.WithLogger(context.Background(), attached)

	assert.Equal(t, attached, logger.FromContext(ctx))
	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	attached := slog.New(slog.NewTextHandler(os.Stderr, nil))
	def := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "logger_in_context_wins",
			ctx:  logger.WithLogger(context.Background(), attached),
			want: attached,
		},
		{
			name: "default_used_when_absent",
			ctx:  context.Background(),
			want: def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FromContextOrDefault(tt.ctx, def))
		})
	}
}

func TestFromContextOrDefault_NilDefault(t *testing.T) {
	got := logger.FromContextOrDefault(context.Background(), nil)
	assert.Equal(t, slog.Default(), got)
}
