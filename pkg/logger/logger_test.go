package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/fieldcompare/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: logger.LogLevelDebug, expected: zerolog.DebugLevel},
		{level: " WARNING ", expected: zerolog.WarnLevel},
		{level: logger.LogLevelError, expected: zerolog.ErrorLevel},
		{level: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, logger.ParseLevel(tc.level))
		})
	}
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.LogLevelWarn, logger.JSONLoggingFormat, &buf)

	log.Info().Msg("hidden")
	require.Empty(t, buf.String())

	log.Warn().Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Contains(t, entry, "time")
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		setupContext func() context.Context
		expected     map[string]string
		absent       []string
	}{
		{
			name: "adds request and correlation IDs",
			setupContext: func() context.Context {
				ctx := context.WithValue(context.Background(), logger.ContextKeyRequestID, "req-1")

				return context.WithValue(ctx, logger.ContextKeyCorrelationID, "corr-1")
			},
			expected: map[string]string{"request_id": "req-1", "correlation_id": "corr-1"},
		},
		{
			name: "adds model",
			setupContext: func() context.Context {
				return logger.WithModel(context.Background(), "Registration")
			},
			expected: map[string]string{"model": "Registration"},
		},
		{
			name:         "handles empty context",
			setupContext: context.Background,
			absent:       []string{"request_id", "model", "trace_id"},
		},
		{
			name: "skips empty values",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), logger.ContextKeyRequestID, "")
			},
			absent: []string{"request_id"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.NewWithWriter(logger.LogLevelInfo, logger.JSONLoggingFormat, &buf)

			ctxLogger := log.WithContext(tc.setupContext())
			ctxLogger.Info().Msg("test message")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for key, value := range tc.expected {
				require.Equal(t, value, entry[key])
			}

			for _, key := range tc.absent {
				require.NotContains(t, entry, key)
			}
		})
	}
}
