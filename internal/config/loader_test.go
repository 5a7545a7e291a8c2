package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestInit(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VALIDATION_RUNTIME", "script")
	t.Setenv("VALIDATION_LOCALE", "de-AT")
	t.Setenv("VALIDATION_SCHEMA", "testdata/booking.yaml")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("TRACES_ENABLED", "true")

	cfg, err := Init()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, RuntimeScript, cfg.Validation.Runtime)
	assert.Equal(t, "testdata/booking.yaml", cfg.Validation.Schema)
	assert.True(t, cfg.TracesEnabled())
	assert.False(t, cfg.MetricsEnabled())

	tag, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-AT"), tag)
}

func TestInit_DefaultValues(t *testing.T) {
	cfg, err := Init()
	require.NoError(t, err)

	assert.Equal(t, "fieldcompare", cfg.App.ServiceName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, RuntimeNative, cfg.Validation.Runtime)
	assert.Equal(t, "en", cfg.Validation.Locale)
	assert.Empty(t, cfg.Validation.Schema)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "fieldcompare", cfg.Telemetry.ServiceName)
	assert.False(t, cfg.TracesEnabled())
}

func TestInit_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown runtime", key: "VALIDATION_RUNTIME", value: "wasm"},
		{name: "malformed locale", key: "VALIDATION_LOCALE", value: "not a locale!"},
		{name: "malformed flag", key: "OTEL_ENABLED", value: "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Init()
			require.Error(t, err)
		})
	}
}

func TestTelemetryRequiresEnabled(t *testing.T) {
	cfg := &ServiceConfig{Telemetry: Telemetry{
		Metrics: Metrics{Enabled: true},
		Traces:  Traces{Enabled: true},
	}}

	assert.False(t, cfg.MetricsEnabled())
	assert.False(t, cfg.TracesEnabled())
}
