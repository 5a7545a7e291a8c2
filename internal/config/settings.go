package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var (
	ServiceVersion string
	CommitSHA      string
)

const (
	RuntimeNative = "native"
	RuntimeScript = "script"
)

type (
	ServiceConfig struct {
		App        App        `json:"app"`
		Validation Validation `json:"validation"`
		Logging    Logging    `json:"logging"`
		Telemetry  Telemetry  `json:"telemetry"`
	}

	App struct {
		ServiceName    string `envconfig:"APP_SERVICE_NAME" default:"fieldcompare" json:"service_name"`
		ServiceVersion string `json:"service_version,omitempty"`
		CommitSHA      string `json:"commit_sha,omitempty"`
	}

	Validation struct {
		Runtime string `envconfig:"VALIDATION_RUNTIME" default:"native" json:"runtime"`
		Locale  string `envconfig:"VALIDATION_LOCALE" default:"en" json:"locale"`
		Schema  string `envconfig:"VALIDATION_SCHEMA" default:"" json:"schema,omitempty"`
	}

	Logging struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format string `envconfig:"LOG_FORMAT" default:"console" json:"format"`
	}

	Telemetry struct {
		Enabled     bool    `envconfig:"OTEL_ENABLED" default:"false" json:"enabled"`
		ServiceName string  `envconfig:"OTEL_SERVICE_NAME" default:"fieldcompare" json:"service_name"`
		Metrics     Metrics `json:"metrics"`
		Traces      Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
	}

	Traces struct {
		Enabled bool `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
	}
)

// Validate rejects settings that cannot be used.
func (c *ServiceConfig) Validate() error {
	switch c.Validation.Runtime {
	case RuntimeNative, RuntimeScript:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRuntime, c.Validation.Runtime)
	}

	if _, err := c.Language(); err != nil {
		return err
	}

	return nil
}

// Language parses the configured locale.
func (c *ServiceConfig) Language() (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(c.Validation.Locale))
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Validation.Locale, err)
	}

	return tag, nil
}

func (c *ServiceConfig) TracesEnabled() bool {
	return c.Telemetry.Enabled && c.Telemetry.Traces.Enabled
}

func (c *ServiceConfig) MetricsEnabled() bool {
	return c.Telemetry.Enabled && c.Telemetry.Metrics.Enabled
}
