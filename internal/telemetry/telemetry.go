// Package telemetry builds the tracer and meter providers of the CLI.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/architeacher/fieldcompare/internal/config"
)

const meterName = "github.com/architeacher/fieldcompare"

// Providers holds the providers of one process run.
type Providers struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	reader    *sdkmetric.ManualReader
	shutdowns []func(context.Context) error
}

// New builds providers from cfg. Spans are written to w; metrics are kept in
// memory until collected.
func New(cfg *config.ServiceConfig, w io.Writer) (*Providers, error) {
	p := &Providers{
		TracerProvider: NewNoopTracerProvider(),
		MeterProvider:  metricnoop.NewMeterProvider(),
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.Telemetry.ServiceName),
		attribute.String("service.version", cfg.App.ServiceVersion),
		attribute.String("commit_sha", cfg.App.CommitSHA),
	)

	if cfg.TracesEnabled() {
		tp, shutdown, err := NewTracerProvider(res, w)
		if err != nil {
			return nil, err
		}

		p.TracerProvider = tp
		p.shutdowns = append(p.shutdowns, shutdown)
	}

	if cfg.MetricsEnabled() {
		p.reader = sdkmetric.NewManualReader()

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(p.reader),
			sdkmetric.WithResource(res),
		)

		p.MeterProvider = mp
		p.shutdowns = append(p.shutdowns, mp.Shutdown)
	}

	return p, nil
}

// NewTracerProvider creates a tracer provider exporting spans to w.
func NewTracerProvider(res *resource.Resource, w io.Writer) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create an StdOut trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	return tp, tp.Shutdown, nil
}

// NewNoopTracerProvider creates a no-op tracer provider for when tracing is disabled.
func NewNoopTracerProvider() trace.TracerProvider {
	return noop.NewTracerProvider()
}

// Meter returns the meter validation instruments are registered on.
func (p *Providers) Meter() metric.Meter {
	return p.MeterProvider.Meter(meterName)
}

// Collect reads the metrics recorded so far. It returns an empty result when
// metrics are disabled.
func (p *Providers) Collect(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics

	if p.reader == nil {
		return rm, nil
	}

	if err := p.reader.Collect(ctx, &rm); err != nil {
		return rm, fmt.Errorf("failed to collect metrics: %w", err)
	}

	return rm, nil
}

// Counters sums every int64 counter of rm by instrument name.
func Counters(rm metricdata.ResourceMetrics) map[string]int64 {
	out := make(map[string]int64)

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}

			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}

	return out
}

func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error

	for _, shutdown := range p.shutdowns {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
