// Package noop provides a no-operation metrics client implementation
// for use in testing or when metrics collection is disabled.
package noop

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/architeacher/fieldcompare/pkg/metrics"
)

type (
	MetricsClient struct{}
)

var _ metrics.Client = MetricsClient{}

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

func (c MetricsClient) Inc(_ context.Context, _ string, _ int64, _ ...attribute.KeyValue) {}

func (c MetricsClient) Observe(_ context.Context, _ string, _ float64, _ ...attribute.KeyValue) {}
