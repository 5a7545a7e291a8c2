package decorator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/architeacher/fieldcompare/pkg/metrics"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

type validatorMetricsDecorator struct {
	base   validation.Validator
	client metrics.Client
}

func (d validatorMetricsDecorator) Describe() validation.Description {
	return validation.Describe(d.base)
}

func (d validatorMetricsDecorator) Validate(ctx context.Context, field validation.Field) (err error) {
	start := time.Now()

	defer func() {
		if d.client == nil {
			return
		}

		attrs := describeAttributes(validation.Describe(d.base))

		d.client.Observe(ctx, MetricValidationDuration, time.Since(start).Seconds(), attrs...)
		d.client.Inc(ctx, MetricValidations, 1, append(attrs, attribute.String("outcome", outcomeOf(err)))...)
	}()

	return d.base.Validate(ctx, field)
}
