package decorator

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

const tracerName = "github.com/architeacher/fieldcompare/pkg/decorator"

type validatorTracingDecorator struct {
	base           validation.Validator
	tracerProvider otelTrace.TracerProvider
}

func (d validatorTracingDecorator) Describe() validation.Description {
	return validation.Describe(d.base)
}

func (d validatorTracingDecorator) Validate(ctx context.Context, field validation.Field) error {
	if d.tracerProvider == nil {
		return d.base.Validate(ctx, field)
	}

	desc := validation.Describe(d.base)

	ctx, span := d.tracerProvider.Tracer(tracerName).Start(ctx, "validate "+desc.Rule,
		otelTrace.WithAttributes(append(describeAttributes(desc), attribute.String("field", field.Name))...),
	)
	defer span.End()

	err := d.base.Validate(ctx, field)

	span.SetAttributes(attribute.String("outcome", outcomeOf(err)))

	if validation.IsStructural(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}
