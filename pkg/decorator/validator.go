package decorator

import (
	"go.opentelemetry.io/otel/attribute"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/architeacher/fieldcompare/pkg/logger"
	"github.com/architeacher/fieldcompare/pkg/metrics"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

const (
	MetricValidations        = "validations.total"
	MetricValidationDuration = "validations.duration"

	OutcomeValid      = "valid"
	OutcomeInvalid    = "invalid"
	OutcomeStructural = "structural"
)

// MetricDescriptors describes the instruments the metrics decorator records.
var MetricDescriptors = map[string]metrics.Descriptor{
	MetricValidations: {
		Description: "Number of field validations by rule and outcome",
		Unit:        "{validation}",
	},
	MetricValidationDuration: {
		Description: "Duration of field validations",
		Unit:        "s",
	},
}

// ApplyValidatorDecorators wraps v with logging, metrics and tracing. The
// wrapped validator still describes itself as v does.
func ApplyValidatorDecorators(
	v validation.Validator,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) validation.Validator {
	return validatorLoggingDecorator{
		base: validatorMetricsDecorator{
			base: validatorTracingDecorator{
				base:           v,
				tracerProvider: tracerProvider,
			},
			client: metricsClient,
		},
		logger: log,
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeValid
	case validation.IsStructural(err):
		return OutcomeStructural
	default:
		return OutcomeInvalid
	}
}

func describeAttributes(d validation.Description) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("rule", d.Rule)}

	if d.DataType != "" {
		attrs = append(attrs, attribute.String("data_type", d.DataType.String()))
	}

	if d.Operator != "" {
		attrs = append(attrs, attribute.String("operator", d.Operator.String()))
	}

	return attrs
}
