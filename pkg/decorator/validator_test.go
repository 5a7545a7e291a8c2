package decorator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/decorator"
	"github.com/architeacher/fieldcompare/pkg/logger"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

type stubValidator struct {
	err   error
	calls int
}

func (v *stubValidator) Validate(context.Context, validation.Field) error {
	v.calls++

	return v.err
}

func (v *stubValidator) Describe() validation.Description {
	return validation.Description{
		Rule:     validation.RuleCompare,
		Other:    "Start",
		DataType: datatype.Date,
		Operator: operator.GreaterThan,
	}
}

type recordedMetric struct {
	key   string
	attrs []attribute.KeyValue
}

type mockMetricsClient struct {
	mu       sync.Mutex
	counters []recordedMetric
	observed []recordedMetric
}

func (m *mockMetricsClient) Inc(_ context.Context, key string, _ int64, attrs ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters = append(m.counters, recordedMetric{key: key, attrs: attrs})
}

func (m *mockMetricsClient) Observe(_ context.Context, key string, _ float64, attrs ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observed = append(m.observed, recordedMetric{key: key, attrs: attrs})
}

func attrValue(attrs []attribute.KeyValue, key string) string {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}

	return ""
}

func TestApplyValidatorDecorators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		err       error
		outcome   string
		level     string
		spanError bool
	}{
		{
			name:    "valid",
			outcome: decorator.OutcomeValid,
			level:   "debug",
		},
		{
			name:    "invalid",
			err:     &validation.FieldError{Field: "End", Code: validation.CodeRelationalMismatch, Message: "End must be greater than Start."},
			outcome: decorator.OutcomeInvalid,
			level:   "debug",
		},
		{
			name:      "structural",
			err:       &validation.FieldError{Field: "End", Code: validation.CodeUnknownProperty, Message: "Could not find a property named Start."},
			outcome:   decorator.OutcomeStructural,
			level:     "warn",
			spanError: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			base := &stubValidator{err: tc.err}
			client := &mockMetricsClient{}
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			v := decorator.ApplyValidatorDecorators(base, logger.NewBufferedTestLogger(&buf), client, provider)

			err := v.Validate(context.Background(), validation.Field{Name: "End"})

			require.Equal(t, tc.err, err)
			require.Equal(t, 1, base.calls)
			require.Equal(t, base.Describe(), validation.Describe(v))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			require.Equal(t, tc.level, entry["level"])
			require.Equal(t, "End", entry["field"])
			require.Equal(t, validation.RuleCompare, entry["rule"])

			require.Len(t, client.counters, 1)
			require.Equal(t, decorator.MetricValidations, client.counters[0].key)
			require.Equal(t, tc.outcome, attrValue(client.counters[0].attrs, "outcome"))
			require.Equal(t, "Date", attrValue(client.counters[0].attrs, "data_type"))
			require.Len(t, client.observed, 1)
			require.Equal(t, decorator.MetricValidationDuration, client.observed[0].key)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			require.True(t, strings.HasSuffix(spans[0].Name(), validation.RuleCompare))
			require.Equal(t, tc.spanError, spans[0].Status().Code == codes.Error)
		})
	}
}

func TestApplyValidatorDecorators_LogsCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := &stubValidator{err: &validation.FieldError{Code: validation.CodeParseFailure, Message: "bad"}}
	v := decorator.ApplyValidatorDecorators(base, logger.NewBufferedTestLogger(&buf), nil, noop.NewTracerProvider())

	require.Error(t, v.Validate(context.Background(), validation.Field{Name: "Amount"}))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, string(validation.CodeParseFailure), entry["code"])
	require.Equal(t, false, entry["valid"])
	require.Equal(t, "GreaterThan", entry["operator"])
}

func TestApplyValidatorDecorators_NilTelemetry(t *testing.T) {
	t.Parallel()

	base := &stubValidator{}
	v := decorator.ApplyValidatorDecorators(base, logger.NewTestLogger(), nil, nil)

	require.NoError(t, v.Validate(context.Background(), validation.Field{Name: "Any"}))
	require.Equal(t, 1, base.calls)
}
