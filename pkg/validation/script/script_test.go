package script_test

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
	"github.com/architeacher/fieldcompare/pkg/validation/conformance"
	"github.com/architeacher/fieldcompare/pkg/validation/script"
)

func TestPolicy_Conformance(t *testing.T) {
	t.Parallel()

	conformance.Run(t, script.New())
}

func TestToScript(t *testing.T) {
	t.Parallel()

	now := time.Now()

	var nilDecimal *apd.Decimal

	cases := []struct {
		name     string
		value    any
		expected any
	}{
		{name: "nil", value: nil, expected: nil},
		{name: "typed nil decimal", value: nilDecimal, expected: nil},
		{name: "string", value: "x", expected: "x"},
		{name: "integer", value: int32(-3), expected: -3.0},
		{name: "double", value: 2.5, expected: 2.5},
		{name: "decimal", value: apd.New(125, -2), expected: 1.25},
		{name: "decimal value", value: *apd.New(5, 0), expected: 5.0},
		{name: "date", value: now, expected: now},
		{name: "unsupported", value: int64(1), expected: int64(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, script.ToScript(tc.value))
		})
	}
}

func TestPolicy_TypedOperandsKeepTheirType(t *testing.T) {
	t.Parallel()

	p := script.New()

	precise, _, err := apd.NewFromString("0.1000000000000000000001")
	require.NoError(t, err)

	cases := []struct {
		name     string
		verdict  validation.Verdict
		expected validation.Verdict
	}{
		{
			name:     "integer against double",
			verdict:  p.Compare(int32(1), 1.0, datatype.Integer, operator.NotEqual),
			expected: validation.Exempt(),
		},
		{
			name:     "double against integer",
			verdict:  p.Compare(1.0, int32(1), datatype.Double, operator.NotEqual),
			expected: validation.Exempt(),
		},
		{
			name:     "decimal against double",
			verdict:  p.Compare(apd.New(1, 0), 1.0, datatype.Currency, operator.NotEqual),
			expected: validation.Exempt(),
		},
		{
			name:     "decimals beyond double precision",
			verdict:  p.Compare(precise, apd.New(1, -1), datatype.Currency, operator.GreaterThan),
			expected: validation.Pass(),
		},
		{
			name:     "decimal against literal beyond double precision",
			verdict:  p.Compare(precise, "0.1", datatype.Currency, operator.NotEqual),
			expected: validation.Pass(),
		},
		{
			name:     "integral double is not an integer",
			verdict:  p.IsOfType(1.0, datatype.Integer),
			expected: validation.Fail(validation.CodeInvalidType),
		},
		{
			name:     "integral double is not currency",
			verdict:  p.IsOfType(1.0, datatype.Currency),
			expected: validation.Fail(validation.CodeInvalidType),
		},
		{
			name:     "NaN cannot be judged",
			verdict:  p.Compare(math.NaN(), 1.0, datatype.Double, operator.Equal),
			expected: validation.Exempt(),
		},
		{
			name:     "type check of infinite decimal",
			verdict:  p.IsOfType(&apd.Decimal{Form: apd.Infinite}, datatype.Currency),
			expected: validation.Fail(validation.CodeInvalidType),
		},
		{
			name:     "type check of date after year 9999",
			verdict:  p.IsOfType(time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), datatype.Date),
			expected: validation.Fail(validation.CodeInvalidType),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, tc.verdict)
		})
	}
}

func TestPolicy_CurrencyBound(t *testing.T) {
	t.Parallel()

	p := script.New()

	bound, _, err := apd.NewFromString(datatype.CurrencyBound)
	require.NoError(t, err)

	require.True(t, p.IsOfType(bound, datatype.Currency).Valid())
	require.True(t, p.IsOfType(datatype.CurrencyBound, datatype.Currency).Valid())
	require.False(t, p.IsOfType(1e30, datatype.Currency).Valid())
	require.Equal(t, validation.Fail(validation.CodeParseFailure), p.IsOfType("1e3", datatype.Currency))
}

func TestPolicy_Codes(t *testing.T) {
	t.Parallel()

	p := script.New()

	require.Equal(t, validation.Fail(validation.CodeUnknownType), p.Compare(struct{}{}, "1", datatype.Double, operator.Equal))
	require.Equal(t, validation.Fail(validation.CodeTypeMismatch), p.Compare(time.Now(), "x", datatype.String, operator.Equal))
	require.Equal(t, validation.Fail(validation.CodeParseFailure), p.Compare("x", 1.0, datatype.Double, operator.Equal))
	require.Equal(t, validation.Fail(validation.CodeRelationalMismatch), p.Compare("1", "2", datatype.Double, operator.Equal))
	require.Equal(t, validation.Exempt(), p.Compare("1", time.Now(), datatype.Double, operator.Equal))
	require.Equal(t, validation.Fail(validation.CodeInvalidType), p.IsOfType(time.Now(), datatype.Double))
	require.Equal(t, validation.Pass(), p.IsOfType("2024-01-01", datatype.Date))
}
