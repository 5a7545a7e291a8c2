package datatype_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/fieldcompare/pkg/datatype"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		input       string
		expected    datatype.DataType
		expectError bool
	}{
		{name: "exact name", input: "Currency", expected: datatype.Currency},
		{name: "lower case", input: "integer", expected: datatype.Integer},
		{name: "surrounding spaces", input: "  Date ", expected: datatype.Date},
		{name: "unknown", input: "Boolean", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := datatype.Parse(tc.input)

			if tc.expectError {
				require.ErrorIs(t, err, datatype.ErrUnknownDataType)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, d)
		})
	}
}

func TestAll_AreValid(t *testing.T) {
	t.Parallel()

	require.Len(t, datatype.All(), 5)

	for _, d := range datatype.All() {
		require.True(t, d.IsValid(), d.String())
	}

	require.False(t, datatype.DataType("Boolean").IsValid())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	var nilDecimal *apd.Decimal

	cases := []struct {
		name     string
		value    any
		expected datatype.DataType
		known    bool
	}{
		{name: "string", value: "test", expected: datatype.String, known: true},
		{name: "int32", value: int32(1), expected: datatype.Integer, known: true},
		{name: "float64", value: 1.5, expected: datatype.Double, known: true},
		{name: "decimal pointer", value: apd.New(1, 0), expected: datatype.Currency, known: true},
		{name: "time", value: time.Now(), expected: datatype.Date, known: true},
		{name: "nil", value: nil},
		{name: "typed nil decimal", value: nilDecimal, expected: datatype.Currency},
		{name: "int is not Integer", value: 1},
		{name: "float32 is not Double", value: float32(1)},
		{name: "struct", value: struct{}{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, ok := datatype.Classify(tc.value)

			require.Equal(t, tc.known, ok)

			if tc.known {
				require.Equal(t, tc.expected, d)
			}
		})
	}
}

func TestRepresentationFor_IsInverseOfClassifyType(t *testing.T) {
	t.Parallel()

	for _, d := range datatype.All() {
		native := datatype.RepresentationFor(d)
		require.NotNil(t, native, d.String())

		back, ok := datatype.ClassifyType(native)
		require.True(t, ok)
		require.Equal(t, d, back)
	}

	_, ok := datatype.ClassifyType(reflect.TypeFor[int64]())
	require.False(t, ok)

	_, ok = datatype.ClassifyType(nil)
	require.False(t, ok)

	require.Nil(t, datatype.RepresentationFor("Boolean"))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	maxCurrency, _, err := apd.NewFromString(datatype.CurrencyBound)
	require.NoError(t, err)

	cases := []struct {
		name     string
		value    any
		expected string
		ok       bool
	}{
		{name: "string", value: "abc", expected: "abc", ok: true},
		{name: "min integer", value: int32(datatype.MinInteger), expected: "-2147483648", ok: true},
		{name: "double", value: 1.5, expected: "1.5", ok: true},
		{name: "small currency stays plain", value: apd.New(1, -7), expected: "0.0000001", ok: true},
		{name: "max currency", value: maxCurrency, expected: datatype.CurrencyBound, ok: true},
		{
			name:     "date",
			value:    time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC),
			expected: "2024-03-01T10:30:00Z",
			ok:       true,
		},
		{name: "unsupported", value: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, ok := datatype.Format(tc.value)

			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.expected, s)
		})
	}
}

func TestDateLayouts_ReturnsCopy(t *testing.T) {
	t.Parallel()

	layouts := datatype.DateLayouts()
	layouts[0] = "mutated"

	require.Equal(t, time.RFC3339Nano, datatype.DateLayouts()[0])
}

func TestInDateRange(t *testing.T) {
	t.Parallel()

	require.True(t, datatype.InDateRange(datatype.MinDate))
	require.True(t, datatype.InDateRange(datatype.MaxDate))
	require.False(t, datatype.InDateRange(datatype.MaxDate.Add(time.Microsecond)))
}

func TestInRange(t *testing.T) {
	t.Parallel()

	bound, _, err := apd.NewFromString(datatype.CurrencyBound)
	require.NoError(t, err)

	beyond, _, err := apd.NewFromString("79228162514264337593543950336")
	require.NoError(t, err)

	var nilDecimal *apd.Decimal

	cases := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "string", value: "anything", expected: true},
		{name: "integer", value: int32(math.MinInt32), expected: true},
		{name: "largest double", value: math.MaxFloat64, expected: true},
		{name: "NaN", value: math.NaN(), expected: false},
		{name: "positive infinity", value: math.Inf(1), expected: false},
		{name: "negative infinity", value: math.Inf(-1), expected: false},
		{name: "currency bound", value: bound, expected: true},
		{name: "beyond currency bound", value: beyond, expected: false},
		{name: "infinite decimal", value: &apd.Decimal{Form: apd.Infinite}, expected: false},
		{name: "NaN decimal value", value: apd.Decimal{Form: apd.NaN}, expected: false},
		{name: "nil decimal", value: nilDecimal, expected: false},
		{name: "last date", value: datatype.MaxDate, expected: true},
		{name: "year 10000", value: time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), expected: false},
		{name: "unsupported", value: int64(1), expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, datatype.InRange(tc.value))
		})
	}
}
