package binding_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/fieldcompare/pkg/binding"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

type Audit struct {
	CreatedAt time.Time `display:"Created"`
}

type Booking struct {
	Audit

	Start    time.Time `form:"start_date" display:"Start date"`
	End      time.Time `form:"end_date,omitempty"`
	Guests   *int32    `display:"Number of guests"`
	Price    *apd.Decimal
	Deposit  apd.Decimal
	Notes    any
	internal string
}

func TestStructLookup_Resolve(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	guests := int32(3)
	price := apd.New(1999, -2)

	booking := &Booking{
		Audit:    Audit{CreatedAt: start},
		Start:    start,
		Guests:   &guests,
		Price:    price,
		Deposit:  *apd.New(5, 0),
		internal: "hidden",
	}

	lookup := binding.NewStructLookup()

	cases := []struct {
		name     string
		model    any
		property string
		expected any
		notFound bool
	}{
		{name: "by Go name", model: booking, property: "Start", expected: start},
		{name: "by alias", model: booking, property: "start_date", expected: start},
		{name: "alias with options", model: booking, property: "end_date", expected: time.Time{}},
		{name: "by value", model: *booking, property: "Start", expected: start},
		{name: "promoted field", model: booking, property: "CreatedAt", expected: start},
		{name: "optional field is dereferenced", model: booking, property: "Guests", expected: int32(3)},
		{name: "nil optional field", model: &Booking{}, property: "Guests", expected: nil},
		{name: "decimal pointer kept", model: booking, property: "Price", expected: price},
		{name: "decimal value", model: booking, property: "Deposit", expected: *apd.New(5, 0)},
		{name: "nil interface", model: booking, property: "Notes", expected: nil},
		{name: "unexported field", model: booking, property: "internal", notFound: true},
		{name: "missing", model: booking, property: "Missing", notFound: true},
		{name: "nil model", model: (*Booking)(nil), property: "Start", notFound: true},
		{name: "not a struct", model: 42, property: "Start", notFound: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := lookup.Resolve(tc.model, tc.property)

			if tc.notFound {
				require.ErrorIs(t, err, validation.ErrPropertyNotFound)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestStructLookup_Titles(t *testing.T) {
	t.Parallel()

	lookup := binding.NewStructLookup()

	display, ok := lookup.DisplayName(Booking{}, "start_date")
	require.True(t, ok)
	require.Equal(t, "Start date", display)

	_, ok = lookup.DisplayName(Booking{}, "End")
	require.False(t, ok)

	require.Equal(t, "Number of guests", lookup.Title(&Booking{}, "Guests"))
	require.Equal(t, "End", lookup.Title(&Booking{}, "End"))
	require.Equal(t, "Created", lookup.Title(&Booking{}, "CreatedAt"))

	require.Equal(t,
		[]string{"CreatedAt", "Start", "End", "Guests", "Price", "Deposit", "Notes"},
		lookup.Properties(Booking{}),
	)
}

func TestValuesLookup(t *testing.T) {
	t.Parallel()

	lookup := binding.NewValuesLookup()

	cases := []struct {
		name     string
		model    any
		expected any
		notFound bool
	}{
		{name: "any map", model: map[string]any{"a": int32(1)}, expected: int32(1)},
		{name: "string map", model: map[string]string{"a": "1"}, expected: "1"},
		{name: "url values", model: url.Values{"a": {"x", "y"}}, expected: "x"},
		{name: "empty url values", model: url.Values{"a": {}}, expected: nil},
		{name: "missing key", model: map[string]any{}, notFound: true},
		{name: "unsupported model", model: []string{"a"}, notFound: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := lookup.Resolve(tc.model, "a")

			if tc.notFound {
				require.ErrorIs(t, err, validation.ErrPropertyNotFound)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestLookup_Dispatches(t *testing.T) {
	t.Parallel()

	lookup := binding.New()

	v, err := lookup.Resolve(map[string]any{"Start": "2024-01-01"}, "Start")
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", v)

	v, err = lookup.Resolve(&Booking{Notes: "n"}, "Notes")
	require.NoError(t, err)
	require.Equal(t, "n", v)

	require.Equal(t, "Start", lookup.Title(map[string]any{}, "Start"))
	require.Equal(t, "Start date", lookup.Title(Booking{}, "Start"))
}
