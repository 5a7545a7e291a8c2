package conformance

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

// Mismatch is a case where a policy's verdict differs from the expected one,
// or where two policies disagree.
type Mismatch struct {
	Name     string
	Expected bool
	Got      bool
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected valid=%t, got valid=%t", m.Name, m.Expected, m.Got)
}

// Check evaluates every case against policy and returns the mismatches.
func Check(policy validation.Policy, now time.Time) []Mismatch {
	var mismatches []Mismatch

	for _, c := range CompareCases(now) {
		got := policy.Compare(c.Value, c.Other, c.DataType, c.Operator).Valid()
		if got != c.Valid {
			mismatches = append(mismatches, Mismatch{Name: "compare/" + c.Name, Expected: c.Valid, Got: got})
		}
	}

	for _, c := range TypeCases(now) {
		got := policy.IsOfType(c.Value, c.DataType).Valid()
		if got != c.Valid {
			mismatches = append(mismatches, Mismatch{Name: "typecheck/" + c.Name, Expected: c.Valid, Got: got})
		}
	}

	return mismatches
}

// Run asserts that policy reproduces every case.
func Run(t *testing.T, policy validation.Policy) {
	t.Helper()

	now := time.Now()

	for _, c := range CompareCases(now) {
		t.Run("compare/"+c.Name, func(t *testing.T) {
			t.Parallel()

			verdict := policy.Compare(c.Value, c.Other, c.DataType, c.Operator)
			require.Equal(t, c.Valid, verdict.Valid(), "verdict %s code %q", verdict.Outcome, verdict.Code)
		})
	}

	for _, c := range TypeCases(now) {
		t.Run("typecheck/"+c.Name, func(t *testing.T) {
			t.Parallel()

			verdict := policy.IsOfType(c.Value, c.DataType)
			require.Equal(t, c.Valid, verdict.Valid(), "verdict %s code %q", verdict.Outcome, verdict.Code)
		})
	}
}

// Disagreements evaluates the verdict table and a grid of boundary inputs
// against both policies and returns every input where their verdicts differ.
// Expected holds the verdict of a, Got the verdict of b.
func Disagreements(a, b validation.Policy, now time.Time) []Mismatch {
	var mismatches []Mismatch

	compare := func(name string, value, other any, dt datatype.DataType, op operator.Operator) {
		va := a.Compare(value, other, dt, op).Valid()
		vb := b.Compare(value, other, dt, op).Valid()

		if va != vb {
			mismatches = append(mismatches, Mismatch{Name: "compare/" + name, Expected: va, Got: vb})
		}
	}

	isOfType := func(name string, value any, dt datatype.DataType) {
		va := a.IsOfType(value, dt).Valid()
		vb := b.IsOfType(value, dt).Valid()

		if va != vb {
			mismatches = append(mismatches, Mismatch{Name: "typecheck/" + name, Expected: va, Got: vb})
		}
	}

	for _, c := range CompareCases(now) {
		compare(c.Name, c.Value, c.Other, c.DataType, c.Operator)
	}

	for _, c := range TypeCases(now) {
		isOfType(c.Name, c.Value, c.DataType)
	}

	for _, dt := range datatype.All() {
		inputs := gridFor(dt, now)

		for _, value := range inputs {
			isOfType(fmt.Sprintf("%s/%s", dt, Describe(value)), value, dt)

			for _, other := range inputs {
				for _, op := range operator.All() {
					compare(fmt.Sprintf("%s/%s/%s_vs_%s", dt, op, Describe(value), Describe(other)), value, other, dt, op)
				}
			}
		}
	}

	return mismatches
}

// gridFor returns boundary values of dt in native and literal form, typed
// values of the other numeric types, values of dt outside its bounds, the
// blank values, a malformed literal and a value of an unrelated type.
func gridFor(dt datatype.DataType, now time.Time) []any {
	var natives, extras []any

	foreign := any(now)
	numerics := []any{int32(1), 1.0, currency(1, 0)}

	switch dt {
	case datatype.String:
		natives = []any{"test", "west", "Test", "a ", "a"}
		extras = numerics
		foreign = int32(1)
	case datatype.Integer:
		natives = []any{int32(datatype.MinInteger), int32(-1), int32(0), int32(1), int32(datatype.MaxInteger)}
		extras = numerics
	case datatype.Double:
		natives = []any{DoubleSmall, -0.5, 0.0, 1e-300, DoubleBig}
		extras = append(numerics, math.NaN(), math.Inf(1), math.Inf(-1))
	case datatype.Currency:
		natives = []any{MinCurrency(), currency(-1, -2), currency(0, 0), currency(10, -1), currency(1, -1), precise(), MaxCurrency()}
		extras = append(numerics, &apd.Decimal{Form: apd.Infinite}, currency(1, 29))
	case datatype.Date:
		natives = []any{datatype.MinDate, now, datatype.MaxDate}
		extras = []any{time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), 1.0, currency(1, 0)}
		foreign = int32(1)
	}

	inputs := make([]any, 0, 2*len(natives)+len(extras)+5)
	inputs = append(inputs, natives...)

	for _, n := range natives {
		s, _ := datatype.Format(n)
		inputs = append(inputs, s)
	}

	inputs = append(inputs, extras...)

	return append(inputs, nil, "", "  ", "garbage", foreign)
}

// precise differs from 0.1 only beyond the precision of a float64.
func precise() *apd.Decimal {
	d, _, _ := apd.NewFromString("0.1000000000000000000001")

	return d
}
