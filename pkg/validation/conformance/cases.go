// Package conformance holds the verdict table every validation.Policy must
// reproduce, and helpers that check a policy against it or two policies
// against each other.
package conformance

import (
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
)

const (
	DoubleBig   = math.MaxFloat64 / 2
	DoubleSmall = -math.MaxFloat64 / 2
)

type CompareCase struct {
	Name     string
	DataType datatype.DataType
	Operator operator.Operator
	Value    any
	Other    any
	Valid    bool
}

type TypeCase struct {
	Name     string
	DataType datatype.DataType
	Value    any
	Valid    bool
}

// Unsupported is a value of a type no policy accepts.
type Unsupported struct{}

func (Unsupported) String() string {
	return "unsupported"
}

func MaxCurrency() *apd.Decimal {
	d, _, _ := apd.NewFromString(datatype.CurrencyBound)

	return d
}

func MinCurrency() *apd.Decimal {
	d := MaxCurrency()

	return d.Neg(d)
}

func currency(coeff int64, exponent int32) *apd.Decimal {
	return apd.New(coeff, exponent)
}

// triple holds an other value, a value that satisfies the operator against it
// and a value that does not.
type triple struct {
	other, pass, fail any
}

func comparisonTable(now time.Time) map[operator.Operator][]triple {
	one := currency(10, -1)

	return map[operator.Operator][]triple{
		operator.Equal: {
			{int32(math.MinInt32), int32(math.MinInt32), int32(math.MaxInt32)},
			{MinCurrency(), MinCurrency(), MaxCurrency()},
			{DoubleSmall, DoubleSmall, DoubleBig},
			{datatype.MinDate, datatype.MinDate, datatype.MaxDate},
			{"test", "test", "not test"},
		},
		operator.NotEqual: {
			{int32(math.MinInt32), int32(math.MaxInt32), int32(math.MinInt32)},
			{MinCurrency(), MaxCurrency(), MinCurrency()},
			{DoubleSmall, DoubleBig, DoubleSmall},
			{datatype.MinDate, datatype.MaxDate, datatype.MinDate},
			{"test", "not test", "test"},
		},
		operator.GreaterThan: {
			{int32(math.MinInt32), int32(math.MaxInt32), int32(math.MinInt32)},
			{MinCurrency(), MaxCurrency(), MinCurrency()},
			{DoubleSmall, DoubleBig, DoubleSmall},
			{datatype.MinDate, datatype.MaxDate, datatype.MinDate},
			{"test", "west", "test"},
		},
		operator.GreaterThanEqual: {
			{int32(math.MinInt32 + 1), int32(math.MaxInt32), int32(math.MinInt32)},
			{int32(math.MaxInt32), int32(math.MaxInt32), int32(math.MinInt32)},
			{one, MaxCurrency(), MinCurrency()},
			{one, one, MinCurrency()},
			{1.0, DoubleBig, DoubleSmall},
			{1.0, 1.0, DoubleSmall},
			{now, datatype.MaxDate, datatype.MinDate},
			{now, now, datatype.MinDate},
			{"test", "west", "less than test"},
			{"test", "test", "less than test"},
		},
		operator.LessThan: {
			{int32(math.MaxInt32), int32(math.MinInt32), int32(math.MaxInt32)},
			{MaxCurrency(), MinCurrency(), MaxCurrency()},
			{DoubleBig, DoubleSmall, DoubleBig},
			{datatype.MaxDate, datatype.MinDate, datatype.MaxDate},
			{"west", "test", "west"},
		},
		operator.LessThanEqual: {
			{int32(math.MaxInt32 - 1), int32(math.MinInt32), int32(math.MaxInt32)},
			{int32(math.MinInt32), int32(math.MinInt32), int32(math.MaxInt32)},
			{one, MinCurrency(), MaxCurrency()},
			{one, one, MaxCurrency()},
			{1.0, DoubleSmall, DoubleBig},
			{1.0, 1.0, DoubleBig},
			{now, datatype.MinDate, datatype.MaxDate},
			{now, now, datatype.MaxDate},
			{"west", "test", "xyz"},
			{"test", "test", "xyz"},
		},
	}
}

// CompareCases returns the comparison verdict table. now stands in for the
// current time in rows that use it.
func CompareCases(now time.Time) []CompareCase {
	var cases []CompareCase

	add := func(dt datatype.DataType, op operator.Operator, value, other any, valid bool) {
		cases = append(cases, CompareCase{
			Name:     fmt.Sprintf("%s/%s/%s_vs_%s", dt, op, Describe(value), Describe(other)),
			DataType: dt,
			Operator: op,
			Value:    value,
			Other:    other,
			Valid:    valid,
		})
	}

	table := comparisonTable(now)

	for _, op := range operator.All() {
		for _, row := range table[op] {
			dt, _ := datatype.Classify(row.other)

			add(dt, op, row.pass, row.other, true)
			add(dt, op, row.fail, row.other, false)

			for _, blank := range []any{nil, "", " "} {
				add(dt, op, blank, row.other, true)
			}

			other, _ := datatype.Format(row.other)
			pass, _ := datatype.Format(row.pass)
			fail, _ := datatype.Format(row.fail)

			add(dt, op, pass, other, true)
			add(dt, op, fail, other, false)
		}
	}

	// A string rendering of a number is still a string.
	add(datatype.String, operator.Equal, "2147483647", "2147483647", true)
	add(datatype.String, operator.Equal, "not test", "2147483647", false)
	add(datatype.String, operator.Equal, int32(math.MaxInt32), "2147483647", false)
	add(datatype.String, operator.Equal, "2147483647", int32(math.MaxInt32), false)

	// Operands the declared type cannot judge are exempt in every order.
	incompatible := []struct {
		dt   datatype.DataType
		a, b any
	}{
		{datatype.Currency, now, currency(1, 0)},
		{datatype.Integer, now, int32(1)},
		{datatype.Double, now, 1.0},
		{datatype.Date, MinCurrency(), now},
		{datatype.Date, DoubleSmall, now},
		{datatype.Date, int32(math.MinInt32), now},
	}

	for _, ic := range incompatible {
		add(ic.dt, operator.Equal, ic.b, ic.a, true)
		add(ic.dt, operator.Equal, ic.a, ic.b, true)
		add(ic.dt, operator.Equal, ic.a, ic.a, true)
	}

	// Missing operands.
	add(datatype.Integer, operator.Equal, nil, nil, true)
	add(datatype.Integer, operator.Equal, int32(1), nil, true)
	add(datatype.Integer, operator.Equal, nil, int32(1), true)
	add(datatype.Integer, operator.Equal, now, int32(1), true)
	add(datatype.Currency, operator.Equal, now, int32(1), true)
	add(datatype.Double, operator.Equal, now, int32(1), true)

	for _, dt := range datatype.All() {
		for _, op := range operator.All() {
			add(dt, op, nil, "anything", true)
			add(dt, op, "", "anything", true)
		}
	}

	// Unsupported values fail as the value and cannot be judged as the other.
	unsupported := []struct {
		dt           datatype.DataType
		valid, wrong any
	}{
		{datatype.Currency, currency(1, 0), Unsupported{}},
		{datatype.Date, now, 1.1},
		{datatype.Double, 1.0, Unsupported{}},
		{datatype.Integer, int32(1), 1.1},
	}

	for _, u := range unsupported {
		_, known := datatype.Classify(u.wrong)

		add(u.dt, operator.Equal, u.wrong, u.valid, known)
		add(u.dt, operator.Equal, u.valid, u.wrong, true)
		add(u.dt, operator.Equal, u.wrong, u.wrong, known)
	}

	// Literal grammar and bounds.
	add(datatype.Integer, operator.Equal, " 5 ", "5", true)
	add(datatype.Integer, operator.Equal, "+5", "5", true)
	add(datatype.Integer, operator.Equal, "abc", "1", false)
	add(datatype.Integer, operator.Equal, "1", "abc", false)
	add(datatype.Integer, operator.Equal, "1.5", "1", false)
	add(datatype.Integer, operator.Equal, "2147483648", "1", false)
	add(datatype.Integer, operator.Equal, "5", "  ", true)
	add(datatype.Double, operator.Equal, "1,5", "1", false)
	add(datatype.Double, operator.Equal, "1e400", "1", false)
	add(datatype.Double, operator.LessThan, ".5", "1e1", true)
	add(datatype.Double, operator.Equal, "NaN", "1", false)
	add(datatype.Currency, operator.Equal, "1e5", "1", false)
	add(datatype.Currency, operator.Equal, "1.00", "1", true)
	add(datatype.Currency, operator.Equal, "79228162514264337593543950336", "1", false)
	add(datatype.Currency, operator.LessThan, "0.1", "0.10000000000000001", true)
	add(datatype.Date, operator.Equal, "not a date", "2024-01-01", false)
	add(datatype.Date, operator.Equal, "2024-01-01", "2024-01-01T00:00:00Z", true)
	add(datatype.Date, operator.LessThan, "01/02/2024", "2024-01-03", true)
	add(datatype.String, operator.LessThan, "a ", "b", true)
	add(datatype.String, operator.Equal, "a ", "a", false)

	// Typed numbers keep the type of their Go value, whatever their magnitude.
	add(datatype.Integer, operator.NotEqual, int32(1), 1.0, true)
	add(datatype.Integer, operator.NotEqual, 1.0, int32(1), true)
	add(datatype.Double, operator.NotEqual, 1.0, int32(1), true)
	add(datatype.Currency, operator.NotEqual, currency(1, 0), 1.0, true)
	add(datatype.Currency, operator.NotEqual, 1.0, currency(1, 0), true)
	add(datatype.Currency, operator.GreaterThan, precise(), currency(1, -1), true)
	add(datatype.Currency, operator.Equal, precise(), "0.1", false)

	// Typed values outside their bounds cannot be judged.
	add(datatype.Double, operator.Equal, math.NaN(), 1.0, true)
	add(datatype.Double, operator.Equal, 1.0, math.Inf(1), true)
	add(datatype.Currency, operator.Equal, &apd.Decimal{Form: apd.Infinite}, currency(1, 0), true)
	add(datatype.Date, operator.Equal, time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), now, true)

	return cases
}

// TypeCases returns the type-check verdict table.
func TypeCases(now time.Time) []TypeCase {
	var cases []TypeCase

	add := func(dt datatype.DataType, value any, valid bool) {
		cases = append(cases, TypeCase{
			Name:     fmt.Sprintf("%s/%s", dt, Describe(value)),
			DataType: dt,
			Value:    value,
			Valid:    valid,
		})
	}

	checks := []struct {
		valid bool
		dt    datatype.DataType
		value any
	}{
		{true, datatype.Date, now},
		{false, datatype.Date, MaxCurrency()},
		{true, datatype.Currency, MaxCurrency()},
		{false, datatype.Currency, now},
		{true, datatype.Double, DoubleBig},
		{false, datatype.Double, now},
		{true, datatype.Integer, int32(math.MaxInt32)},
		{false, datatype.Integer, now},
		{false, datatype.String, math.MaxFloat64},
		{false, datatype.String, datatype.MaxDate},
		{false, datatype.String, MaxCurrency()},
		{false, datatype.String, int32(math.MaxInt32)},
	}

	for _, c := range checks {
		add(c.dt, c.value, c.valid)

		if c.dt != datatype.String {
			s, _ := datatype.Format(c.value)
			add(c.dt, s, c.valid)
		}
	}

	for _, dt := range datatype.All() {
		add(dt, nil, true)
		add(dt, "", true)
		add(dt, "   ", true)
		add(dt, Unsupported{}, false)
	}

	add(datatype.Date, 1.1, false)
	add(datatype.Integer, 1.1, false)
	add(datatype.Integer, "12x", false)
	add(datatype.Integer, "-2147483649", false)
	add(datatype.Double, "1.7976931348623157e309", false)
	add(datatype.Currency, "-79228162514264337593543950335", true)
	add(datatype.Currency, "-79228162514264337593543950336", false)
	add(datatype.Date, "10000-01-01", false)
	add(datatype.Date, "2024-02-30", false)
	add(datatype.String, "anything", true)

	add(datatype.Integer, 1.0, false)
	add(datatype.Currency, 1.0, false)
	add(datatype.Double, int32(1), false)
	add(datatype.Double, math.NaN(), false)
	add(datatype.Double, math.Inf(1), false)
	add(datatype.Double, math.Inf(-1), false)
	add(datatype.Currency, &apd.Decimal{Form: apd.Infinite}, false)
	add(datatype.Currency, currency(1, 29), false)
	add(datatype.Date, time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC), false)

	return cases
}

// Describe renders a value for case names.
func Describe(value any) string {
	if value == nil {
		return "nil"
	}

	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	if s, ok := datatype.Format(value); ok {
		return fmt.Sprintf("%T(%s)", value, s)
	}

	if d, ok := value.(*apd.Decimal); ok && d != nil {
		return fmt.Sprintf("%T(%s)", value, d.String())
	}

	return fmt.Sprintf("%T", value)
}
