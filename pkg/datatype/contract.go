package datatype

import (
	"math"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Acceptance bounds shared by every evaluator. A literal outside these bounds
// is rejected by all of them.
const (
	MinInteger = math.MinInt32
	MaxInteger = math.MaxInt32

	// MaxDouble is the largest finite magnitude accepted for Double.
	MaxDouble = math.MaxFloat64

	// CurrencyBound is the largest magnitude accepted for Currency, the range
	// of a 96-bit scaled decimal.
	CurrencyBound = "79228162514264337593543950335"
)

// Literal grammar for numeric strings. Surrounding whitespace is trimmed
// before matching; grouping separators and locale-specific decimal marks are
// not accepted.
const (
	IntegerPattern  = `^[+-]?[0-9]+$`
	DoublePattern   = `^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`
	CurrencyPattern = `^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`
)

var (
	currencyBound, _, _ = apd.NewFromString(CurrencyBound)

	MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999900, time.UTC)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// DateLayouts returns the layouts a date literal may use, most specific first.
// Layouts without a zone are interpreted as UTC.
func DateLayouts() []string {
	layouts := make([]string, len(dateLayouts))
	copy(layouts, dateLayouts)

	return layouts
}

// InDateRange reports whether t lies within [MinDate, MaxDate].
func InDateRange(t time.Time) bool {
	return !t.Before(MinDate) && !t.After(MaxDate)
}

// WithinCurrencyBound reports whether d is finite and its magnitude does not
// exceed CurrencyBound.
func WithinCurrencyBound(d *apd.Decimal) bool {
	if d == nil || d.Form != apd.Finite {
		return false
	}

	var abs apd.Decimal
	abs.Abs(d)

	return abs.Cmp(currencyBound) <= 0
}

// InRange reports whether a typed value lies within the acceptance bounds of
// its own data type. Doubles must be finite, decimals must satisfy
// WithinCurrencyBound and dates must satisfy InDateRange. Strings and int32
// are always in range; values Classify rejects never are.
func InRange(value any) bool {
	switch v := value.(type) {
	case string, int32:
		return true
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case *apd.Decimal:
		return WithinCurrencyBound(v)
	case apd.Decimal:
		return WithinCurrencyBound(&v)
	case time.Time:
		return InDateRange(v)
	default:
		return false
	}
}
