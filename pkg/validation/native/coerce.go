// Package native evaluates comparisons on typed Go values: string, int32,
// float64, *apd.Decimal and time.Time. Strings are parsed into the declared
// type before comparison.
package native

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

type Kind uint8

const (
	// Coerced means Result.Value holds the declared type's native representation.
	Coerced Kind = iota
	// Blank means the value was nil or a blank string.
	Blank
	// Incomparable means the value is natively of another logical type.
	Incomparable
	// Unknown means the value's type is none of the supported ones.
	Unknown
	// Failed means the value cannot represent the declared type.
	Failed
	// OutOfRange means the value is natively of the declared type but outside
	// its acceptance bounds.
	OutOfRange
)

type Result struct {
	Kind  Kind
	Value any
	Code  validation.ErrorCode
}

var (
	doubleGrammar   = regexp.MustCompile(datatype.DoublePattern)
	currencyGrammar = regexp.MustCompile(datatype.CurrencyPattern)
)

// Coerce turns value into the native representation of dt.
func Coerce(value any, dt datatype.DataType) Result {
	if datatype.IsNil(value) {
		return Result{Kind: Blank}
	}

	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return Result{Kind: Blank}
	}

	if dt == datatype.String {
		if _, ok := value.(string); !ok {
			return Result{Kind: Failed, Code: validation.CodeTypeMismatch}
		}

		return Result{Kind: Coerced, Value: value}
	}

	if s, ok := value.(string); ok {
		parsed, ok := Parse(s, dt)
		if !ok {
			return Result{Kind: Failed, Code: validation.CodeParseFailure}
		}

		return Result{Kind: Coerced, Value: parsed}
	}

	vt, ok := datatype.Classify(value)
	if !ok {
		return Result{Kind: Unknown, Code: validation.CodeUnknownType}
	}

	if vt != dt {
		return Result{Kind: Incomparable}
	}

	if !datatype.InRange(value) {
		return Result{Kind: OutOfRange}
	}

	if d, ok := value.(apd.Decimal); ok {
		return Result{Kind: Coerced, Value: &d}
	}

	return Result{Kind: Coerced, Value: value}
}

// Parse parses a literal as dt. Surrounding whitespace is ignored. The result
// is the native representation of dt.
func Parse(s string, dt datatype.DataType) (any, bool) {
	s = strings.TrimSpace(s)

	switch dt {
	case datatype.String:
		return s, true
	case datatype.Integer:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, false
		}

		return int32(n), true
	case datatype.Double:
		if !doubleGrammar.MatchString(s) {
			return nil, false
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, false
		}

		return f, true
	case datatype.Currency:
		if !currencyGrammar.MatchString(s) {
			return nil, false
		}

		d, _, err := apd.NewFromString(s)
		if err != nil || !datatype.WithinCurrencyBound(d) {
			return nil, false
		}

		return d, true
	case datatype.Date:
		return ParseDate(s)
	default:
		return nil, false
	}
}

// ParseDate parses s with the first matching date layout. Layouts without a
// zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range datatype.DateLayouts() {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		if !datatype.InDateRange(t) {
			return time.Time{}, false
		}

		return t, true
	}

	return time.Time{}, false
}
