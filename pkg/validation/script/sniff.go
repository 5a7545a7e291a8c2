package script

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/architeacher/fieldcompare/pkg/datatype"
)

var (
	integerFormat  = regexp.MustCompile(datatype.IntegerPattern)
	doubleFormat   = regexp.MustCompile(datatype.DoublePattern)
	currencyFormat = regexp.MustCompile(datatype.CurrencyPattern)
)

// typed reports whether a non-string value was bound from the native type of
// dt and lies within its bounds.
func typed(value any, dt datatype.DataType) bool {
	vt, ok := datatype.Classify(value)

	return ok && vt == dt && datatype.InRange(value)
}

// recognises reports whether the literal s has the format of dt.
func recognises(s string, dt datatype.DataType) bool {
	switch dt {
	case datatype.String:
		return true
	case datatype.Integer:
		return isInteger(s)
	case datatype.Double:
		_, ok := parseNumber(s)

		return ok
	case datatype.Currency:
		_, ok := parseDecimal(s)

		return ok
	case datatype.Date:
		_, ok := parseDate(s)

		return ok
	default:
		return false
	}
}

func isInteger(s string) bool {
	s = strings.TrimSpace(s)
	if !integerFormat.MatchString(s) {
		return false
	}

	n, err := strconv.ParseFloat(s, 64)

	return err == nil && n >= datatype.MinInteger && n <= datatype.MaxInteger
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !doubleFormat.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func parseDecimal(s string) (*apd.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !currencyFormat.MatchString(s) {
		return nil, false
	}

	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, false
	}

	return d, datatype.WithinCurrencyBound(d)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	for _, layout := range datatype.DateLayouts() {
		if t, err := time.Parse(layout, s); err == nil {
			return t, datatype.InDateRange(t)
		}
	}

	return time.Time{}, false
}

func toNumber(value any) float64 {
	if f, ok := ToScript(value).(float64); ok {
		return f
	}

	f, _ := parseNumber(value.(string))

	return f
}

func toDecimal(value any) *apd.Decimal {
	switch v := value.(type) {
	case *apd.Decimal:
		return v
	case apd.Decimal:
		return &v
	default:
		d, _ := parseDecimal(value.(string))

		return d
	}
}

func toDate(value any) time.Time {
	if t, ok := value.(time.Time); ok {
		return t
	}

	t, _ := parseDate(value.(string))

	return t
}
