// Package script evaluates comparisons the way a browser form does: a string
// is recognised as a date or a number by its format, and typed values keep
// the logical type of the Go value they were bound from. Numbers compare as
// script numbers, decimals compare exactly.
package script

import (
	"time"

	"github.com/cockroachdb/apd/v3"
)

// ToScript converts a typed Go value into the value a script engine would
// see: integers, doubles and decimals become float64 numbers, dates stay
// time.Time, strings are unchanged. Unsupported values pass through as is.
func ToScript(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string, float64, time.Time:
		return v
	case int32:
		return float64(v)
	case *apd.Decimal:
		if v == nil {
			return nil
		}

		return decimalToNumber(v)
	case apd.Decimal:
		return decimalToNumber(&v)
	default:
		return v
	}
}

func decimalToNumber(d *apd.Decimal) any {
	f, err := d.Float64()
	if err != nil {
		return d
	}

	return f
}
