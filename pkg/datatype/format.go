package datatype

import (
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Format renders a native value as the literal a form field would carry, so
// that parsing the result under the value's own data type yields an equal
// value. It returns false for values Classify does not accept and for
// non-finite decimals.
func Format(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case *apd.Decimal:
		if v == nil || v.Form != apd.Finite {
			return "", false
		}

		return v.Text('f'), true
	case apd.Decimal:
		return Format(&v)
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}
