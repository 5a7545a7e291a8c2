package datatype

import (
	"reflect"
	"time"

	"github.com/cockroachdb/apd/v3"
)

var (
	typeOfString   = reflect.TypeFor[string]()
	typeOfInteger  = reflect.TypeFor[int32]()
	typeOfDouble   = reflect.TypeFor[float64]()
	typeOfCurrency = reflect.TypeFor[*apd.Decimal]()
	typeOfDate     = reflect.TypeFor[time.Time]()
	typeOfDecimal  = reflect.TypeFor[apd.Decimal]()

	nativeToLogical = map[reflect.Type]DataType{
		typeOfString:   String,
		typeOfInteger:  Integer,
		typeOfDouble:   Double,
		typeOfCurrency: Currency,
		typeOfDecimal:  Currency,
		typeOfDate:     Date,
	}

	logicalToNative = map[DataType]reflect.Type{
		String:   typeOfString,
		Integer:  typeOfInteger,
		Double:   typeOfDouble,
		Currency: typeOfCurrency,
		Date:     typeOfDate,
	}
)

// Classify maps a runtime value to its logical data type. The second result
// is false for nil and for any value whose type is not one of the five native
// representations.
func Classify(value any) (DataType, bool) {
	switch v := value.(type) {
	case string:
		return String, true
	case int32:
		return Integer, true
	case float64:
		return Double, true
	case *apd.Decimal:
		return Currency, v != nil
	case apd.Decimal:
		return Currency, true
	case time.Time:
		return Date, true
	default:
		return "", false
	}
}

// ClassifyType maps a native type to its logical data type.
func ClassifyType(t reflect.Type) (DataType, bool) {
	if t == nil {
		return "", false
	}

	d, ok := nativeToLogical[t]

	return d, ok
}

// RepresentationFor returns the canonical native type of a logical type, or
// nil when d is not a known data type.
func RepresentationFor(d DataType) reflect.Type {
	return logicalToNative[d]
}

// IsNil reports whether value carries no data, including typed nil decimals.
func IsNil(value any) bool {
	if value == nil {
		return true
	}

	d, ok := value.(*apd.Decimal)

	return ok && d == nil
}
