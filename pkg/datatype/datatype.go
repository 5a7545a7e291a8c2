// Package datatype defines the closed set of logical data types a field
// comparison can be declared with and the mapping between those types and
// their native Go representations.
package datatype

import (
	"errors"
	"fmt"
	"strings"
)

// DataType is a logical data type independent of the host representation.
// Its string form is the name handed to client-side rules.
type DataType string

const (
	String   DataType = "String"
	Integer  DataType = "Integer"
	Double   DataType = "Double"
	Currency DataType = "Currency"
	Date     DataType = "Date"
)

var ErrUnknownDataType = errors.New("unknown data type")

func (d DataType) String() string {
	return string(d)
}

func (d DataType) IsValid() bool {
	switch d {
	case String, Integer, Double, Currency, Date:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of the type are ordered by magnitude.
func (d DataType) IsNumeric() bool {
	return d == Integer || d == Double || d == Currency
}

// Parse resolves a data type by name, ignoring case and surrounding spaces.
func Parse(s string) (DataType, error) {
	name := strings.TrimSpace(s)

	for _, d := range All() {
		if strings.EqualFold(name, string(d)) {
			return d, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDataType, s)
}

func All() []DataType {
	return []DataType{String, Integer, Double, Currency, Date}
}
