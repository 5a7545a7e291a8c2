// Package operator holds the relational operators a field comparison can be
// declared with and the predicates that decide them.
package operator

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

type Operator string

const (
	Equal            Operator = "Equal"
	NotEqual         Operator = "NotEqual"
	GreaterThan      Operator = "GreaterThan"
	GreaterThanEqual Operator = "GreaterThanEqual"
	LessThan         Operator = "LessThan"
	LessThanEqual    Operator = "LessThanEqual"
)

var ErrUnknownOperator = errors.New("unknown compare operator")

func (o Operator) String() string {
	return string(o)
}

func (o Operator) IsValid() bool {
	switch o {
	case Equal, NotEqual, GreaterThan, GreaterThanEqual, LessThan, LessThanEqual:
		return true
	default:
		return false
	}
}

// Parse resolves an operator by name, ignoring case and surrounding spaces.
func Parse(s string) (Operator, error) {
	name := strings.TrimSpace(s)

	for _, o := range All() {
		if strings.EqualFold(name, string(o)) {
			return o, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

func All() []Operator {
	return []Operator{Equal, NotEqual, GreaterThan, GreaterThanEqual, LessThan, LessThanEqual}
}

// Holds reports whether an ordering result satisfies the operator, where
// c < 0, c == 0 and c > 0 mean the left operand is less than, equal to or
// greater than the right one. Unknown operators never hold.
func Holds(o Operator, c int) bool {
	switch o {
	case Equal:
		return c == 0
	case NotEqual:
		return c != 0
	case GreaterThan:
		return c > 0
	case GreaterThanEqual:
		return c >= 0
	case LessThan:
		return c < 0
	case LessThanEqual:
		return c <= 0
	default:
		return false
	}
}

// Apply decides the operator for two ordered values.
func Apply[T cmp.Ordered](o Operator, a, b T) bool {
	return Holds(o, cmp.Compare(a, b))
}
