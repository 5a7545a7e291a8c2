package native

import (
	"cmp"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

// Policy is the validation.Policy for typed Go values.
type Policy struct{}

var _ validation.Policy = Policy{}

func New() Policy {
	return Policy{}
}

func (Policy) Compare(value, other any, dt datatype.DataType, op operator.Operator) validation.Verdict {
	if isBlank(value) {
		return validation.Exempt()
	}

	if _, ok := datatype.Classify(value); !ok {
		return validation.Fail(validation.CodeUnknownType)
	}

	if datatype.IsNil(other) {
		return validation.Exempt()
	}

	if dt == datatype.String {
		a, okValue := value.(string)
		b, okOther := other.(string)

		if !okValue || !okOther {
			return validation.Fail(validation.CodeTypeMismatch)
		}

		return validation.Holds(operator.Apply(op, a, b))
	}

	if isBlank(other) {
		return validation.Exempt()
	}

	left := Coerce(value, dt)
	if left.Kind != Coerced {
		return settle(left)
	}

	right := Coerce(other, dt)
	if right.Kind != Coerced {
		return settle(right)
	}

	return validation.Holds(operator.Holds(op, compare(left.Value, right.Value)))
}

func (Policy) IsOfType(value any, dt datatype.DataType) validation.Verdict {
	if datatype.IsNil(value) {
		return validation.Exempt()
	}

	vt, ok := datatype.Classify(value)
	if !ok {
		return validation.Fail(validation.CodeUnknownType)
	}

	if vt == dt {
		if !datatype.InRange(value) {
			return validation.Fail(validation.CodeInvalidType)
		}

		return validation.Pass()
	}

	s, ok := value.(string)
	if !ok || dt == datatype.String {
		return validation.Fail(validation.CodeInvalidType)
	}

	if strings.TrimSpace(s) == "" {
		return validation.Exempt()
	}

	if _, ok := Parse(s, dt); !ok {
		return validation.Fail(validation.CodeParseFailure)
	}

	return validation.Pass()
}

// settle decides a comparison whose operand could not be coerced. Only a
// failed parse or type mismatch fails; everything else, out of range values
// included, cannot be judged.
func settle(r Result) validation.Verdict {
	if r.Kind == Failed {
		return validation.Fail(r.Code)
	}

	return validation.Exempt()
}

func isBlank(value any) bool {
	if datatype.IsNil(value) {
		return true
	}

	s, ok := value.(string)

	return ok && strings.TrimSpace(s) == ""
}

// compare orders two coerced values of the same native type.
func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		return strings.Compare(x, b.(string))
	case int32:
		return cmp.Compare(x, b.(int32))
	case float64:
		return cmp.Compare(x, b.(float64))
	case *apd.Decimal:
		return x.Cmp(b.(*apd.Decimal))
	case time.Time:
		return x.Compare(b.(time.Time))
	default:
		return 0
	}
}
