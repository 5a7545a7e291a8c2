package script

import (
	"cmp"
	"strings"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

// Policy is the validation.Policy for form values.
type Policy struct{}

var _ validation.Policy = Policy{}

func New() Policy {
	return Policy{}
}

func (Policy) Compare(value, other any, dt datatype.DataType, op operator.Operator) validation.Verdict {
	if isEmpty(value) {
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

		return validation.Holds(operator.Holds(op, strings.Compare(a, b)))
	}

	if isEmpty(other) {
		return validation.Exempt()
	}

	if v, judged := judge(value, dt); judged {
		return v
	}

	if v, judged := judge(other, dt); judged {
		return v
	}

	return validation.Holds(operator.Holds(op, order(value, other, dt)))
}

func (Policy) IsOfType(value any, dt datatype.DataType) validation.Verdict {
	if datatype.IsNil(value) {
		return validation.Exempt()
	}

	if s, ok := value.(string); ok {
		switch {
		case dt == datatype.String, recognises(s, dt):
			return validation.Pass()
		case strings.TrimSpace(s) == "":
			return validation.Exempt()
		default:
			return validation.Fail(validation.CodeParseFailure)
		}
	}

	if _, ok := datatype.Classify(value); !ok {
		return validation.Fail(validation.CodeUnknownType)
	}

	if typed(value, dt) {
		return validation.Pass()
	}

	return validation.Fail(validation.CodeInvalidType)
}

// judge settles an operand that cannot be compared under dt. A string in the
// wrong format fails; a typed value of another type, or out of range, cannot
// be judged.
func judge(value any, dt datatype.DataType) (validation.Verdict, bool) {
	if s, ok := value.(string); ok {
		if recognises(s, dt) {
			return validation.Verdict{}, false
		}

		return validation.Fail(validation.CodeParseFailure), true
	}

	if typed(value, dt) {
		return validation.Verdict{}, false
	}

	return validation.Exempt(), true
}

func isEmpty(value any) bool {
	if datatype.IsNil(value) {
		return true
	}

	s, ok := value.(string)

	return ok && strings.TrimSpace(s) == ""
}

func order(a, b any, dt datatype.DataType) int {
	switch dt {
	case datatype.Integer, datatype.Double:
		return cmp.Compare(toNumber(a), toNumber(b))
	case datatype.Currency:
		return toDecimal(a).Cmp(toDecimal(b))
	case datatype.Date:
		return toDate(a).Compare(toDate(b))
	default:
		return 0
	}
}
