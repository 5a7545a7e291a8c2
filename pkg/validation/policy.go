// Package validation implements field comparison and type-check validation
// over a pluggable comparison policy.
//
// A Policy decides a verdict from raw values. Two policies exist: the native
// one in package native, which works on typed Go values, and the script one
// in package script, which works on the strings, numbers and dates a browser
// form carries. Both must produce the same verdict for the inputs listed in
// package conformance.
package validation

import (
	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
)

type Outcome uint8

const (
	// OutcomeValid means the values were compared, or type checked, and passed.
	OutcomeValid Outcome = iota
	// OutcomeExempt means no judgement was possible: a null or blank operand,
	// or operands of unrelated types. Exempt verdicts are valid.
	OutcomeExempt
	// OutcomeInvalid means the value failed.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExempt:
		return "exempt"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type Verdict struct {
	Outcome Outcome
	Code    ErrorCode
}

func Pass() Verdict {
	return Verdict{Outcome: OutcomeValid}
}

func Exempt() Verdict {
	return Verdict{Outcome: OutcomeExempt}
}

func Fail(code ErrorCode) Verdict {
	return Verdict{Outcome: OutcomeInvalid, Code: code}
}

// Holds turns a comparator result into a verdict.
func Holds(ok bool) Verdict {
	if ok {
		return Pass()
	}

	return Fail(CodeRelationalMismatch)
}

func (v Verdict) Valid() bool {
	return v.Outcome != OutcomeInvalid
}

// Policy decides comparisons and type checks from raw values. Implementations
// are pure and safe for concurrent use.
type Policy interface {
	// Compare decides whether value relates to other by op under dataType.
	Compare(value, other any, dataType datatype.DataType, op operator.Operator) Verdict

	// IsOfType decides whether value is acceptable as dataType.
	IsOfType(value any, dataType datatype.DataType) Verdict
}
