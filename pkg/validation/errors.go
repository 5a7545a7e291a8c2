package validation

import (
	"errors"
	"strings"
)

// ErrorCode classifies why a value was judged invalid.
type ErrorCode string

const (
	// CodeUnknownProperty indicates the declared other property does not exist on the model.
	CodeUnknownProperty ErrorCode = "unknown_property"
	// CodeUnknownType indicates the value's native type is none of the five supported ones.
	CodeUnknownType ErrorCode = "unknown_type"
	// CodeTypeMismatch indicates a String comparison received a non-string operand.
	CodeTypeMismatch ErrorCode = "type_mismatch"
	// CodeParseFailure indicates a string could not be parsed as the declared type.
	CodeParseFailure ErrorCode = "parse_failure"
	// CodeRelationalMismatch indicates comparable values that fail the declared operator.
	CodeRelationalMismatch ErrorCode = "relational_mismatch"
	// CodeInvalidType indicates a value whose native type is not acceptable for a type check.
	CodeInvalidType ErrorCode = "invalid_type"
)

var (
	ErrOtherPropertyRequired = errors.New("other property is required")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrInvalidDeclaration    = errors.New("invalid declaration")
)

// FieldError is the invalid result of validating a single field.
type FieldError struct {
	Field   string    `json:"field"`
	Other   string    `json:"other,omitempty"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is matches structural failures against ErrPropertyNotFound.
func (e *FieldError) Is(target error) bool {
	return target == ErrPropertyNotFound && e.Code == CodeUnknownProperty
}

// Errors collects the invalid results of validating a whole model.
type Errors struct {
	Errors []FieldError
}

func NewErrors() *Errors {
	return &Errors{
		Errors: make([]FieldError, 0),
	}
}

func (v *Errors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(v.Errors))
	for _, fe := range v.Errors {
		messages = append(messages, fe.Message)
	}

	return strings.Join(messages, "; ")
}

func (v *Errors) Add(field, message string, code ErrorCode) {
	v.Errors = append(v.Errors, FieldError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

// Append records err for field. A *FieldError is kept as is, any other
// error is recorded under its message with no code.
func (v *Errors) Append(field string, err error) {
	if err == nil {
		return
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		entry := *fe
		if entry.Field == "" {
			entry.Field = field
		}

		v.Errors = append(v.Errors, entry)

		return
	}

	v.Errors = append(v.Errors, FieldError{Field: field, Message: err.Error()})
}

func (v *Errors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ForField returns the errors recorded for the named field.
func (v *Errors) ForField(field string) []FieldError {
	var out []FieldError

	for _, fe := range v.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}

	return out
}
