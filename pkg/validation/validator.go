package validation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
)

const (
	RuleCompare   = "compareoperator"
	RuleTypeCheck = "compareoperatortypecheck"
	RuleCoupled   = "coupled"
)

// Field is the property being validated and the model it belongs to.
type Field struct {
	// Name is the property name on the model.
	Name string
	// DisplayName is the user-facing name. Name is used when empty.
	DisplayName string
	Value       any
	Model       any
}

func (f Field) Title() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}

	return f.Name
}

// Validator validates a single field. A nil result means valid; an invalid
// result is a *FieldError.
type Validator interface {
	Validate(ctx context.Context, field Field) error
}

// Description identifies a validator for logs, metrics and traces.
type Description struct {
	Rule     string
	Other    string
	DataType datatype.DataType
	Operator operator.Operator
}

type Describer interface {
	Describe() Description
}

// Describe returns the description of v, or a zero description with the
// rule left empty when v does not describe itself.
func Describe(v Validator) Description {
	if d, ok := v.(Describer); ok {
		return d.Describe()
	}

	return Description{}
}

func defaultFormatter() MessageFormatter {
	return MustMessageFormatter(language.English)
}

// CompareValidator checks a field against another property of the same model.
type CompareValidator struct {
	declaration ComparisonDeclaration
	policy      Policy
	lookup      PropertyLookup
	titles      TitleLookup
	messages    MessageFormatter
}

// NewCompareValidator builds a comparison validator. A nil titles lookup
// uses raw property names and a nil formatter uses English messages.
func NewCompareValidator(
	declaration ComparisonDeclaration,
	policy Policy,
	lookup PropertyLookup,
	titles TitleLookup,
	messages MessageFormatter,
) *CompareValidator {
	if titles == nil {
		titles = rawTitles{}
	}

	if messages == nil {
		messages = defaultFormatter()
	}

	return &CompareValidator{
		declaration: declaration,
		policy:      policy,
		lookup:      lookup,
		titles:      titles,
		messages:    messages,
	}
}

func (v *CompareValidator) Declaration() ComparisonDeclaration {
	return v.declaration
}

func (v *CompareValidator) Describe() Description {
	return Description{
		Rule:     RuleCompare,
		Other:    v.declaration.OtherProperty(),
		DataType: v.declaration.DataType(),
		Operator: v.declaration.Operator(),
	}
}

func (v *CompareValidator) Validate(_ context.Context, field Field) error {
	otherName := v.declaration.OtherProperty()

	other, err := v.lookup.Resolve(field.Model, otherName)
	if errors.Is(err, ErrPropertyNotFound) {
		return &FieldError{
			Field:   field.Name,
			Other:   otherName,
			Code:    CodeUnknownProperty,
			Message: v.messages.UnknownProperty(otherName),
		}
	}

	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", otherName, err)
	}

	verdict := v.policy.Compare(field.Value, other, v.declaration.DataType(), v.declaration.Operator())
	if verdict.Valid() {
		return nil
	}

	return &FieldError{
		Field: field.Name,
		Other: otherName,
		Code:  verdict.Code,
		Message: v.messages.Compare(
			v.declaration.ErrorMessage(),
			v.declaration.Operator(),
			field.Title(),
			v.titles.Title(field.Model, otherName),
		),
	}
}

// TypeCheckValidator checks that a field is acceptable as a data type.
type TypeCheckValidator struct {
	declaration TypeDeclaration
	policy      Policy
	messages    MessageFormatter
}

func NewTypeCheckValidator(declaration TypeDeclaration, policy Policy, messages MessageFormatter) *TypeCheckValidator {
	if messages == nil {
		messages = defaultFormatter()
	}

	return &TypeCheckValidator{
		declaration: declaration,
		policy:      policy,
		messages:    messages,
	}
}

func (v *TypeCheckValidator) Declaration() TypeDeclaration {
	return v.declaration
}

func (v *TypeCheckValidator) Describe() Description {
	return Description{
		Rule:     RuleTypeCheck,
		DataType: v.declaration.DataType(),
	}
}

func (v *TypeCheckValidator) Validate(_ context.Context, field Field) error {
	verdict := v.policy.IsOfType(field.Value, v.declaration.DataType())
	if verdict.Valid() {
		return nil
	}

	return &FieldError{
		Field:   field.Name,
		Code:    verdict.Code,
		Message: v.messages.TypeCheck(v.declaration.ErrorMessage(), v.declaration.DataType(), field.Title()),
	}
}

// CoupledValidator never fails. It exists so that the coupling is declared
// next to the other rules and rendered for clients.
type CoupledValidator struct {
	declaration CoupledDeclaration
}

func NewCoupledValidator(declaration CoupledDeclaration) *CoupledValidator {
	return &CoupledValidator{declaration: declaration}
}

func (v *CoupledValidator) Declaration() CoupledDeclaration {
	return v.declaration
}

func (v *CoupledValidator) Describe() Description {
	return Description{
		Rule:  RuleCoupled,
		Other: v.declaration.OtherProperty(),
	}
}

func (v *CoupledValidator) Validate(context.Context, Field) error {
	return nil
}

// IsStructural reports whether err is a configuration problem of the model
// rather than an invalid value.
func IsStructural(err error) bool {
	return errors.Is(err, ErrPropertyNotFound)
}
