package validation

import (
	"fmt"
	"strings"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
)

type declarationOptions struct {
	operator     operator.Operator
	dataType     datatype.DataType
	errorMessage string
}

type Option func(*declarationOptions)

func WithOperator(op operator.Operator) Option {
	return func(o *declarationOptions) {
		o.operator = op
	}
}

func WithDataType(dt datatype.DataType) Option {
	return func(o *declarationOptions) {
		o.dataType = dt
	}
}

// WithErrorMessage overrides the default message. The template receives the
// field's display name as %[1]s and the other property's display name as %[2]s.
func WithErrorMessage(template string) Option {
	return func(o *declarationOptions) {
		o.errorMessage = template
	}
}

func resolveOptions(opts []Option) declarationOptions {
	o := declarationOptions{
		operator: operator.Equal,
		dataType: datatype.String,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ComparisonDeclaration attaches a comparison against another property to a
// field. It is immutable once constructed.
type ComparisonDeclaration struct {
	otherProperty string
	operator      operator.Operator
	dataType      datatype.DataType
	errorMessage  string
}

// NewComparisonDeclaration declares that a field must relate to otherProperty.
// The operator defaults to Equal and the data type to String.
func NewComparisonDeclaration(otherProperty string, opts ...Option) (ComparisonDeclaration, error) {
	if strings.TrimSpace(otherProperty) == "" {
		return ComparisonDeclaration{}, ErrOtherPropertyRequired
	}

	o := resolveOptions(opts)

	if !o.operator.IsValid() {
		return ComparisonDeclaration{}, fmt.Errorf("%w: %w: %q", ErrInvalidDeclaration, operator.ErrUnknownOperator, o.operator)
	}

	if !o.dataType.IsValid() {
		return ComparisonDeclaration{}, fmt.Errorf("%w: %w: %q", ErrInvalidDeclaration, datatype.ErrUnknownDataType, o.dataType)
	}

	return ComparisonDeclaration{
		otherProperty: otherProperty,
		operator:      o.operator,
		dataType:      o.dataType,
		errorMessage:  o.errorMessage,
	}, nil
}

// MustComparisonDeclaration is like NewComparisonDeclaration but panics on error.
func MustComparisonDeclaration(otherProperty string, opts ...Option) ComparisonDeclaration {
	d, err := NewComparisonDeclaration(otherProperty, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

func (d ComparisonDeclaration) OtherProperty() string {
	return d.otherProperty
}

func (d ComparisonDeclaration) Operator() operator.Operator {
	return d.operator
}

func (d ComparisonDeclaration) DataType() datatype.DataType {
	return d.dataType
}

func (d ComparisonDeclaration) ErrorMessage() string {
	return d.errorMessage
}

// TypeDeclaration attaches a type check to a field.
type TypeDeclaration struct {
	dataType     datatype.DataType
	errorMessage string
}

// NewTypeDeclaration declares that a field must be acceptable as dt. Only
// WithErrorMessage affects a type declaration.
func NewTypeDeclaration(dt datatype.DataType, opts ...Option) (TypeDeclaration, error) {
	if !dt.IsValid() {
		return TypeDeclaration{}, fmt.Errorf("%w: %w: %q", ErrInvalidDeclaration, datatype.ErrUnknownDataType, dt)
	}

	o := resolveOptions(opts)

	return TypeDeclaration{
		dataType:     dt,
		errorMessage: o.errorMessage,
	}, nil
}

func (d TypeDeclaration) DataType() datatype.DataType {
	return d.dataType
}

func (d TypeDeclaration) ErrorMessage() string {
	return d.errorMessage
}

// CoupledDeclaration marks a field whose validity depends on another one. It
// never fails on the server; clients use it to revalidate the pair together.
type CoupledDeclaration struct {
	otherProperty string
}

func NewCoupledDeclaration(otherProperty string) (CoupledDeclaration, error) {
	if strings.TrimSpace(otherProperty) == "" {
		return CoupledDeclaration{}, ErrOtherPropertyRequired
	}

	return CoupledDeclaration{otherProperty: otherProperty}, nil
}

func (d CoupledDeclaration) OtherProperty() string {
	return d.otherProperty
}
