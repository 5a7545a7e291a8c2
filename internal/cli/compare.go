package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/architeacher/fieldcompare/pkg/binding"
	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/titles"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

const (
	valueProperty = "value"
	otherProperty = "other"
)

// Verdict is the result of a single compare or typecheck run.
type Verdict struct {
	Valid   bool                 `json:"valid"`
	Code    validation.ErrorCode `json:"code,omitempty"`
	Message string               `json:"message,omitempty"`
}

func verdictOf(err error) (Verdict, error) {
	if err == nil {
		return Verdict{Valid: true}, nil
	}

	var fe *validation.FieldError
	if !errors.As(err, &fe) {
		return Verdict{}, commandError("validation failed", err)
	}

	return Verdict{Code: fe.Code, Message: fe.Message}, nil
}

func (a *app) emitVerdict(v Verdict) error {
	return a.output.emit(v.Valid, v, func(w io.Writer) {
		if v.Valid {
			_, _ = fmt.Fprintln(w, "valid")

			return
		}

		_, _ = fmt.Fprintf(w, "invalid [%s]: %s\n", v.Code, v.Message)
	})
}

type compareOptions struct {
	operator     string
	dataType     string
	message      string
	display      string
	otherDisplay string
	nilValue     bool
	nilOther     bool
}

func newCompareCommand(a *app) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <value> <other>",
		Short: "Compare a value with the value of another field",
		Long: `Compare evaluates one comparison rule. Both operands are read as posted
form input; use --nil-value or --nil-other for a missing operand.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			return a.runCompare(ctx, opts, args[0], args[1])
		}),
	}

	cmd.Flags().StringVar(&opts.operator, "operator", operator.Equal.String(), "relational operator")
	cmd.Flags().StringVar(&opts.dataType, "datatype", datatype.String.String(), "data type of both operands")
	cmd.Flags().StringVar(&opts.message, "message", "", "message template, %[1]s is the field and %[2]s the other field")
	cmd.Flags().StringVar(&opts.display, "display", "", "display name of the field")
	cmd.Flags().StringVar(&opts.otherDisplay, "other-display", "", "display name of the other field")
	cmd.Flags().BoolVar(&opts.nilValue, "nil-value", false, "treat the value as missing")
	cmd.Flags().BoolVar(&opts.nilOther, "nil-other", false, "treat the other value as missing")

	return cmd
}

func (a *app) runCompare(ctx context.Context, opts *compareOptions, value, other string) error {
	op, err := operator.Parse(opts.operator)
	if err != nil {
		return commandError("invalid operator", err)
	}

	dt, err := datatype.Parse(opts.dataType)
	if err != nil {
		return commandError("invalid data type", err)
	}

	decl, err := validation.NewComparisonDeclaration(otherProperty,
		validation.WithOperator(op),
		validation.WithDataType(dt),
		validation.WithErrorMessage(opts.message),
	)
	if err != nil {
		return commandError("invalid declaration", err)
	}

	model := map[string]any{valueProperty: operand(value, opts.nilValue), otherProperty: operand(other, opts.nilOther)}
	names := titles.NewResolver(titles.Static{otherProperty: opts.otherDisplay}, a.language, nil)

	v := a.decorate(validation.NewCompareValidator(decl, a.policy(), binding.NewValuesLookup(), names, a.messages))

	verdict, err := verdictOf(v.Validate(ctx, validation.Field{
		Name:        valueProperty,
		DisplayName: opts.display,
		Value:       model[valueProperty],
		Model:       model,
	}))
	if err != nil {
		return err
	}

	return a.emitVerdict(verdict)
}

type typeCheckOptions struct {
	dataType string
	message  string
	display  string
	nilValue bool
}

func newTypeCheckCommand(a *app) *cobra.Command {
	opts := &typeCheckOptions{}

	cmd := &cobra.Command{
		Use:   "typecheck <value>",
		Short: "Check that a value is acceptable as a data type",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			return a.runTypeCheck(ctx, opts, args[0])
		}),
	}

	cmd.Flags().StringVar(&opts.dataType, "datatype", datatype.String.String(), "data type")
	cmd.Flags().StringVar(&opts.message, "message", "", "message template, %[1]s is the field")
	cmd.Flags().StringVar(&opts.display, "display", "", "display name of the field")
	cmd.Flags().BoolVar(&opts.nilValue, "nil-value", false, "treat the value as missing")

	return cmd
}

func (a *app) runTypeCheck(ctx context.Context, opts *typeCheckOptions, value string) error {
	dt, err := datatype.Parse(opts.dataType)
	if err != nil {
		return commandError("invalid data type", err)
	}

	decl, err := validation.NewTypeDeclaration(dt, validation.WithErrorMessage(opts.message))
	if err != nil {
		return commandError("invalid declaration", err)
	}

	v := a.decorate(validation.NewTypeCheckValidator(decl, a.policy(), a.messages))

	verdict, err := verdictOf(v.Validate(ctx, validation.Field{
		Name:        valueProperty,
		DisplayName: opts.display,
		Value:       operand(value, opts.nilValue),
	}))
	if err != nil {
		return err
	}

	return a.emitVerdict(verdict)
}

func operand(s string, missing bool) any {
	if missing {
		return nil
	}

	return s
}
