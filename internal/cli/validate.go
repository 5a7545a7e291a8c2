package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/architeacher/fieldcompare/pkg/form"
	"github.com/architeacher/fieldcompare/pkg/logger"
	"github.com/architeacher/fieldcompare/pkg/transport/grpcerr"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

// ValidateResult is the outcome of validating a model file. Code is the gRPC
// status code a server would answer with.
type ValidateResult struct {
	Form   string                  `json:"form"`
	Valid  bool                    `json:"valid"`
	Code   string                  `json:"code"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

type validateOptions struct {
	schema string
}

func newValidateCommand(a *app) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <model>",
		Short: "Validate a posted form against a schema",
		Long: `Validate reads a YAML mapping of posted field values and runs every rule
of the schema against it. The schema defaults to VALIDATION_SCHEMA.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			return a.runValidate(ctx, opts, args[0])
		}),
	}

	cmd.Flags().StringVar(&opts.schema, "schema", "", "schema file")

	return cmd
}

func (a *app) runValidate(ctx context.Context, opts *validateOptions, modelPath string) error {
	schemaPath := opts.schema
	if schemaPath == "" {
		schemaPath = a.cfg.Validation.Schema
	}

	if schemaPath == "" {
		return commandError("a schema is required: pass --schema or set VALIDATION_SCHEMA", nil)
	}

	schema, err := a.loadSchema(schemaPath, form.WithDecorator(a.decorate))
	if err != nil {
		return err
	}

	f, err := os.Open(modelPath)
	if err != nil {
		return commandError("failed to open model", err)
	}

	defer func() { _ = f.Close() }()

	model, err := form.DecodeModel(f)
	if err != nil {
		return commandError("invalid model", err)
	}

	errs := schema.Validate(logger.WithModel(ctx, schema.Name()), model)

	result := ValidateResult{
		Form:   schema.Name(),
		Valid:  !errs.HasErrors(),
		Code:   grpcerr.ToStatus(errs).Code().String(),
		Errors: errs.Errors,
	}

	a.log.WithContext(logger.WithModel(ctx, schema.Name())).Debug().
		Bool("valid", result.Valid).
		Int("errors", len(result.Errors)).
		Str("code", result.Code).
		Msg("model validated")

	return a.output.emit(result.Valid, result, func(w io.Writer) {
		if result.Valid {
			_, _ = fmt.Fprintln(w, "valid")

			return
		}

		for _, fe := range result.Errors {
			_, _ = fmt.Fprintf(w, "%s [%s]: %s\n", fe.Field, fe.Code, fe.Message)
		}
	})
}
