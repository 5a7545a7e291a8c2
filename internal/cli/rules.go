package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/architeacher/fieldcompare/pkg/clientrules"
	"github.com/architeacher/fieldcompare/pkg/form"
)

// FieldRules is the client rule set of one field.
type FieldRules struct {
	Field      string           `json:"field"`
	Attributes string           `json:"attributes"`
	Rules      []map[string]any `json:"rules"`
}

func newRulesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <schema> [field...]",
		Short: "Render the client validation rules of a schema",
		Long: `Rules prints the data-val attributes of every field of the schema, or of
the named fields. Fields without rules are left out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(_ context.Context, _ *cobra.Command, args []string) error {
			return a.runRules(args[0], args[1:])
		}),
	}
}

func (a *app) loadSchema(path string, opts ...form.Option) (*form.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, commandError("failed to open schema", err)
	}

	defer func() { _ = f.Close() }()

	opts = append([]form.Option{
		form.WithPolicy(a.policy()),
		form.WithLanguage(a.language),
	}, opts...)

	schema, err := form.LoadSchema(f, opts...)
	if err != nil {
		return nil, commandError("invalid schema", err)
	}

	return schema, nil
}

func (a *app) runRules(path string, fields []string) error {
	schema, err := a.loadSchema(path)
	if err != nil {
		return err
	}

	if len(fields) == 0 {
		for _, f := range schema.Fields() {
			fields = append(fields, f.Name)
		}
	}

	out := make([]FieldRules, 0, len(fields))

	for _, name := range fields {
		rules, err := schema.ClientRules(nil, name)
		if err != nil {
			return commandError("failed to build rules", err)
		}

		if len(rules) == 0 {
			continue
		}

		entry := FieldRules{
			Field:      name,
			Attributes: clientrules.RenderAttributes(clientrules.Attributes(rules...)),
		}

		for _, r := range rules {
			s, err := r.ToStruct()
			if err != nil {
				return commandError("failed to encode rule", err)
			}

			entry.Rules = append(entry.Rules, s.AsMap())
		}

		out = append(out, entry)
	}

	return a.output.emit(true, out, func(w io.Writer) {
		for _, entry := range out {
			_, _ = fmt.Fprintf(w, "%s: %s\n", entry.Field, entry.Attributes)
		}
	})
}
