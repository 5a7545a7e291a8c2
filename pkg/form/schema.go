// Package form declares the comparison rules of a whole form in YAML and
// validates models against them.
package form

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

var (
	ErrNoFields      = errors.New("schema declares no fields")
	ErrFieldName     = errors.New("field name is required")
	ErrDuplicateName = errors.New("duplicate field")
)

// Definition is the YAML form of a schema.
type Definition struct {
	// Name identifies the form in logs.
	Name string `yaml:"name"`

	// Fields lists the validated fields in validation order.
	Fields []FieldDefinition `yaml:"fields"`

	// Titles translates display names, keyed by BCP 47 language tag and then
	// by the untranslated display name.
	Titles map[string]map[string]string `yaml:"titles,omitempty"`
}

// FieldDefinition declares the rules of one field.
type FieldDefinition struct {
	Name    string              `yaml:"name"`
	Display string              `yaml:"display,omitempty"`
	Compare []CompareDefinition `yaml:"compare,omitempty"`
	Type    *TypeDefinition     `yaml:"typecheck,omitempty"`
	Coupled []string            `yaml:"coupled,omitempty"`
}

type CompareDefinition struct {
	Other    string `yaml:"other"`
	Operator string `yaml:"operator,omitempty"`
	DataType string `yaml:"datatype,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

type TypeDefinition struct {
	DataType string `yaml:"datatype"`
	Message  string `yaml:"message,omitempty"`
}

// FieldRules are the compiled declarations of one field.
type FieldRules struct {
	Name    string
	Display string
	Compare []validation.ComparisonDeclaration
	Type    *validation.TypeDeclaration
	Coupled []validation.CoupledDeclaration
}

// DecodeDefinition parses a YAML schema. Unknown keys are rejected.
func DecodeDefinition(r io.Reader) (Definition, error) {
	var def Definition

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("failed to parse schema: %w", err)
	}

	return def, nil
}

// Compile turns the definition into declarations, failing on the first
// invalid one.
func (d Definition) Compile() ([]FieldRules, error) {
	if len(d.Fields) == 0 {
		return nil, ErrNoFields
	}

	seen := make(map[string]struct{}, len(d.Fields))
	out := make([]FieldRules, 0, len(d.Fields))

	for _, fd := range d.Fields {
		if fd.Name == "" {
			return nil, ErrFieldName
		}

		if _, ok := seen[fd.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, fd.Name)
		}

		seen[fd.Name] = struct{}{}

		rules, err := fd.compile()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}

		out = append(out, rules)
	}

	return out, nil
}

func (fd FieldDefinition) compile() (FieldRules, error) {
	rules := FieldRules{Name: fd.Name, Display: fd.Display}

	for _, cd := range fd.Compare {
		opts := []validation.Option{validation.WithErrorMessage(cd.Message)}

		if cd.Operator != "" {
			op, err := operator.Parse(cd.Operator)
			if err != nil {
				return FieldRules{}, err
			}

			opts = append(opts, validation.WithOperator(op))
		}

		if cd.DataType != "" {
			dt, err := datatype.Parse(cd.DataType)
			if err != nil {
				return FieldRules{}, err
			}

			opts = append(opts, validation.WithDataType(dt))
		}

		decl, err := validation.NewComparisonDeclaration(cd.Other, opts...)
		if err != nil {
			return FieldRules{}, err
		}

		rules.Compare = append(rules.Compare, decl)
	}

	if fd.Type != nil {
		dt, err := datatype.Parse(fd.Type.DataType)
		if err != nil {
			return FieldRules{}, err
		}

		decl, err := validation.NewTypeDeclaration(dt, validation.WithErrorMessage(fd.Type.Message))
		if err != nil {
			return FieldRules{}, err
		}

		rules.Type = &decl
	}

	for _, other := range fd.Coupled {
		decl, err := validation.NewCoupledDeclaration(other)
		if err != nil {
			return FieldRules{}, err
		}

		rules.Coupled = append(rules.Coupled, decl)
	}

	return rules, nil
}

// translations parses the title tags.
func (d Definition) translations() (map[language.Tag]map[string]string, error) {
	out := make(map[language.Tag]map[string]string, len(d.Titles))

	for raw, entries := range d.Titles {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("titles %q: %w", raw, err)
		}

		out[tag] = entries
	}

	return out, nil
}

func (d Definition) displayNames() map[string]string {
	names := make(map[string]string, len(d.Fields))

	for _, fd := range d.Fields {
		if fd.Display != "" {
			names[fd.Name] = fd.Display
		}
	}

	return names
}
