package form

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/architeacher/fieldcompare/pkg/binding"
	"github.com/architeacher/fieldcompare/pkg/clientrules"
	"github.com/architeacher/fieldcompare/pkg/titles"
	"github.com/architeacher/fieldcompare/pkg/validation"
	"github.com/architeacher/fieldcompare/pkg/validation/native"
)

// Decorator wraps each validator of a schema.
type Decorator func(validation.Validator) validation.Validator

type options struct {
	policy    validation.Policy
	lookup    *binding.Lookup
	language  language.Tag
	decorator Decorator
}

type Option func(*options)

// WithPolicy selects the evaluator. The native policy is used by default.
func WithPolicy(p validation.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLanguage selects the language of messages and titles. English is used
// by default.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

func WithDecorator(d Decorator) Option {
	return func(o *options) {
		o.decorator = d
	}
}

type boundField struct {
	rules      FieldRules
	validators []validation.Validator
}

// Schema validates whole models against the rules of a Definition.
type Schema struct {
	name      string
	fields    []boundField
	lookup    *binding.Lookup
	titles    validation.TitleLookup
	messages  validation.MessageFormatter
	generator *clientrules.Generator
}

// LoadSchema reads a YAML definition and builds its Schema.
func LoadSchema(r io.Reader, opts ...Option) (*Schema, error) {
	def, err := DecodeDefinition(r)
	if err != nil {
		return nil, err
	}

	return New(def, opts...)
}

func New(def Definition, opts ...Option) (*Schema, error) {
	o := options{
		policy:   native.New(),
		lookup:   binding.New(),
		language: language.English,
	}

	for _, opt := range opts {
		opt(&o)
	}

	compiled, err := def.Compile()
	if err != nil {
		return nil, err
	}

	translations, err := def.translations()
	if err != nil {
		return nil, err
	}

	cat, err := titles.NewCatalog(translations)
	if err != nil {
		return nil, err
	}

	messages, err := validation.NewMessageFormatter(o.language)
	if err != nil {
		return nil, fmt.Errorf("failed to build messages: %w", err)
	}

	names := titles.Chain{titles.Static(def.displayNames()), o.lookup}
	resolver := titles.NewResolver(names, o.language, cat)

	s := &Schema{
		name:      def.Name,
		lookup:    o.lookup,
		titles:    resolver,
		messages:  messages,
		generator: clientrules.NewGenerator(resolver, messages),
	}

	for _, rules := range compiled {
		s.fields = append(s.fields, boundField{
			rules:      rules,
			validators: s.validators(rules, o),
		})
	}

	return s, nil
}

func (s *Schema) validators(rules FieldRules, o options) []validation.Validator {
	var out []validation.Validator

	if rules.Type != nil {
		out = append(out, validation.NewTypeCheckValidator(*rules.Type, o.policy, s.messages))
	}

	for _, decl := range rules.Compare {
		out = append(out, validation.NewCompareValidator(decl, o.policy, s.lookup, s.titles, s.messages))
	}

	for _, decl := range rules.Coupled {
		out = append(out, validation.NewCoupledValidator(decl))
	}

	if o.decorator != nil {
		for i, v := range out {
			out[i] = o.decorator(v)
		}
	}

	return out
}

func (s *Schema) Name() string {
	return s.name
}

// Fields returns the compiled rules in declaration order.
func (s *Schema) Fields() []FieldRules {
	out := make([]FieldRules, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.rules)
	}

	return out
}

// Validate runs every rule of every field against model. A field missing
// from the model is reported as an unknown property and its rules are
// skipped, as are the rules of a field the lookup fails to resolve.
func (s *Schema) Validate(ctx context.Context, model any) *validation.Errors {
	errs := validation.NewErrors()

	for _, f := range s.fields {
		value, err := s.lookup.Resolve(model, f.rules.Name)
		if errors.Is(err, validation.ErrPropertyNotFound) {
			errs.Errors = append(errs.Errors, validation.FieldError{
				Field:   f.rules.Name,
				Code:    validation.CodeUnknownProperty,
				Message: s.messages.UnknownProperty(f.rules.Name),
			})

			continue
		}

		if err != nil {
			errs.Append(f.rules.Name, fmt.Errorf("failed to resolve %s: %w", f.rules.Name, err))

			continue
		}

		field := validation.Field{
			Name:        f.rules.Name,
			DisplayName: s.titles.Title(model, f.rules.Name),
			Value:       value,
			Model:       model,
		}

		for _, v := range f.validators {
			errs.Append(f.rules.Name, v.Validate(ctx, field))
		}
	}

	return errs
}

// ClientRules returns the client rules of the named field, in the order the
// server validates them.
func (s *Schema) ClientRules(model any, name string) ([]clientrules.Rule, error) {
	f, ok := s.field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", validation.ErrPropertyNotFound, name)
	}

	field := validation.Field{
		Name:        name,
		DisplayName: s.titles.Title(model, name),
		Model:       model,
	}

	var out []clientrules.Rule

	if f.rules.Type != nil {
		out = append(out, s.generator.TypeCheck(*f.rules.Type, field))
	}

	for _, decl := range f.rules.Compare {
		rule, err := s.generator.Compare(decl, field)
		if err != nil {
			return nil, err
		}

		out = append(out, rule)
	}

	for _, decl := range f.rules.Coupled {
		rule, err := s.generator.Coupled(decl)
		if err != nil {
			return nil, err
		}

		out = append(out, rule)
	}

	return out, nil
}

// Attributes returns the data-val attributes of the named field.
func (s *Schema) Attributes(model any, name string) (map[string]string, error) {
	rules, err := s.ClientRules(model, name)
	if err != nil {
		return nil, err
	}

	return clientrules.Attributes(rules...), nil
}

func (s *Schema) field(name string) (boundField, bool) {
	for _, f := range s.fields {
		if f.rules.Name == name {
			return f, true
		}
	}

	return boundField{}, false
}
