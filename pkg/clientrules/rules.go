// Package clientrules describes declarations to browser-side validation: the
// rule payloads a form script adapts, and their unobtrusive data-val
// attributes.
package clientrules

import (
	"errors"
	"html"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

const (
	ParamOther           = "other"
	ParamDataType        = "datatype"
	ParamCompareOperator = "compareoperator"

	// OtherPrefix marks an other-property name relative to the validated
	// element's model prefix.
	OtherPrefix = "*."

	attributePrefix = "data-val"
)

var ErrEmptyProperty = errors.New("property name cannot be empty")

// Rule is a client validation rule.
type Rule struct {
	ValidationType string
	ErrorMessage   string
	Parameters     map[string]string
}

// FormatPropertyForClientValidation renders a property name relative to the
// model prefix of the element it is attached to.
func FormatPropertyForClientValidation(property string) (string, error) {
	if property == "" {
		return "", ErrEmptyProperty
	}

	return OtherPrefix + property, nil
}

// ResolveOtherName turns a relative other-property name into the full input
// name for the element called elementName. Names without the relative
// prefix are returned unchanged.
func ResolveOtherName(elementName, other string) string {
	rest, ok := strings.CutPrefix(other, OtherPrefix)
	if !ok {
		return other
	}

	prefix := elementName[:strings.LastIndex(elementName, ".")+1]

	return prefix + rest
}

// Attributes renders the rule as data-val attributes, without the data-val
// switch itself.
func (r Rule) Attributes() map[string]string {
	base := attributePrefix + "-" + r.ValidationType

	attrs := map[string]string{base: r.ErrorMessage}

	for name, value := range r.Parameters {
		attrs[base+"-"+name] = value
	}

	return attrs
}

// ToStruct encodes the rule as a protobuf Struct.
func (r Rule) ToStruct() (*structpb.Struct, error) {
	params := make(map[string]any, len(r.Parameters))
	for name, value := range r.Parameters {
		params[name] = value
	}

	return structpb.NewStruct(map[string]any{
		"validationType": r.ValidationType,
		"errorMessage":   r.ErrorMessage,
		"parameters":     params,
	})
}

// FromStruct decodes a rule encoded by ToStruct.
func FromStruct(s *structpb.Struct) Rule {
	fields := s.GetFields()

	r := Rule{
		ValidationType: fields["validationType"].GetStringValue(),
		ErrorMessage:   fields["errorMessage"].GetStringValue(),
		Parameters:     make(map[string]string),
	}

	for name, value := range fields["parameters"].GetStructValue().GetFields() {
		r.Parameters[name] = value.GetStringValue()
	}

	return r
}

// Attributes renders rules as the attribute set of one input element.
func Attributes(rules ...Rule) map[string]string {
	if len(rules) == 0 {
		return map[string]string{}
	}

	attrs := map[string]string{attributePrefix: "true"}

	for _, r := range rules {
		maps.Copy(attrs, r.Attributes())
	}

	return attrs
}

// RenderAttributes renders attributes as HTML, sorted by name.
func RenderAttributes(attrs map[string]string) string {
	var b strings.Builder

	for i, name := range slices.Sorted(maps.Keys(attrs)) {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[name]))
		b.WriteByte('"')
	}

	return b.String()
}

// Generator builds rules from declarations with server-formatted messages.
type Generator struct {
	titles   validation.TitleLookup
	messages validation.MessageFormatter
}

// NewGenerator returns a Generator. A nil titles lookup uses raw property
// names and a nil formatter uses English messages.
func NewGenerator(titles validation.TitleLookup, messages validation.MessageFormatter) *Generator {
	if titles == nil {
		titles = validation.TitleLookupFunc(func(_ any, property string) string { return property })
	}

	if messages == nil {
		messages = validation.MustMessageFormatter(language.English)
	}

	return &Generator{titles: titles, messages: messages}
}

func (g *Generator) Compare(d validation.ComparisonDeclaration, field validation.Field) (Rule, error) {
	other, err := FormatPropertyForClientValidation(d.OtherProperty())
	if err != nil {
		return Rule{}, err
	}

	message := g.messages.Compare(d.ErrorMessage(), d.Operator(), field.Title(), g.titles.Title(field.Model, d.OtherProperty()))

	return Rule{
		ValidationType: validation.RuleCompare,
		ErrorMessage:   message,
		Parameters: map[string]string{
			ParamOther:           other,
			ParamDataType:        d.DataType().String(),
			ParamCompareOperator: d.Operator().String(),
		},
	}, nil
}

func (g *Generator) TypeCheck(d validation.TypeDeclaration, field validation.Field) Rule {
	return Rule{
		ValidationType: validation.RuleTypeCheck,
		ErrorMessage:   g.messages.TypeCheck(d.ErrorMessage(), d.DataType(), field.Title()),
		Parameters: map[string]string{
			ParamDataType: d.DataType().String(),
		},
	}
}

// Coupled builds the rule that revalidates the other property whenever the
// field changes. It carries no message of its own.
func (g *Generator) Coupled(d validation.CoupledDeclaration) (Rule, error) {
	other, err := FormatPropertyForClientValidation(d.OtherProperty())
	if err != nil {
		return Rule{}, err
	}

	return Rule{
		ValidationType: validation.RuleCoupled,
		Parameters: map[string]string{
			ParamOther: other,
		},
	}, nil
}
