package validation

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
)

// MessageFormatter renders the messages of invalid results.
type MessageFormatter interface {
	// Compare formats a failed comparison. A non-empty template replaces the
	// default message for op.
	Compare(template string, op operator.Operator, field, other string) string

	// TypeCheck formats a failed type check.
	TypeCheck(template string, dt datatype.DataType, field string) string

	// UnknownProperty formats the structural failure for a missing property.
	UnknownProperty(property string) string
}

const keyUnknownProperty = "validation.unknown_property"

func compareKey(op operator.Operator) string {
	return "validation.compare." + op.String()
}

func typeCheckKey(dt datatype.DataType) string {
	return "validation.typecheck." + dt.String()
}

var defaultMessages = map[language.Tag]map[string]string{
	language.English: {
		compareKey(operator.Equal):            "%[1]s must be equal to %[2]s.",
		compareKey(operator.NotEqual):         "%[1]s must not be equal to %[2]s.",
		compareKey(operator.GreaterThan):      "%[1]s must be greater than %[2]s.",
		compareKey(operator.GreaterThanEqual): "%[1]s must be greater than or equal to %[2]s.",
		compareKey(operator.LessThan):         "%[1]s must be less than %[2]s.",
		compareKey(operator.LessThanEqual):    "%[1]s must be less than or equal to %[2]s.",
		typeCheckKey(datatype.String):         "%[1]s must be text.",
		typeCheckKey(datatype.Integer):        "%[1]s must be a whole number.",
		typeCheckKey(datatype.Double):         "%[1]s must be a number.",
		typeCheckKey(datatype.Currency):       "%[1]s must be a currency amount.",
		typeCheckKey(datatype.Date):           "%[1]s must be a date.",
		keyUnknownProperty:                    "Could not find a property named %[1]s.",
	},
	language.German: {
		compareKey(operator.Equal):            "%[1]s muss gleich %[2]s sein.",
		compareKey(operator.NotEqual):         "%[1]s darf nicht gleich %[2]s sein.",
		compareKey(operator.GreaterThan):      "%[1]s muss größer als %[2]s sein.",
		compareKey(operator.GreaterThanEqual): "%[1]s muss größer oder gleich %[2]s sein.",
		compareKey(operator.LessThan):         "%[1]s muss kleiner als %[2]s sein.",
		compareKey(operator.LessThanEqual):    "%[1]s muss kleiner oder gleich %[2]s sein.",
		typeCheckKey(datatype.String):         "%[1]s muss ein Text sein.",
		typeCheckKey(datatype.Integer):        "%[1]s muss eine ganze Zahl sein.",
		typeCheckKey(datatype.Double):         "%[1]s muss eine Zahl sein.",
		typeCheckKey(datatype.Currency):       "%[1]s muss ein Geldbetrag sein.",
		typeCheckKey(datatype.Date):           "%[1]s muss ein Datum sein.",
		keyUnknownProperty:                    "Es gibt keine Eigenschaft mit dem Namen %[1]s.",
	},
}

// SupportedLanguages lists the languages with built-in default messages.
func SupportedLanguages() []language.Tag {
	return []language.Tag{language.English, language.German}
}

func defaultCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, messages := range defaultMessages {
		for key, msg := range messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set message %s for %s: %w", key, tag, err)
			}
		}
	}

	return b, nil
}

// CatalogFormatter formats messages from a localized message catalog. A tag
// is served by the closest supported language, English when none is close.
type CatalogFormatter struct {
	printer *message.Printer
}

func NewMessageFormatter(tag language.Tag) (*CatalogFormatter, error) {
	b, err := defaultCatalog()
	if err != nil {
		return nil, err
	}

	supported := SupportedLanguages()
	_, index, _ := language.NewMatcher(supported).Match(tag)

	return &CatalogFormatter{
		printer: message.NewPrinter(supported[index], message.Catalog(b)),
	}, nil
}

// MustMessageFormatter is like NewMessageFormatter but panics on error.
func MustMessageFormatter(tag language.Tag) *CatalogFormatter {
	f, err := NewMessageFormatter(tag)
	if err != nil {
		panic(err)
	}

	return f
}

func (f *CatalogFormatter) Compare(template string, op operator.Operator, field, other string) string {
	if template != "" {
		return f.printer.Sprintf(template, field, other)
	}

	return f.printer.Sprintf(compareKey(op), field, other)
}

func (f *CatalogFormatter) TypeCheck(template string, dt datatype.DataType, field string) string {
	if template != "" {
		return f.printer.Sprintf(template, field)
	}

	return f.printer.Sprintf(typeCheckKey(dt), field)
}

func (f *CatalogFormatter) UnknownProperty(property string) string {
	return f.printer.Sprintf(keyUnknownProperty, property)
}
