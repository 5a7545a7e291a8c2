// Package titles resolves the user-facing names of properties for error
// messages: a declared display name, translated through a message catalog
// when a translation exists, or else the raw property name.
package titles

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

// DisplayNamer returns the declared display name of a property.
type DisplayNamer interface {
	DisplayName(model any, property string) (string, bool)
}

// Static declares display names by property, whatever the model.
type Static map[string]string

func (s Static) DisplayName(_ any, property string) (string, bool) {
	name, ok := s[property]

	return name, ok && name != ""
}

// Chain asks each namer in turn.
type Chain []DisplayNamer

func (c Chain) DisplayName(model any, property string) (string, bool) {
	for _, namer := range c {
		if namer == nil {
			continue
		}

		if name, ok := namer.DisplayName(model, property); ok {
			return name, true
		}
	}

	return "", false
}

// Translations maps a language to display-name translations keyed by the
// untranslated display name.
type Translations map[language.Tag]map[string]string

// NewCatalog builds a message catalog from translations.
func NewCatalog(translations Translations) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set title %q for %s: %w", key, tag, err)
			}
		}
	}

	return b, nil
}

// Resolver is a validation.TitleLookup.
type Resolver struct {
	names   DisplayNamer
	printer *message.Printer
}

var _ validation.TitleLookup = (*Resolver)(nil)

// NewResolver resolves titles from names, translated into tag through cat. A
// nil catalog leaves display names untranslated.
func NewResolver(names DisplayNamer, tag language.Tag, cat catalog.Catalog) *Resolver {
	r := &Resolver{names: names}

	if cat != nil {
		r.printer = message.NewPrinter(tag, message.Catalog(cat))
	}

	return r
}

func (r *Resolver) Title(model any, property string) string {
	if r.names == nil {
		return property
	}

	display, ok := r.names.DisplayName(model, property)
	if !ok {
		return property
	}

	// A display name with verbs would be read as a format.
	if r.printer == nil || strings.Contains(display, "%") {
		return display
	}

	return r.printer.Sprintf(display)
}
