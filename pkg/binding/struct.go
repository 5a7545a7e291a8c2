// Package binding reads properties and their display names from the models
// a form is bound to.
package binding

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

const (
	// TagName renames a property. A field tagged `form:"start_date"` is
	// resolved by that name as well as by its Go name.
	TagName = "form"
	// TagDisplay declares the user-facing name of a property.
	TagDisplay = "display"
)

var typeOfDecimal = reflect.TypeFor[apd.Decimal]()

type property struct {
	index   []int
	display string
}

// StructLookup resolves properties of structs and pointers to structs. The
// property table of each struct type is built once and reused.
type StructLookup struct {
	types sync.Map
}

var (
	_ validation.PropertyLookup = (*StructLookup)(nil)
	_ validation.TitleLookup    = (*StructLookup)(nil)
)

func NewStructLookup() *StructLookup {
	return &StructLookup{}
}

func (l *StructLookup) Resolve(model any, name string) (any, error) {
	v, ok := structValue(model)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %T", validation.ErrPropertyNotFound, name, model)
	}

	p, ok := l.properties(v.Type())[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", validation.ErrPropertyNotFound, name, v.Type())
	}

	field, err := v.FieldByIndexErr(p.index)
	if err != nil {
		return nil, nil
	}

	return unwrap(field), nil
}

// DisplayName returns the declared display name of a property.
func (l *StructLookup) DisplayName(model any, name string) (string, bool) {
	v, ok := structValue(model)
	if !ok {
		return "", false
	}

	p, ok := l.properties(v.Type())[name]
	if !ok || p.display == "" {
		return "", false
	}

	return p.display, true
}

// Title returns the declared display name, or name itself.
func (l *StructLookup) Title(model any, name string) string {
	if display, ok := l.DisplayName(model, name); ok {
		return display
	}

	return name
}

// Properties lists the property names of model's type in field order.
func (l *StructLookup) Properties(model any) []string {
	v, ok := structValue(model)
	if !ok {
		return nil
	}

	var names []string

	for _, field := range reflect.VisibleFields(v.Type()) {
		if field.IsExported() && !field.Anonymous {
			names = append(names, field.Name)
		}
	}

	return names
}

func (l *StructLookup) properties(t reflect.Type) map[string]property {
	if cached, ok := l.types.Load(t); ok {
		return cached.(map[string]property)
	}

	props := make(map[string]property)

	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}

		p := property{
			index:   field.Index,
			display: field.Tag.Get(TagDisplay),
		}

		props[field.Name] = p

		if alias, _, _ := strings.Cut(field.Tag.Get(TagName), ","); alias != "" && alias != "-" {
			props[alias] = p
		}
	}

	actual, _ := l.types.LoadOrStore(t, props)

	return actual.(map[string]property)
}

func structValue(model any) (reflect.Value, bool) {
	v := reflect.ValueOf(model)

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.Kind() == reflect.Struct
}

// unwrap dereferences optional fields so that a nil pointer reads as a
// missing value. Decimals keep their pointer representation.
func unwrap(v reflect.Value) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}

		if v.Kind() == reflect.Pointer && v.Type().Elem() == typeOfDecimal {
			return v.Interface()
		}

		v = v.Elem()
	}

	return v.Interface()
}
