package binding

import (
	"fmt"
	"net/url"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

// ValuesLookup resolves properties of flat models: map[string]any,
// map[string]string and url.Values. A url.Values property reads as its first
// value.
type ValuesLookup struct{}

var _ validation.PropertyLookup = ValuesLookup{}

func NewValuesLookup() ValuesLookup {
	return ValuesLookup{}
}

func (ValuesLookup) Resolve(model any, name string) (any, error) {
	switch m := model.(type) {
	case map[string]any:
		if v, ok := m[name]; ok {
			return v, nil
		}
	case map[string]string:
		if v, ok := m[name]; ok {
			return v, nil
		}
	case url.Values:
		if v, ok := m[name]; ok {
			if len(v) == 0 {
				return nil, nil
			}

			return v[0], nil
		}
	}

	return nil, fmt.Errorf("%w: %s on %T", validation.ErrPropertyNotFound, name, model)
}

// Lookup resolves structs with a StructLookup and anything else with a
// ValuesLookup.
type Lookup struct {
	structs *StructLookup
	values  ValuesLookup
}

var (
	_ validation.PropertyLookup = (*Lookup)(nil)
	_ validation.TitleLookup    = (*Lookup)(nil)
)

func New() *Lookup {
	return &Lookup{
		structs: NewStructLookup(),
		values:  NewValuesLookup(),
	}
}

func (l *Lookup) Resolve(model any, name string) (any, error) {
	if _, ok := structValue(model); ok {
		return l.structs.Resolve(model, name)
	}

	return l.values.Resolve(model, name)
}

func (l *Lookup) DisplayName(model any, name string) (string, bool) {
	return l.structs.DisplayName(model, name)
}

func (l *Lookup) Title(model any, name string) string {
	return l.structs.Title(model, name)
}
