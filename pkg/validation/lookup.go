package validation

// PropertyLookup reads a named property from a model. Resolve returns an
// error wrapping ErrPropertyNotFound when the model has no such property.
type PropertyLookup interface {
	Resolve(model any, property string) (any, error)
}

type PropertyLookupFunc func(model any, property string) (any, error)

func (f PropertyLookupFunc) Resolve(model any, property string) (any, error) {
	return f(model, property)
}

// TitleLookup returns the user-facing name of a property on a model. An
// implementation that knows nothing better returns the property name.
type TitleLookup interface {
	Title(model any, property string) string
}

type TitleLookupFunc func(model any, property string) string

func (f TitleLookupFunc) Title(model any, property string) string {
	return f(model, property)
}

type rawTitles struct{}

func (rawTitles) Title(_ any, property string) string {
	return property
}
