package clientrules_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/architeacher/fieldcompare/pkg/clientrules"
	"github.com/architeacher/fieldcompare/pkg/datatype"
	"github.com/architeacher/fieldcompare/pkg/operator"
	"github.com/architeacher/fieldcompare/pkg/titles"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

func TestFormatPropertyForClientValidation(t *testing.T) {
	t.Parallel()

	name, err := clientrules.FormatPropertyForClientValidation("Start")
	require.NoError(t, err)
	require.Equal(t, "*.Start", name)

	_, err = clientrules.FormatPropertyForClientValidation("")
	require.ErrorIs(t, err, clientrules.ErrEmptyProperty)
}

func TestResolveOtherName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		element  string
		other    string
		expected string
	}{
		{name: "top level", element: "End", other: "*.Start", expected: "Start"},
		{name: "nested", element: "Trip.Return.End", other: "*.Start", expected: "Trip.Return.Start"},
		{name: "absolute name", element: "Trip.End", other: "Start", expected: "Start"},
		{name: "prefix only once", element: "Trip.End", other: "*.*.Start", expected: "Trip.*.Start"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, clientrules.ResolveOtherName(tc.element, tc.other))
		})
	}
}

func newGenerator(t *testing.T, tag language.Tag) *clientrules.Generator {
	t.Helper()

	names := titles.NewResolver(titles.Static{"Start": "Start date"}, tag, nil)

	messages, err := validation.NewMessageFormatter(tag)
	require.NoError(t, err)

	return clientrules.NewGenerator(names, messages)
}

func TestGenerator_Compare(t *testing.T) {
	t.Parallel()

	decl := validation.MustComparisonDeclaration("Start",
		validation.WithOperator(operator.GreaterThan),
		validation.WithDataType(datatype.Date),
	)

	rule, err := newGenerator(t, language.English).Compare(decl, validation.Field{Name: "End", DisplayName: "End date"})
	require.NoError(t, err)

	require.Equal(t, clientrules.Rule{
		ValidationType: "compareoperator",
		ErrorMessage:   "End date must be greater than Start date.",
		Parameters: map[string]string{
			"other":           "*.Start",
			"datatype":        "Date",
			"compareoperator": "GreaterThan",
		},
	}, rule)
}

func TestGenerator_CustomMessage(t *testing.T) {
	t.Parallel()

	decl := validation.MustComparisonDeclaration("Start",
		validation.WithOperator(operator.LessThan),
		validation.WithErrorMessage("%[2]s comes after %[1]s."),
	)

	rule, err := newGenerator(t, language.German).Compare(decl, validation.Field{Name: "End"})
	require.NoError(t, err)
	require.Equal(t, "Start date comes after End.", rule.ErrorMessage)
}

func TestGenerator_TypeCheckAndCoupled(t *testing.T) {
	t.Parallel()

	g := clientrules.NewGenerator(nil, nil)

	typeDecl, err := validation.NewTypeDeclaration(datatype.Integer)
	require.NoError(t, err)

	rule := g.TypeCheck(typeDecl, validation.Field{Name: "Guests"})
	require.Equal(t, "compareoperatortypecheck", rule.ValidationType)
	require.Equal(t, "Guests must be a whole number.", rule.ErrorMessage)
	require.Equal(t, map[string]string{"datatype": "Integer"}, rule.Parameters)

	coupledDecl, err := validation.NewCoupledDeclaration("End")
	require.NoError(t, err)

	rule, err = g.Coupled(coupledDecl)
	require.NoError(t, err)
	require.Equal(t, "coupled", rule.ValidationType)
	require.Empty(t, rule.ErrorMessage)
	require.Equal(t, map[string]string{"other": "*.End"}, rule.Parameters)
}

func TestRule_StructRoundTrip(t *testing.T) {
	t.Parallel()

	rule := clientrules.Rule{
		ValidationType: "compareoperator",
		ErrorMessage:   "End must be greater than Start.",
		Parameters:     map[string]string{"other": "*.Start", "datatype": "Date"},
	}

	s, err := rule.ToStruct()
	require.NoError(t, err)
	require.Equal(t, "compareoperator", s.GetFields()["validationType"].GetStringValue())
	require.Equal(t, rule, clientrules.FromStruct(s))
}

func TestRenderAttributes(t *testing.T) {
	t.Parallel()

	g := newGenerator(t, language.English)
	field := validation.Field{Name: "End", DisplayName: "End <date>"}

	compare, err := g.Compare(validation.MustComparisonDeclaration("Start",
		validation.WithOperator(operator.GreaterThanEqual),
		validation.WithDataType(datatype.Date),
	), field)
	require.NoError(t, err)

	typeDecl, err := validation.NewTypeDeclaration(datatype.Date)
	require.NoError(t, err)

	coupledDecl, err := validation.NewCoupledDeclaration("Start")
	require.NoError(t, err)

	coupled, err := g.Coupled(coupledDecl)
	require.NoError(t, err)

	cases := []struct {
		name  string
		rules []clientrules.Rule
	}{
		{name: "compare", rules: []clientrules.Rule{compare}},
		{name: "compare_typecheck_coupled", rules: []clientrules.Rule{compare, g.TypeCheck(typeDecl, field), coupled}},
		{name: "none", rules: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gold := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)

			gold.Assert(t, tc.name, []byte(clientrules.RenderAttributes(clientrules.Attributes(tc.rules...))))
		})
	}
}
