package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

func sampleTable() *survey.Table {
	return survey.NewTable("t", []string{"Country", "Occupation", "Gender", "Growing Stress"}, [][]string{
		{"Canada", "Student", "Male", "Yes"},
		{"Canada", "Student", "Female", "No"},
		{"Canada", "Corporate", "Female", "Yes"},
		{"India", "Corporate", "Male", "No"},
		{"India", "Housewife", "Female", "Yes"},
		{"", "Student", "Male", "Yes"},
	})
}

func TestAggregate_TwoDimensions(t *testing.T) {
	tbl := sampleTable()
	vals, err := DefaultRecoder().RecodeColumn(tbl, "growing_stress")
	require.NoError(t, err)
	b := Bin(vals)

	counts, err := Aggregate(tbl, []string{"country"}, b.Categories)
	require.NoError(t, err)
	counts.SortBy("country")

	assert.Equal(t, []GroupCount{
		{Keys: []string{"Canada"}, Category: Low, Count: 1},
		{Keys: []string{"Canada"}, Category: High, Count: 2},
		{Keys: []string{"India"}, Category: Low, Count: 1},
		{Keys: []string{"India"}, Category: High, Count: 1},
	}, counts.Groups)
	assert.Equal(t, 5, counts.Total(), "row with missing country is skipped")
	assert.Equal(t, 2, counts.Max())
	assert.Equal(t, map[Category]int{Low: 2, High: 3}, counts.ByCategory())
}

func TestAggregate_OmitsEmptyGroups(t *testing.T) {
	tbl := sampleTable()
	cats := []Category{High, High, High, High, High, High}
	counts, err := Aggregate(tbl, []string{"country", "occupation"}, cats)
	require.NoError(t, err)
	for _, g := range counts.Groups {
		assert.Greater(t, g.Count, 0)
		assert.Equal(t, High, g.Category)
	}
	assert.Equal(t, 4, counts.Len())
}

func TestAggregate_CategoryOnly(t *testing.T) {
	tbl := sampleTable()
	cats := []Category{Low, NoCategory, High, Low, NoCategory, Low}
	counts, err := Aggregate(tbl, nil, cats)
	require.NoError(t, err)
	counts.Sorted()
	assert.Equal(t, []GroupCount{
		{Keys: []string{}, Category: Low, Count: 3},
		{Keys: []string{}, Category: High, Count: 1},
	}, counts.Groups)
}

func TestAggregate_Errors(t *testing.T) {
	tbl := sampleTable()
	_, err := Aggregate(tbl, []string{"country"}, []Category{Low})
	assert.Error(t, err)

	_, err = Aggregate(tbl, []string{"region"}, make([]Category, tbl.Len()))
	var ce *survey.ColumnError
	assert.ErrorAs(t, err, &ce)
}

func TestFilters(t *testing.T) {
	tbl := sampleTable()

	canada := tbl.Where(InSet("country", []string{"Canada"}))
	assert.Equal(t, 3, canada.Len())

	males := tbl.Where(GenderIs("male"))
	assert.Equal(t, 3, males.Len())
	assert.Equal(t, tbl.Len(), tbl.Where(GenderIs(GenderAll)).Len())

	housewifeMale := survey.NewTable("t", []string{"Occupation", "Gender"}, [][]string{
		{"Housewife", "Male"},
		{"Housewife", "Female"},
		{"Student", "Male"},
	})
	kept := housewifeMale.Where(And(
		InSet("occupation", []string{"Housewife"}),
		ExcludeGenderMismatch(DefaultFemaleOnlyOccupations),
		GenderIs(GenderMale),
	))
	assert.Equal(t, 0, kept.Len())
	assert.True(t, IsFemaleOnly("HouseWife", DefaultFemaleOnlyOccupations))
}

func TestExpandCountries(t *testing.T) {
	all := []string{"Canada", "India"}
	assert.Equal(t, all, ExpandCountries([]string{"Poland", AllCountries}, all))
	assert.Equal(t, []string{"Canada"}, ExpandCountries([]string{"Canada"}, all))
}

func TestNormalizeGender(t *testing.T) {
	g, ok := NormalizeGender("FEMALE")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)
	g, ok = NormalizeGender("")
	assert.True(t, ok)
	assert.Equal(t, GenderAll, g)
	_, ok = NormalizeGender("other")
	assert.False(t, ok)
}
