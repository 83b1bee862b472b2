package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

func texts(ss ...string) []survey.Value {
	out := make([]survey.Value, len(ss))
	for i, s := range ss {
		out[i] = survey.TextValue(s)
	}
	return out
}

func TestRecode_Vocabulary(t *testing.T) {
	want := map[string]float64{
		"No": 0, "Yes": 1,
		"Rarely": 1, "Sometimes": 2, "Often": 3, "Always": 4,
		"1-14 days": 7, "15-30 days": 22, "More than 30 days": 35,
		"Go out Every day": 0, "More than 2 months": 60,
	}
	assert.Equal(t, want, Vocabulary())
	assert.Len(t, Tokens(), len(want))

	r := DefaultRecoder()
	for _, tok := range Tokens() {
		got := r.Recode(texts(tok))
		f, ok := got[0].Float()
		require.True(t, ok, tok)
		assert.Equal(t, want[tok], f, tok)
	}
}

func TestRecode_UnmatchedTokensAreMissing(t *testing.T) {
	r := DefaultRecoder()
	for _, tok := range []string{"Maybe", "yes", "NO", "5", "1.0", " Yes", "Not sure"} {
		got := r.Recode(texts(tok))
		assert.True(t, got[0].IsMissing(), "%q should be missing", tok)
	}
	got := r.Recode([]survey.Value{{}})
	assert.True(t, got[0].IsMissing())
}

func TestRecode_Idempotent(t *testing.T) {
	r := DefaultRecoder()
	once := r.Recode(texts("Yes", "Maybe", "", "Often", "More than 2 months"))
	twice := r.Recode(once)
	assert.Equal(t, once, twice)

	numeric := []survey.Value{survey.NumberValue(3), survey.NumberValue(0.25)}
	assert.Equal(t, numeric, r.Recode(numeric))
}

func TestRecode_DoesNotMutateInput(t *testing.T) {
	in := texts("Yes", "No")
	_ = DefaultRecoder().Recode(in)
	assert.Equal(t, survey.Text, in[0].Kind)
}

func TestNewRecoder_CopiesTable(t *testing.T) {
	table := map[string]float64{"Low": 1}
	r := NewRecoder(table)
	table["Low"] = 99
	f, ok := r.Token("Low")
	require.True(t, ok)
	assert.Equal(t, 1.0, f)
	_, ok = r.Token("High")
	assert.False(t, ok)
}

func TestRecodeColumn_MissingColumn(t *testing.T) {
	tbl := survey.NewTable("t", []string{"Country"}, [][]string{{"India"}})
	_, err := DefaultRecoder().RecodeColumn(tbl, "growing_stress")
	var ce *survey.ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "growing_stress", ce.Column)
}

// A token outside the vocabulary drops the respondent from the factor's counts.
func TestRecode_UnknownTokenExcludedFromCounts(t *testing.T) {
	tbl := survey.NewTable("t", []string{"Country", "Growing Stress"}, [][]string{
		{"India", "Yes"},
		{"India", "No"},
		{"India", "Maybe"},
	})
	vals, err := DefaultRecoder().RecodeColumn(tbl, "growing_stress")
	require.NoError(t, err)
	assert.True(t, vals[2].IsMissing())

	b := Bin(vals)
	assert.Equal(t, 2, b.Valid())
	assert.True(t, math.IsNaN(b.Scaled[2]))
	assert.Equal(t, NoCategory, b.Categories[2])

	counts, err := Aggregate(tbl, []string{"country"}, b.Categories)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total())
}
