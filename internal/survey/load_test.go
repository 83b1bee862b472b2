package survey

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var surveyRows = []string{
	"Timestamp,Gender,Country,Occupation,Growing Stress,Mood Swings",
	"8/27/2014 11:29,Female,United States,Corporate,Yes,Medium",
	"8/27/2014 11:31,Male,Poland,Student,No,Low",
	"8/27/2014 11:29,Female,United States,Corporate,Yes,Medium",
	"8/27/2014 11:40,Female,Canada,Housewife,Maybe,",
}

func writeCSV(t *testing.T, name string, rows []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadCSV_NormalizesAndDedupes(t *testing.T) {
	tbl, err := Load(writeCSV(t, "mental_health.csv", surveyRows))
	require.NoError(t, err)

	assert.Equal(t, "mental_health.csv", tbl.Name)
	assert.Equal(t, []string{"timestamp", "gender", "country", "occupation", "growing_stress", "mood_swings"}, tbl.Columns)
	assert.Equal(t, 3, tbl.Len(), "exact duplicate row should be dropped")

	for _, c := range []string{"gender", "country", "occupation"} {
		assert.True(t, tbl.IsCategorical(c), c)
	}
	assert.False(t, tbl.IsCategorical("treatment"), "absent column is never categorical")
	assert.False(t, tbl.IsCategorical("growing_stress"))

	assert.Equal(t, []string{"Canada", "Poland", "United States"}, tbl.Levels("country"))
	assert.Nil(t, tbl.Levels("nope"))
}

func TestLoadCSV_EmptyCellsAreMissing(t *testing.T) {
	tbl, err := Load(writeCSV(t, "survey.csv", surveyRows))
	require.NoError(t, err)

	col, err := tbl.Column("mood_swings")
	require.NoError(t, err)
	require.Len(t, col, 3)
	assert.Equal(t, Text, col[0].Kind)
	assert.True(t, col[2].IsMissing())

	stress, err := tbl.Column("growing_stress")
	require.NoError(t, err)
	assert.Equal(t, "Maybe", stress[2].Str, "loader performs no recoding")
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestLoad_Unsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "survey.parquet")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	_, err := Load(p)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadTSV(t *testing.T) {
	rows := []string{"Country\tGender", "India\tMale", "India\tMale"}
	tbl, err := Load(writeCSV(t, "survey.tsv", rows))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, "India", tbl.Row(0).Text("country"))
}

func TestLoadCSV_ByteOrderMark(t *testing.T) {
	p := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(p, []byte("\uFEFFCountry,Gender,Growing Stress\nCanada,Male,Yes\n"), 0o644))

	tbl, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "gender", "growing_stress"}, tbl.Columns)
	assert.True(t, tbl.Has("country"))
	assert.True(t, tbl.IsCategorical("country"))
	assert.Equal(t, []string{"Canada"}, tbl.Levels("country"))
}

func TestLoadCSV_StrayQuoteIsText(t *testing.T) {
	rows := []string{"Country,Occupation,Growing Stress", `Canada,Others "IT",Yes`}
	tbl, err := Load(writeCSV(t, "survey.csv", rows))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, `Others "IT"`, tbl.Row(0).Text("occupation"))
	assert.Equal(t, "Yes", tbl.Row(0).Text("growing_stress"))
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"Country", "Gender", "Coping Struggles"},
		{"Canada", "Female", "Yes"},
		{"Canada", "Male", "No"},
		{"Canada", "Male", "No"},
	}
	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	p := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(p))

	tbl, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "gender", "coping_struggles"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.IsCategorical("country"))
}

func TestWhereSharesHeader(t *testing.T) {
	tbl, err := Load(writeCSV(t, "survey.csv", surveyRows))
	require.NoError(t, err)

	sub := tbl.Where(func(r Row) bool { return r.Text("country") == "United States" })
	assert.Equal(t, 1, sub.Len())
	assert.True(t, sub.IsCategorical("country"))
	assert.Equal(t, "Corporate", sub.Row(0).Text("occupation"))
	assert.True(t, sub.Row(0).Value("unknown").IsMissing())
}

func TestNormalizeColumnName(t *testing.T) {
	cases := map[string]string{
		"Growing Stress":    "growing_stress",
		" Mental_Health ":   "mental_health",
		"Days Indoors":      "days_indoors",
		"self_employed":     "self_employed",
		"Work Interest Now": "work_interest_now",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Errorf("NormalizeColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}
