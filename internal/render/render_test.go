package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/survey"
)

func fixture() *survey.Table {
	return survey.NewTable("fixture.csv",
		[]string{"Gender", "Country", "Occupation", "Growing Stress", "Coping Struggles", "Changes Habits", "Social Weakness"},
		[][]string{
			{"Female", "United States", "Corporate", "Yes", "No", "Yes", "No"},
			{"Male", "United States", "Student", "No", "Yes", "No", "Yes"},
			{"Female", "Canada", "Housewife", "Yes", "Yes", "No", "No"},
			{"Male", "Canada", "Corporate", "No", "No", "Yes", "Yes"},
		})
}

func countryView(t *testing.T) *dashboard.FactorView {
	t.Helper()
	v, err := dashboard.New(dashboard.DefaultOptions()).Country(fixture(), dashboard.CountryQuery{Countries: []string{"United States", "Canada"}})
	require.NoError(t, err)
	require.Equal(t, dashboard.StatusOK, v.Status)
	return v
}

func TestChartSVG(t *testing.T) {
	v := countryView(t)
	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, v, Bar, SVG, Size{Width: 800, Height: 400}))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Canada")
	assert.Contains(t, out, "High")
}

func TestChartPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, countryView(t), Pie, PNG, DefaultSize))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestChartSummaryAndOverview(t *testing.T) {
	d := dashboard.New(dashboard.DefaultOptions())
	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, d.Summary(fixture()), Bar, SVG, DefaultSize))
	assert.Contains(t, buf.String(), "Growing")

	ov, err := d.Overview(fixture(), dashboard.OverviewQuery{})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, Chart(&buf, ov, Bar, SVG, DefaultSize))
	assert.Contains(t, buf.String(), "United States")
	buf.Reset()
	require.NoError(t, Chart(&buf, ov, Pie, SVG, DefaultSize))
	assert.Contains(t, buf.String(), "Yes")
}

func TestChartNotDrawable(t *testing.T) {
	v, err := dashboard.New(dashboard.DefaultOptions()).Country(fixture(), dashboard.CountryQuery{})
	require.NoError(t, err)
	assert.ErrorIs(t, Chart(&bytes.Buffer{}, v, Bar, SVG, DefaultSize), ErrNotDrawable)
	assert.Error(t, Chart(&bytes.Buffer{}, "nope", Bar, SVG, DefaultSize))
}

func TestParse(t *testing.T) {
	f, err := ParseFormat("out/chart.PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	_, err = ParseFormat("gif")
	assert.Error(t, err)

	k, err := ParseKind("Pie")
	require.NoError(t, err)
	assert.Equal(t, Pie, k)
	_, err = ParseKind("line")
	assert.Error(t, err)
}

func TestWriteCounts(t *testing.T) {
	var buf bytes.Buffer
	WriteCounts(&buf, countryView(t).Counts)
	out := buf.String()
	assert.Contains(t, out, "United States")
	assert.Contains(t, out, "High")
	assert.Contains(t, strings.ToUpper(out), "TOTAL")
}

func TestWriteWorkbook(t *testing.T) {
	d := dashboard.New(dashboard.DefaultOptions())
	ov, err := d.Overview(fixture(), dashboard.OverviewQuery{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, countryView(t), d.Summary(fixture()), ov))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Country", "Summary", "Breakdown", "Countries"}, f.GetSheetList())

	rows, err := f.GetRows("Country")
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Category", "Growing Stress"}, rows[0])
	assert.Equal(t, []string{"Canada", "Low", "1"}, rows[1])
	assert.Len(t, rows, 5)
}

func TestSheetsForBlockedView(t *testing.T) {
	v, err := dashboard.New(dashboard.DefaultOptions()).Occupation(fixture(), dashboard.OccupationQuery{Occupations: []string{"Housewife"}, Gender: "Male"})
	require.NoError(t, err)
	sheets, err := Sheets(v)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "Occupation", sheets[0].Name)
	assert.Equal(t, "incompatible", sheets[0].Rows[0][0])
}
