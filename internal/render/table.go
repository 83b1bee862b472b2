package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/mhdash/internal/analysis"
	"github.com/KaramelBytes/mhdash/internal/dashboard"
)

// WriteCounts prints one row per group: its dimension values, category and count.
func WriteCounts(w io.Writer, c *analysis.Counts) {
	table := tablewriter.NewWriter(w)
	header := make([]string, 0, len(c.Dims)+2)
	for _, d := range c.Dims {
		header = append(header, dashboard.Label(d))
	}
	table.SetHeader(append(header, "Category", "Count"))
	for _, g := range c.Groups {
		row := append(append([]string{}, g.Keys...), string(g.Category), strconv.Itoa(g.Count))
		table.Append(row)
	}
	table.SetFooter(footer(len(c.Dims)+2, c.Total()))
	table.Render()
}

// WriteSummary prints the Low/High split of every factor.
func WriteSummary(w io.Writer, v *dashboard.SummaryView) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Factor", "Low", "High", "Min", "Max"})
	for _, f := range v.Factors {
		by := f.Counts.ByCategory()
		table.Append([]string{
			f.Label,
			strconv.Itoa(by[analysis.Low]),
			strconv.Itoa(by[analysis.High]),
			fmt.Sprintf("%g", f.Bounds.Min),
			fmt.Sprintf("%g", f.Bounds.Max),
		})
	}
	table.Render()
}

// WriteBreakdown prints the raw answer shares of the overview factor.
func WriteBreakdown(w io.Writer, v *dashboard.OverviewView) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{v.Label, "Count", "Percent"})
	for _, a := range v.Breakdown {
		table.Append([]string{a.Answer, strconv.Itoa(a.Count), fmt.Sprintf("%.1f%%", a.Percent)})
	}
	table.Render()
}

// WriteCountries prints the surveys per country.
func WriteCountries(w io.Writer, v *dashboard.OverviewView) {
	if v.Map == nil {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Country", "Surveys"})
	for _, c := range v.Map.Countries {
		table.Append([]string{c.Country, strconv.Itoa(c.Count)})
	}
	table.Render()
}

// WriteLevels prints one column of values.
func WriteLevels(w io.Writer, title string, levels []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{title})
	for _, l := range levels {
		table.Append([]string{l})
	}
	table.Render()
}

func footer(n, total int) []string {
	out := make([]string, n)
	out[0] = "Total"
	out[n-1] = strconv.Itoa(total)
	return out
}
