package dashboard

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/mhdash/internal/analysis"
)

// Markdown renders a compact report of the view.
func (v *FactorView) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s ANALYSIS]\n", strings.ToUpper(v.Page)))
	b.WriteString(fmt.Sprintf("Factor: %s\n", v.Label))
	if len(v.Selected) > 0 {
		b.WriteString(fmt.Sprintf("Selected %s: %s\n", v.Dimension, strings.Join(v.Selected, ", ")))
	}
	if v.Gender != "" {
		b.WriteString(fmt.Sprintf("Gender: %s\n", v.Gender))
	}
	writeWarnings(&b, v.Warnings)
	if v.Status != StatusOK {
		b.WriteString(fmt.Sprintf("\n[%s]\n%s\n", statusHeading(v.Status), v.Message))
		return b.String()
	}
	b.WriteString("\n[KEY STATISTICS]\n")
	b.WriteString(fmt.Sprintf("- Responses: %d\n", v.Responses.Total))
	b.WriteString(fmt.Sprintf("- Male: %d\n", v.Responses.Male))
	b.WriteString(fmt.Sprintf("- Female: %d\n", v.Responses.Female))
	b.WriteString(fmt.Sprintf("- Scale: min %.4g, max %.4g over %d values\n", v.Bounds.Min, v.Bounds.Max, v.Bounds.Valid))

	b.WriteString("\n[LOW VS HIGH]\n")
	for _, g := range v.Counts.Groups {
		b.WriteString(fmt.Sprintf("- %s / %s: %d\n", v.Counts.Key(g, v.Dimension), g.Category, g.Count))
	}
	return b.String()
}

// Markdown renders the summary page.
func (v *SummaryView) Markdown() string {
	var b strings.Builder
	b.WriteString("[SUMMARY STATISTICS]\n")
	b.WriteString(fmt.Sprintf("Total Countries: %d\n", v.Countries))
	b.WriteString(fmt.Sprintf("Total Respondents: %d\n", v.Respondents))
	writeWarnings(&b, v.Warnings)
	if v.Status != StatusOK {
		b.WriteString("\n[NO DATA]\nNo stress factor has valid responses.\n")
		return b.String()
	}
	b.WriteString("\n[MENTAL HEALTH FACTORS: LOW VS HIGH]\n")
	for _, f := range v.Factors {
		by := f.Counts.ByCategory()
		b.WriteString(fmt.Sprintf("- %s: Low %d, High %d\n", f.Label, by[analysis.Low], by[analysis.High]))
	}
	return b.String()
}

// Markdown renders the overview page.
func (v *OverviewView) Markdown() string {
	var b strings.Builder
	b.WriteString("[QUICK STATS]\n")
	b.WriteString(fmt.Sprintf("Total Responses: %d\n", v.Responses))
	b.WriteString(fmt.Sprintf("Countries: %d\n", v.Countries))
	if v.Gender != nil {
		b.WriteString(fmt.Sprintf("Male: %.1f%%\nFemale: %.1f%%\n", v.Gender.MalePct, v.Gender.FemalePct))
	} else {
		b.WriteString("Gender data N/A\n")
	}
	writeWarnings(&b, v.Warnings)
	if len(v.Breakdown) > 0 {
		b.WriteString(fmt.Sprintf("\n[%s BREAKDOWN]\n", strings.ToUpper(v.Label)))
		for _, a := range v.Breakdown {
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", a.Answer, a.Count, a.Percent))
		}
	}
	if v.Map != nil {
		b.WriteString("\n[SURVEYS PER COUNTRY]\n")
		for _, c := range v.Map.Countries {
			b.WriteString(fmt.Sprintf("- %s: %d\n", c.Country, c.Count))
		}
	}
	return b.String()
}

func writeWarnings(b *strings.Builder, ws []string) {
	if len(ws) == 0 {
		return
	}
	b.WriteString("\n[WARNINGS]\n")
	for _, w := range ws {
		b.WriteString("- ")
		b.WriteString(w)
		b.WriteString("\n")
	}
}

func statusHeading(s Status) string {
	switch s {
	case StatusNoSelection:
		return "NO SELECTION"
	case StatusIncompatible:
		return "INCOMPATIBLE SELECTION"
	default:
		return "NO DATA"
	}
}
