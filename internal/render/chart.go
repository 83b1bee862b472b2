package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/mhdash/internal/analysis"
	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

// Format is a chart image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// Kind is a chart type.
type Kind string

const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

// ErrNotDrawable is returned for views whose status is not ok.
var ErrNotDrawable = errors.New("nothing to draw")

// Size is the canvas in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is the stock canvas.
var DefaultSize = Size{Width: 1000, Height: 500}

var (
	lowColor   = drawing.ColorFromHex("1f77b4")
	highColor  = drawing.ColorFromHex("ff7f0e")
	countColor = drawing.ColorFromHex("2ca02c")
)

// CategoryColor returns the fill used for a category.
func CategoryColor(c analysis.Category) drawing.Color {
	if c == analysis.High {
		return highColor
	}
	return lowColor
}

// ParseFormat accepts "svg" or "png", or a file name ending in one of them.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if ext := utils.Ext(s); ext != "" {
		s = ext
	}
	switch Format(s) {
	case SVG, "":
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use svg or png)", s)
}

// ParseKind accepts "bar" or "pie"; empty means bar.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Bar, "":
		return Bar, nil
	case Pie:
		return Pie, nil
	}
	return "", fmt.Errorf("unsupported chart kind %q (use bar or pie)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Chart draws view as kind and writes it to w. view is one of the dashboard
// page views.
func Chart(w io.Writer, view any, kind Kind, format Format, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	var (
		r   renderable
		err error
	)
	switch v := view.(type) {
	case *dashboard.FactorView:
		if v.Status != dashboard.StatusOK {
			return ErrNotDrawable
		}
		if kind == Pie {
			r, err = categoryPie(v.Label, v.Counts.ByCategory(), size)
		} else {
			r, err = FactorBar(v, size)
		}
	case *dashboard.SummaryView:
		if v.Status != dashboard.StatusOK {
			return ErrNotDrawable
		}
		if kind == Pie {
			totals := map[analysis.Category]int{}
			for _, f := range v.Factors {
				for c, n := range f.Counts.ByCategory() {
					totals[c] += n
				}
			}
			r, err = categoryPie("Mental Health Factors", totals, size)
		} else {
			r, err = SummaryBar(v, size)
		}
	case *dashboard.OverviewView:
		if kind == Pie {
			r, err = BreakdownPie(v, size)
		} else {
			r, err = CountryBar(v, size)
		}
	default:
		return fmt.Errorf("cannot chart %T", view)
	}
	if err != nil {
		return err
	}
	if err := r.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	return nil
}

// FactorBar draws Low and High bars side by side for every dimension value.
func FactorBar(v *dashboard.FactorView, size Size) (*chart.BarChart, error) {
	if v.Counts == nil || v.Counts.Len() == 0 {
		return nil, ErrNotDrawable
	}
	bars := make([]chart.Value, 0, v.Counts.Len())
	for _, g := range v.Counts.Groups {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s · %s", v.Counts.Key(g, v.Dimension), g.Category),
			Value: float64(g.Count),
			Style: chart.Style{FillColor: CategoryColor(g.Category), StrokeColor: CategoryColor(g.Category)},
		})
	}
	title := fmt.Sprintf("%s Distribution by %s", v.Label, dashboard.Label(v.Dimension))
	return barChart(title, bars, v.Counts.Max(), size), nil
}

// SummaryBar draws the Low/High split of every stress factor.
func SummaryBar(v *dashboard.SummaryView, size Size) (*chart.BarChart, error) {
	var (
		bars []chart.Value
		peak int
	)
	for _, f := range v.Factors {
		by := f.Counts.ByCategory()
		for _, c := range analysis.Categories {
			n, ok := by[c]
			if !ok {
				continue
			}
			if n > peak {
				peak = n
			}
			bars = append(bars, chart.Value{
				Label: fmt.Sprintf("%s · %s", f.Label, c),
				Value: float64(n),
				Style: chart.Style{FillColor: CategoryColor(c), StrokeColor: CategoryColor(c)},
			})
		}
	}
	if len(bars) == 0 {
		return nil, ErrNotDrawable
	}
	return barChart("Mental Health Factors: Low vs High", bars, peak, size), nil
}

// CountryBar draws the number of surveys per country.
func CountryBar(v *dashboard.OverviewView, size Size) (*chart.BarChart, error) {
	if v.Map == nil || len(v.Map.Countries) == 0 {
		return nil, ErrNotDrawable
	}
	bars := make([]chart.Value, len(v.Map.Countries))
	for i, c := range v.Map.Countries {
		bars[i] = chart.Value{
			Label: c.Country,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: countColor, StrokeColor: countColor},
		}
	}
	top := int(v.Map.ZMax)
	if top < v.Map.Countries[0].Count {
		top = v.Map.Countries[0].Count
	}
	return barChart("Survey Distribution by Country", bars, top, size), nil
}

// BreakdownPie draws the raw answer shares of the overview factor.
func BreakdownPie(v *dashboard.OverviewView, size Size) (*chart.PieChart, error) {
	if len(v.Breakdown) == 0 {
		return nil, ErrNotDrawable
	}
	values := make([]chart.Value, len(v.Breakdown))
	for i, a := range v.Breakdown {
		values[i] = chart.Value{Label: fmt.Sprintf("%s (%.1f%%)", a.Answer, a.Percent), Value: float64(a.Count)}
	}
	return &chart.PieChart{
		Title:  v.Label + " Responses",
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}, nil
}

func categoryPie(title string, by map[analysis.Category]int, size Size) (*chart.PieChart, error) {
	var values []chart.Value
	for _, c := range analysis.Categories {
		if n := by[c]; n > 0 {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%d)", c, n),
				Value: float64(n),
				Style: chart.Style{FillColor: CategoryColor(c)},
			})
		}
	}
	if len(values) == 0 {
		return nil, ErrNotDrawable
	}
	return &chart.PieChart{Title: title, Width: size.Width, Height: size.Height, Values: values}, nil
}

// barChart leaves 20% headroom above the tallest bar.
func barChart(title string, bars []chart.Value, peak int, size Size) *chart.BarChart {
	top := float64(peak) * 1.2
	if top <= 0 {
		top = 1
	}
	width := (size.Width - 120) * 2 / (len(bars) * 3)
	switch {
	case width > 60:
		width = 60
	case width < 6:
		width = 6
	}
	return &chart.BarChart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   width,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
}
