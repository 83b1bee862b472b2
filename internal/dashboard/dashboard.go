package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/mhdash/internal/analysis"
	"github.com/KaramelBytes/mhdash/internal/survey"
)

// Projections supported by the overview map.
var Projections = []string{"orthographic", "natural earth", "mercator"}

// Options controls page defaults.
type Options struct {
	// FemaleOnlyOccupations are excluded for respondents not reporting female.
	FemaleOnlyOccupations []string
	// DefaultCountries seed the country page when no selection is given.
	DefaultCountries []string
	// DefaultOccupations seed the occupation page when no selection is given.
	DefaultOccupations []string
}

// DefaultOptions returns the stock page defaults.
func DefaultOptions() Options {
	return Options{
		FemaleOnlyOccupations: analysis.DefaultFemaleOnlyOccupations,
		DefaultCountries:      []string{"United States", "Canada"},
		DefaultOccupations:    []string{"Corporate", "Student"},
	}
}

// Dashboard computes page views. It holds no per-request state: every method
// takes a freshly loaded table and an explicit query.
type Dashboard struct {
	opt     Options
	recoder *analysis.Recoder
}

// New builds a Dashboard with the fixed recoding vocabulary.
func New(opt Options) *Dashboard {
	if opt.FemaleOnlyOccupations == nil {
		opt.FemaleOnlyOccupations = analysis.DefaultFemaleOnlyOccupations
	}
	return &Dashboard{opt: opt, recoder: analysis.DefaultRecoder()}
}

// CountryQuery selects countries and one stress factor.
type CountryQuery struct {
	Countries []string
	Factor    string
}

// OccupationQuery selects occupations, one factor and a gender choice.
type OccupationQuery struct {
	Occupations []string
	Factor      string
	Gender      string
}

// OverviewQuery selects the breakdown factor and map settings.
type OverviewQuery struct {
	Factor     string
	Projection string
	Intensity  *float64 // nil means 1.0
	Rotate     bool
}

// DefaultCountries returns the configured default countries present in t.
func (d *Dashboard) DefaultCountries(t *survey.Table) []string {
	return present(d.opt.DefaultCountries, t.Levels("country"))
}

// DefaultOccupations returns the configured defaults when the first of them is
// present in t, otherwise the first two occupations.
func (d *Dashboard) DefaultOccupations(t *survey.Table) []string {
	all := t.Levels("occupation")
	if len(d.opt.DefaultOccupations) > 0 && contains(all, d.opt.DefaultOccupations[0]) {
		return present(d.opt.DefaultOccupations, all)
	}
	if len(all) > 2 {
		all = all[:2]
	}
	return all
}

// Filters enumerates widget options from t.
func (d *Dashboard) Filters(t *survey.Table) FilterOptions {
	genders := []string{analysis.GenderAll}
	if t.Has("gender") {
		genders = append(genders, analysis.GenderMale, analysis.GenderFemale)
	}
	return FilterOptions{
		Countries:         t.Levels("country"),
		Occupations:       t.Levels("occupation"),
		Genders:           genders,
		StressFactors:     factorOptions(StressFactors),
		OccupationFactors: factorOptions(OccupationFactors),
		Projections:       Projections,
	}
}

// Summary bins every stress factor over the whole table.
func (d *Dashboard) Summary(t *survey.Table) *SummaryView {
	v := &SummaryView{Status: StatusNoData, Countries: len(t.Levels("country"))}
	answered := make([]bool, t.Len())
	for _, col := range StressFactors {
		vals, err := d.recoder.RecodeColumn(t, col)
		if err != nil {
			v.Warnings = append(v.Warnings, err.Error())
			continue
		}
		for i, x := range vals {
			if !x.IsMissing() {
				answered[i] = true
			}
		}
		b := analysis.Bin(vals)
		if b.Valid() == 0 {
			continue
		}
		counts, err := analysis.Aggregate(t, nil, b.Categories)
		if err != nil {
			v.Warnings = append(v.Warnings, err.Error())
			continue
		}
		counts.Sorted()
		v.Factors = append(v.Factors, FactorCounts{Factor: col, Label: Label(col), Bounds: b.Bounds, Counts: counts})
	}
	for _, ok := range answered {
		if ok {
			v.Respondents++
		}
	}
	if len(v.Factors) > 0 {
		v.Status = StatusOK
	}
	return v
}

// Country bins one stress factor over the selected countries.
func (d *Dashboard) Country(t *survey.Table, q CountryQuery) (*FactorView, error) {
	factor, err := ResolveFactor(q.Factor, StressFactors)
	if err != nil {
		return nil, err
	}
	selected := analysis.ExpandCountries(q.Countries, t.Levels("country"))
	v := &FactorView{
		Page:      "country",
		Factor:    factor,
		Label:     Label(factor),
		Dimension: "country",
		Selected:  selected,
	}
	if len(selected) == 0 {
		v.Status = StatusNoSelection
		v.Message = "Please select at least one country to display the analysis."
		return v, nil
	}
	sub := t.Where(analysis.InSet("country", selected))
	d.binAndCount(v, sub, fmt.Sprintf("No valid data found for '%s' in the selected countries.", factor))
	return v, nil
}

// Occupation bins one factor over the selected occupations and gender.
func (d *Dashboard) Occupation(t *survey.Table, q OccupationQuery) (*FactorView, error) {
	factor, err := ResolveFactor(q.Factor, OccupationFactors)
	if err != nil {
		return nil, err
	}
	gender, ok := analysis.NormalizeGender(q.Gender)
	if !ok {
		return nil, &QueryError{Field: "gender", Value: q.Gender, Allowed: []string{analysis.GenderAll, analysis.GenderMale, analysis.GenderFemale}}
	}
	if !t.Has("gender") {
		gender = analysis.GenderAll
	}
	v := &FactorView{
		Page:      "occupation",
		Factor:    factor,
		Label:     Label(factor),
		Dimension: "occupation",
		Selected:  q.Occupations,
		Gender:    gender,
	}
	if len(q.Occupations) == 1 && gender == analysis.GenderMale && analysis.IsFemaleOnly(q.Occupations[0], d.opt.FemaleOnlyOccupations) {
		v.Status = StatusIncompatible
		v.Message = fmt.Sprintf("No eligible respondents: '%s' is only reported by female respondents.", q.Occupations[0])
		return v, nil
	}
	if len(q.Occupations) == 0 {
		v.Status = StatusNoSelection
		v.Message = "Please select at least one occupation."
		return v, nil
	}
	keep := []analysis.Predicate{analysis.InSet("occupation", q.Occupations)}
	if t.Has("gender") {
		keep = append(keep, analysis.ExcludeGenderMismatch(d.opt.FemaleOnlyOccupations), analysis.GenderIs(gender))
	}
	sub := t.Where(analysis.And(keep...))
	d.binAndCount(v, sub, fmt.Sprintf("No data found for '%s' in selected occupations.", v.Label))
	if gender == analysis.GenderFemale {
		v.Responses.Male = 0
	}
	if gender == analysis.GenderMale {
		v.Responses.Female = 0
	}
	return v, nil
}

// binAndCount recodes v.Factor on sub, bins it using sub's own bounds and
// counts per v.Dimension. It fills Status, Message and Warnings.
func (d *Dashboard) binAndCount(v *FactorView, sub *survey.Table, noData string) {
	vals, err := d.recoder.RecodeColumn(sub, v.Factor)
	if err != nil {
		var ce *survey.ColumnError
		if errors.As(err, &ce) {
			v.Warnings = append(v.Warnings, err.Error())
		}
		v.Status = StatusNoData
		v.Message = noData
		return
	}
	b := analysis.Bin(vals)
	if b.Valid() == 0 {
		v.Status = StatusNoData
		v.Message = noData
		return
	}
	counts, err := analysis.Aggregate(sub, []string{v.Dimension}, b.Categories)
	if err != nil {
		v.Warnings = append(v.Warnings, err.Error())
		v.Status = StatusNoData
		v.Message = noData
		return
	}
	counts.SortBy(v.Dimension)
	v.Status = StatusOK
	v.Bounds = b.Bounds
	v.Counts = counts
	v.Responses = responses(sub, vals)
}

func responses(t *survey.Table, vals []survey.Value) Responses {
	var r Responses
	for i, x := range vals {
		if x.IsMissing() {
			continue
		}
		r.Total++
		switch strings.ToLower(t.Row(i).Text("gender")) {
		case "male":
			r.Male++
		case "female":
			r.Female++
		}
	}
	return r
}

// Overview computes quick stats, the raw answer breakdown of one factor and
// the per-country survey counts. Answers are not recoded here.
func (d *Dashboard) Overview(t *survey.Table, q OverviewQuery) (*OverviewView, error) {
	factor, err := ResolveFactor(q.Factor, StressFactors)
	if err != nil {
		return nil, err
	}
	projection := strings.ToLower(strings.TrimSpace(q.Projection))
	if projection == "" {
		projection = Projections[0]
	}
	if !contains(Projections, projection) {
		return nil, &QueryError{Field: "projection", Value: q.Projection, Allowed: Projections}
	}
	intensity := 1.0
	if q.Intensity != nil {
		intensity = *q.Intensity
	}
	if !(intensity >= 0.5 && intensity <= 1.5) {
		return nil, &QueryError{Field: "intensity", Value: fmt.Sprintf("%g", intensity), Allowed: []string{"0.5..1.5"}}
	}

	v := &OverviewView{Status: StatusOK, Factor: factor, Label: Label(factor), Countries: len(t.Levels("country"))}
	for _, col := range StressFactors {
		vals, err := t.Column(col)
		if err != nil {
			continue
		}
		v.Responses += analysis.CountValid(vals)
	}
	if t.Has("gender") {
		v.Gender = genderShare(t)
	}

	if raw, err := t.Column(factor); err == nil {
		v.Breakdown = breakdown(raw)
	} else {
		v.Warnings = append(v.Warnings, fmt.Sprintf("No data available for '%s'!", factor))
	}

	countries := countryCounts(t)
	if len(countries) == 0 {
		v.Warnings = append(v.Warnings, "No country data available in the dataset!")
	} else {
		m := &SurveyMap{Countries: countries, Projection: projection, ZMax: float64(countries[0].Count) * intensity}
		if q.Rotate {
			m.RotationLon = 90
		}
		v.Map = m
	}
	if v.Breakdown == nil && v.Map == nil {
		v.Status = StatusNoData
	}
	return v, nil
}

func genderShare(t *survey.Table) *GenderShare {
	vals, _ := t.Column("gender")
	var total, male, female int
	for _, x := range vals {
		if x.IsMissing() {
			continue
		}
		total++
		switch strings.ToLower(x.String()) {
		case "male":
			male++
		case "female":
			female++
		}
	}
	g := &GenderShare{}
	if total > 0 {
		g.MalePct = float64(male) * 100 / float64(total)
		g.FemalePct = float64(female) * 100 / float64(total)
	}
	return g
}

func breakdown(raw []survey.Value) []AnswerShare {
	counts := map[string]int{}
	total := 0
	for _, x := range raw {
		if x.IsMissing() {
			continue
		}
		counts[x.String()]++
		total++
	}
	if total == 0 {
		return nil
	}
	out := make([]AnswerShare, 0, len(counts))
	for k, n := range counts {
		out = append(out, AnswerShare{Answer: k, Count: n, Percent: float64(n) * 100 / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Answer < out[j].Answer
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func countryCounts(t *survey.Table) []CountryCount {
	vals, err := t.Column("country")
	if err != nil {
		return nil
	}
	counts := map[string]int{}
	for _, x := range vals {
		if !x.IsMissing() {
			counts[x.String()]++
		}
	}
	out := make([]CountryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CountryCount{Country: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Country < out[j].Country
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func present(want, all []string) []string {
	var out []string
	for _, w := range want {
		if contains(all, w) {
			out = append(out, w)
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
