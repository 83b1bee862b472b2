package dashboard

import "github.com/KaramelBytes/mhdash/internal/analysis"

// Status tells the presentation layer whether a chart can be drawn.
type Status string

const (
	StatusOK           Status = "ok"
	StatusNoSelection  Status = "no_selection"
	StatusNoData       Status = "no_data"
	StatusIncompatible Status = "incompatible"
)

// Responses are the key statistics shown next to a factor chart.
type Responses struct {
	Total  int `json:"total"`
	Male   int `json:"male"`
	Female int `json:"female"`
}

// FactorView is one factor binned over a filtered subset and counted per dimension.
type FactorView struct {
	Page      string           `json:"page"`
	Factor    string           `json:"factor"`
	Label     string           `json:"label"`
	Dimension string           `json:"dimension"`
	Selected  []string         `json:"selected"`
	Gender    string           `json:"gender,omitempty"`
	Status    Status           `json:"status"`
	Message   string           `json:"message,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Bounds    analysis.Bounds  `json:"bounds"`
	Counts    *analysis.Counts `json:"counts,omitempty"`
	Responses Responses        `json:"responses"`
}

// FactorCounts is one factor's Low/High split on the summary page.
type FactorCounts struct {
	Factor string           `json:"factor"`
	Label  string           `json:"label"`
	Bounds analysis.Bounds  `json:"bounds"`
	Counts *analysis.Counts `json:"counts"`
}

// SummaryView covers every stress factor over the whole table.
type SummaryView struct {
	Status      Status         `json:"status"`
	Factors     []FactorCounts `json:"factors"`
	Countries   int            `json:"countries"`
	Respondents int            `json:"respondents"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// AnswerShare is one raw answer's share of a factor.
type AnswerShare struct {
	Answer  string  `json:"answer"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// GenderShare is the male/female split over respondents reporting a gender.
type GenderShare struct {
	MalePct   float64 `json:"male_pct"`
	FemalePct float64 `json:"female_pct"`
}

// CountryCount is the number of surveys per country.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// SurveyMap is the choropleth input for the overview globe.
type SurveyMap struct {
	Countries   []CountryCount `json:"countries"`
	ZMax        float64        `json:"zmax"`
	Projection  string         `json:"projection"`
	RotationLon float64        `json:"rotation_lon"`
}

// OverviewView holds the overview page's quick stats, answer breakdown and map.
type OverviewView struct {
	Status    Status        `json:"status"`
	Responses int           `json:"responses"`
	Countries int           `json:"countries"`
	Gender    *GenderShare  `json:"gender,omitempty"`
	Factor    string        `json:"factor"`
	Label     string        `json:"label"`
	Breakdown []AnswerShare `json:"breakdown,omitempty"`
	Map       *SurveyMap    `json:"map,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// FilterOptions populate the filter widgets.
type FilterOptions struct {
	Countries         []string       `json:"countries"`
	Occupations       []string       `json:"occupations"`
	Genders           []string       `json:"genders"`
	StressFactors     []FactorOption `json:"stress_factors"`
	OccupationFactors []FactorOption `json:"occupation_factors"`
	Projections       []string       `json:"projections"`
}
