package dashboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StressFactors are the ordinal factors on the summary, country and overview pages.
var StressFactors = []string{"growing_stress", "coping_struggles", "changes_habits", "social_weakness"}

// OccupationFactors are the ordinal factors on the occupation page.
var OccupationFactors = []string{"growing_stress", "changes_habits", "mental_health_history", "coping_struggles", "work_interest", "social_weakness"}

// FactorOption pairs a column with its display label.
type FactorOption struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

// Label renders a column name for display: "growing_stress" -> "Growing Stress".
// A Caser holds state, so each call builds its own.
func Label(col string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(col, "_", " "))
}

func factorOptions(cols []string) []FactorOption {
	out := make([]FactorOption, len(cols))
	for i, c := range cols {
		out[i] = FactorOption{Column: c, Label: Label(c)}
	}
	return out
}

// ResolveFactor accepts a column name or its label and returns the column.
// An empty input resolves to the first allowed factor.
func ResolveFactor(in string, allowed []string) (string, error) {
	s := strings.TrimSpace(in)
	if s == "" {
		return allowed[0], nil
	}
	for _, c := range allowed {
		if strings.EqualFold(s, c) || strings.EqualFold(s, Label(c)) {
			return c, nil
		}
	}
	return "", &QueryError{Field: "factor", Value: in, Allowed: allowed}
}

// QueryError reports an invalid filter selection.
type QueryError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *QueryError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s: %q (use one of: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}
