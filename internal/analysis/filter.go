package analysis

import (
	"strings"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

// AllCountries is the pseudo-option that selects every country.
const AllCountries = "All Countries"

// Gender filter choices.
const (
	GenderAll    = "All"
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// DefaultFemaleOnlyOccupations are occupations only reported by women.
var DefaultFemaleOnlyOccupations = []string{"housewife"}

// Predicate selects rows.
type Predicate func(survey.Row) bool

// And combines predicates; an empty list keeps every row.
func And(ps ...Predicate) Predicate {
	return func(r survey.Row) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// InSet keeps rows whose col exactly matches one of values.
func InSet(col string, values []string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(r survey.Row) bool {
		v := r.Value(col)
		if v.IsMissing() {
			return false
		}
		_, ok := set[v.String()]
		return ok
	}
}

// GenderIs keeps rows whose gender matches choice case-insensitively. "All" or
// an empty choice keeps every row.
func GenderIs(choice string) Predicate {
	want := strings.ToLower(strings.TrimSpace(choice))
	if want == "" || want == strings.ToLower(GenderAll) {
		return func(survey.Row) bool { return true }
	}
	return func(r survey.Row) bool {
		return strings.ToLower(r.Text("gender")) == want
	}
}

// ExcludeGenderMismatch drops rows with a female-only occupation whose gender
// is not female.
func ExcludeGenderMismatch(femaleOnly []string) Predicate {
	set := lowerSet(femaleOnly)
	return func(r survey.Row) bool {
		if _, ok := set[strings.ToLower(r.Text("occupation"))]; !ok {
			return true
		}
		return strings.ToLower(r.Text("gender")) == "female"
	}
}

// IsFemaleOnly reports whether occupation is in the female-only set.
func IsFemaleOnly(occupation string, femaleOnly []string) bool {
	_, ok := lowerSet(femaleOnly)[strings.ToLower(occupation)]
	return ok
}

// ExpandCountries replaces a selection containing AllCountries with every country.
func ExpandCountries(selected, all []string) []string {
	for _, s := range selected {
		if s == AllCountries {
			return append([]string(nil), all...)
		}
	}
	return selected
}

// NormalizeGender maps user input onto one of the gender choices; ok is false for unknown input.
func NormalizeGender(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return GenderAll, true
	case "male":
		return GenderMale, true
	case "female":
		return GenderFemale, true
	}
	return "", false
}

func lowerSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
