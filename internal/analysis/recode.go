package analysis

import (
	"sort"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

// vocabulary maps survey answer tokens to ordinal scores. Never mutated.
var vocabulary = map[string]float64{
	"No":                 0,
	"Yes":                1,
	"Rarely":             1,
	"Sometimes":          2,
	"Often":              3,
	"Always":             4,
	"1-14 days":          7,
	"15-30 days":         22,
	"More than 30 days":  35,
	"Go out Every day":   0,
	"More than 2 months": 60,
}

// Vocabulary returns a copy of the fixed recoding table.
func Vocabulary() map[string]float64 {
	out := make(map[string]float64, len(vocabulary))
	for k, v := range vocabulary {
		out[k] = v
	}
	return out
}

// Tokens returns the recognised answer tokens in sorted order.
func Tokens() []string {
	out := make([]string, 0, len(vocabulary))
	for k := range vocabulary {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Recoder maps raw answer tokens to numeric scores.
type Recoder struct {
	table map[string]float64
}

// DefaultRecoder uses the fixed survey vocabulary.
func DefaultRecoder() *Recoder { return &Recoder{table: vocabulary} }

// NewRecoder builds a recoder over a private copy of table.
func NewRecoder(table map[string]float64) *Recoder {
	cp := make(map[string]float64, len(table))
	for k, v := range table {
		cp[k] = v
	}
	return &Recoder{table: cp}
}

// Token recodes a single token; ok is false when it is not in the vocabulary.
func (r *Recoder) Token(s string) (float64, bool) {
	f, ok := r.table[s]
	return f, ok
}

// Recode converts text cells by exact match. Unmatched text becomes missing,
// numbers and missing cells pass through, so a second pass changes nothing.
func (r *Recoder) Recode(col []survey.Value) []survey.Value {
	out := make([]survey.Value, len(col))
	for i, v := range col {
		switch v.Kind {
		case survey.Text:
			if f, ok := r.table[v.Str]; ok {
				out[i] = survey.NumberValue(f)
			}
		case survey.Number:
			out[i] = v
		}
	}
	return out
}

// RecodeColumn loads col from t and recodes it.
func (r *Recoder) RecodeColumn(t *survey.Table, col string) ([]survey.Value, error) {
	vals, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	return r.Recode(vals), nil
}

// CountValid returns the number of non-missing cells.
func CountValid(col []survey.Value) int {
	n := 0
	for _, v := range col {
		if !v.IsMissing() {
			n++
		}
	}
	return n
}
