package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

// Threshold splits scaled values: strictly above is High.
const Threshold = 0.5

// Category is the binary label derived from a scaled value.
type Category string

const (
	NoCategory Category = ""
	Low        Category = "Low"
	High       Category = "High"
)

// Categories lists the labels in display order.
var Categories = []Category{Low, High}

// Bounds are the min-max scaling bounds of the binned subset.
type Bounds struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid int     `json:"valid"`
}

// Degenerate reports whether every valid value is identical.
func (b Bounds) Degenerate() bool { return b.Min == b.Max }

// Binning is the per-row outcome of Bin.
type Binning struct {
	Bounds     Bounds
	Scaled     []float64 // NaN where the input was missing
	Categories []Category
}

// Valid returns the number of rows that received a category.
func (b Binning) Valid() int { return b.Bounds.Valid }

// Bin min-max scales the numeric cells of col using bounds computed over col
// itself, then labels each scaled value against Threshold. Callers pass the
// currently visible subset, so labels depend on the active filter.
func Bin(col []survey.Value) Binning {
	out := Binning{
		Scaled:     make([]float64, len(col)),
		Categories: make([]Category, len(col)),
	}
	nums := make([]float64, 0, len(col))
	for _, v := range col {
		if f, ok := v.Float(); ok {
			nums = append(nums, f)
		}
	}
	for i := range out.Scaled {
		out.Scaled[i] = math.NaN()
	}
	if len(nums) == 0 {
		return out
	}
	lo, err := stats.Min(nums)
	if err != nil {
		return out
	}
	hi, err := stats.Max(nums)
	if err != nil {
		return out
	}
	out.Bounds = Bounds{Min: lo, Max: hi, Valid: len(nums)}

	for i, v := range col {
		f, ok := v.Float()
		if !ok {
			continue
		}
		s := 0.0
		if hi != lo {
			s = (f - lo) / (hi - lo)
		}
		out.Scaled[i] = s
		out.Categories[i] = Categorize(s)
	}
	return out
}

// Categorize labels a scaled value.
func Categorize(scaled float64) Category {
	if scaled > Threshold {
		return High
	}
	return Low
}
