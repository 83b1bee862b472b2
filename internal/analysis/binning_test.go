package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

func nums(fs ...float64) []survey.Value {
	out := make([]survey.Value, len(fs))
	for i, f := range fs {
		out[i] = survey.NumberValue(f)
	}
	return out
}

func TestBin_YesNoOften(t *testing.T) {
	vals := DefaultRecoder().Recode(texts("Yes", "No", "Often"))
	b := Bin(vals)

	assert.Equal(t, Bounds{Min: 0, Max: 3, Valid: 3}, b.Bounds)
	assert.InDelta(t, 1.0/3.0, b.Scaled[0], 1e-9)
	assert.Equal(t, 0.0, b.Scaled[1])
	assert.Equal(t, 1.0, b.Scaled[2])
	assert.Equal(t, []Category{Low, Low, High}, b.Categories)
}

func TestBin_MidpointIsLow(t *testing.T) {
	b := Bin(nums(0, 2, 4))
	assert.Equal(t, 0.5, b.Scaled[1])
	assert.Equal(t, Low, b.Categories[1])
	assert.Equal(t, High, b.Categories[2])
}

func TestBin_Degenerate(t *testing.T) {
	for _, vals := range [][]survey.Value{
		nums(35),
		nums(4, 4, 4),
		append(nums(60, 60), survey.Value{}),
	} {
		b := Bin(vals)
		require.True(t, b.Bounds.Degenerate())
		for i, v := range vals {
			if v.IsMissing() {
				assert.Equal(t, NoCategory, b.Categories[i])
				continue
			}
			assert.Equal(t, 0.0, b.Scaled[i])
			assert.Equal(t, Low, b.Categories[i])
		}
	}
}

func TestBin_NoValidValues(t *testing.T) {
	b := Bin([]survey.Value{{}, survey.TextValue("Maybe")})
	assert.Equal(t, 0, b.Valid())
	assert.Equal(t, []Category{NoCategory, NoCategory}, b.Categories)
	assert.True(t, math.IsNaN(b.Scaled[0]))

	empty := Bin(nil)
	assert.Equal(t, 0, empty.Valid())
}

func TestBin_ThresholdProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(20)
		fs := make([]float64, n)
		for i := range fs {
			fs[i] = float64(rng.Intn(61))
		}
		b := Bin(nums(fs...))
		lo, hi := b.Bounds.Min, b.Bounds.Max
		for i, f := range fs {
			if lo == hi {
				assert.Equal(t, Low, b.Categories[i])
				continue
			}
			want := Low
			if (f-lo)/(hi-lo) > Threshold {
				want = High
			}
			assert.Equal(t, want, b.Categories[i], "value %v in [%v,%v]", f, lo, hi)
		}
	}
}

// Bounds follow the subset, so the same raw answer can change label.
func TestBin_LabelsDependOnSubset(t *testing.T) {
	full := Bin(nums(0, 1, 4))
	assert.Equal(t, Low, full.Categories[1])

	subset := Bin(nums(0, 1))
	assert.Equal(t, High, subset.Categories[1])
}
