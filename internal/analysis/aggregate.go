package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/mhdash/internal/survey"
)

// GroupCount is the number of rows sharing one key combination.
type GroupCount struct {
	Keys     []string `json:"keys"`
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Counts is an aggregated count table. Groups never hold a zero count.
type Counts struct {
	Dims   []string     `json:"dims"`
	Groups []GroupCount `json:"groups"`
}

// Aggregate counts rows of t by dims plus the category label. cats must be
// aligned with t.Rows. Rows whose category or any dimension is missing are
// skipped. Groups appear in first-seen order.
func Aggregate(t *survey.Table, dims []string, cats []Category) (*Counts, error) {
	if len(cats) != t.Len() {
		return nil, fmt.Errorf("aggregate: %d categories for %d rows", len(cats), t.Len())
	}
	for _, d := range dims {
		if !t.Has(d) {
			return nil, &survey.ColumnError{Column: d}
		}
	}
	out := &Counts{Dims: append([]string(nil), dims...)}
	pos := map[string]int{}
	keys := make([]string, len(dims))
rows:
	for i := 0; i < t.Len(); i++ {
		if cats[i] == NoCategory {
			continue
		}
		row := t.Row(i)
		for j, d := range dims {
			v := row.Value(d)
			if v.IsMissing() {
				continue rows
			}
			keys[j] = v.String()
		}
		id := strings.Join(keys, "\x1f") + "\x1f" + string(cats[i])
		if p, ok := pos[id]; ok {
			out.Groups[p].Count++
			continue
		}
		pos[id] = len(out.Groups)
		out.Groups = append(out.Groups, GroupCount{
			Keys:     append(make([]string, 0, len(keys)), keys...),
			Category: cats[i],
			Count:    1,
		})
	}
	return out, nil
}

// Len returns the number of groups.
func (c *Counts) Len() int { return len(c.Groups) }

// Total sums all group counts.
func (c *Counts) Total() int {
	n := 0
	for _, g := range c.Groups {
		n += g.Count
	}
	return n
}

// Max returns the largest group count.
func (c *Counts) Max() int {
	m := 0
	for _, g := range c.Groups {
		if g.Count > m {
			m = g.Count
		}
	}
	return m
}

// ByCategory sums counts per label across all dimension keys.
func (c *Counts) ByCategory() map[Category]int {
	out := map[Category]int{}
	for _, g := range c.Groups {
		out[g.Category] += g.Count
	}
	return out
}

// Key returns the group's value for dim, or "" when dim is not a grouping dimension.
func (c *Counts) Key(g GroupCount, dim string) string {
	for i, d := range c.Dims {
		if d == dim && i < len(g.Keys) {
			return g.Keys[i]
		}
	}
	return ""
}

// SortBy orders groups by the named dimension, then by category display order.
func (c *Counts) SortBy(dim string) {
	sort.SliceStable(c.Groups, func(i, j int) bool {
		a, b := c.Key(c.Groups[i], dim), c.Key(c.Groups[j], dim)
		if a != b {
			return a < b
		}
		return categoryRank(c.Groups[i].Category) < categoryRank(c.Groups[j].Category)
	})
}

// Sorted orders groups by all keys left to right, then by category.
func (c *Counts) Sorted() {
	sort.SliceStable(c.Groups, func(i, j int) bool {
		a, b := c.Groups[i], c.Groups[j]
		for k := range a.Keys {
			if a.Keys[k] != b.Keys[k] {
				return a.Keys[k] < b.Keys[k]
			}
		}
		return categoryRank(a.Category) < categoryRank(b.Category)
	})
}

func categoryRank(c Category) int {
	for i, x := range Categories {
		if x == c {
			return i
		}
	}
	return len(Categories)
}
