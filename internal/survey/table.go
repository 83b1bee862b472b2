package survey

import (
	"sort"
	"strings"
)

// CategoricalColumns are the finite-domain fields flagged on load.
var CategoricalColumns = []string{"gender", "country", "occupation", "treatment"}

// Table is an in-memory respondent table. Rows are aligned with Columns.
type Table struct {
	Name        string
	Columns     []string
	Rows        [][]Value
	index       map[string]int
	categorical map[string]bool
}

// NewTable builds a table from a raw header and text records. Column names are
// normalized, exact duplicate rows dropped and categorical fields flagged.
func NewTable(name string, header []string, records [][]string) *Table {
	t := &Table{Name: name}
	t.Columns = make([]string, len(header))
	for i, h := range header {
		t.Columns[i] = NormalizeColumnName(h)
	}
	t.reindex()

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		row := make([]Value, len(t.Columns))
		for j := range row {
			if j < len(rec) {
				row[j] = TextValue(rec[j])
			}
		}
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		t.Rows = append(t.Rows, row)
	}

	t.categorical = map[string]bool{}
	for _, c := range CategoricalColumns {
		if _, ok := t.index[c]; ok {
			t.categorical[c] = true
		}
	}
	return t
}

// NormalizeColumnName lowercases and replaces spaces with underscores.
func NormalizeColumnName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func rowKey(row []Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteByte(byte('0' + v.Kind))
		b.WriteString(v.String())
	}
	return b.String()
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// IsCategorical reports whether col was flagged as a finite-domain field.
func (t *Table) IsCategorical(col string) bool { return t.categorical[col] }

// Column returns a copy of the column's values.
func (t *Table) Column(col string) ([]Value, error) {
	j, ok := t.index[col]
	if !ok {
		return nil, &ColumnError{Column: col}
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[j]
	}
	return out, nil
}

// Levels returns the sorted unique non-missing values of a column.
func (t *Table) Levels(col string) []string {
	j, ok := t.index[col]
	if !ok {
		return nil
	}
	set := map[string]struct{}{}
	for _, r := range t.Rows {
		if r[j].IsMissing() {
			continue
		}
		set[r[j].String()] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Row is a read-only view of one table row.
type Row struct {
	t *Table
	i int
}

// Index returns the row position in its table.
func (r Row) Index() int { return r.i }

// Value returns the cell for col; missing when the column is absent.
func (r Row) Value(col string) Value {
	j, ok := r.t.index[col]
	if !ok {
		return Value{}
	}
	return r.t.Rows[r.i][j]
}

// Text returns the cell rendered as text.
func (r Row) Text(col string) string { return r.Value(col).String() }

// Row returns the i-th row view.
func (t *Table) Row(i int) Row { return Row{t: t, i: i} }

// Where returns a new table holding the rows that satisfy keep. Rows are shared, not copied.
func (t *Table) Where(keep func(Row) bool) *Table {
	sub := &Table{Name: t.Name, Columns: t.Columns, index: t.index, categorical: t.categorical}
	for i, r := range t.Rows {
		if keep(Row{t: t, i: i}) {
			sub.Rows = append(sub.Rows, r)
		}
	}
	return sub
}
