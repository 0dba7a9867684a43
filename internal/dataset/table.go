// Package dataset holds the in-memory tabular representation the
// pipeline accumulates between loading and type enforcement.
package dataset

// Table is an in-memory table of named columns. Column order is the
// order of first appearance; every column holds one value per row, with
// untyped nil as the missing marker.
type Table struct {
	names   []string
	columns map[string][]any
	rows    int
}

// New returns an empty table with no columns.
func New() *Table {
	return &Table{
		columns: make(map[string][]any),
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.rows
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]any, bool) {
	values, ok := t.columns[name]
	return values, ok
}

// Row returns the values of row i, in column order.
func (t *Table) Row(i int) []any {
	out := make([]any, len(t.names))
	for c, name := range t.names {
		out[c] = t.columns[name][i]
	}
	return out
}

// AddColumn appends a new column, or replaces the values of an existing
// one. When the column length differs from the current row count, the
// shorter side is padded with missing markers.
func (t *Table) AddColumn(name string, values []any) {
	if _, ok := t.columns[name]; !ok {
		t.names = append(t.names, name)
	}
	t.columns[name] = values

	if len(values) > t.rows {
		t.rows = len(values)
	}
	for _, n := range t.names {
		if short := t.rows - len(t.columns[n]); short > 0 {
			t.columns[n] = append(t.columns[n], missing(short)...)
		}
	}
}

// SetColumn replaces the values of an existing column. Unknown names are
// added, with the same padding rules as AddColumn.
func (t *Table) SetColumn(name string, values []any) {
	t.AddColumn(name, values)
}

// Append concatenates another table below this one. Columns are matched
// by name; a column present on only one side is padded with missing
// markers for the other side's rows. Row order within each table is
// preserved.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		if _, ok := t.columns[name]; !ok {
			t.names = append(t.names, name)
			t.columns[name] = missing(t.rows)
		}
	}
	for _, name := range t.names {
		src, ok := other.columns[name]
		if !ok {
			src = missing(other.rows)
		}
		t.columns[name] = append(t.columns[name], src...)
	}
	t.rows += other.rows
}

// Rename rewrites every column name through f, preserving column order.
// When two names collapse into one, the first occurrence wins and later
// ones are dropped.
func (t *Table) Rename(f func(string) string) {
	names := make([]string, 0, len(t.names))
	columns := make(map[string][]any, len(t.columns))
	for _, name := range t.names {
		renamed := f(name)
		if _, ok := columns[renamed]; ok {
			continue
		}
		names = append(names, renamed)
		columns[renamed] = t.columns[name]
	}
	t.names = names
	t.columns = columns
}

func missing(n int) []any {
	return make([]any, n)
}
