package dataset

import "strings"

// NormalizeName canonicalizes a column name: lowercase, spaces replaced
// with underscores. No other character classes are touched. The same
// function must be applied to schema entry names before any name-based
// lookup.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NormalizeColumns rewrites every column name via NormalizeName.
func (t *Table) NormalizeColumns() {
	t.Rename(NormalizeName)
}
