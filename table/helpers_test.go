package table

import (
	"testing"

	"github.com/shopspring/decimal"
)

// num parses an exact decimal literal for test fixtures.
func num(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// mustTable builds a table or fails the test.
func mustTable(t *testing.T, rows [][]interface{}, names []string, types []ColumnType) *Table {
	t.Helper()
	tbl, err := New(rows, names, types)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

// mustColumn resolves a column or fails the test.
func mustColumn(t *testing.T, tbl *Table, name string) *Column {
	t.Helper()
	col, err := tbl.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) error = %v", name, err)
	}
	return col
}

// numbersTable builds a single Number column table from decimal literals,
// with "" standing in for null.
func numbersTable(t *testing.T, values ...string) *Table {
	t.Helper()
	rows := make([][]interface{}, len(values))
	for i, v := range values {
		if v == "" {
			rows[i] = []interface{}{nil}
		} else {
			rows[i] = []interface{}{v}
		}
	}
	return mustTable(t, rows, []string{"value"}, []ColumnType{Number})
}

// decimalsEqual compares two decimals for exact equality.
func decimalsEqual(a, b decimal.Decimal) bool { return a.Equal(b) }
