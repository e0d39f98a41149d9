package table

// rowStore is the immutable row-major backing of a Table: an ordered
// sequence of rows, each an ordered sequence of canonical values. Rows
// may be shorter than the column count; missing trailing values resolve
// to null when indexed. The store is owned exclusively by its Table and
// never modified after construction.
type rowStore struct {
	rows  [][]interface{}
	width int
}

func (s *rowStore) length() int { return len(s.rows) }

// valueAt resolves the value at (row, col), treating missing trailing
// values of short rows as null. Callers are responsible for bounds
// checking the row index.
func (s *rowStore) valueAt(row, col int) interface{} {
	r := s.rows[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}

// row returns the backing slice for one row. Callers must not modify it.
func (s *rowStore) row(i int) []interface{} { return s.rows[i] }
