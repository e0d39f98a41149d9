package table

// Row is a read-only view of one row, indexable by column name or
// position. It holds no storage of its own; lookups go straight to the
// parent Table's row store, with short-row positions resolving to null.
type Row struct {
	table *Table
	index int
}

// Index returns the row's position within its Table.
func (r *Row) Index() int { return r.index }

// Len returns the number of columns.
func (r *Row) Len() int { return len(r.table.names) }

// Value returns the value in the named column.
func (r *Row) Value(name string) (interface{}, error) {
	idx, ok := r.table.colIdx[name]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: name}
	}
	return r.table.store.valueAt(r.index, idx), nil
}

// ValueAt returns the value in the column at position i.
func (r *Row) ValueAt(i int) (interface{}, error) {
	if i < 0 || i >= len(r.table.names) {
		return nil, &ColumnDoesNotExistError{Name: columnIndexName(i)}
	}
	return r.table.store.valueAt(r.index, i), nil
}

// Values returns a copy of the row's values, padded to the column count.
func (r *Row) Values() []interface{} {
	out := make([]interface{}, len(r.table.names))
	for i := range out {
		out[i] = r.table.store.valueAt(r.index, i)
	}
	return out
}
