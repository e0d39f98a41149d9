package table

import (
	"fmt"
	"sort"
)

// Table is an immutable grid of named, statically typed columns over
// row-major storage. It owns the row store, the parallel name and type
// sequences, and the realized column views. Every operation returns a
// new Table or a scalar; nothing mutates the receiver.
type Table struct {
	store   *rowStore
	names   []string
	types   []ColumnType
	colIdx  map[string]int
	columns []*Column
}

// New builds a Table from raw rows, an ordered sequence of unique column
// names, and a parallel sequence of column types. Every value is cast to
// its column's canonical form eagerly; the first value that fails casting
// invalidates construction with a ColumnValidationError. Rows may be
// shorter than the column count (missing trailing values are null) but
// never longer.
func New(rows [][]interface{}, names []string, types []ColumnType) (*Table, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("table: %d column names for %d column types", len(names), len(types))
	}
	colIdx := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("table: column %d has an empty name", i)
		}
		if _, dup := colIdx[name]; dup {
			return nil, fmt.Errorf("table: duplicate column name %q", name)
		}
		colIdx[name] = i
	}

	cast := make([][]interface{}, len(rows))
	for i, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("table: row %d has %d values for %d columns", i, len(row), len(names))
		}
		castRow := make([]interface{}, len(row))
		for j, raw := range row {
			v, err := types[j].Cast(raw)
			if err != nil {
				return nil, &ColumnValidationError{Column: names[j], Row: i, Err: err}
			}
			castRow[j] = v
		}
		cast[i] = castRow
	}

	t := &Table{
		store:  &rowStore{rows: cast, width: len(names)},
		names:  append([]string(nil), names...),
		types:  append([]ColumnType(nil), types...),
		colIdx: colIdx,
	}
	t.columns = make([]*Column, len(names))
	for i := range t.names {
		t.columns[i] = &Column{table: t, index: i, name: t.names[i], ctype: t.types[i]}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.store.length() }

// ColumnNames returns a copy of the ordered column names.
func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.names...)
}

// ColumnTypes returns a copy of the ordered column types.
func (t *Table) ColumnTypes() []ColumnType {
	return append([]ColumnType(nil), t.types...)
}

// Column returns the view of the named column.
func (t *Table) Column(name string) (*Column, error) {
	idx, ok := t.colIdx[name]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: name}
	}
	return t.columns[idx], nil
}

// ColumnAt returns the view of the column at position i.
func (t *Table) ColumnAt(i int) (*Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, &ColumnDoesNotExistError{Name: columnIndexName(i)}
	}
	return t.columns[i], nil
}

// Row returns the view of the row at position i.
func (t *Table) Row(i int) (*Row, error) {
	if i < 0 || i >= t.Len() {
		return nil, &RowDoesNotExistError{Index: i}
	}
	return &Row{table: t, index: i}, nil
}

func columnIndexName(i int) string { return fmt.Sprintf("#%d", i) }

// Select returns a new Table holding only the named columns, in the
// order requested.
func (t *Table) Select(names ...string) (*Table, error) {
	idxs := make([]int, len(names))
	types := make([]ColumnType, len(names))
	for i, name := range names {
		idx, ok := t.colIdx[name]
		if !ok {
			return nil, &ColumnDoesNotExistError{Name: name}
		}
		idxs[i] = idx
		types[i] = t.types[idx]
	}
	rows := make([][]interface{}, t.Len())
	for i := range rows {
		row := make([]interface{}, len(idxs))
		for j, idx := range idxs {
			row[j] = t.store.valueAt(i, idx)
		}
		rows[i] = row
	}
	return New(rows, names, types)
}

// Where returns a new Table holding only the rows the predicate accepts,
// preserving row order.
func (t *Table) Where(pred func(*Row) bool) (*Table, error) {
	rows := make([][]interface{}, 0)
	for i := 0; i < t.Len(); i++ {
		if pred(&Row{table: t, index: i}) {
			rows = append(rows, t.store.row(i))
		}
	}
	return New(rows, t.names, t.types)
}

// Find returns the first row the predicate accepts, or nil when none
// matches.
func (t *Table) Find(pred func(*Row) bool) *Row {
	for i := 0; i < t.Len(); i++ {
		r := &Row{table: t, index: i}
		if pred(r) {
			return r
		}
	}
	return nil
}

// OrderBy returns a new Table with rows stably sorted by the key
// function's result, nulls ordering after every non-null key. Reverse
// flips the sort direction; ties keep their original relative order
// either way.
func (t *Table) OrderBy(key func(*Row) interface{}, reverse bool) (*Table, error) {
	n := t.Len()
	keys := make([]interface{}, n)
	for i := 0; i < n; i++ {
		keys[i] = key(&Row{table: t, index: i})
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		cmp := compareValues(keys[order[a]], keys[order[b]])
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	rows := make([][]interface{}, n)
	for i, idx := range order {
		rows[i] = t.store.row(idx)
	}
	return New(rows, t.names, t.types)
}

// Limit returns a new Table holding at most n rows from the top.
func (t *Table) Limit(n int) (*Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("table: negative limit %d", n)
	}
	if n > t.Len() {
		n = t.Len()
	}
	rows := make([][]interface{}, n)
	for i := 0; i < n; i++ {
		rows[i] = t.store.row(i)
	}
	return New(rows, t.names, t.types)
}

// Distinct returns a new Table holding the first row for each distinct
// combination of values in the given columns, preserving row order. With
// no columns given, all columns participate.
func (t *Table) Distinct(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		columns = t.names
	}
	idxs := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.colIdx[name]
		if !ok {
			return nil, &ColumnDoesNotExistError{Name: name}
		}
		idxs[i] = idx
	}

	seen := make(map[string]bool)
	rows := make([][]interface{}, 0)
	keyValues := make([]interface{}, len(idxs))
	for i := 0; i < t.Len(); i++ {
		for j, idx := range idxs {
			keyValues[j] = t.store.valueAt(i, idx)
		}
		key := encodeKey(keyValues)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, t.store.row(i))
	}
	return New(rows, t.names, t.types)
}

// InnerJoin returns the equality join of two tables on one or more key
// columns. Rows whose key contains a null never match. Result columns
// are the left table's columns followed by the right table's non-key
// columns.
func (t *Table) InnerJoin(right *Table, on ...string) (*Table, error) {
	return t.join(right, on, false)
}

// LeftOuterJoin is InnerJoin, except every unmatched left row survives
// with null in every right-hand column.
func (t *Table) LeftOuterJoin(right *Table, on ...string) (*Table, error) {
	return t.join(right, on, true)
}

func (t *Table) join(right *Table, on []string, outer bool) (*Table, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("table: join requires at least one key column")
	}

	leftKeys := make([]int, len(on))
	rightKeys := make([]int, len(on))
	isKey := make(map[string]bool, len(on))
	for i, name := range on {
		lidx, ok := t.colIdx[name]
		if !ok {
			return nil, &ColumnDoesNotExistError{Name: name}
		}
		ridx, ok := right.colIdx[name]
		if !ok {
			return nil, &ColumnDoesNotExistError{Name: name}
		}
		if t.types[lidx] != right.types[ridx] {
			return nil, fmt.Errorf("table: join key %q is %s on the left and %s on the right",
				name, t.types[lidx], right.types[ridx])
		}
		leftKeys[i] = lidx
		rightKeys[i] = ridx
		isKey[name] = true
	}

	names := append([]string(nil), t.names...)
	types := append([]ColumnType(nil), t.types...)
	rightCols := make([]int, 0, len(right.names))
	for i, name := range right.names {
		if isKey[name] {
			continue
		}
		if _, dup := t.colIdx[name]; dup {
			return nil, fmt.Errorf("table: join would duplicate column %q", name)
		}
		names = append(names, name)
		types = append(types, right.types[i])
		rightCols = append(rightCols, i)
	}

	index := make(map[string][]int)
	keyValues := make([]interface{}, len(on))
	for i := 0; i < right.Len(); i++ {
		if !joinKey(right.store, i, rightKeys, keyValues) {
			continue
		}
		key := encodeKey(keyValues)
		index[key] = append(index[key], i)
	}

	rows := make([][]interface{}, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		left := make([]interface{}, len(t.names))
		for j := range t.names {
			left[j] = t.store.valueAt(i, j)
		}

		var matches []int
		if joinKey(t.store, i, leftKeys, keyValues) {
			matches = index[encodeKey(keyValues)]
		}
		if len(matches) == 0 {
			if outer {
				row := append(append([]interface{}(nil), left...), make([]interface{}, len(rightCols))...)
				rows = append(rows, row)
			}
			continue
		}
		for _, ridx := range matches {
			row := append([]interface{}(nil), left...)
			for _, rcol := range rightCols {
				row = append(row, right.store.valueAt(ridx, rcol))
			}
			rows = append(rows, row)
		}
	}
	return New(rows, names, types)
}

// joinKey collects the key values for one row into out, reporting false
// when any key value is null.
func joinKey(s *rowStore, row int, keys []int, out []interface{}) bool {
	for i, idx := range keys {
		v := s.valueAt(row, idx)
		if v == nil {
			return false
		}
		out[i] = v
	}
	return true
}

// Aggregate applies each aggregation to its column and returns the
// scalars in request order.
func (t *Table) Aggregate(items ...NamedAggregation) ([]AggregateResult, error) {
	results := make([]AggregateResult, 0, len(items))
	for _, item := range items {
		col, err := t.Column(item.Column)
		if err != nil {
			return nil, err
		}
		value, err := col.Aggregate(item.Agg)
		if err != nil {
			return nil, err
		}
		results = append(results, AggregateResult{Name: item.resultName(), Value: value})
	}
	return results, nil
}

// Compute returns a new Table with one column appended per computation.
// Every computation's Prepare completes against the receiver before any
// Run is invoked, so a prepare-phase failure aborts the whole call with
// the receiver untouched.
func (t *Table) Compute(items ...NamedComputation) (*Table, error) {
	names := append([]string(nil), t.names...)
	types := append([]ColumnType(nil), t.types...)
	for _, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("table: computation %s needs a column name", item.Comp.Name())
		}
		names = append(names, item.Name)
		types = append(types, item.Comp.ResultType())
	}

	for _, item := range items {
		if err := item.Comp.Prepare(t); err != nil {
			return nil, err
		}
	}

	rows := make([][]interface{}, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := &Row{table: t, index: i}
		row := make([]interface{}, len(t.names), len(names))
		for j := range t.names {
			row[j] = t.store.valueAt(i, j)
		}
		for _, item := range items {
			v, err := item.Comp.Run(r)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		rows[i] = row
	}
	return New(rows, names, types)
}

// GroupBy partitions the table by the distinct values of one column,
// preserving first-seen key order and row order within each partition.
func (t *Table) GroupBy(column string) (*TableSet, error) {
	idx, ok := t.colIdx[column]
	if !ok {
		return nil, &ColumnDoesNotExistError{Name: column}
	}

	order := make([]string, 0)
	keys := make(map[string]interface{})
	grouped := make(map[string][][]interface{})
	for i := 0; i < t.Len(); i++ {
		v := t.store.valueAt(i, idx)
		key := encodeValue(v)
		if _, seen := keys[key]; !seen {
			keys[key] = v
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], t.store.row(i))
	}

	groupKeys := make([]interface{}, len(order))
	tables := make([]*Table, len(order))
	for i, key := range order {
		member, err := New(grouped[key], t.names, t.types)
		if err != nil {
			return nil, err
		}
		groupKeys[i] = keys[key]
		tables[i] = member
	}
	return NewTableSet(groupKeys, tables)
}
