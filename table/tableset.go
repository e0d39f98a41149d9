package table

import (
	"fmt"
)

// TableSet is an ordered, schema-homogeneous collection of Tables keyed
// by group value. Every Table-level operation is available; operations
// that return a Table on a single table return a new TableSet here, and
// operations that return a scalar return one value per member in the
// set's own key order. The first member error aborts the whole call:
// a TableSet never produces a partial result.
type TableSet struct {
	keys   []interface{}
	tables []*Table
	names  []string
	types  []ColumnType
}

// GroupedAggregateResult holds one member table's aggregation results.
type GroupedAggregateResult struct {
	Key     interface{}
	Results []AggregateResult
}

// KeyedValue pairs a group key with one member table's scalar result.
type KeyedValue struct {
	Key   interface{}
	Value interface{}
}

// NewTableSet builds a TableSet from parallel key and table sequences.
// Every member must share identical column names and types; a mismatch
// is an error here, never deferred to use.
func NewTableSet(keys []interface{}, tables []*Table) (*TableSet, error) {
	if len(keys) != len(tables) {
		return nil, fmt.Errorf("tableset: %d keys for %d tables", len(keys), len(tables))
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("tableset: requires at least one member table")
	}

	names := tables[0].names
	types := tables[0].types
	for i, member := range tables[1:] {
		if err := sameSchema(names, types, member); err != nil {
			return nil, fmt.Errorf("tableset: member %v: %w", keys[i+1], err)
		}
	}

	return &TableSet{
		keys:   append([]interface{}(nil), keys...),
		tables: append([]*Table(nil), tables...),
		names:  append([]string(nil), names...),
		types:  append([]ColumnType(nil), types...),
	}, nil
}

func sameSchema(names []string, types []ColumnType, member *Table) error {
	if len(member.names) != len(names) {
		return fmt.Errorf("has %d columns, want %d", len(member.names), len(names))
	}
	for i := range names {
		if member.names[i] != names[i] {
			return fmt.Errorf("column %d is %q, want %q", i, member.names[i], names[i])
		}
		if member.types[i] != types[i] {
			return fmt.Errorf("column %q is %s, want %s", names[i], member.types[i], types[i])
		}
	}
	return nil
}

// Len returns the number of member tables.
func (s *TableSet) Len() int { return len(s.tables) }

// Keys returns a copy of the group keys in set order.
func (s *TableSet) Keys() []interface{} {
	return append([]interface{}(nil), s.keys...)
}

// ColumnNames returns a copy of the shared column names.
func (s *TableSet) ColumnNames() []string {
	return append([]string(nil), s.names...)
}

// ColumnTypes returns a copy of the shared column types.
func (s *TableSet) ColumnTypes() []ColumnType {
	return append([]ColumnType(nil), s.types...)
}

// Table returns the member table for the given group key.
func (s *TableSet) Table(key interface{}) (*Table, error) {
	for i, k := range s.keys {
		if valuesEqual(k, key) {
			return s.tables[i], nil
		}
	}
	return nil, fmt.Errorf("tableset: no member table for key %v", key)
}

// Tables returns a copy of the member tables in set order.
func (s *TableSet) Tables() []*Table {
	return append([]*Table(nil), s.tables...)
}

// proxy applies op to every member in key order, reassembling the
// results into a new TableSet.
func (s *TableSet) proxy(op func(*Table) (*Table, error)) (*TableSet, error) {
	tables := make([]*Table, len(s.tables))
	for i, member := range s.tables {
		result, err := op(member)
		if err != nil {
			return nil, err
		}
		tables[i] = result
	}
	return NewTableSet(s.keys, tables)
}

// Select proxies Table.Select across every member.
func (s *TableSet) Select(names ...string) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.Select(names...) })
}

// Where proxies Table.Where across every member.
func (s *TableSet) Where(pred func(*Row) bool) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.Where(pred) })
}

// OrderBy proxies Table.OrderBy across every member.
func (s *TableSet) OrderBy(key func(*Row) interface{}, reverse bool) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.OrderBy(key, reverse) })
}

// Limit proxies Table.Limit across every member.
func (s *TableSet) Limit(n int) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.Limit(n) })
}

// Distinct proxies Table.Distinct across every member.
func (s *TableSet) Distinct(columns ...string) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.Distinct(columns...) })
}

// Compute proxies Table.Compute across every member. Each member runs
// the full prepare-then-run cycle independently, so per-table statistics
// are grouped statistics.
func (s *TableSet) Compute(items ...NamedComputation) (*TableSet, error) {
	return s.proxy(func(t *Table) (*Table, error) { return t.Compute(items...) })
}

// Aggregate proxies Table.Aggregate across every member, returning each
// member's scalars under its group key, in set order.
func (s *TableSet) Aggregate(items ...NamedAggregation) ([]GroupedAggregateResult, error) {
	out := make([]GroupedAggregateResult, 0, len(s.tables))
	for i, member := range s.tables {
		results, err := member.Aggregate(items...)
		if err != nil {
			return nil, err
		}
		out = append(out, GroupedAggregateResult{Key: s.keys[i], Results: results})
	}
	return out, nil
}

// Column returns the column set for the named column: the TableSet
// analogue of a column view, yielding one result per member table.
func (s *TableSet) Column(name string) (*ColumnSet, error) {
	found := false
	for _, n := range s.names {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return nil, &ColumnDoesNotExistError{Name: name}
	}
	return &ColumnSet{set: s, name: name}, nil
}

// ColumnSet is a virtual column over a TableSet: any operation yields a
// mapping from group key to that operation's per-table result, in the
// set's key order, rather than a single scalar.
type ColumnSet struct {
	set  *TableSet
	name string
}

func (cs *ColumnSet) Name() string { return cs.name }

// Apply runs an aggregation against the column in every member table.
func (cs *ColumnSet) Apply(agg Aggregation) ([]KeyedValue, error) {
	out := make([]KeyedValue, 0, cs.set.Len())
	for i, member := range cs.set.tables {
		col, err := member.Column(cs.name)
		if err != nil {
			return nil, err
		}
		value, err := col.Aggregate(agg)
		if err != nil {
			return nil, err
		}
		out = append(out, KeyedValue{Key: cs.set.keys[i], Value: value})
	}
	return out, nil
}

func (cs *ColumnSet) Sum() ([]KeyedValue, error)      { return cs.Apply(Sum{}) }
func (cs *ColumnSet) Min() ([]KeyedValue, error)      { return cs.Apply(Min{}) }
func (cs *ColumnSet) Max() ([]KeyedValue, error)      { return cs.Apply(Max{}) }
func (cs *ColumnSet) Mean() ([]KeyedValue, error)     { return cs.Apply(Mean{}) }
func (cs *ColumnSet) Median() ([]KeyedValue, error)   { return cs.Apply(Median{}) }
func (cs *ColumnSet) Mode() ([]KeyedValue, error)     { return cs.Apply(Mode{}) }
func (cs *ColumnSet) Variance() ([]KeyedValue, error) { return cs.Apply(Variance{}) }
func (cs *ColumnSet) StDev() ([]KeyedValue, error)    { return cs.Apply(StDev{}) }
func (cs *ColumnSet) MAD() ([]KeyedValue, error)      { return cs.Apply(MAD{}) }
func (cs *ColumnSet) IQR() ([]KeyedValue, error)      { return cs.Apply(IQR{}) }
func (cs *ColumnSet) HasNulls() ([]KeyedValue, error) { return cs.Apply(HasNulls{}) }
