// Package table implements a typed, immutable, in-memory tabular data
// engine: a grid of named, statically typed columns over row-oriented
// storage.
//
// A Table is constructed once from raw rows, column names, and column
// types. Every value is cast to the column's canonical representation at
// construction time, and every transformation (Select, Where, OrderBy,
// Limit, Distinct, joins, Compute, GroupBy) returns a new Table; nothing
// mutates in place. Because of this, Tables and their column views can be
// shared freely across concurrent readers.
//
// Numeric columns use exact decimal arithmetic (shopspring/decimal)
// throughout. Binary floating-point input is rejected at the cast
// boundary so sums, means, and quantiles are reproducible to the digit.
//
// # Basic usage
//
//	t, err := table.New(
//	    [][]interface{}{
//	        {"1.1", "a"},
//	        {"2.7", "b"},
//	        {nil, "c"},
//	    },
//	    []string{"amount", "label"},
//	    []table.ColumnType{table.Number, table.Text},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	col, _ := t.Column("amount")
//	sum, err := col.Sum() // nulls excluded: 3.8
//
// # Null semantics
//
// Nulls are untyped nil values. Sum, Min, and Max silently exclude nulls;
// Mean, Median, Mode, Variance, StDev, MAD, and the quantile family
// require a null-free column and report a NullComputationError otherwise.
//
// # Grouped operations
//
// GroupBy partitions a Table into a TableSet, which supports the same
// operations as a Table but returns per-key results in group-key order:
//
//	set, _ := t.GroupBy("label")
//	col, _ := set.Column("amount")
//	sums, _ := col.Sum() // one sum per group, in group-key order
package table
