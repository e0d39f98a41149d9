package table

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregation is a stateless operation reducing one column to one
// scalar. Implementations declare the column types they support;
// dispatch checks Supports before Apply, so applying an aggregation to
// an unsupported column type fails with an UnsupportedAggregationError
// naming both.
type Aggregation interface {
	Name() string
	Supports(t ColumnType) bool
	ResultType(t ColumnType) ColumnType
	Apply(c *Column) (interface{}, error)
}

// NamedAggregation binds an aggregation to a source column under a
// result name. An empty Name defaults to column_aggregation.
type NamedAggregation struct {
	Name   string
	Column string
	Agg    Aggregation
}

// AggregateResult is one scalar produced by Table.Aggregate.
type AggregateResult struct {
	Name  string
	Value interface{}
}

func (a NamedAggregation) resultName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Column + "_" + strings.ToLower(a.Agg.Name())
}

// Sum adds every non-null value of a Number column.
type Sum struct{}

func (Sum) Name() string                          { return "Sum" }
func (Sum) Supports(t ColumnType) bool            { return t == Number }
func (Sum) ResultType(ColumnType) ColumnType      { return Number }
func (Sum) Apply(c *Column) (interface{}, error)  { return c.Sum() }

// Min returns the smallest non-null value.
type Min struct{}

func (Min) Name() string                         { return "Min" }
func (Min) Supports(t ColumnType) bool           { return t == Number || t == Date || t == DateTime }
func (Min) ResultType(t ColumnType) ColumnType   { return t }
func (Min) Apply(c *Column) (interface{}, error) { return c.Min() }

// Max returns the largest non-null value.
type Max struct{}

func (Max) Name() string                         { return "Max" }
func (Max) Supports(t ColumnType) bool           { return t == Number || t == Date || t == DateTime }
func (Max) ResultType(t ColumnType) ColumnType   { return t }
func (Max) Apply(c *Column) (interface{}, error) { return c.Max() }

// Mean returns the arithmetic mean of a null-free Number column.
type Mean struct{}

func (Mean) Name() string                         { return "Mean" }
func (Mean) Supports(t ColumnType) bool           { return t == Number }
func (Mean) ResultType(ColumnType) ColumnType     { return Number }
func (Mean) Apply(c *Column) (interface{}, error) { return c.Mean() }

// Median returns the 50th percentile of a null-free Number column.
type Median struct{}

func (Median) Name() string                         { return "Median" }
func (Median) Supports(t ColumnType) bool           { return t == Number }
func (Median) ResultType(ColumnType) ColumnType     { return Number }
func (Median) Apply(c *Column) (interface{}, error) { return c.Median() }

// Mode returns the most frequent value of a null-free column.
type Mode struct{}

func (Mode) Name() string                         { return "Mode" }
func (Mode) Supports(ColumnType) bool             { return true }
func (Mode) ResultType(t ColumnType) ColumnType   { return t }
func (Mode) Apply(c *Column) (interface{}, error) { return c.Mode() }

// Variance returns the sample variance of a null-free Number column.
type Variance struct{}

func (Variance) Name() string                         { return "Variance" }
func (Variance) Supports(t ColumnType) bool           { return t == Number }
func (Variance) ResultType(ColumnType) ColumnType     { return Number }
func (Variance) Apply(c *Column) (interface{}, error) { return c.Variance() }

// StDev returns the sample standard deviation of a null-free Number
// column.
type StDev struct{}

func (StDev) Name() string                         { return "StDev" }
func (StDev) Supports(t ColumnType) bool           { return t == Number }
func (StDev) ResultType(ColumnType) ColumnType     { return Number }
func (StDev) Apply(c *Column) (interface{}, error) { return c.StDev() }

// MAD returns the median absolute deviation of a null-free Number
// column.
type MAD struct{}

func (MAD) Name() string                         { return "MAD" }
func (MAD) Supports(t ColumnType) bool           { return t == Number }
func (MAD) ResultType(ColumnType) ColumnType     { return Number }
func (MAD) Apply(c *Column) (interface{}, error) { return c.MAD() }

// IQR returns the interquartile range of a null-free Number column.
type IQR struct{}

func (IQR) Name() string                         { return "IQR" }
func (IQR) Supports(t ColumnType) bool           { return t == Number }
func (IQR) ResultType(ColumnType) ColumnType     { return Number }
func (IQR) Apply(c *Column) (interface{}, error) { return c.IQR() }

// Any reports whether the predicate holds for at least one value.
type Any struct {
	Predicate func(interface{}) bool
}

func (Any) Name() string                     { return "Any" }
func (Any) Supports(ColumnType) bool         { return true }
func (Any) ResultType(ColumnType) ColumnType { return Boolean }
func (a Any) Apply(c *Column) (interface{}, error) {
	return c.Any(a.Predicate), nil
}

// All reports whether the predicate holds for every value.
type All struct {
	Predicate func(interface{}) bool
}

func (All) Name() string                     { return "All" }
func (All) Supports(ColumnType) bool         { return true }
func (All) ResultType(ColumnType) ColumnType { return Boolean }
func (a All) Apply(c *Column) (interface{}, error) {
	return c.All(a.Predicate), nil
}

// Count returns the number of occurrences of Value, which may be nil.
type Count struct {
	Value interface{}
}

func (Count) Name() string                     { return "Count" }
func (Count) Supports(ColumnType) bool         { return true }
func (Count) ResultType(ColumnType) ColumnType { return Number }
func (a Count) Apply(c *Column) (interface{}, error) {
	value, err := c.Type().Cast(a.Value)
	if err != nil {
		return nil, err
	}
	return decimal.NewFromInt(int64(c.Count(value))), nil
}

// MaxLength returns the rune length of the longest non-null Text value.
type MaxLength struct{}

func (MaxLength) Name() string                     { return "MaxLength" }
func (MaxLength) Supports(t ColumnType) bool       { return t == Text }
func (MaxLength) ResultType(ColumnType) ColumnType { return Number }
func (MaxLength) Apply(c *Column) (interface{}, error) {
	n, err := c.MaxLength()
	if err != nil {
		return nil, err
	}
	return decimal.NewFromInt(int64(n)), nil
}

// HasNulls reports whether the column contains any null value.
type HasNulls struct{}

func (HasNulls) Name() string                     { return "HasNulls" }
func (HasNulls) Supports(ColumnType) bool         { return true }
func (HasNulls) ResultType(ColumnType) ColumnType { return Boolean }
func (HasNulls) Apply(c *Column) (interface{}, error) {
	return c.HasNulls(), nil
}
