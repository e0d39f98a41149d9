package table

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of decimal places carried by inexact
// divisions (means, variances, z-scores). Exact divisions are unaffected.
const divisionPrecision = 24

// Column is a lazy, memoizing read-only projection of one column out of
// its parent Table's row store. The data, null-free, and sorted
// projections are each computed at most once per view, even under
// concurrent first access, and the view never outlives its Table.
type Column struct {
	table *Table
	index int
	name  string
	ctype ColumnType

	dataOnce    sync.Once
	data        []interface{}
	noNullsOnce sync.Once
	noNulls     []interface{}
	sortedOnce  sync.Once
	sorted      []interface{}

	quantOnce sync.Once
	quantiles *Quantiles
	quantErr  error
}

// ValueCount pairs a distinct column value with its occurrence count.
type ValueCount struct {
	Value interface{}
	Count int
}

func (c *Column) Name() string     { return c.name }
func (c *Column) Type() ColumnType { return c.ctype }
func (c *Column) Len() int         { return c.table.store.length() }

// Value returns the value at the given row index.
func (c *Column) Value(i int) (interface{}, error) {
	if i < 0 || i >= c.Len() {
		return nil, &RowDoesNotExistError{Index: i}
	}
	return c.Data()[i], nil
}

// Data returns all values in row order. The slice is memoized; callers
// must not modify it.
func (c *Column) Data() []interface{} {
	c.dataOnce.Do(func() {
		n := c.table.store.length()
		data := make([]interface{}, n)
		for i := 0; i < n; i++ {
			data[i] = c.table.store.valueAt(i, c.index)
		}
		c.data = data
	})
	return c.data
}

// DataWithoutNulls returns all non-null values in row order. The slice
// is memoized; callers must not modify it.
func (c *Column) DataWithoutNulls() []interface{} {
	c.noNullsOnce.Do(func() {
		data := c.Data()
		noNulls := make([]interface{}, 0, len(data))
		for _, v := range data {
			if v != nil {
				noNulls = append(noNulls, v)
			}
		}
		c.noNulls = noNulls
	})
	return c.noNulls
}

// DataSorted returns all values in ascending order, nulls ordering after
// every non-null value. The slice is memoized; callers must not modify it.
func (c *Column) DataSorted() []interface{} {
	c.sortedOnce.Do(func() {
		data := c.Data()
		sorted := make([]interface{}, len(data))
		copy(sorted, data)
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareValues(sorted[i], sorted[j]) < 0
		})
		c.sorted = sorted
	})
	return c.sorted
}

// HasNulls reports whether any value in the column is null.
func (c *Column) HasNulls() bool {
	for _, v := range c.Data() {
		if v == nil {
			return true
		}
	}
	return false
}

// Any reports whether the predicate holds for at least one value.
func (c *Column) Any(pred func(interface{}) bool) bool {
	for _, v := range c.Data() {
		if pred(v) {
			return true
		}
	}
	return false
}

// All reports whether the predicate holds for every value.
func (c *Column) All(pred func(interface{}) bool) bool {
	for _, v := range c.Data() {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Count returns the number of occurrences of value, which may be nil.
func (c *Column) Count(value interface{}) int {
	count := 0
	for _, v := range c.Data() {
		if valuesEqual(v, value) {
			count++
		}
	}
	return count
}

// Counts returns the occurrence count of every distinct value in
// first-seen order. Null is a first-class key when present.
func (c *Column) Counts() []ValueCount {
	index := make(map[string]int)
	counts := make([]ValueCount, 0)
	for _, v := range c.Data() {
		key := encodeValue(v)
		if i, seen := index[key]; seen {
			counts[i].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, ValueCount{Value: v, Count: 1})
	}
	return counts
}

// Sum adds every non-null value of a Number column. Nulls are silently
// excluded: a sum over an incomplete column is still meaningful.
func (c *Column) Sum() (decimal.Decimal, error) {
	if c.ctype != Number {
		return decimal.Zero, &UnsupportedAggregationError{Aggregation: "Sum", ColumnType: c.ctype}
	}
	sum := decimal.Zero
	for _, v := range c.DataWithoutNulls() {
		sum = sum.Add(v.(decimal.Decimal))
	}
	return sum, nil
}

// Min returns the smallest non-null value of a Number, Date, or DateTime
// column, or nil when the column has no non-null values.
func (c *Column) Min() (interface{}, error) {
	return c.extreme("Min", -1)
}

// Max returns the largest non-null value of a Number, Date, or DateTime
// column, or nil when the column has no non-null values.
func (c *Column) Max() (interface{}, error) {
	return c.extreme("Max", 1)
}

func (c *Column) extreme(op string, sign int) (interface{}, error) {
	switch c.ctype {
	case Number, Date, DateTime:
	default:
		return nil, &UnsupportedAggregationError{Aggregation: op, ColumnType: c.ctype}
	}
	var best interface{}
	for _, v := range c.DataWithoutNulls() {
		if best == nil || compareValues(v, best)*sign > 0 {
			best = v
		}
	}
	return best, nil
}

// Mean returns the arithmetic mean of a null-free Number column.
func (c *Column) Mean() (decimal.Decimal, error) {
	if c.ctype != Number {
		return decimal.Zero, &UnsupportedAggregationError{Aggregation: "Mean", ColumnType: c.ctype}
	}
	if c.HasNulls() {
		return decimal.Zero, &NullComputationError{Operation: "Mean"}
	}
	n := c.Len()
	if n == 0 {
		return decimal.Zero, ErrNoValues
	}
	sum, err := c.Sum()
	if err != nil {
		return decimal.Zero, err
	}
	return sum.DivRound(decimal.NewFromInt(int64(n)), divisionPrecision), nil
}

// Median returns the 50th percentile of a null-free Number column.
func (c *Column) Median() (decimal.Decimal, error) {
	q, err := c.Percentiles()
	if err != nil {
		return decimal.Zero, err
	}
	return q.Value(50), nil
}

// Mode returns the most frequent value of a null-free column. When
// several values share the highest count, the first seen wins.
func (c *Column) Mode() (interface{}, error) {
	if c.HasNulls() {
		return nil, &NullComputationError{Operation: "Mode"}
	}
	counts := c.Counts()
	if len(counts) == 0 {
		return nil, ErrNoValues
	}
	best := counts[0]
	for _, vc := range counts[1:] {
		if vc.Count > best.Count {
			best = vc
		}
	}
	return best.Value, nil
}

// Variance returns the sample variance of a null-free Number column with
// at least two values.
func (c *Column) Variance() (decimal.Decimal, error) {
	if c.ctype != Number {
		return decimal.Zero, &UnsupportedAggregationError{Aggregation: "Variance", ColumnType: c.ctype}
	}
	if c.HasNulls() {
		return decimal.Zero, &NullComputationError{Operation: "Variance"}
	}
	n := c.Len()
	if n < 2 {
		return decimal.Zero, fmt.Errorf("Variance: column %q needs at least two values, has %d", c.name, n)
	}
	mean, err := c.Mean()
	if err != nil {
		return decimal.Zero, err
	}
	sumsq := decimal.Zero
	for _, v := range c.Data() {
		d := v.(decimal.Decimal).Sub(mean)
		sumsq = sumsq.Add(d.Mul(d))
	}
	return sumsq.DivRound(decimal.NewFromInt(int64(n-1)), divisionPrecision), nil
}

// StDev returns the sample standard deviation of a null-free Number
// column, computed entirely in decimal arithmetic.
func (c *Column) StDev() (decimal.Decimal, error) {
	variance, err := c.Variance()
	if err != nil {
		return decimal.Zero, err
	}
	return decimalSqrt(variance)
}

// MAD returns the median absolute deviation of a null-free Number
// column: the median of each value's absolute distance from the column
// median.
func (c *Column) MAD() (decimal.Decimal, error) {
	if c.ctype != Number {
		return decimal.Zero, &UnsupportedAggregationError{Aggregation: "MAD", ColumnType: c.ctype}
	}
	if c.HasNulls() {
		return decimal.Zero, &NullComputationError{Operation: "MAD"}
	}
	median, err := c.Median()
	if err != nil {
		return decimal.Zero, err
	}
	deviations := make([]decimal.Decimal, 0, c.Len())
	for _, v := range c.Data() {
		deviations = append(deviations, v.(decimal.Decimal).Sub(median).Abs())
	}
	sort.Slice(deviations, func(i, j int) bool {
		return deviations[i].Cmp(deviations[j]) < 0
	})
	q, err := newQuantiles(deviations)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Value(50), nil
}

// IQR returns the interquartile range of a null-free Number column.
func (c *Column) IQR() (decimal.Decimal, error) {
	q, err := c.Percentiles()
	if err != nil {
		return decimal.Zero, err
	}
	return q.Value(75).Sub(q.Value(25)), nil
}

// MaxLength returns the length in runes of the longest non-null value of
// a Text column.
func (c *Column) MaxLength() (int, error) {
	if c.ctype != Text {
		return 0, &UnsupportedAggregationError{Aggregation: "MaxLength", ColumnType: c.ctype}
	}
	longest := 0
	for _, v := range c.DataWithoutNulls() {
		if n := utf8.RuneCountInString(v.(string)); n > longest {
			longest = n
		}
	}
	return longest, nil
}

// Percentiles returns the column's 101 percentile boundaries, computed
// once per view and cached. The column must be Number-typed and
// null-free, and must hold at least one value.
func (c *Column) Percentiles() (*Quantiles, error) {
	if c.ctype != Number {
		return nil, &UnsupportedAggregationError{Aggregation: "Percentiles", ColumnType: c.ctype}
	}
	c.quantOnce.Do(func() {
		if c.HasNulls() {
			c.quantErr = &NullComputationError{Operation: "Percentiles"}
			return
		}
		sorted := make([]decimal.Decimal, 0, c.Len())
		for _, v := range c.DataSorted() {
			sorted = append(sorted, v.(decimal.Decimal))
		}
		c.quantiles, c.quantErr = newQuantiles(sorted)
	})
	return c.quantiles, c.quantErr
}

// Quartiles returns the percentile boundaries at stride 25.
func (c *Column) Quartiles() ([]decimal.Decimal, error) {
	q, err := c.Percentiles()
	if err != nil {
		return nil, err
	}
	return q.Quartiles(), nil
}

// Quintiles returns the percentile boundaries at stride 20.
func (c *Column) Quintiles() ([]decimal.Decimal, error) {
	q, err := c.Percentiles()
	if err != nil {
		return nil, err
	}
	return q.Quintiles(), nil
}

// Deciles returns the percentile boundaries at stride 10.
func (c *Column) Deciles() ([]decimal.Decimal, error) {
	q, err := c.Percentiles()
	if err != nil {
		return nil, err
	}
	return q.Deciles(), nil
}

// Aggregate applies an aggregation to the column after checking that the
// aggregation supports the column's type.
func (c *Column) Aggregate(agg Aggregation) (interface{}, error) {
	if !agg.Supports(c.ctype) {
		return nil, &UnsupportedAggregationError{Aggregation: agg.Name(), ColumnType: c.ctype}
	}
	return agg.Apply(c)
}

var sqrtEpsilon = decimal.New(1, -20)

// decimalSqrt computes a square root by Newton iteration entirely in
// decimal arithmetic; no value passes through a binary float. The seed
// starts within one order of magnitude of the root, so the iteration
// budget always suffices; a failure to converge is an error, never a
// silently wrong value. The result is rounded to 16 places, well inside
// the iteration's convergence.
func decimalSqrt(d decimal.Decimal) (decimal.Decimal, error) {
	if d.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("column: square root of negative value %s", d)
	}
	if d.Sign() == 0 {
		return decimal.Zero, nil
	}
	two := decimal.NewFromInt(2)
	x := sqrtSeed(d)
	for i := 0; i < 64; i++ {
		next := x.Add(d.DivRound(x, divisionPrecision)).DivRound(two, divisionPrecision)
		if next.Sub(x).Abs().LessThanOrEqual(sqrtEpsilon) {
			return next.Round(16), nil
		}
		x = next
	}
	return decimal.Zero, fmt.Errorf("column: square root of %s did not converge", d)
}

// sqrtSeed returns 10^ceil(k/2) where k is the digit count of d's
// integer part, one order of magnitude or less from sqrt(d). Values
// below 1 seed at 1.
func sqrtSeed(d decimal.Decimal) decimal.Decimal {
	k := int(d.NumDigits()) + int(d.Exponent())
	if k <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.New(1, int32((k+1)/2))
}
