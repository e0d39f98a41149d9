package table

import (
	"github.com/shopspring/decimal"
)

// Quantiles is an ordered set of 101 percentile boundaries derived from
// one sorted, null-free Number column. Boundary 0 is the minimum and
// boundary 100 the maximum, so Value(50) is the median. Quartiles,
// quintiles, and deciles are subsequences at strides 25, 20, and 10.
type Quantiles struct {
	points []decimal.Decimal
}

// newQuantiles computes percentile boundaries over sorted, null-free
// data using the continuous CDF method. For percentile p with
// k = n*p/100, the boundary is sorted[ceil(k)-1] when k lands between
// data points, and otherwise the mean of the two neighboring values.
// All index arithmetic is exact integer math. Zero data points is a
// hard error here, never deferred to lookup.
func newQuantiles(sorted []decimal.Decimal) (*Quantiles, error) {
	n := len(sorted)
	if n == 0 {
		return nil, ErrNoValues
	}

	two := decimal.NewFromInt(2)
	points := make([]decimal.Decimal, 101)
	points[0] = sorted[0]
	points[100] = sorted[n-1]

	for p := 1; p <= 99; p++ {
		np := n * p
		var low, high int
		if np%100 == 0 {
			k := np / 100
			low = max(1, k)
			high = min(n, k+1)
		} else {
			// ceil(k) and floor(k+1) coincide when k is fractional.
			low = max(1, np/100+1)
			high = min(n, np/100+1)
		}
		if low == high {
			points[p] = sorted[low-1]
		} else {
			points[p] = sorted[low-1].Add(sorted[high-1]).DivRound(two, divisionPrecision)
		}
	}
	return &Quantiles{points: points}, nil
}

// Value returns the boundary at percentile p, which must be in [0, 100].
func (q *Quantiles) Value(p int) decimal.Decimal { return q.points[p] }

// Percentiles returns all 101 boundaries. Callers must not modify the
// slice.
func (q *Quantiles) Percentiles() []decimal.Decimal { return q.points }

// Quartiles returns the 5 boundaries at percentiles 0, 25, 50, 75, 100.
func (q *Quantiles) Quartiles() []decimal.Decimal { return q.stride(25) }

// Quintiles returns the 6 boundaries at percentiles 0, 20, ..., 100.
func (q *Quantiles) Quintiles() []decimal.Decimal { return q.stride(20) }

// Deciles returns the 11 boundaries at percentiles 0, 10, ..., 100.
func (q *Quantiles) Deciles() []decimal.Decimal { return q.stride(10) }

func (q *Quantiles) stride(step int) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, 100/step+1)
	for p := 0; p <= 100; p += step {
		out = append(out, q.points[p])
	}
	return out
}

// Locate returns the percentile bucket a value falls into: the smallest
// index i such that value < points[i+1], or 100 when no boundary
// exceeds the value.
func (q *Quantiles) Locate(value decimal.Decimal) int {
	for i := 0; i < 100; i++ {
		if value.LessThan(q.points[i+1]) {
			return i
		}
	}
	return 100
}
