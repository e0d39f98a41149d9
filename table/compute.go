package table

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Computation is a row-wise derivation producing one new column. It is a
// two-phase protocol: Prepare runs exactly once against the whole table
// before any row is processed, and is where column-level statistics are
// precomputed and referenced columns are type-checked. Run is then
// invoked once per row and must be a pure function of that row plus the
// state captured during Prepare.
type Computation interface {
	Name() string
	ResultType() ColumnType
	Prepare(t *Table) error
	Run(r *Row) (interface{}, error)
}

// NamedComputation binds a computation to the name of the column it
// appends.
type NamedComputation struct {
	Name string
	Comp Computation
}

// requireNumberColumn resolves a column and checks it is Number-typed,
// reporting an UnsupportedComputationError naming the computation
// otherwise.
func requireNumberColumn(t *Table, computation, name string) (*Column, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Type() != Number {
		return nil, &UnsupportedComputationError{
			Computation: computation,
			Column:      name,
			ColumnType:  col.Type(),
		}
	}
	return col, nil
}

// Change computes After minus Before for two Number columns. Rows where
// either operand is null yield null.
type Change struct {
	Before string
	After  string
}

func (c *Change) Name() string           { return "Change" }
func (c *Change) ResultType() ColumnType { return Number }

func (c *Change) Prepare(t *Table) error {
	for _, name := range []string{c.Before, c.After} {
		if _, err := requireNumberColumn(t, c.Name(), name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Change) Run(r *Row) (interface{}, error) {
	before, after, err := operands(r, c.Before, c.After)
	if err != nil || before == nil || after == nil {
		return nil, err
	}
	return after.(decimal.Decimal).Sub(before.(decimal.Decimal)), nil
}

// PercentChange computes (After - Before) / Before * 100 for two Number
// columns. Rows where either operand is null, or where Before is zero,
// yield null.
type PercentChange struct {
	Before string
	After  string
}

func (c *PercentChange) Name() string           { return "PercentChange" }
func (c *PercentChange) ResultType() ColumnType { return Number }

func (c *PercentChange) Prepare(t *Table) error {
	for _, name := range []string{c.Before, c.After} {
		if _, err := requireNumberColumn(t, c.Name(), name); err != nil {
			return err
		}
	}
	return nil
}

func (c *PercentChange) Run(r *Row) (interface{}, error) {
	before, after, err := operands(r, c.Before, c.After)
	if err != nil || before == nil || after == nil {
		return nil, err
	}
	b := before.(decimal.Decimal)
	if b.IsZero() {
		return nil, nil
	}
	return after.(decimal.Decimal).Sub(b).
		DivRound(b, divisionPrecision).
		Mul(decimal.NewFromInt(100)), nil
}

func operands(r *Row, before, after string) (interface{}, interface{}, error) {
	b, err := r.Value(before)
	if err != nil {
		return nil, nil, err
	}
	a, err := r.Value(after)
	if err != nil {
		return nil, nil, err
	}
	return b, a, nil
}

// ZScores computes each value's distance from the column mean in units
// of standard deviation. Mean and standard deviation are computed once
// during Prepare, so the column must be null-free.
type ZScores struct {
	Column string

	mean  decimal.Decimal
	stdev decimal.Decimal
}

func (c *ZScores) Name() string           { return "ZScores" }
func (c *ZScores) ResultType() ColumnType { return Number }

func (c *ZScores) Prepare(t *Table) error {
	col, err := requireNumberColumn(t, c.Name(), c.Column)
	if err != nil {
		return err
	}
	if c.mean, err = col.Mean(); err != nil {
		return err
	}
	if c.stdev, err = col.StDev(); err != nil {
		return err
	}
	if c.stdev.IsZero() {
		return fmt.Errorf("ZScores: column %q has zero standard deviation", c.Column)
	}
	return nil
}

func (c *ZScores) Run(r *Row) (interface{}, error) {
	v, err := r.Value(c.Column)
	if err != nil {
		return nil, err
	}
	return v.(decimal.Decimal).Sub(c.mean).DivRound(c.stdev, divisionPrecision), nil
}

// Rank ranks each row by its value in the named column: one plus the
// index of the first equal value in the sorted order, with nulls sorting
// after every non-null value. Equal values therefore share the rank of
// their first sorted position and ranks are not deduplicated; callers
// relying on gapless ranking should deduplicate first. This matches the
// long-standing behavior and is kept deliberately.
type Rank struct {
	Column string

	sorted []interface{}
}

func (c *Rank) Name() string           { return "Rank" }
func (c *Rank) ResultType() ColumnType { return Number }

func (c *Rank) Prepare(t *Table) error {
	col, err := t.Column(c.Column)
	if err != nil {
		return err
	}
	c.sorted = col.DataSorted()
	return nil
}

func (c *Rank) Run(r *Row) (interface{}, error) {
	v, err := r.Value(c.Column)
	if err != nil {
		return nil, err
	}
	for i, sv := range c.sorted {
		if valuesEqual(sv, v) {
			return decimal.NewFromInt(int64(i + 1)), nil
		}
	}
	return nil, fmt.Errorf("Rank: value %v not present in column %q", v, c.Column)
}

// PercentileRank locates each row's value in the column's percentile
// boundaries. The boundaries are computed once during Prepare, so the
// column must be Number-typed and null-free.
type PercentileRank struct {
	Column string

	quantiles *Quantiles
}

func (c *PercentileRank) Name() string           { return "PercentileRank" }
func (c *PercentileRank) ResultType() ColumnType { return Number }

func (c *PercentileRank) Prepare(t *Table) error {
	col, err := requireNumberColumn(t, c.Name(), c.Column)
	if err != nil {
		return err
	}
	c.quantiles, err = col.Percentiles()
	return err
}

func (c *PercentileRank) Run(r *Row) (interface{}, error) {
	v, err := r.Value(c.Column)
	if err != nil {
		return nil, err
	}
	return decimal.NewFromInt(int64(c.quantiles.Locate(v.(decimal.Decimal)))), nil
}
