package table

import (
	"errors"
	"fmt"
)

// ErrNoValues reports a statistic requested over a column with no usable
// values, including quantile construction over zero data points.
var ErrNoValues = errors.New("column has no values")

// CastError reports a raw value that cannot be interpreted as the
// declared column type. It is fatal to the construction of the Table the
// value was offered to.
type CastError struct {
	Value  interface{}
	Type   ColumnType
	Reason string
}

func (e *CastError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot cast %v (%T) to %s: %s", e.Value, e.Value, e.Type, e.Reason)
	}
	return fmt.Sprintf("cannot cast %v (%T) to %s", e.Value, e.Value, e.Type)
}

// ColumnValidationError reports that a column's values collectively
// failed type validation. Row is the zero-based position of the first
// offending value.
type ColumnValidationError struct {
	Column string
	Row    int
	Err    error
}

func (e *ColumnValidationError) Error() string {
	return fmt.Sprintf("column %q failed validation at row %d: %v", e.Column, e.Row, e.Err)
}

func (e *ColumnValidationError) Unwrap() error { return e.Err }

// NullComputationError reports a null-intolerant statistic invoked on a
// column containing nulls.
type NullComputationError struct {
	Operation string
}

func (e *NullComputationError) Error() string {
	return fmt.Sprintf("%s requires a column without nulls", e.Operation)
}

// UnsupportedAggregationError reports an aggregation applied to a column
// type it does not support.
type UnsupportedAggregationError struct {
	Aggregation string
	ColumnType  ColumnType
}

func (e *UnsupportedAggregationError) Error() string {
	return fmt.Sprintf("aggregation %s does not support %s columns", e.Aggregation, e.ColumnType)
}

// UnsupportedComputationError reports a computation that references a
// column of an incompatible type. It is raised during the prepare phase,
// never mid-row.
type UnsupportedComputationError struct {
	Computation string
	Column      string
	ColumnType  ColumnType
}

func (e *UnsupportedComputationError) Error() string {
	return fmt.Sprintf("computation %s does not support %s column %q", e.Computation, e.ColumnType, e.Column)
}

// ColumnDoesNotExistError reports access to an unknown column name.
type ColumnDoesNotExistError struct {
	Name string
}

func (e *ColumnDoesNotExistError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Name)
}

// RowDoesNotExistError reports access to an out-of-range row index.
type RowDoesNotExistError struct {
	Index int
}

func (e *RowDoesNotExistError) Error() string {
	return fmt.Sprintf("row %d does not exist", e.Index)
}
