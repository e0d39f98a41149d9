package reader

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/tably/tably/table"
)

// Option configures a CSV load.
type Option func(*options)

type options struct {
	types []table.ColumnType
	comma rune
}

// WithTypes sets explicit per-column types instead of inferring them.
// The count must match the header's column count.
func WithTypes(types ...table.ColumnType) Option {
	return func(o *options) { o.types = types }
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) Option {
	return func(o *options) { o.comma = comma }
}

// CSV parses delimited text into a Table. The first record is the
// header row of column names. Records may have fewer fields than the
// header; missing trailing fields resolve to null. Column types are
// inferred unless WithTypes is given.
func CSV(r io.Reader, opts ...Option) (*table.Table, error) {
	o := options{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv input has no header row")
	}

	names := records[0]
	rows := make([][]interface{}, len(records)-1)
	for i, record := range records[1:] {
		if len(record) > len(names) {
			return nil, errors.Errorf("record %d has %d fields for %d columns", i+1, len(record), len(names))
		}
		row := make([]interface{}, len(record))
		for j, field := range record {
			row[j] = field
		}
		rows[i] = row
	}

	types := o.types
	if types == nil {
		types = inferTypes(len(names), rows)
	} else if len(types) != len(names) {
		return nil, errors.Errorf("%d explicit types for %d columns", len(types), len(names))
	}

	t, err := table.New(rows, names, types)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build table from csv")
	}
	return t, nil
}

// typeCandidates is the inference order: the first type whose cast
// accepts every non-null value in a column wins, with Text as the
// unconditional fallback.
var typeCandidates = []table.ColumnType{
	table.Boolean,
	table.Number,
	table.Date,
	table.DateTime,
}

func inferTypes(ncols int, rows [][]interface{}) []table.ColumnType {
	types := make([]table.ColumnType, ncols)
	for col := 0; col < ncols; col++ {
		types[col] = inferColumn(col, rows)
	}
	return types
}

func inferColumn(col int, rows [][]interface{}) table.ColumnType {
	for _, candidate := range typeCandidates {
		ok := true
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			if _, err := candidate.Cast(row[col]); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
	return table.Text
}
