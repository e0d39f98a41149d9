package reader

import (
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/pkg/errors"

	"github.com/tably/tably/table"
)

// Parquet loads a parquet file into a Table. Column order follows the
// parquet schema. BOOLEAN, INT32, INT64, string, date, and timestamp
// columns map onto the engine's types; FLOAT and DOUBLE columns are
// rejected, since numeric columns require exact decimal input.
func Parquet(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}
	pqFile, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open parquet file")
	}

	fields := pqFile.Schema().Fields()
	names := make([]string, len(fields))
	types := make([]table.ColumnType, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
		types[i], err = columnTypeOf(field)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", field.Name())
		}
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	rows := make([][]interface{}, 0)
	for {
		record := make(map[string]interface{})
		if err := reader.Read(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrap(err, "failed to read row")
		}
		row := make([]interface{}, len(fields))
		for i, field := range fields {
			row[i] = convertValue(record[names[i]], types[i], field)
		}
		rows = append(rows, row)
	}

	t, err := table.New(rows, names, types)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build table from parquet")
	}
	return t, nil
}

// columnTypeOf maps a parquet leaf field onto an engine column type,
// consulting the logical type before the physical kind.
func columnTypeOf(field parquet.Field) (table.ColumnType, error) {
	if lt := field.Type().LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return table.Text, nil
		case lt.Date != nil:
			return table.Date, nil
		case lt.Timestamp != nil:
			return table.DateTime, nil
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return table.Boolean, nil
	case parquet.Int32, parquet.Int64:
		return table.Number, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.Text, nil
	case parquet.Float, parquet.Double:
		return 0, errors.New("float columns are not supported: exact decimal input required")
	}
	return 0, errors.Errorf("unsupported parquet kind %s", field.Type().Kind())
}

// convertValue turns a decoded parquet value into raw input for the
// table caster. Date and timestamp columns arrive as epoch integers.
func convertValue(v interface{}, ctype table.ColumnType, field parquet.Field) interface{} {
	if v == nil {
		return nil
	}
	switch ctype {
	case table.Date:
		if days, ok := toInt64(v); ok {
			return time.Unix(0, 0).UTC().AddDate(0, 0, int(days))
		}
	case table.DateTime:
		if ticks, ok := toInt64(v); ok {
			return timestampValue(ticks, field.Type().LogicalType())
		}
	}
	return v
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func timestampValue(ticks int64, lt *format.LogicalType) time.Time {
	unit := format.TimeUnit{Millis: &format.MilliSeconds{}}
	if lt != nil && lt.Timestamp != nil {
		unit = lt.Timestamp.Unit
	}
	switch {
	case unit.Micros != nil:
		return time.UnixMicro(ticks).UTC()
	case unit.Nanos != nil:
		return time.Unix(0, ticks).UTC()
	}
	return time.UnixMilli(ticks).UTC()
}
