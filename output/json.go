package output

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/tably/tably/table"
)

// JSONFormatter outputs a table as JSON Lines, one object per row.
// Objects are built field by field so that keys keep the table's column
// order and numbers are emitted with their exact decimal representation.
type JSONFormatter struct {
	writer io.Writer
	iso    bool
}

// NewJSONFormatter creates a new JSON Lines formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// SetISODates switches date-time rendering to RFC 3339.
func (j *JSONFormatter) SetISODates(iso bool) {
	j.iso = iso
}

// Format writes the table as JSON Lines. Nulls render as JSON null.
func (j *JSONFormatter) Format(t *table.Table) error {
	names := t.ColumnNames()
	types := t.ColumnTypes()

	keys := make([][]byte, len(names))
	for i, name := range names {
		k, err := json.Marshal(name)
		if err != nil {
			return errors.Wrapf(err, "failed to encode column name %q", name)
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	for i := 0; i < t.Len(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		buf.Reset()
		buf.WriteByte('{')
		for k, v := range row.Values() {
			if k > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[k])
			buf.WriteByte(':')
			if err := writeJSONValue(&buf, v, types[k], j.iso); err != nil {
				return errors.Wrapf(err, "failed to encode row %d", i)
			}
		}
		buf.WriteString("}\n")
		if _, err := j.writer.Write(buf.Bytes()); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v interface{}, ctype table.ColumnType, iso bool) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}

	switch val := v.(type) {
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case decimal.Decimal:
		buf.WriteString(val.String())
		return nil
	case string, time.Time:
		encoded, err := json.Marshal(formatValue(v, ctype, iso))
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
	return errors.Errorf("unsupported value type %T", v)
}
