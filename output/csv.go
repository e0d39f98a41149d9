package output

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/tably/tably/table"
)

// CSVFormatter outputs a table as CSV with a header row.
type CSVFormatter struct {
	writer io.Writer
	iso    bool
}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer.
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// SetISODates switches date-time rendering to RFC 3339.
func (c *CSVFormatter) SetISODates(iso bool) {
	c.iso = iso
}

// Format writes the table as CSV. Nulls render as empty fields.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)
	types := t.ColumnTypes()

	if err := csvWriter.Write(t.ColumnNames()); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}

	for i := 0; i < t.Len(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		values := row.Values()
		record := make([]string, len(types))
		for j, ctype := range types {
			record[j] = formatValue(values[j], ctype, c.iso)
		}
		if err := csvWriter.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV writer")
	}
	return nil
}
