package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/tably/tably/table"
)

// TableFormatter renders a table as an aligned ASCII grid for terminal
// display.
type TableFormatter struct {
	writer io.Writer
	iso    bool
}

// NewTableFormatter creates a new terminal table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer.
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// SetISODates switches date-time rendering to RFC 3339.
func (f *TableFormatter) SetISODates(iso bool) {
	f.iso = iso
}

// Format renders the table with a header row. Nulls render as empty
// cells.
func (f *TableFormatter) Format(t *table.Table) error {
	types := t.ColumnTypes()

	w := tablewriter.NewWriter(f.writer)
	w.SetHeader(t.ColumnNames())
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)

	for i := 0; i < t.Len(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		values := row.Values()
		record := make([]string, len(types))
		for j, ctype := range types {
			record[j] = formatValue(values[j], ctype, f.iso)
		}
		w.Append(record)
	}

	w.Render()
	return nil
}
