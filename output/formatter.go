package output

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tably/tably/table"
)

// Formatter defines the interface for table output formatters.
//
// Implementers must provide Format to render a table in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

const (
	dateLayout        = "2006-01-02"
	dateTimeLayout    = "2006-01-02 15:04:05"
	isoDateTimeLayout = time.RFC3339
)

// formatValue converts a canonical cell value to its text rendering.
// Numbers keep their exact decimal form; nulls render as the empty
// string.
func formatValue(v interface{}, ctype table.ColumnType, iso bool) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case decimal.Decimal:
		return val.String()
	case time.Time:
		if ctype == table.Date {
			return val.Format(dateLayout)
		}
		if iso {
			return val.Format(isoDateTimeLayout)
		}
		return val.Format(dateTimeLayout)
	}
	return ""
}
