// Package output provides formatters for rendering tables to text formats.
//
// This package defines the Formatter interface and provides
// implementations for CSV, JSON Lines, and aligned terminal tables. All
// formatters work directly on *table.Table values and preserve the
// table's column order.
//
// # Supported Formats
//
//   - CSV: Comma-separated values with header row
//   - JSON Lines: One JSON object per line (suitable for streaming)
//   - Table: Aligned ASCII table for terminal display
//
// # Basic Usage
//
// Using the CSV formatter:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//
//	file, err := os.Create("out.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//	if err := formatter.Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
//
// # Type Handling
//
// Numbers render with their exact decimal representation, never in
// scientific notation. Nulls render as empty CSV fields, JSON null, and
// empty table cells. Dates render as "2006-01-02"; date-times render as
// "2006-01-02 15:04:05" by default or RFC 3339 when ISO mode is enabled
// on the formatter.
package output
