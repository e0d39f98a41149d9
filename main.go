package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tably/tably/output"
	"github.com/tably/tably/reader"
	"github.com/tably/tably/table"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// loadTable picks a loader from the file extension.
func loadTable(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return reader.CSV(f)
	case ".parquet":
		return reader.Parquet(path)
	}
	return nil, fmt.Errorf("unsupported file extension on %q: want .csv or .parquet", path)
}

func formatterFor(cmd *cobra.Command, w io.Writer) output.Formatter {
	format, _ := cmd.Flags().GetString("format")
	iso, _ := cmd.Flags().GetBool("iso-dates")

	switch format {
	case "csv":
		f := output.NewCSVFormatter(w)
		f.SetISODates(iso)
		return f
	case "jsonl":
		f := output.NewJSONFormatter(w)
		f.SetISODates(iso)
		return f
	case "table":
		f := output.NewTableFormatter(w)
		f.SetISODates(iso)
		return f
	}
	fatal("unknown format %q: want 'csv', 'jsonl' or 'table'", format)
	return nil
}

func catFile(cmd *cobra.Command, args []string) {
	tbl, err := loadTable(args[0])
	if err != nil {
		fatal("%s", err)
	}
	if err := formatterFor(cmd, os.Stdout).Format(tbl); err != nil {
		fatal("%s", err)
	}
}

// describeFile prints summary statistics for every numeric column.
func describeFile(cmd *cobra.Command, args []string) {
	tbl, err := loadTable(args[0])
	if err != nil {
		fatal("%s", err)
	}

	rows := make([][]interface{}, 0)
	for _, name := range tbl.ColumnNames() {
		col, err := tbl.Column(name)
		if err != nil {
			fatal("%s", err)
		}
		if col.Type() != table.Number {
			continue
		}
		rows = append(rows, describeColumn(col))
	}
	if len(rows) == 0 {
		fatal("%s has no numeric columns", args[0])
	}

	stats, err := table.New(rows,
		[]string{"column", "count", "mean", "std", "min", "p25", "p50", "p75", "max"},
		[]table.ColumnType{
			table.Text, table.Number, table.Number, table.Number, table.Number,
			table.Number, table.Number, table.Number, table.Number,
		})
	if err != nil {
		fatal("%s", err)
	}
	if err := formatterFor(cmd, os.Stdout).Format(stats); err != nil {
		fatal("%s", err)
	}
}

// describeColumn builds one stats row. Statistics that reject null
// input resolve to null instead of failing the whole report.
func describeColumn(col *table.Column) []interface{} {
	row := []interface{}{col.Name(), len(col.DataWithoutNulls()), nil, nil, nil, nil, nil, nil, nil}

	if mean, err := col.Mean(); err == nil {
		row[2] = mean
	}
	if std, err := col.StDev(); err == nil {
		row[3] = std
	}
	if min, err := col.Min(); err == nil {
		row[4] = min
	}
	if q, err := col.Percentiles(); err == nil {
		row[5] = q.Value(25)
		row[6] = q.Value(50)
		row[7] = q.Value(75)
	}
	if max, err := col.Max(); err == nil {
		row[8] = max
	}
	return row
}

// percentilesFile prints the 101 percentile boundaries of one column.
func percentilesFile(cmd *cobra.Command, args []string) {
	tbl, err := loadTable(args[0])
	if err != nil {
		fatal("%s", err)
	}
	col, err := tbl.Column(args[1])
	if err != nil {
		fatal("%s", err)
	}
	quantiles, err := col.Percentiles()
	if err != nil {
		fatal("%s", err)
	}

	rows := make([][]interface{}, 101)
	for p, v := range quantiles.Percentiles() {
		rows[p] = []interface{}{p, v}
	}
	result, err := table.New(rows,
		[]string{"percentile", "value"},
		[]table.ColumnType{table.Number, table.Number})
	if err != nil {
		fatal("%s", err)
	}
	if err := formatterFor(cmd, os.Stdout).Format(result); err != nil {
		fatal("%s", err)
	}
}

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cat file",
		Short: "Print the rows of a CSV or parquet file",
		Args:  cobra.ExactArgs(1),
		Run:   catFile}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "describe file",
		Short: "Print summary statistics for the numeric columns of a file",
		Args:  cobra.ExactArgs(1),
		Run:   describeFile}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "percentiles file column",
		Short: "Print the percentile boundaries of a numeric column",
		Args:  cobra.ExactArgs(2),
		Run:   percentilesFile}
	root.AddCommand(cmd)
}

func main() {
	var root = &cobra.Command{Use: "tably"}
	root.PersistentFlags().String("format", "table", "output format, 'csv', 'jsonl' or 'table'")
	root.PersistentFlags().Bool("iso-dates", false, "render date-times as RFC 3339")
	addCommands(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
