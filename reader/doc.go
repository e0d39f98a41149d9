// Package reader loads external tabular data into tables.
//
// Two loaders are provided: CSV for delimited text and Parquet for
// Apache Parquet files. Both produce the (rows, types, names) triple the
// table constructor expects, either with explicit per-column types or by
// inferring the narrowest type that accepts every non-null value.
//
// Example usage:
//
//	f, err := os.Open("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	t, err := reader.CSV(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parquet float columns are rejected: numeric columns are exact decimal
// and binary floats cannot enter them losslessly.
package reader
