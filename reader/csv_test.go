package reader

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tably/tably/table"
)

func TestCSVInference(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []table.ColumnType
	}{
		{
			name:  "numbers",
			input: "a,b\n1,1.5\n2,2.5\n",
			types: []table.ColumnType{table.Number, table.Number},
		},
		{
			name:  "booleans",
			input: "ok\ntrue\nno\nYES\n",
			types: []table.ColumnType{table.Boolean},
		},
		{
			name:  "dates",
			input: "day\n2024-01-02\n2024-01-03\n",
			types: []table.ColumnType{table.Date},
		},
		{
			name:  "datetimes",
			input: "at\n2024-01-02T10:00:00Z\n2024-01-03T11:30:00Z\n",
			types: []table.ColumnType{table.DateTime},
		},
		{
			name:  "mixed falls back to text",
			input: "v\n1\nhello\n",
			types: []table.ColumnType{table.Text},
		},
		{
			name:  "all nulls fall back to text",
			input: "v\n\nNA\n",
			types: []table.ColumnType{table.Text},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := CSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("CSV() error: %v", err)
			}
			got := tbl.ColumnTypes()
			if len(got) != len(tt.types) {
				t.Fatalf("got %d columns, want %d", len(got), len(tt.types))
			}
			for i, want := range tt.types {
				if got[i] != want {
					t.Errorf("column %d: got type %s, want %s", i, got[i], want)
				}
			}
		})
	}
}

func TestCSVValues(t *testing.T) {
	input := "name,amount,day\nalice,1.5,2024-01-02\nbob,NA,2024-01-03\n"
	tbl, err := CSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}

	amount, err := tbl.Column("amount")
	if err != nil {
		t.Fatalf("Column() error: %v", err)
	}
	first, ok := amount.Data()[0].(decimal.Decimal)
	if !ok {
		t.Fatalf("amount[0] = %T, want decimal.Decimal", amount.Data()[0])
	}
	if !first.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("amount[0] = %s, want 1.5", first)
	}
	if amount.Data()[1] != nil {
		t.Errorf("amount[1] = %v, want null", amount.Data()[1])
	}

	day, err := tbl.Column("day")
	if err != nil {
		t.Fatalf("Column() error: %v", err)
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := day.Data()[0].(time.Time); !got.Equal(want) {
		t.Errorf("day[0] = %v, want %v", got, want)
	}
}

func TestCSVExplicitTypes(t *testing.T) {
	input := "id,flag\n1,true\n2,false\n"
	tbl, err := CSV(strings.NewReader(input), WithTypes(table.Text, table.Boolean))
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	types := tbl.ColumnTypes()
	if types[0] != table.Text || types[1] != table.Boolean {
		t.Errorf("got types %v, want [text boolean]", types)
	}
	id, _ := tbl.Column("id")
	if id.Data()[0] != "1" {
		t.Errorf("id[0] = %v, want %q", id.Data()[0], "1")
	}
}

func TestCSVShortRows(t *testing.T) {
	input := "a,b\n1,2\n3\n"
	tbl, err := CSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	b, _ := tbl.Column("b")
	if b.Data()[1] != nil {
		t.Errorf("b[1] = %v, want null for missing field", b.Data()[1])
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	tbl, err := CSV(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("got %d rows, want 0", tbl.Len())
	}
	if len(tbl.ColumnNames()) != 2 {
		t.Errorf("got %d columns, want 2", len(tbl.ColumnNames()))
	}
}

func TestCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
	}{
		{name: "empty input", input: ""},
		{
			name:  "type count mismatch",
			input: "a,b\n1,2\n",
			opts:  []Option{WithTypes(table.Number)},
		},
		{
			name:  "cast failure with explicit types",
			input: "a\nhello\n",
			opts:  []Option{WithTypes(table.Number)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CSV(strings.NewReader(tt.input), tt.opts...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCSVCustomComma(t *testing.T) {
	input := "a;b\n1;2\n"
	tbl, err := CSV(strings.NewReader(input), WithComma(';'))
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	if len(tbl.ColumnNames()) != 2 {
		t.Fatalf("got %d columns, want 2", len(tbl.ColumnNames()))
	}
}
