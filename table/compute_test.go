package table

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// columnDecimals extracts a Number column as literals for comparison,
// with "" standing in for null.
func columnDecimals(t *testing.T, tbl *Table, name string) []string {
	t.Helper()
	col := mustColumn(t, tbl, name)
	out := make([]string, col.Len())
	for i, v := range col.Data() {
		if v == nil {
			out[i] = ""
			continue
		}
		out[i] = v.(decimal.Decimal).String()
	}
	return out
}

func TestChange(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"1", "3"},
		{"2", "2"},
		{nil, "5"},
	}, []string{"before", "after"}, []ColumnType{Number, Number})

	result, err := tbl.Compute(NamedComputation{
		Name: "change",
		Comp: &Change{Before: "before", After: "after"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := columnDecimals(t, result, "change")
	want := []string{"2", "0", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPercentChange(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"4", "5"},
		{"10", "5"},
		{"0", "5"},
	}, []string{"before", "after"}, []ColumnType{Number, Number})

	result, err := tbl.Compute(NamedComputation{
		Name: "pct",
		Comp: &PercentChange{Before: "before", After: "after"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	pct := mustColumn(t, result, "pct")
	if v, _ := pct.Value(0); !v.(decimal.Decimal).Equal(num("25")) {
		t.Errorf("pct[0] = %v, want 25", v)
	}
	if v, _ := pct.Value(1); !v.(decimal.Decimal).Equal(num("-50")) {
		t.Errorf("pct[1] = %v, want -50", v)
	}
	if v, _ := pct.Value(2); v != nil {
		t.Errorf("pct[2] = %v, want null for zero base", v)
	}
}

func TestZScores(t *testing.T) {
	tbl := numbersTable(t, "1", "2", "3")
	result, err := tbl.Compute(NamedComputation{
		Name: "z",
		Comp: &ZScores{Column: "value"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := columnDecimals(t, result, "z")
	want := []string{"-1", "0", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("z[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// Ties share the rank of their first sorted position; ranks are not
// deduplicated afterwards.
func TestRankTies(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"a", "2", "3"},
		{nil, "3", "5"},
		{"a", "2", "4"},
		{"b", "3", "4"},
	}, []string{"one", "two", "three"}, []ColumnType{Text, Number, Number})

	result, err := tbl.Compute(NamedComputation{
		Name: "rank",
		Comp: &Rank{Column: "two"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := columnDecimals(t, result, "rank")
	want := []string{"1", "3", "1", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRankNullsLast(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"b"}, {nil}, {"a"},
	}, []string{"label"}, []ColumnType{Text})

	result, err := tbl.Compute(NamedComputation{
		Name: "rank",
		Comp: &Rank{Column: "label"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := columnDecimals(t, result, "rank")
	want := []string{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPercentileRank(t *testing.T) {
	tbl := numbersTable(t, "1", "2", "3", "4")
	result, err := tbl.Compute(NamedComputation{
		Name: "pr",
		Comp: &PercentileRank{Column: "value"},
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := columnDecimals(t, result, "pr")
	want := []string{"24", "49", "74", "100"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pr[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestComputePrepareErrors(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"a", "1"},
		{"b", nil},
	}, []string{"label", "value"}, []ColumnType{Text, Number})

	// Ill-typed reference fails during prepare with the computation and
	// offending column named.
	_, err := tbl.Compute(NamedComputation{Name: "z", Comp: &ZScores{Column: "label"}})
	var unsupported *UnsupportedComputationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Compute() error = %v, want UnsupportedComputationError", err)
	}
	if unsupported.Computation != "ZScores" || unsupported.Column != "label" {
		t.Errorf("error carries %q/%q, want ZScores/label", unsupported.Computation, unsupported.Column)
	}

	// Null-intolerant prepare statistics propagate NullComputationError.
	_, err = tbl.Compute(NamedComputation{Name: "z", Comp: &ZScores{Column: "value"}})
	var nullErr *NullComputationError
	if !errors.As(err, &nullErr) {
		t.Fatalf("Compute() error = %v, want NullComputationError", err)
	}

	// A prepare failure leaves the original table untouched.
	if got := len(tbl.ColumnNames()); got != 2 {
		t.Errorf("original table has %d columns after failed Compute, want 2", got)
	}
}

func TestComputeMultiple(t *testing.T) {
	tbl := mustTable(t, [][]interface{}{
		{"1", "3"},
		{"2", "6"},
	}, []string{"before", "after"}, []ColumnType{Number, Number})

	result, err := tbl.Compute(
		NamedComputation{Name: "change", Comp: &Change{Before: "before", After: "after"}},
		NamedComputation{Name: "rank", Comp: &Rank{Column: "before"}},
	)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	wantNames := []string{"before", "after", "change", "rank"}
	gotNames := result.ColumnNames()
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, gotNames[i], wantNames[i])
		}
	}

	// Appending a column that already exists is rejected.
	if _, err := tbl.Compute(NamedComputation{Name: "before", Comp: &Rank{Column: "before"}}); err == nil {
		t.Error("Compute() accepted a duplicate column name")
	}
}
