package table

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCastNullTokens(t *testing.T) {
	tokens := []interface{}{nil, "", "na", "NA", "n/a", "N/A", "none", "None", "null", "NULL", "."}
	types := []ColumnType{Text, Boolean, Number, Date, DateTime}

	for _, ctype := range types {
		for _, token := range tokens {
			v, err := ctype.Cast(token)
			if err != nil {
				t.Fatalf("%s.Cast(%v) error = %v", ctype, token, err)
			}
			if v != nil {
				t.Errorf("%s.Cast(%v) = %v, want nil", ctype, token, v)
			}
		}
	}
}

func TestCastText(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    interface{}
		wantErr bool
	}{
		{name: "string identity", raw: "hello", want: "hello"},
		{name: "bytes", raw: []byte("hello"), want: "hello"},
		{name: "number rejected", raw: 5, wantErr: true},
		{name: "bool rejected", raw: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text.Cast(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cast() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var castErr *CastError
				if !errors.As(err, &castErr) {
					t.Fatalf("error %v is not a CastError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Cast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastBoolean(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    bool
		wantErr bool
	}{
		{name: "bool identity", raw: true, want: true},
		{name: "true token", raw: "true", want: true},
		{name: "uppercase token", raw: "YES", want: true},
		{name: "single letter", raw: "t", want: true},
		{name: "false token", raw: "no", want: false},
		{name: "zero", raw: 0, want: false},
		{name: "one", raw: int64(1), want: true},
		{name: "other int rejected", raw: 2, wantErr: true},
		{name: "unknown token rejected", raw: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Boolean.Cast(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cast() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("Cast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    string
		wantErr bool
	}{
		{name: "decimal identity", raw: num("1.1"), want: "1.1"},
		{name: "string literal", raw: "2.7", want: "2.7"},
		{name: "negative string", raw: "-0.5", want: "-0.5"},
		{name: "int", raw: 42, want: "42"},
		{name: "int64", raw: int64(-3), want: "-3"},
		{name: "float64 rejected", raw: 1.1, wantErr: true},
		{name: "float32 rejected", raw: float32(1.1), wantErr: true},
		{name: "garbage rejected", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Number.Cast(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cast() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var castErr *CastError
				if !errors.As(err, &castErr) {
					t.Fatalf("error %v is not a CastError", err)
				}
				return
			}
			if !got.(decimal.Decimal).Equal(num(tt.want)) {
				t.Errorf("Cast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastDate(t *testing.T) {
	midnight := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     interface{}
		want    time.Time
		wantErr bool
	}{
		{name: "iso string", raw: "2024-03-05", want: midnight},
		{name: "time identity", raw: midnight, want: midnight},
		{name: "time with clock truncates", raw: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), want: midnight},
		{name: "clock string rejected", raw: "2024-03-05 10:30:00", wantErr: true},
		{name: "ambiguous rejected", raw: "04/02/2014", wantErr: true},
		{name: "garbage rejected", raw: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date.Cast(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cast() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var castErr *CastError
				if !errors.As(err, &castErr) {
					t.Fatalf("error %v is not a CastError", err)
				}
				return
			}
			if !got.(time.Time).Equal(tt.want) {
				t.Errorf("Cast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastDateTime(t *testing.T) {
	stamp := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	got, err := DateTime.Cast("2024-03-05 10:30:00")
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if !got.(time.Time).Equal(stamp) {
		t.Errorf("Cast() = %v, want %v", got, stamp)
	}

	identity, err := DateTime.Cast(stamp)
	if err != nil {
		t.Fatalf("Cast() identity error = %v", err)
	}
	if !identity.(time.Time).Equal(stamp) {
		t.Errorf("Cast() identity = %v, want %v", identity, stamp)
	}

	if _, err := DateTime.Cast("yesterday-ish"); err == nil {
		t.Error("Cast() accepted unparseable datetime")
	}
}

func TestValidate(t *testing.T) {
	err := Number.Validate([]interface{}{"1.1", nil, "abc"})
	if err == nil {
		t.Fatal("Validate() accepted a bad value")
	}
	var colErr *ColumnValidationError
	if !errors.As(err, &colErr) {
		t.Fatalf("error %v is not a ColumnValidationError", err)
	}
	if colErr.Row != 2 {
		t.Errorf("ColumnValidationError.Row = %d, want 2", colErr.Row)
	}
	var castErr *CastError
	if !errors.As(err, &castErr) {
		t.Errorf("ColumnValidationError does not wrap a CastError: %v", err)
	}

	if err := Number.Validate([]interface{}{"1.1", nil, "2"}); err != nil {
		t.Errorf("Validate() error = %v on a valid column", err)
	}
}
