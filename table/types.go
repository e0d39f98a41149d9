package table

import (
	"math/big"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// ColumnType identifies the static type of a column. The canonical
// in-memory representations are string (Text), bool (Boolean),
// decimal.Decimal (Number), and time.Time (Date, DateTime). Null is the
// untyped nil value for every type.
type ColumnType int

const (
	Text ColumnType = iota
	Boolean
	Number
	Date
	DateTime
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "Text"
	case Boolean:
		return "Boolean"
	case Number:
		return "Number"
	case Date:
		return "Date"
	case DateTime:
		return "DateTime"
	}
	return "Unknown"
}

// nullTokens are raw strings that collapse to null during casting,
// compared case-insensitively.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"none": true,
	"null": true,
	".":    true,
}

var trueTokens = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "1": true}

var falseTokens = map[string]bool{"false": true, "f": true, "no": true, "n": true, "0": true}

func isNullToken(s string) bool {
	return nullTokens[strings.ToLower(s)]
}

// Cast converts a raw value into the column type's canonical
// representation. nil and recognized null tokens cast to nil for every
// type. Casting a value already in canonical form is the identity.
// Values that cannot be losslessly interpreted fail with a CastError; in
// particular, binary floating-point values offered to Number are always
// rejected, since numeric columns must be built from exact decimal
// inputs.
func (t ColumnType) Cast(raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && isNullToken(s) {
		return nil, nil
	}

	switch t {
	case Text:
		return castText(raw)
	case Boolean:
		return castBoolean(raw)
	case Number:
		return castNumber(raw)
	case Date:
		return castDate(raw)
	case DateTime:
		return castDateTime(raw)
	}
	return nil, &CastError{Value: raw, Type: t, Reason: "unknown column type"}
}

// Validate applies Cast's failure semantics to every value of a
// candidate column. A single bad value invalidates the whole column;
// partial validation is not supported.
func (t ColumnType) Validate(values []interface{}) error {
	for i, raw := range values {
		if _, err := t.Cast(raw); err != nil {
			return &ColumnValidationError{Row: i, Err: err}
		}
	}
	return nil
}

func castText(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return nil, &CastError{Value: raw, Type: Text}
}

func castBoolean(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		lower := strings.ToLower(v)
		if trueTokens[lower] {
			return true, nil
		}
		if falseTokens[lower] {
			return false, nil
		}
	case int:
		return intToBool(raw, int64(v))
	case int32:
		return intToBool(raw, int64(v))
	case int64:
		return intToBool(raw, v)
	}
	return nil, &CastError{Value: raw, Type: Boolean}
}

func intToBool(raw interface{}, v int64) (interface{}, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, &CastError{Value: raw, Type: Boolean, Reason: "only 0 and 1 are recognized"}
}

func castNumber(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, &CastError{Value: raw, Type: Number, Reason: "not a decimal literal"}
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case float32, float64:
		return nil, &CastError{
			Value:  raw,
			Type:   Number,
			Reason: "binary floats are not exact; pass a string or decimal",
		}
	}
	return nil, &CastError{Value: raw, Type: Number}
}

func castDate(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case time.Time:
		return midnightUTC(v), nil
	case string:
		parsed, err := dateparse.ParseStrict(v)
		if err != nil {
			return nil, &CastError{Value: raw, Type: Date, Reason: err.Error()}
		}
		return dateOnly(raw, parsed)
	}
	return nil, &CastError{Value: raw, Type: Date}
}

func midnightUTC(v time.Time) time.Time {
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}

// dateOnly normalizes a parsed date string to midnight UTC. A nonzero
// clock means the text is a datetime literal, not a date, and is
// rejected; time.Time inputs are already canonical datetimes and
// truncate instead.
func dateOnly(raw interface{}, v time.Time) (interface{}, error) {
	if v.Hour() != 0 || v.Minute() != 0 || v.Second() != 0 || v.Nanosecond() != 0 {
		return nil, &CastError{Value: raw, Type: Date, Reason: "value carries a time of day"}
	}
	return midnightUTC(v), nil
}

func castDateTime(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		parsed, err := dateparse.ParseStrict(v)
		if err != nil {
			return nil, &CastError{Value: raw, Type: DateTime, Reason: err.Error()}
		}
		return parsed, nil
	}
	return nil, &CastError{Value: raw, Type: DateTime}
}
