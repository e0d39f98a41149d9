package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// compareValues is the three-way ordering used by every sort in the
// engine. Null orders Greater than any non-null value and Equal to
// another null; this holds for ordering purposes only and is distinct
// from value equality. Returns a negative number, zero, or a positive
// number as a orders before, the same as, or after b.
func compareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case bv:
				return -1
			}
			return 1
		}
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	// Mixed types only reach here through user-supplied sort keys; fall
	// back to the canonical encoding so the ordering stays total.
	return strings.Compare(encodeValue(a), encodeValue(b))
}

// valuesEqual is value equality: null equals null, and non-null values
// are equal when they order the same.
func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return compareValues(a, b) == 0
}

// encodeValue produces a canonical string for a column value, used for
// hash keys in joins, grouping, and distinct counting. Decimal and time
// values need stable encodings; fmt's %#v is not stable for types that
// carry pointers.
func encodeValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "\x00"
	case string:
		return "s:" + val
	case bool:
		if val {
			return "b:1"
		}
		return "b:0"
	case decimal.Decimal:
		return "n:" + val.String()
	case time.Time:
		return "t:" + val.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("v:%v", v)
}

// encodeKey joins a tuple of values into one hash key. Each encoded
// value is length-prefixed, so a string value spelling out another
// value's encoding cannot collide with an adjacent tuple slot.
func encodeKey(values []interface{}) string {
	var b strings.Builder
	for _, v := range values {
		enc := encodeValue(v)
		b.WriteString(strconv.Itoa(len(enc)))
		b.WriteByte(':')
		b.WriteString(enc)
	}
	return b.String()
}
