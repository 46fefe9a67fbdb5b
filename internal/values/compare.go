// Package values implements ordering, equality and copying for the
// dynamically typed scalars that appear inside match fragments.
// Fragments usually come out of JSON decoding, so the same logical
// number may show up as int, int64 or float64 depending on who built
// the fragment; comparisons here widen numerics before ordering them.
package values

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// Ordering rules, in precedence order:
//   - two strings compare lexicographically
//   - two time.Time values compare chronologically
//   - anything castable to float64 compares numerically
//   - everything else orders by a type-tagged formatted form, which is
//     deterministic and never equates values of different types
func Compare(a, b any) int {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return compareStrings(sa, sb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	fa, errA := toFloat(a)
	fb, errB := toFloat(b)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	// Last resort: deterministic, type-aware formatted comparison, so
	// cross-type values like "5" and 5 never compare equal.
	return compareStrings(fmt.Sprintf("%T:%v", a, a), fmt.Sprintf("%T:%v", b, b))
}

// Equal reports whether a and b denote the same scalar under the same
// coercion rules as Compare, so int(5) equals float64(5).
func Equal(a, b any) bool {
	return Compare(a, b) == 0
}

// Contains reports whether vals contains v under Equal semantics.
func Contains(vals []any, v any) bool {
	for _, item := range vals {
		if Equal(item, v) {
			return true
		}
	}
	return false
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, error) {
	// Strings never coerce to numbers here; "5" and 5 are different
	// values as far as the query boundary is concerned.
	switch v.(type) {
	case string, nil, bool:
		return 0, fmt.Errorf("values: %T is not numeric", v)
	}
	return cast.ToFloat64E(v)
}
