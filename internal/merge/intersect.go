package merge

import (
	"sort"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
)

// Intersect computes the optimized conjunction of two fragments that
// carry no top-level logical operators (the caller checks that first).
//
// Fields present in only one fragment pass through verbatim; fields
// present in both are resolved per comparison algebra. The fallback is
// all-or-nothing: if any shared field cannot be merged, Intersect
// reports ok == false and the caller emits {$and: [left, right]}
// instead. An unsatisfiable shared field surfaces as an error.
//
// Both inputs are deep-copied up front, so the result never aliases
// caller-owned maps or slices and the inputs are never mutated.
func Intersect(a, b map[string]any) (merged map[string]any, ok bool, err error) {
	left := values.DeepCopyMap(a)
	right := values.DeepCopyMap(b)

	var shared []string
	for key := range left {
		if _, both := right[key]; both {
			shared = append(shared, key)
		}
	}
	// Deterministic resolution order, so the first unsatisfiable field
	// reported is stable across runs.
	sort.Strings(shared)

	out := make(map[string]any, len(left)+len(right))
	for _, field := range shared {
		pairs, extras, ok := collectPairs(left[field], right[field])
		if !ok {
			return nil, false, nil
		}
		cond, ok, err := resolveField(field, pairs)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		// Non-comparison subkeys seen on exactly one side ride along
		// with the resolved condition; key sets are disjoint.
		for k, v := range extras {
			cond[k] = v
		}
		out[field] = cond
	}

	for key, v := range left {
		if _, both := right[key]; !both {
			out[key] = v
		}
	}
	for key, v := range right {
		if _, both := left[key]; !both {
			out[key] = v
		}
	}
	return out, true, nil
}
