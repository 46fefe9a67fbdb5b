package bunmatch

import (
	"github.com/kartikbazzad/bunbase/bunmatch/internal/merge"
	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// And returns the conjunction of f and other.
//
// When neither operand carries a top-level logical operator, And
// attempts per-field optimization: disjoint fields merge key-wise,
// shared fields get their comparison operators resolved into the
// tightest equivalent condition. If any shared field cannot be merged
// safely (nested sub-documents, or non-comparison subkeys on both
// sides), the whole merge falls back to {$and: [f, other]} — the
// result is always semantically exact, never approximated.
//
// other may be a Fragment or a map[string]any; any other type yields
// ErrTypeMismatch. A provably unsatisfiable merge (conflicting $eq
// demands, or an $eq value outside the merged range) yields
// ErrUnsatisfiable and no fragment.
func (f Fragment) And(other any) (Fragment, error) {
	o, err := toFragment(other)
	if err != nil {
		return nil, err
	}
	if ops.ContainsLogical(f) || ops.ContainsLogical(o) {
		// Logical operators are opaque to the algebra; wrap verbatim.
		return wrap(ops.And, f, o), nil
	}
	merged, ok, err := merge.Intersect(f, o)
	if err != nil {
		return nil, err
	}
	if !ok {
		return wrap(ops.And, f, o), nil
	}
	return Fragment(merged), nil
}

// Or returns the disjunction {$or: [f, other]}. Disjunctions are never
// optimized. other may be a Fragment or a map[string]any; any other
// type yields ErrTypeMismatch.
func (f Fragment) Or(other any) (Fragment, error) {
	o, err := toFragment(other)
	if err != nil {
		return nil, err
	}
	return wrap(ops.Or, f, o), nil
}

// wrap builds {op: [left, right]} from deep copies of both operands.
func wrap(op string, left Fragment, right map[string]any) Fragment {
	return Fragment{
		op: []any{
			values.DeepCopyMap(left),
			values.DeepCopyMap(right),
		},
	}
}
