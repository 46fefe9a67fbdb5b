package merge

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/logging"
	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// ErrUnsatisfiable reports that a merged field condition can match no
// document: either both fragments demand different $eq values, or the
// demanded $eq value falls outside the resolved range or inclusion
// set. Callers check it with errors.Is.
var ErrUnsatisfiable = errors.New("merged field condition is unsatisfiable")

// resolveField computes the merged condition for one shared field.
//
// Returns exactly one of three outcomes:
//   - (cond, true, nil): the field merged cleanly
//   - (nil, false, nil): the field cannot be optimized; the caller
//     falls back to an explicit $and wrapper
//   - (nil, false, err): the merge is provably unsatisfiable
func resolveField(field string, pairs []pair) (map[string]any, bool, error) {
	b, ok := bucketize(pairs)
	if !ok {
		return nil, false, nil
	}

	// Equality demands dominate everything else, so settle them first.
	eq := dedupe(b.eq)
	if len(eq) > 1 {
		logging.L().Warn("conflicting $eq values for field in merged fragments; result matches no document",
			zap.String("field", field),
			zap.Any("values", eq))
		return nil, false, errors.Wrapf(ErrUnsatisfiable,
			"field %q demands conflicting $eq values %v and %v", field, eq[0], eq[1])
	}

	iv := interval{lower: resolveLower(b.lower), upper: resolveUpper(b.upper)}
	sc := resolveSets(field, b, iv)

	if len(eq) == 1 {
		v := eq[0]
		if iv.contains(v) && sc.allows(v) {
			// The equality subsumes every other clause for this field.
			return map[string]any{ops.Eq: v}, true, nil
		}
		logging.L().Warn("$eq value outside the merged range or inclusion set; result matches no document",
			zap.String("field", field),
			zap.Any("value", v))
		return nil, false, errors.Wrapf(ErrUnsatisfiable,
			"field %q: $eq value %v is outside the merged range", field, v)
	}

	cond := make(map[string]any)
	if iv.lower != nil {
		cond[iv.lower.op] = iv.lower.value
	}
	if iv.upper != nil {
		cond[iv.upper.op] = iv.upper.value
	}
	if len(sc.excluded) > 0 {
		cond[ops.Nin] = sc.excluded
	}
	if sc.hasIn {
		cond[ops.In] = sc.included
	}
	return cond, true, nil
}
