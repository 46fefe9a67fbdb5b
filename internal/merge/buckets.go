// Package merge implements the per-field algebra behind fragment
// conjunction: classifying the comparison operators two fragments
// contribute for a shared field, tightening range bounds, intersecting
// inclusion sets and unioning exclusion sets, and deciding when a field
// (and with it the whole merge) cannot be optimized safely.
package merge

import (
	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// pair is one comparison operator contribution for a field. A literal
// field condition contributes a single implicit $eq pair; an operator
// map contributes one pair per comparison key.
type pair struct {
	op  string
	val any
}

// buckets sorts a field's operator contributions into the categories
// the resolvers consume.
type buckets struct {
	eq       []any   // $eq demands, in contribution order
	lower    []bound // $gt/$gte candidates, merged per distinct value
	upper    []bound // $lt/$lte candidates, merged per distinct value
	excluded []any   // union of $ne values and $nin members
	included [][]any // raw $in lists, one per contribution
}

// bound records one candidate boundary value together with which
// operator kinds demanded it. Both flags can be set when the same
// value arrives via both the strict and the non-strict operator.
type bound struct {
	value     any
	inclusive bool // seen via $gte or $lte
	exclusive bool // seen via $gt or $lt
}

// collectPairs flattens the conditions both fragments carry for one
// shared field into comparison pairs plus any non-comparison subkeys.
// A non-comparison subkey present on both sides cannot be reconciled
// here, so the field reports non-mergeable (ok == false).
func collectPairs(aCond, bCond any) (pairs []pair, extras map[string]any, ok bool) {
	extras = make(map[string]any)
	seen := make(map[string]bool)
	for _, cond := range []any{aCond, bCond} {
		m, isMap := cond.(map[string]any)
		if !isMap {
			pairs = append(pairs, pair{op: ops.Eq, val: cond})
			continue
		}
		for sub, v := range m {
			if ops.IsComparison(sub) {
				pairs = append(pairs, pair{op: sub, val: v})
				continue
			}
			if seen[sub] {
				return nil, nil, false
			}
			seen[sub] = true
			extras[sub] = v
		}
	}
	return pairs, extras, true
}

// bucketize classifies comparison pairs into buckets. It reports
// ok == false when any contributed value is a nested document (or a
// malformed $in/$nin list): operator semantics over sub-documents are
// not represented by this algebra, so the field must not be merged.
func bucketize(pairs []pair) (*buckets, bool) {
	b := &buckets{}
	for _, p := range pairs {
		if isDoc(p.val) {
			return nil, false
		}
		switch p.op {
		case ops.Eq:
			b.eq = append(b.eq, p.val)
		case ops.Gt, ops.Gte:
			b.lower = addBound(b.lower, p.val, p.op == ops.Gte)
		case ops.Lt, ops.Lte:
			b.upper = addBound(b.upper, p.val, p.op == ops.Lte)
		case ops.Ne:
			b.addExcluded(p.val)
		case ops.Nin:
			list, ok := asList(p.val)
			if !ok {
				return nil, false
			}
			for _, item := range list {
				b.addExcluded(item)
			}
		case ops.In:
			list, ok := asList(p.val)
			if !ok {
				return nil, false
			}
			b.included = append(b.included, list)
		}
	}
	return b, true
}

func (b *buckets) addExcluded(v any) {
	if !values.Contains(b.excluded, v) {
		b.excluded = append(b.excluded, v)
	}
}

// addBound merges a boundary value into the candidate list, folding
// repeats of the same value into one entry with both operator kinds.
func addBound(cands []bound, v any, inclusive bool) []bound {
	for i := range cands {
		if values.Equal(cands[i].value, v) {
			if inclusive {
				cands[i].inclusive = true
			} else {
				cands[i].exclusive = true
			}
			return cands
		}
	}
	return append(cands, bound{value: v, inclusive: inclusive, exclusive: !inclusive})
}

func isDoc(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// asList validates an $in/$nin operand: it must be a list and must not
// contain sub-documents.
func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range list {
		if isDoc(item) {
			return nil, false
		}
	}
	return list, true
}
