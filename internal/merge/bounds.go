package merge

import (
	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// rangeBound is one resolved side of a field's range: an operator key
// plus its boundary value.
type rangeBound struct {
	op    string
	value any
}

// interval models the resolved range as a half-open/closed segment.
// A nil side is unbounded.
type interval struct {
	lower *rangeBound // op is $gt or $gte
	upper *rangeBound // op is $lt or $lte
}

// resolveLower picks the tightest lower bound: the maximal candidate
// value. When both $gt and $gte demanded that value, the exclusive
// form wins, since x > v is the intersection of x > v and x >= v.
func resolveLower(cands []bound) *rangeBound {
	best, ok := pickBound(cands, 1)
	if !ok {
		return nil
	}
	op := ops.Gte
	if best.exclusive {
		op = ops.Gt
	}
	return &rangeBound{op: op, value: best.value}
}

// resolveUpper mirrors resolveLower: minimal candidate value, ties
// resolve to $lt.
func resolveUpper(cands []bound) *rangeBound {
	best, ok := pickBound(cands, -1)
	if !ok {
		return nil
	}
	op := ops.Lte
	if best.exclusive {
		op = ops.Lt
	}
	return &rangeBound{op: op, value: best.value}
}

// pickBound returns the candidate whose value is extremal in the given
// direction (1 = maximal, -1 = minimal).
func pickBound(cands []bound, dir int) (bound, bool) {
	if len(cands) == 0 {
		return bound{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if values.Compare(c.value, best.value)*dir > 0 {
			best = c
		}
	}
	return best, true
}

// contains reports whether v satisfies the resolved range.
func (iv interval) contains(v any) bool {
	if iv.lower != nil {
		c := values.Compare(v, iv.lower.value)
		if c < 0 || (c == 0 && iv.lower.op == ops.Gt) {
			return false
		}
	}
	if iv.upper != nil {
		c := values.Compare(v, iv.upper.value)
		if c > 0 || (c == 0 && iv.upper.op == ops.Lt) {
			return false
		}
	}
	return true
}
