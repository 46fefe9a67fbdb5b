package merge

import (
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/logging"
	"github.com/kartikbazzad/bunbase/bunmatch/internal/values"
)

// setConstraint is the resolved membership constraint for a field:
// the unioned exclusion set and, when any $in contributed, the
// intersected (and range-restricted) inclusion set.
type setConstraint struct {
	excluded []any
	included []any
	hasIn    bool
}

// resolveSets intersects the contributed $in lists, unions the
// exclusions, and restricts the inclusion set to the resolved range.
// An inclusion/exclusion overlap of more than one element is a strong
// hint the merge inputs contradict each other; it is logged rather
// than failed, since the emitted condition still matches exactly the
// right (possibly empty) set of documents.
func resolveSets(field string, b *buckets, iv interval) setConstraint {
	sc := setConstraint{excluded: b.excluded}
	sort.SliceStable(sc.excluded, func(i, j int) bool {
		return values.Compare(sc.excluded[i], sc.excluded[j]) < 0
	})

	if len(b.included) == 0 {
		return sc
	}
	sc.hasIn = true

	inter := dedupe(b.included[0])
	for _, list := range b.included[1:] {
		inter = lo.Filter(inter, func(v any, _ int) bool {
			return values.Contains(list, v)
		})
	}

	overlap := lo.CountBy(inter, func(v any) bool {
		return values.Contains(sc.excluded, v)
	})
	if overlap > 1 {
		logging.L().Warn("merged $in and $nin sets overlap; condition is likely inconsistent",
			zap.String("field", field),
			zap.Int("overlap", overlap))
	}

	sc.included = lo.Filter(inter, func(v any, _ int) bool {
		return iv.contains(v)
	})
	return sc
}

// allows reports whether v is admitted by the inclusion set. Absence
// of any $in contribution means no membership restriction.
func (sc setConstraint) allows(v any) bool {
	if !sc.hasIn {
		return true
	}
	return values.Contains(sc.included, v)
}

func dedupe(list []any) []any {
	out := make([]any, 0, len(list))
	for _, v := range list {
		if !values.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
