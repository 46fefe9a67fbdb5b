// Package bunmatch builds and algebraically combines MongoDB-style
// match fragments. Two independently constructed filter fragments can
// be intersected into one equivalent, tighter fragment (range bounds
// resolved, $in sets intersected, $ne/$nin exclusions unioned,
// equality demands checked for consistency) before being handed to a
// query boundary such as a find filter or a $match stage.
//
// Fragments are plain nested maps using the exact Mongo operator key
// strings (see the ops package), so they serialize to valid filter
// documents as-is. Every operation is pure: inputs are never mutated
// and results never alias caller-owned storage, which makes the
// package safe for concurrent use.
package bunmatch

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/kartikbazzad/bunbase/bunmatch/ops"
)

// Fragment is a match fragment: a mapping from field name to field
// condition, optionally carrying logical operator keys. Treat
// fragments as immutable; combining operations always return new
// values.
type Fragment map[string]any

// MatchAll returns the fragment matching every document.
func MatchAll() Fragment {
	return Fragment{}
}

// Regex returns a fragment matching documents where the named field
// matches the given regular expression pattern.
func Regex(field, pattern string) Fragment {
	return Fragment{
		field: map[string]any{ops.Regex: pattern},
	}
}

// Substring returns a fragment matching documents where the named
// field contains the given substring, ignoring case. Use
// SubstringCase for a case-sensitive match.
func Substring(field, substring string) Fragment {
	return SubstringCase(field, substring, true)
}

// SubstringCase is Substring with explicit case-sensitivity control.
// The substring is quoted, so regex metacharacters match literally.
func SubstringCase(field, substring string, ignoreCase bool) Fragment {
	cond := map[string]any{ops.Regex: regexp.QuoteMeta(substring)}
	if ignoreCase {
		cond[ops.Options] = "i"
	}
	return Fragment{field: cond}
}

// String renders the fragment as canonical JSON (object keys sorted).
func (f Fragment) String() string {
	data, err := json.Marshal(map[string]any(f))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(f))
	}
	return string(data)
}
