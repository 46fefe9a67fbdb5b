// Package ops defines the MongoDB query operator vocabulary used by
// bunmatch fragments. The constants are the exact key strings the
// query boundary expects, so fragments assembled with them can be
// handed to a $match stage or find filter unchanged.
package ops

// Comparison operators.
// https://www.mongodb.com/docs/manual/reference/operator/query-comparison/
const (
	// Eq matches values equal to a specified value.
	Eq = "$eq"

	// Gt matches values strictly greater than a specified value.
	Gt = "$gt"

	// Gte matches values greater than or equal to a specified value.
	Gte = "$gte"

	// Lt matches values strictly less than a specified value.
	Lt = "$lt"

	// Lte matches values less than or equal to a specified value.
	Lte = "$lte"

	// Ne matches values not equal to a specified value.
	Ne = "$ne"

	// In matches any of the values in an array.
	In = "$in"

	// Nin matches none of the values in an array.
	Nin = "$nin"
)

// Logical operators. The merge algebra treats these as opaque: a
// fragment carrying any of them at the top level is never optimized,
// only wrapped.
// https://www.mongodb.com/docs/manual/reference/operator/query-logical/
const (
	// And joins clauses with a logical AND.
	And = "$and"

	// Or joins clauses with a logical OR.
	Or = "$or"

	// Not inverts the effect of a query predicate.
	Not = "$not"

	// Nor joins clauses with a logical NOR.
	Nor = "$nor"
)

// Evaluation operators constructed by the fragment builders.
const (
	// Regex matches string values against a regular expression.
	Regex = "$regex"

	// Options carries regex options ("i" for case-insensitive).
	Options = "$options"
)

var comparisonOps = map[string]bool{
	Eq: true, Gt: true, Gte: true, Lt: true,
	Lte: true, Ne: true, In: true, Nin: true,
}

var logicalOps = map[string]bool{
	And: true, Or: true, Not: true, Nor: true,
}

// IsComparison reports whether key is one of the eight comparison
// operator keys.
func IsComparison(key string) bool {
	return comparisonOps[key]
}

// IsLogical reports whether key is one of the four logical operator
// keys.
func IsLogical(key string) bool {
	return logicalOps[key]
}

// ContainsLogical reports whether any top-level key of the given
// fragment map is a logical operator.
func ContainsLogical(fragment map[string]any) bool {
	for key := range fragment {
		if logicalOps[key] {
			return true
		}
	}
	return false
}
