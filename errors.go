package bunmatch

import (
	"github.com/cockroachdb/errors"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/merge"
)

// Sentinel errors returned by the combining operations. Match them
// with errors.Is; the returned errors carry operand and field detail
// in their messages.
var (
	// ErrTypeMismatch reports an operand that is not fragment-shaped
	// at the Go type level (neither Fragment nor map[string]any).
	ErrTypeMismatch = errors.New("bunmatch: unsupported operand type")

	// ErrMalformedFragment reports an operand of the right Go type
	// whose structure is not a well-formed match fragment (for
	// example, a logical operator key holding a scalar).
	ErrMalformedFragment = errors.New("bunmatch: malformed fragment")

	// ErrUnsatisfiable reports a conjunction whose merged condition
	// can match no document at all: both operands demand different
	// $eq values for a field, or a demanded $eq value falls outside
	// the merged range or inclusion set. No partial fragment is
	// returned in that case.
	ErrUnsatisfiable = merge.ErrUnsatisfiable
)
