package bunmatch

import (
	"go.uber.org/zap"

	"github.com/kartikbazzad/bunbase/bunmatch/internal/logging"
)

// SetLogger routes merge diagnostics (unsatisfiable conditions,
// suspicious $in/$nin overlaps) to the given zap logger. The library
// default is a no-op logger. Passing nil restores the default.
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}
