package contract

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the single error kind for structurally invalid
// caller input: non-positive ratios, non-finite numbers, malformed records.
// Sparse or degenerate data is never an error anywhere in this codebase;
// every statistic has a documented graceful-degradation behavior instead.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParamf wraps ErrInvalidParameter with a formatted reason so that
// callers can match with errors.Is while still seeing what went wrong.
func InvalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
