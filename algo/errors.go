// Sentinel errors of the strategy package.
package algo

import "errors"

// ErrOptionViolation is returned when a strategy parameter or option
// is invalid (non-positive temperature, empty temperature ladder,
// non-positive replica step count, and so on).
var ErrOptionViolation = errors.New("algo: invalid option supplied")
