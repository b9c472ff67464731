package reconciliation

import "errors"

// ErrInvalidWindow rejects a request before any record is loaded: an
// inverted or missing period, a zero tenant id, or out-of-range suggestion
// parameters.
var ErrInvalidWindow = errors.New("invalid reconciliation window")

// ErrInvalidTarget rejects a manual match that does not name exactly one
// ledger entry or document target.
var ErrInvalidTarget = errors.New("manual match needs exactly one target")
