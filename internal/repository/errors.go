package repository

import "errors"

// ErrTargetNotOpen means a match tried to consume a record that is already
// reconciled or missing from the tenant.
var ErrTargetNotOpen = errors.New("target is not open for matching")

// ErrNotReconciled means an unmatch was requested for a bank transaction
// that carries no applied match.
var ErrNotReconciled = errors.New("bank transaction is not reconciled")
