package models

import "errors"

// ErrNotFound covers both "no such record" and "record exists but the
// caller is not allowed to know that" - the two are indistinguishable
// on purpose.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a request that is well-formed HTTP but violates
// policy (self-share, duplicate share, unknown target, ...).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
