/*
errors.go - Sentinel error kinds for the storage engine.

Error kinds follow the categories the wire protocol and session layer need
to tell apart: InvalidArgument (malformed request), NotFound (unknown
item/order/user), Conflict (insufficient holdings, bid too low, self-buy,
selling funds), IntegrityViolation (a schema check fired - treated as a
bug), IOError (the PS misbehaved), Internal (anything unexpected).

Domain operations wrap one of these with fmt.Errorf("...: %w", ErrX) so
errors.Is still classifies the failure while the message carries the exact
user-visible text spec'd for each operation.
*/
package engine

import "errors"

var (
	// ErrInvalidArgument marks malformed input to an engine operation:
	// empty names, non-positive quantities. The session layer's errors for
	// unparsable commands are plain errors that do not wrap it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a reference to a user, item, or order that does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a business-rule violation: insufficient holdings or
	// funds, a bid that doesn't exceed the current price, buying your own
	// order, or selling funds for funds.
	ErrConflict = errors.New("conflict")

	// ErrIntegrityViolation marks a schema-level check constraint failure.
	// Reaching this is a bug, not a user error.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrIOError marks a failure talking to the persistent store.
	ErrIOError = errors.New("storage io error")

	// ErrInternal marks an unexpected failure not covered by the above.
	ErrInternal = errors.New("internal error")
)

// IsClientError reports whether err reflects bad caller input or a business
// rule the caller can read and react to (as opposed to a server-side bug).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict)
}

// IsNotFound reports whether err indicates a missing user, item, or order.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
