package push

import "github.com/zeebo/errs"

// Error classes for the request/resolution taxonomy. Per-target send errors
// are never raised through these; they are folded into Outcome records.
var (
	// ErrBadRequest marks request-shape errors rejected before any
	// dispatch attempt.
	ErrBadRequest = errs.Class("bad request")

	// ErrNotFound marks a named-identity lookup miss, or a resolved
	// identity with zero active tokens.
	ErrNotFound = errs.Class("not found")
)

// ErrorClass normalizes heterogeneous provider errors at the sender boundary
// so the aggregator and pruner never inspect provider-specific shapes.
type ErrorClass string

const (
	// ErrorClassNone means the send succeeded.
	ErrorClassNone ErrorClass = ""
	// ErrorClassTransport is a network or HTTP failure reaching the
	// provider. Never triggers pruning.
	ErrorClassTransport ErrorClass = "transport"
	// ErrorClassInvalidToken means the provider reported the token as
	// permanently dead (app uninstalled, registration revoked). Triggers a
	// best-effort deactivation write.
	ErrorClassInvalidToken ErrorClass = "invalid_token"
	// ErrorClassRejected is a provider-side rejection of the message
	// itself; the token may still be alive.
	ErrorClassRejected ErrorClass = "rejected"
)
