// Package dispatch defines the capability interfaces between the dispatch
// core and its collaborators: the channel senders and the external user and
// token stores.
package dispatch

import (
	"context"

	"github.com/fitpulse/push-service/pkg/push"
)

// Sender is one provider delivery path. Implementations normalize their
// provider's error shapes into the push.ErrorClass taxonomy; callers never
// inspect provider-specific fields.
type Sender interface {
	// Send delivers the appropriate payload shape to a single token or
	// topic. It never returns an error: failures are folded into the
	// outcome.
	Send(ctx context.Context, target push.Target, payloads *push.Payloads) push.Outcome
}

// UserStore resolves named identities. A lookup miss is (nil, nil), not an
// error; infrastructure failures are errors.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*push.User, error)
}

// TokenStore manages registered device tokens.
type TokenStore interface {
	// FindActiveTokensByOwner returns every token with the given owning
	// user id and active=true.
	FindActiveTokensByOwner(ctx context.Context, ownerID string) ([]push.Token, error)

	// RegisterToken upserts an active token for a user.
	RegisterToken(ctx context.Context, ownerID, token string) error

	// SetTokenActive flips the active flag for a token record. The write
	// is idempotent; flipping a missing or already-flipped record is a
	// no-op.
	SetTokenActive(ctx context.Context, token string, active bool) error
}
