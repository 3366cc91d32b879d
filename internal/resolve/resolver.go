// Package resolve turns a notification request's target mode into the
// concrete set of deliverable targets, consulting the external user and
// token stores.
package resolve

import (
	"context"
	"log/slog"

	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pkg/push"
)

// Resolver resolves the three target modes. Explicit token lists pass through
// untouched; topics are left to the provider's own fan-out; user identities
// are looked up in the stores.
type Resolver struct {
	users  dispatch.UserStore
	tokens dispatch.TokenStore
	logger *slog.Logger
}

func NewResolver(users dispatch.UserStore, tokens dispatch.TokenStore, logger *slog.Logger) *Resolver {
	return &Resolver{
		users:  users,
		tokens: tokens,
		logger: logger.With("component", "TokenResolver"),
	}
}

// Resolve produces the deliverable target set for a validated request.
// A named identity that cannot be resolved, or that has no active device
// tokens, is a hard not-found: the caller explicitly named a person. An
// empty explicit token list is not an error and resolves to zero targets.
func (r *Resolver) Resolve(ctx context.Context, req *push.Request) (push.ResolvedTarget, error) {
	switch {
	case req.Tokens != nil:
		// Pass through as-is, empty included; classification happens
		// lazily per token in the engine.
		return push.ResolvedTarget{Tokens: req.Tokens}, nil

	case req.Topic != "":
		return push.ResolvedTarget{Topic: req.Topic}, nil

	case req.UserID != "" || req.UserEmail != "":
		ownerID := req.UserID
		if ownerID == "" {
			user, err := r.users.FindUserByEmail(ctx, req.UserEmail)
			if err != nil {
				return push.ResolvedTarget{}, err
			}
			if user == nil {
				return push.ResolvedTarget{}, push.ErrNotFound.New("user %q not found", req.UserEmail)
			}
			ownerID = user.ID
		}

		records, err := r.tokens.FindActiveTokensByOwner(ctx, ownerID)
		if err != nil {
			return push.ResolvedTarget{}, err
		}
		if len(records) == 0 {
			return push.ResolvedTarget{}, push.ErrNotFound.New("no active device tokens for user %q", ownerID)
		}

		tokens := make([]string, len(records))
		for i, rec := range records {
			tokens[i] = rec.Token
		}
		r.logger.Debug("resolved user tokens", "owner", ownerID, "count", len(tokens))
		return push.ResolvedTarget{Tokens: tokens}, nil
	}

	// Unreachable for validated requests.
	return push.ResolvedTarget{}, nil
}
