// Package push contains the public domain models for the push dispatch
// service: notification requests, provider classification, per-target
// outcomes and the aggregate summary returned to callers.
package push

import "strings"

// Provider identifies which push ecosystem owns a device token.
type Provider string

const (
	// ProviderFCM is the structured provider addressed by device tokens or
	// topics, with platform-specific payload blocks.
	ProviderFCM Provider = "fcm"
	// ProviderExpo is the flat-REST provider addressed only by individual
	// device tokens.
	ProviderExpo Provider = "expo"
)

// expoTokenPrefix is the literal the Expo SDK prepends to every token it
// issues. Anything else is assumed to be an FCM registration token.
const expoTokenPrefix = "ExponentPushToken["

// ClassifyToken decides which provider owns a token. It is pure and never
// fails: malformed tokens surface as send failures downstream, not here.
func ClassifyToken(token string) Provider {
	if strings.HasPrefix(token, expoTokenPrefix) {
		return ProviderExpo
	}
	return ProviderFCM
}

// Request is a single logical "notify user(s)" operation. Exactly one target
// mode (Tokens, Topic, UserID or UserEmail) must be set.
type Request struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	ImageURL string            `json:"imageUrl,omitempty"`
	Data     map[string]string `json:"data,omitempty"`

	Tokens    []string `json:"tokens,omitempty"`
	Topic     string   `json:"topic,omitempty"`
	UserID    string   `json:"userId,omitempty"`
	UserEmail string   `json:"userEmail,omitempty"`
}

// Validate rejects malformed requests before any store read or network call.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrBadRequest.New("title is required")
	}
	if strings.TrimSpace(r.Body) == "" {
		return ErrBadRequest.New("body is required")
	}
	modes := 0
	// An explicit-but-empty token list is still token mode: it resolves
	// to zero targets, not to a missing-target error.
	if r.Tokens != nil {
		modes++
	}
	if r.Topic != "" {
		modes++
	}
	if r.UserID != "" {
		modes++
	}
	if r.UserEmail != "" {
		modes++
	}
	if modes == 0 {
		return ErrBadRequest.New("one of tokens, topic, userId or userEmail is required")
	}
	if modes > 1 {
		return ErrBadRequest.New("exactly one of tokens, topic, userId or userEmail may be set")
	}
	return nil
}

// Target is a single deliverable address: either a device token or a
// provider-side topic. Exactly one field is set.
type Target struct {
	Token string
	Topic string
}

// ID returns the identifier used to key this target in dispatch results.
func (t Target) ID() string {
	if t.Topic != "" {
		return "topic:" + t.Topic
	}
	return t.Token
}

// IsTopic reports whether the target addresses a provider-side topic.
func (t Target) IsTopic() bool { return t.Topic != "" }

// ResolvedTarget is the output of target resolution: either a topic name
// (delivered by the provider's own fan-out) or a concrete token set.
type ResolvedTarget struct {
	Topic  string
	Tokens []string
}

// Empty reports whether resolution produced nothing to deliver to.
func (r ResolvedTarget) Empty() bool {
	return r.Topic == "" && len(r.Tokens) == 0
}

// User is the minimal identity record the resolver needs from the user store.
type User struct {
	ID    string
	Email string
	Name  string
}

// Token is a registered device token as held in the token store. Records are
// flipped inactive when a provider reports permanent invalidity; they are
// never deleted.
type Token struct {
	Token    string   `json:"token"`
	OwnerID  string   `json:"ownerId"`
	Active   bool     `json:"active"`
	Platform Provider `json:"platform"`
}
