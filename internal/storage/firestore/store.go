// Package firestore implements the user and token stores on Google Cloud
// Firestore, the platform's managed document database.
package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fitpulse/push-service/pkg/push"
)

const (
	usersCollection  = "users"
	tokensCollection = "pushTokens"
)

// Store implements dispatch.UserStore and dispatch.TokenStore.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// tokenRecord is the internal DB representation of a registered device
// token. Doc ID is the token hash to prevent duplicates and hot-spotting.
type tokenRecord struct {
	Token     string    `firestore:"token"`
	UserID    string    `firestore:"user_id"`
	Active    bool      `firestore:"active"`
	Platform  string    `firestore:"platform"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type userRecord struct {
	Email string `firestore:"email"`
	Name  string `firestore:"name"`
}

// FindUserByEmail resolves an email to a user record. A miss is (nil, nil).
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*push.User, error) {
	iter := s.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("firestore user query failed: %w", err)
	}

	var record userRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("firestore user decode failed: %w", err)
	}
	return &push.User{ID: doc.Ref.ID, Email: record.Email, Name: record.Name}, nil
}

// FindActiveTokensByOwner returns every active token owned by a user.
func (s *Store) FindActiveTokensByOwner(ctx context.Context, ownerID string) ([]push.Token, error) {
	iter := s.client.Collection(tokensCollection).
		Where("user_id", "==", ownerID).
		Where("active", "==", true).
		Documents(ctx)
	defer iter.Stop()

	var tokens []push.Token
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore token query failed: %w", err)
		}

		var record tokenRecord
		if err := doc.DataTo(&record); err != nil {
			// Safe to skip corrupt rows; they can't be delivered to.
			continue
		}
		tokens = append(tokens, push.Token{
			Token:    record.Token,
			OwnerID:  record.UserID,
			Active:   record.Active,
			Platform: push.Provider(record.Platform),
		})
	}
	return tokens, nil
}

// RegisterToken upserts an active token for a user.
func (s *Store) RegisterToken(ctx context.Context, ownerID, token string) error {
	record := tokenRecord{
		Token:     token,
		UserID:    ownerID,
		Active:    true,
		Platform:  string(push.ClassifyToken(token)),
		UpdatedAt: time.Now(),
	}
	_, err := s.tokenRef(token).Set(ctx, record)
	return err
}

// SetTokenActive flips the active flag on a token record. A missing record
// is a no-op: the write is idempotent best-effort cleanup, and records are
// never created here.
func (s *Store) SetTokenActive(ctx context.Context, token string, active bool) error {
	_, err := s.tokenRef(token).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
		{Path: "updated_at", Value: time.Now()},
	})
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

func (s *Store) tokenRef(token string) *firestore.DocumentRef {
	return s.client.Collection(tokensCollection).Doc(hashToken(token))
}

func hashToken(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}
