// Package cache adds a Redis read-aside layer over a token store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fitpulse/push-service/pkg/dispatch"
	"github.com/fitpulse/push-service/pkg/push"
)

// CacheClient defines the subset of Redis commands we need.
type CacheClient interface {
	// Get returns the value or a specific error if not found.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores the value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Del removes the key.
	Del(ctx context.Context, key string) error
}

// CachedTokenStore is a decorator that adds read-aside caching of per-user
// active-token lists to any TokenStore.
type CachedTokenStore struct {
	realStore dispatch.TokenStore
	cache     CacheClient
	ttl       time.Duration
}

func NewCachedTokenStore(realStore dispatch.TokenStore, cache CacheClient, ttl time.Duration) *CachedTokenStore {
	return &CachedTokenStore{
		realStore: realStore,
		cache:     cache,
		ttl:       ttl,
	}
}

// FindActiveTokensByOwner serves from cache when it can, falling back to the
// real store and repopulating on a miss.
func (s *CachedTokenStore) FindActiveTokensByOwner(ctx context.Context, ownerID string) ([]push.Token, error) {
	key := s.cacheKey(ownerID)

	var cached []push.Token
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	fresh, err := s.realStore.FindActiveTokensByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Caching is an optimization, not a transaction. If Redis is down we
	// just serve from the store.
	_ = s.cache.Set(ctx, key, fresh, s.ttl)

	return fresh, nil
}

// RegisterToken writes through and invalidates the owner's cached list so
// the new device is deliverable immediately.
func (s *CachedTokenStore) RegisterToken(ctx context.Context, ownerID, token string) error {
	if err := s.realStore.RegisterToken(ctx, ownerID, token); err != nil {
		return err
	}
	return s.cache.Del(ctx, s.cacheKey(ownerID))
}

// SetTokenActive passes through without invalidation: the pruner addresses
// tokens by string, not owner, so a deactivated token can linger in a cached
// list until the TTL expires. Re-sending to it just fails again, harmlessly.
func (s *CachedTokenStore) SetTokenActive(ctx context.Context, token string, active bool) error {
	return s.realStore.SetTokenActive(ctx, token, active)
}

func (s *CachedTokenStore) cacheKey(ownerID string) string {
	return fmt.Sprintf("notify:tokens:%s", ownerID)
}
