package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidRefresh is returned when a refresh token hash is unknown,
// expired or revoked.
var ErrInvalidRefresh = errors.New("invalid refresh token")

// TokenStore keeps refresh-token hashes.  Only the SHA-256 hash of a token
// is ever stored; holding the store data does not let anyone mint
// sessions.  Tokens live in Redis when a client is configured so they
// survive restarts and can expire on their own; without Redis an
// in-process map serves the same contract for a single instance.
type TokenStore struct {
	rdb *redis.Client

	mu  sync.Mutex
	mem map[string]memToken
}

type memToken struct {
	userID string
	exp    time.Time
}

const (
	refreshKeyPrefix  = "refresh:"      // refresh:<hash> -> user id
	refreshUserPrefix = "refresh_user:" // refresh_user:<uid> -> set of hashes
)

// NewTokenStore builds a token store.  rdb may be nil; the store then
// degrades to its in-memory fallback.
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb, mem: map[string]memToken{}}
}

// StoreRefresh records a refresh token hash for a user until exp.
func (t *TokenStore) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	if t.rdb == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.mem[tokenHash] = memToken{userID: userID, exp: exp}
		return nil
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	if err := t.rdb.Set(ctx, refreshKeyPrefix+tokenHash, userID, ttl).Err(); err != nil {
		return err
	}
	// Track the hash under the user so RevokeAllForUser can find it.
	if err := t.rdb.SAdd(ctx, refreshUserPrefix+userID, tokenHash).Err(); err != nil {
		return err
	}
	return t.rdb.Expire(ctx, refreshUserPrefix+userID, ttl).Err()
}

// ValidateRefresh returns the owning user id for a live token hash.
func (t *TokenStore) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	if t.rdb == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		tok, ok := t.mem[tokenHash]
		if !ok || time.Now().UTC().After(tok.exp) {
			delete(t.mem, tokenHash)
			return "", ErrInvalidRefresh
		}
		return tok.userID, nil
	}
	userID, err := t.rdb.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if err == redis.Nil {
		return "", ErrInvalidRefresh
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// RevokeByHash drops a single token hash.
func (t *TokenStore) RevokeByHash(ctx context.Context, tokenHash string) error {
	if t.rdb == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.mem, tokenHash)
		return nil
	}
	userID, err := t.rdb.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if err == nil {
		_ = t.rdb.SRem(ctx, refreshUserPrefix+userID, tokenHash).Err()
	}
	return t.rdb.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}

// RevokeAllForUser drops every live token hash for the user.
func (t *TokenStore) RevokeAllForUser(ctx context.Context, userID string) error {
	if t.rdb == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		for hash, tok := range t.mem {
			if tok.userID == userID {
				delete(t.mem, hash)
			}
		}
		return nil
	}
	hashes, err := t.rdb.SMembers(ctx, refreshUserPrefix+userID).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, hash := range hashes {
		_ = t.rdb.Del(ctx, refreshKeyPrefix+hash).Err()
	}
	return t.rdb.Del(ctx, refreshUserPrefix+userID).Err()
}
