package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// The token store falls back to its in-memory map when no Redis client is
// configured; that path is what these tests cover.

func TestTokenStoreMemoryRoundTrip(t *testing.T) {
	ts := NewTokenStore(nil)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := ts.StoreRefresh(ctx, "C0001", "hash-a", exp); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}
	uid, err := ts.ValidateRefresh(ctx, "hash-a")
	if err != nil || uid != "C0001" {
		t.Fatalf("ValidateRefresh = %q, %v", uid, err)
	}

	if err := ts.RevokeByHash(ctx, "hash-a"); err != nil {
		t.Fatalf("RevokeByHash: %v", err)
	}
	if _, err := ts.ValidateRefresh(ctx, "hash-a"); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("revoked hash err = %v", err)
	}
}

func TestTokenStoreMemoryExpiry(t *testing.T) {
	ts := NewTokenStore(nil)
	ctx := context.Background()

	if err := ts.StoreRefresh(ctx, "C0001", "hash-b", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}
	if _, err := ts.ValidateRefresh(ctx, "hash-b"); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expired hash err = %v", err)
	}
}

func TestTokenStoreRevokeAllForUser(t *testing.T) {
	ts := NewTokenStore(nil)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	for _, h := range []string{"h1", "h2"} {
		if err := ts.StoreRefresh(ctx, "C0001", h, exp); err != nil {
			t.Fatalf("StoreRefresh: %v", err)
		}
	}
	if err := ts.StoreRefresh(ctx, "C0002", "h3", exp); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}

	if err := ts.RevokeAllForUser(ctx, "C0001"); err != nil {
		t.Fatalf("RevokeAllForUser: %v", err)
	}
	for _, h := range []string{"h1", "h2"} {
		if _, err := ts.ValidateRefresh(ctx, h); !errors.Is(err, ErrInvalidRefresh) {
			t.Fatalf("hash %s survived revoke-all", h)
		}
	}
	if uid, err := ts.ValidateRefresh(ctx, "h3"); err != nil || uid != "C0002" {
		t.Fatalf("other user's token was revoked: %q, %v", uid, err)
	}
}
