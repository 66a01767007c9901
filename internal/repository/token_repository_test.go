package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRevokeExpiresWithToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewTokenRepository(rdb)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "abc")
	if err != nil || revoked {
		t.Fatalf("expected fresh token to be valid, got revoked=%v err=%v", revoked, err)
	}

	if err := repo.Revoke(ctx, "abc", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, _ = repo.IsRevoked(ctx, "abc")
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	mr.FastForward(2 * time.Minute)
	revoked, _ = repo.IsRevoked(ctx, "abc")
	if revoked {
		t.Fatal("expected revocation to expire with the token")
	}

	// 已过期的令牌无需记录
	if err := repo.Revoke(ctx, "gone", 0); err != nil {
		t.Fatalf("revoke expired: %v", err)
	}
	if mr.Exists(revokedTokenPrefix + "gone") {
		t.Fatal("expired token should not be stored")
	}
}

func TestRevokeOnceOnlyFirstWins(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewTokenRepository(rdb)
	ctx := context.Background()

	first, err := repo.RevokeOnce(ctx, "refresh-1", time.Minute)
	if err != nil || !first {
		t.Fatalf("expected first revoke to win, got %v err=%v", first, err)
	}
	again, err := repo.RevokeOnce(ctx, "refresh-1", time.Minute)
	if err != nil || again {
		t.Fatalf("expected second revoke to lose, got %v err=%v", again, err)
	}
	if revoked, _ := repo.IsRevoked(ctx, "refresh-1"); !revoked {
		t.Fatal("expected token to be revoked")
	}
}
