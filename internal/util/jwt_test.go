package util

import (
	"errors"
	"testing"
	"time"

	"quiz_backend/internal/model"
)

const testSecret = "test-secret-with-enough-length-0123456789"

func TestGenerateAndParseTokenPair(t *testing.T) {
	user := &model.User{Email: "alice@example.com", Role: model.RoleAdmin}
	user.ID = 7

	pair, err := GenerateTokenPair(user, testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	access, err := ParseJWT(pair.Access, testSecret)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if access.UserID != 7 || access.Role != model.RoleAdmin || access.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := ParseJWT(pair.Refresh, testSecret)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.TokenType != TokenTypeRefresh {
		t.Fatalf("expected refresh token type, got %q", refresh.TokenType)
	}
	if refresh.ID == "" || refresh.ID == access.ID {
		t.Fatalf("expected distinct non-empty jti, got access=%q refresh=%q", access.ID, refresh.ID)
	}
	if ttl := refresh.RemainingTTL(); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected remaining ttl %v", ttl)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "bob@example.com", Role: model.RoleUser}
	token, err := GenerateJWT(user, TokenTypeAccess, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token, "another-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{Email: "carol@example.com"}
	token, err := GenerateJWT(user, TokenTypeAccess, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", DefaultPage, DefaultLimit},
		{"2", "5", 2, 5},
		{"-1", "abc", DefaultPage, DefaultLimit},
		{"3", "1000", 3, MaxLimit},
	}
	for _, tc := range cases {
		page, limit := ParsePagination(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("ParsePagination(%q, %q) = %d, %d; want %d, %d", tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}
