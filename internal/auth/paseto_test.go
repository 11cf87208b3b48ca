package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestPasetoService(t *testing.T) *PasetoService {
	t.Helper()
	s, err := NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewPasetoService error: %v", err)
	}
	return s
}

func TestNewPasetoService_KeyLength(t *testing.T) {
	if _, err := NewPasetoService([]byte("too-short")); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestToken_Roundtrip(t *testing.T) {
	s := newTestPasetoService(t)
	userID := uuid.New()

	token, err := s.CreateToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	claims, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("want user %s, got %s", userID, claims.UserID)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issue %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestToken_Expired(t *testing.T) {
	s := newTestPasetoService(t)

	token, err := s.CreateToken(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	_, err = s.VerifyToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("want ErrExpiredToken, got %v", err)
	}
}

func TestToken_Garbage(t *testing.T) {
	s := newTestPasetoService(t)

	for _, tokenStr := range []string{"", "garbage", "v4.local.AAAA"} {
		if _, err := s.VerifyToken(tokenStr); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: want ErrInvalidToken, got %v", tokenStr, err)
		}
	}
}

func TestToken_WrongKey(t *testing.T) {
	s := newTestPasetoService(t)
	other, err := NewPasetoService([]byte("ffffffffffffffffffffffffffffffff"))
	if err != nil {
		t.Fatalf("NewPasetoService error: %v", err)
	}

	token, err := s.CreateToken(uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for foreign key, got %v", err)
	}
}
