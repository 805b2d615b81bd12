package gate

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryUnlockStoreRoundTrip(t *testing.T) {
	s := NewMemoryUnlockStore(time.Hour)
	token, err := s.Unlock("w1")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if !s.IsUnlocked("w1", token) {
		t.Fatalf("token must unlock its own site")
	}
	if s.IsUnlocked("w2", token) {
		t.Fatalf("token must not unlock another site")
	}
	if s.IsUnlocked("w1", "bogus") {
		t.Fatalf("unknown token must stay locked")
	}
}

func TestMemoryUnlockStoreExpiry(t *testing.T) {
	s := NewMemoryUnlockStore(time.Millisecond)
	token, err := s.Unlock("w1")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if s.IsUnlocked("w1", token) {
		t.Fatalf("expired token must stay locked")
	}
}

func TestJWTUnlockStoreRoundTrip(t *testing.T) {
	s, err := NewJWTUnlockStore("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTUnlockStore: %v", err)
	}
	token, err := s.Unlock("w1")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !s.IsUnlocked("w1", token) {
		t.Fatalf("token must unlock its own site")
	}
	if s.IsUnlocked("w2", token) {
		t.Fatalf("token must not unlock another site")
	}

	other, err := NewJWTUnlockStore("another-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTUnlockStore: %v", err)
	}
	if other.IsUnlocked("w1", token) {
		t.Fatalf("token signed with a different secret must fail")
	}
}

func TestJWTUnlockStoreRejectsEmptySecret(t *testing.T) {
	if _, err := NewJWTUnlockStore("  ", time.Hour); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}

func TestRedisUnlockStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisUnlockStore(mr.Addr(), "", time.Hour)

	token, err := s.Unlock("w1")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !s.IsUnlocked("w1", token) {
		t.Fatalf("token must unlock its own site")
	}
	if s.IsUnlocked("w2", token) {
		t.Fatalf("token must not unlock another site")
	}

	mr.FastForward(2 * time.Hour)
	if s.IsUnlocked("w1", token) {
		t.Fatalf("expired token must stay locked")
	}
}
