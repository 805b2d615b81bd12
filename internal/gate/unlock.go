package gate

import (
	"sync"
	"time"

	"siteforge/internal/util"
)

// UnlockStore tracks which viewing sessions have passed the password prompt
// for a private site. Tokens are transient: they live in a cookie on the
// viewer side and expire server-side, so the unlocked state resets with the
// session and is never persisted with the record.
type UnlockStore interface {
	Unlock(siteID string) (string, error)
	IsUnlocked(siteID, token string) bool
}

// MemoryUnlockStore keeps unlock tokens in-process with a TTL.
type MemoryUnlockStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]memoryUnlock
}

type memoryUnlock struct {
	siteID    string
	expiresAt time.Time
}

// NewMemoryUnlockStore builds an in-memory unlock store.
func NewMemoryUnlockStore(ttl time.Duration) *MemoryUnlockStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryUnlockStore{
		ttl:    ttl,
		tokens: make(map[string]memoryUnlock),
	}
}

// Unlock issues a token bound to siteID.
func (s *MemoryUnlockStore) Unlock(siteID string) (string, error) {
	token := util.NewID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryUnlock{siteID: siteID, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

// IsUnlocked reports whether token is a live unlock for siteID.
func (s *MemoryUnlockStore) IsUnlocked(siteID, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.tokens, token)
		return false
	}
	return entry.siteID == siteID
}
