// Package session holds the transient "currently edited or previewed"
// record. The copy lives by value, decoupled from the store: edits here do
// not reach persistence until explicitly committed.
package session

import (
	"sync"

	"siteforge/internal/store"
	"siteforge/pkg/domain"
)

// State tracks at most one current record.
type State struct {
	mu      sync.Mutex
	current *domain.WebsiteRecord
}

// NewState returns an empty editing context.
func NewState() *State {
	return &State{}
}

// SetCurrent replaces the editing context with a copy of rec.
func (s *State) SetCurrent(rec domain.WebsiteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := rec.Clone()
	s.current = &cp
}

// Current returns a copy of the current record, if any.
func (s *State) Current() (domain.WebsiteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.WebsiteRecord{}, false
	}
	return s.current.Clone(), true
}

// Clear drops the editing context.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Commit copies the current record into st. After a commit, further edits to
// the session do not propagate until committed again.
func (s *State) Commit(st store.Store) (domain.WebsiteRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.WebsiteRecord{}, false, nil
	}
	rec := s.current.Clone()
	if err := st.Save(rec); err != nil {
		return domain.WebsiteRecord{}, false, err
	}
	return rec, true, nil
}

// RefreshIfCurrent updates the session copy when the store mutated the same
// record, so the displayed state never diverges from the stored one.
func (s *State) RefreshIfCurrent(rec domain.WebsiteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != rec.ID {
		return
	}
	cp := rec.Clone()
	s.current = &cp
}

// DropIfCurrent clears the context when the store deleted the same record.
func (s *State) DropIfCurrent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
}
