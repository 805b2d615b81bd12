package store

import (
	"errors"
	"sync"
	"time"

	"siteforge/pkg/domain"
)

// MemoryStore keeps records in-process, for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.WebsiteRecord
	order   []string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.WebsiteRecord)}
}

// List returns records in insertion order.
func (m *MemoryStore) List() ([]domain.WebsiteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.WebsiteRecord, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.records[id]; ok {
			res = append(res, rec.Clone())
		}
	}
	return res, nil
}

// Get retrieves a record by id.
func (m *MemoryStore) Get(id string) (domain.WebsiteRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return domain.WebsiteRecord{}, false, nil
	}
	return rec.Clone(), true, nil
}

// Save upserts the complete record.
func (m *MemoryStore) Save(rec domain.WebsiteRecord) error {
	if rec.ID == "" {
		return errors.New("record id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.ID]; !exists {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec.Clone()
	return nil
}

// Update merges the supplied fields into an existing record.
func (m *MemoryStore) Update(id string, fields UpdateFields) (domain.WebsiteRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return domain.WebsiteRecord{}, false, nil
	}
	updated := rec.Clone()
	applyUpdate(&updated, fields, time.Now())
	m.records[id] = updated
	return updated.Clone(), true, nil
}

// Delete removes a record; deleting an absent id is a no-op.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return nil
	}
	delete(m.records, id)
	filtered := m.order[:0]
	for _, existing := range m.order {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	m.order = filtered
	return nil
}
