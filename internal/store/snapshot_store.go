package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"siteforge/pkg/domain"
)

// SnapshotStore keeps all records in memory and mirrors every mutation to a
// single JSON file before the call returns. The file is one serialized
// sequence of records; a crash right after a successful call can therefore
// never lose that call's effect.
//
// Stored data is untrusted input: it can predate a schema change or be
// corrupted on disk. A slot that fails to parse loads as an empty store, and
// an individually undecodable record is dropped instead of failing the rest.
type SnapshotStore struct {
	mu      sync.Mutex
	path    string
	records map[string]domain.WebsiteRecord
	order   []string
}

// NewSnapshotStore loads the snapshot at path, creating parent directories
// for later writes. Missing or unreadable snapshots start empty.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("snapshot path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	s := &SnapshotStore{
		path:    path,
		records: make(map[string]domain.WebsiteRecord),
	}
	s.load()
	return s, nil
}

func (s *SnapshotStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("snapshot unreadable, starting empty", "path", s.path, "err", err)
		}
		return
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("snapshot corrupt, starting empty", "path", s.path, "err", err)
		return
	}
	for _, entry := range raw {
		var rec domain.WebsiteRecord
		if err := json.Unmarshal(entry, &rec); err != nil {
			slog.Warn("dropping undecodable record", "err", err)
			continue
		}
		if rec.ID == "" {
			slog.Warn("dropping record without id")
			continue
		}
		if _, dup := s.records[rec.ID]; !dup {
			s.order = append(s.order, rec.ID)
		}
		s.records[rec.ID] = rec
	}
}

// persist writes the full store snapshot atomically (temp file + rename) so
// a reader never observes a partial write.
func (s *SnapshotStore) persist() error {
	out := make([]domain.WebsiteRecord, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// List returns all records in insertion order.
func (s *SnapshotStore) List() ([]domain.WebsiteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.WebsiteRecord, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.records[id]; ok {
			res = append(res, rec.Clone())
		}
	}
	return res, nil
}

// Get retrieves a record by id.
func (s *SnapshotStore) Get(id string) (domain.WebsiteRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.WebsiteRecord{}, false, nil
	}
	return rec.Clone(), true, nil
}

// Save upserts the complete record.
func (s *SnapshotStore) Save(rec domain.WebsiteRecord) error {
	if rec.ID == "" {
		return errors.New("record id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.records[rec.ID]
	if !existed {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = rec.Clone()
	if err := s.persist(); err != nil {
		// Keep memory and disk consistent on failure.
		if existed {
			s.records[rec.ID] = prev
		} else {
			delete(s.records, rec.ID)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}
	return nil
}

// Update merges the supplied fields into an existing record.
func (s *SnapshotStore) Update(id string, fields UpdateFields) (domain.WebsiteRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.WebsiteRecord{}, false, nil
	}
	updated := rec.Clone()
	applyUpdate(&updated, fields, time.Now())
	s.records[id] = updated
	if err := s.persist(); err != nil {
		// Keep memory and disk consistent on failure.
		s.records[id] = rec
		return domain.WebsiteRecord{}, false, err
	}
	return updated.Clone(), true, nil
}

// Delete removes a record; deleting an absent id is a no-op.
func (s *SnapshotStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.records[id]
	if !ok {
		return nil
	}
	prevOrder := s.order
	delete(s.records, id)
	filtered := make([]string, 0, len(prevOrder)-1)
	for _, existing := range prevOrder {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	s.order = filtered
	if err := s.persist(); err != nil {
		// Keep memory and disk consistent on failure.
		s.records[id] = prev
		s.order = prevOrder
		return err
	}
	return nil
}
