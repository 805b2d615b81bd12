package session

import (
	"testing"

	"siteforge/internal/store"
	"siteforge/pkg/domain"
)

func record(id, name string) domain.WebsiteRecord {
	return domain.WebsiteRecord{
		ID: id,
		PersonalInfo: domain.PersonalInfo{
			Name:       name,
			Profession: "设计师",
		},
		Template: domain.DefaultTemplate,
		Theme:    domain.DefaultTheme,
		IsPublic: true,
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := NewState()
	s.SetCurrent(record("w1", "李娜"))

	got, ok := s.Current()
	if !ok {
		t.Fatalf("Current() = no record")
	}
	got.PersonalInfo.Name = "mutated"

	again, _ := s.Current()
	if again.PersonalInfo.Name != "李娜" {
		t.Fatalf("session state mutated through a returned copy")
	}
}

func TestSessionEditsStayLocalUntilCommit(t *testing.T) {
	st := store.NewMemoryStore()
	rec := record("w1", "李娜")
	if err := st.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := NewState()
	edited := rec.Clone()
	edited.PersonalInfo.Name = "李娜（新）"
	s.SetCurrent(edited)

	stored, _, err := st.Get("w1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.PersonalInfo.Name != "李娜" {
		t.Fatalf("session edit reached the store before commit")
	}

	committed, ok, err := s.Commit(st)
	if err != nil || !ok {
		t.Fatalf("Commit = %v, %v", ok, err)
	}
	if committed.PersonalInfo.Name != "李娜（新）" {
		t.Fatalf("Commit returned stale record: %+v", committed)
	}
	stored, _, err = st.Get("w1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.PersonalInfo.Name != "李娜（新）" {
		t.Fatalf("commit did not reach the store")
	}
}

func TestCommitWithoutCurrentIsNoop(t *testing.T) {
	s := NewState()
	st := store.NewMemoryStore()
	_, ok, err := s.Commit(st)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if ok {
		t.Fatalf("Commit with empty session must report no record")
	}
}

func TestRefreshIfCurrentOnlyMatchingID(t *testing.T) {
	s := NewState()
	s.SetCurrent(record("w1", "李娜"))

	s.RefreshIfCurrent(record("w2", "其他"))
	got, _ := s.Current()
	if got.ID != "w1" || got.PersonalInfo.Name != "李娜" {
		t.Fatalf("refresh with different id must not replace the session")
	}

	s.RefreshIfCurrent(record("w1", "李娜（改）"))
	got, _ = s.Current()
	if got.PersonalInfo.Name != "李娜（改）" {
		t.Fatalf("refresh with matching id must replace the session copy")
	}
}

func TestDropIfCurrent(t *testing.T) {
	s := NewState()
	s.SetCurrent(record("w1", "李娜"))

	s.DropIfCurrent("w2")
	if _, ok := s.Current(); !ok {
		t.Fatalf("drop with different id must keep the session")
	}

	s.DropIfCurrent("w1")
	if _, ok := s.Current(); ok {
		t.Fatalf("drop with matching id must clear the session")
	}
}
