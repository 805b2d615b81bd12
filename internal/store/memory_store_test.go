package store

import (
	"testing"

	"siteforge/pkg/domain"
)

func TestMemoryStoreGetReturnsIndependentCopy(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Save(testRecord("w1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, err := s.Get("w1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.PersonalInfo.Skills[0] = "mutated"

	again, _, err := s.Get("w1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.PersonalInfo.Skills[0] != "React" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestMemoryStoreUpdateMergesOnlySuppliedFields(t *testing.T) {
	s := NewMemoryStore()
	rec := testRecord("w1")
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tmpl := domain.TemplateCreative
	got, ok, err := s.Update("w1", UpdateFields{Template: &tmpl})
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	if got.Template != domain.TemplateCreative {
		t.Fatalf("Template = %q, want creative", got.Template)
	}
	if got.Theme != rec.Theme || got.PersonalInfo.Name != rec.PersonalInfo.Name {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestMemoryStorePrivateUpdateKeepsPassword(t *testing.T) {
	s := NewMemoryStore()
	rec := testRecord("w1")
	rec.IsPublic = false
	rec.Password = "abc123"
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	theme := domain.ThemeOrange
	got, ok, err := s.Update("w1", UpdateFields{Theme: &theme})
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	if got.Password != "abc123" {
		t.Fatalf("unrelated update must not drop the password")
	}
}
