package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"siteforge/internal/store"
	"siteforge/pkg/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{
		Store:   store.NewMemoryStore(),
		BaseURL: "https://example.com",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func create(t *testing.T, a *App) domain.WebsiteRecord {
	t.Helper()
	rec, err := a.CreateSite(context.Background(), domain.PersonalInfo{
		Name:       "张伟",
		Profession: "前端工程师",
	})
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	return rec
}

func TestCreateSiteAppliesDefaults(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)

	if rec.ID == "" {
		t.Fatalf("missing id")
	}
	if rec.Template != domain.TemplateModern || rec.Theme != domain.ThemeBlue {
		t.Fatalf("defaults = %s/%s, want modern/blue", rec.Template, rec.Theme)
	}
	if !rec.IsPublic || rec.Views != 0 || rec.Password != "" {
		t.Fatalf("unexpected defaults: %+v", rec)
	}
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("fresh record timestamps must match")
	}

	current, ok := a.Session().Current()
	if !ok || current.ID != rec.ID {
		t.Fatalf("creation must set the editing context")
	}
}

func TestCreateSiteRejectsInvalidContent(t *testing.T) {
	a := newTestApp(t)
	_, err := a.CreateSite(context.Background(), domain.PersonalInfo{Profession: "设计师"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateSite = %v, want validation error", err)
	}
}

func TestCreateThenGetIsIdentity(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)
	got, err := a.GetSite(rec.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if got.ID != rec.ID || got.PersonalInfo.Name != rec.PersonalInfo.Name ||
		!got.CreatedAt.Equal(rec.CreatedAt) || !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("stored record diverged: %+v vs %+v", got, rec)
	}
}

func TestGetSiteUnknownID(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.GetSite("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSite = %v, want ErrNotFound", err)
	}
}

func TestViewSiteCountsEveryVisitRegardlessOfGate(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)

	hidden := false
	password := "abc123"
	if _, err := a.UpdateSite(context.Background(), rec.ID, store.UpdateFields{
		IsPublic: &hidden,
		Password: &password,
	}); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}
	updated, err := a.GetSite(rec.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}

	for i := 0; i < 3; i++ {
		result, err := a.ViewSite(context.Background(), rec.ID, "wrong", "")
		if err != nil {
			t.Fatalf("ViewSite: %v", err)
		}
		if !result.Locked || result.HTML != nil {
			t.Fatalf("denied visit must be locked without HTML: %+v", result)
		}
	}

	got, err := a.GetSite(rec.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if got.Views != 3 {
		t.Fatalf("Views = %d, want 3 (denied visits still count)", got.Views)
	}
	if !got.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Fatalf("view counting must not refresh UpdatedAt")
	}
}

func TestViewSitePublicRendersHTML(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)
	result, err := a.ViewSite(context.Background(), rec.ID, "", "")
	if err != nil {
		t.Fatalf("ViewSite: %v", err)
	}
	if result.Locked || len(result.HTML) == 0 {
		t.Fatalf("public site must render: %+v", result)
	}
	if result.Record.Views != 1 {
		t.Fatalf("Views = %d, want 1", result.Record.Views)
	}
}

func TestViewSiteUnknownID(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.ViewSite(context.Background(), "missing", "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ViewSite = %v, want ErrNotFound", err)
	}
}

func TestUnlockFlow(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)
	hidden := false
	password := "abc123"
	if _, err := a.UpdateSite(context.Background(), rec.ID, store.UpdateFields{
		IsPublic: &hidden,
		Password: &password,
	}); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}

	if _, err := a.Unlock(rec.ID, "abc124"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Unlock with wrong password = %v, want ErrAccessDenied", err)
	}
	token, err := a.Unlock(rec.ID, "abc123")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	result, err := a.ViewSite(context.Background(), rec.ID, "", token)
	if err != nil {
		t.Fatalf("ViewSite: %v", err)
	}
	if result.Locked || len(result.HTML) == 0 {
		t.Fatalf("unlock token must admit the viewer: %+v", result)
	}
}

func TestUpdateSiteRefreshesSession(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)
	theme := domain.ThemePink
	updated, err := a.UpdateSite(context.Background(), rec.ID, store.UpdateFields{Theme: &theme})
	if err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}
	if updated.Theme != domain.ThemePink {
		t.Fatalf("Theme = %q", updated.Theme)
	}
	current, ok := a.Session().Current()
	if !ok || current.Theme != domain.ThemePink {
		t.Fatalf("session copy must track the stored update")
	}
}

func TestUpdateSiteUnknownID(t *testing.T) {
	a := newTestApp(t)
	theme := domain.ThemePink
	if _, err := a.UpdateSite(context.Background(), "missing", store.UpdateFields{Theme: &theme}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateSite = %v, want ErrNotFound", err)
	}
}

func TestSaveCurrentCommitsSessionEdits(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)

	edited := rec.Clone()
	edited.PersonalInfo.Bio = "新的简介"
	a.Session().SetCurrent(edited)

	// Session edits must not reach the store before commit.
	stored, err := a.GetSite(rec.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if stored.PersonalInfo.Bio != "" {
		t.Fatalf("session edit leaked into the store")
	}

	committed, ok, err := a.SaveCurrent(context.Background())
	if err != nil || !ok {
		t.Fatalf("SaveCurrent = %v, %v", ok, err)
	}
	if committed.PersonalInfo.Bio != "新的简介" {
		t.Fatalf("commit returned stale record")
	}
	stored, err = a.GetSite(rec.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if stored.PersonalInfo.Bio != "新的简介" {
		t.Fatalf("commit did not reach the store")
	}
}

func TestSaveCurrentWithoutSession(t *testing.T) {
	a := newTestApp(t)
	_, ok, err := a.SaveCurrent(context.Background())
	if err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	if ok {
		t.Fatalf("empty session must commit nothing")
	}
}

func TestDeleteSiteIsIdempotentAndClearsSession(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)

	if err := a.DeleteSite(context.Background(), rec.ID); err != nil {
		t.Fatalf("DeleteSite: %v", err)
	}
	if _, ok := a.Session().Current(); ok {
		t.Fatalf("deleting the edited record must clear the session")
	}
	if err := a.DeleteSite(context.Background(), rec.ID); err != nil {
		t.Fatalf("second DeleteSite must succeed: %v", err)
	}
	if _, err := a.GetSite(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSite after delete = %v, want ErrNotFound", err)
	}
}

func TestShareSite(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)
	links, stats, err := a.ShareSite(rec.ID)
	if err != nil {
		t.Fatalf("ShareSite: %v", err)
	}
	if links.URL != "https://example.com/site/"+rec.ID {
		t.Fatalf("URL = %q", links.URL)
	}
	if stats.DaysOnline < 1 {
		t.Fatalf("DaysOnline = %d", stats.DaysOnline)
	}

	if _, _, err := a.ShareSite("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ShareSite = %v, want ErrNotFound", err)
	}
}

func TestRenderCacheInvalidatesOnUpdate(t *testing.T) {
	a := newTestApp(t)
	rec := create(t, a)

	first, err := a.ViewSite(context.Background(), rec.ID, "", "")
	if err != nil {
		t.Fatalf("ViewSite: %v", err)
	}

	// An update changes UpdatedAt and therefore the cache key.
	time.Sleep(time.Millisecond)
	theme := domain.ThemeGreen
	if _, err := a.UpdateSite(context.Background(), rec.ID, store.UpdateFields{Theme: &theme}); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}
	second, err := a.ViewSite(context.Background(), rec.ID, "", "")
	if err != nil {
		t.Fatalf("ViewSite: %v", err)
	}
	if string(first.HTML) == string(second.HTML) {
		t.Fatalf("updated record must not serve the stale render")
	}
}
