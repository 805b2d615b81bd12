// Package app is the core application service wiring the record store,
// editing session, access gate and renderer together behind one API.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"siteforge/internal/event"
	"siteforge/internal/gate"
	"siteforge/internal/render"
	"siteforge/internal/session"
	"siteforge/internal/share"
	"siteforge/internal/storage"
	"siteforge/internal/store"
	"siteforge/pkg/domain"
)

// Config holds the collaborators the core service runs on.
type Config struct {
	Store          store.Store
	Unlocks        gate.UnlockStore
	Events         event.Publisher
	Media          storage.MediaStore
	BaseURL        string
	RenderCacheTTL time.Duration
}

// App coordinates all website operations.
type App struct {
	store   store.Store
	session *session.State
	unlocks gate.UnlockStore
	events  event.Publisher
	media   storage.MediaStore
	shares  *share.Builder
	renders *gocache.Cache
}

// New wires the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg.Unlocks == nil {
		cfg.Unlocks = gate.NewMemoryUnlockStore(0)
	}
	ttl := cfg.RenderCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &App{
		store:   cfg.Store,
		session: session.NewState(),
		unlocks: cfg.Unlocks,
		events:  cfg.Events,
		media:   cfg.Media,
		shares:  share.NewBuilder(cfg.BaseURL),
		renders: gocache.New(ttl, 2*ttl),
	}, nil
}

// Session exposes the editing context.
func (a *App) Session() *session.State {
	return a.session
}

func (a *App) publish(ctx context.Context, eventType string, rec domain.WebsiteRecord) {
	if a.events == nil {
		return
	}
	if err := a.events.PublishWebsiteEvent(ctx, eventType, rec); err != nil {
		slog.Error("publish event", "type", eventType, "site_id", rec.ID, "error", err)
	}
}

// ListSites returns every stored record.
func (a *App) ListSites() ([]domain.WebsiteRecord, error) {
	return a.store.List()
}

// GetSite loads one record.
func (a *App) GetSite(id string) (domain.WebsiteRecord, error) {
	rec, ok, err := a.store.Get(id)
	if err != nil {
		return domain.WebsiteRecord{}, err
	}
	if !ok {
		return domain.WebsiteRecord{}, ErrNotFound
	}
	return rec, nil
}

// CreateSite validates the content, assigns an id plus defaults, persists
// the record and makes it the current editing context.
func (a *App) CreateSite(ctx context.Context, info domain.PersonalInfo) (domain.WebsiteRecord, error) {
	if err := domain.ValidatePersonalInfo(info); err != nil {
		return domain.WebsiteRecord{}, err
	}
	now := time.Now().UTC()
	rec := domain.WebsiteRecord{
		ID:           uuid.NewString(),
		PersonalInfo: info.Clone(),
		Template:     domain.DefaultTemplate,
		Theme:        domain.DefaultTheme,
		IsPublic:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.Save(rec); err != nil {
		return domain.WebsiteRecord{}, fmt.Errorf("save website: %w", err)
	}
	a.session.SetCurrent(rec)
	a.publish(ctx, event.TypeWebsiteCreated, rec)
	return rec, nil
}

// UpdateSite merges the given fields into the stored record. The session
// copy is refreshed when it holds the same record.
func (a *App) UpdateSite(ctx context.Context, id string, fields store.UpdateFields) (domain.WebsiteRecord, error) {
	if fields.PersonalInfo != nil {
		if err := domain.ValidatePersonalInfo(*fields.PersonalInfo); err != nil {
			return domain.WebsiteRecord{}, err
		}
	}
	rec, ok, err := a.store.Update(id, fields)
	if err != nil {
		return domain.WebsiteRecord{}, fmt.Errorf("update website: %w", err)
	}
	if !ok {
		return domain.WebsiteRecord{}, ErrNotFound
	}
	a.session.RefreshIfCurrent(rec)
	a.publish(ctx, event.TypeWebsiteUpdated, rec)
	return rec, nil
}

// SaveCurrent commits the session's editing copy to the store. Without a
// current record it reports false and changes nothing.
func (a *App) SaveCurrent(ctx context.Context) (domain.WebsiteRecord, bool, error) {
	rec, ok, err := a.session.Commit(a.store)
	if err != nil {
		return domain.WebsiteRecord{}, false, fmt.Errorf("commit session: %w", err)
	}
	if !ok {
		return domain.WebsiteRecord{}, false, nil
	}
	a.publish(ctx, event.TypeWebsiteUpdated, rec)
	return rec, true, nil
}

// DeleteSite removes the record. Deleting an unknown id succeeds. The
// session is cleared when it was editing the deleted record.
func (a *App) DeleteSite(ctx context.Context, id string) error {
	rec, ok, err := a.store.Get(id)
	if err != nil {
		return err
	}
	if err := a.store.Delete(id); err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	a.session.DropIfCurrent(id)
	if ok {
		a.publish(ctx, event.TypeWebsiteDeleted, rec)
	}
	return nil
}

// ViewResult is the outcome of a public site visit.
type ViewResult struct {
	Record domain.WebsiteRecord
	HTML   []byte
	Locked bool
}

// ViewSite handles one visit: the view counter increments for every
// lookup of an existing site, before and regardless of the access check.
// A locked result carries the record (for the password prompt) but no HTML.
func (a *App) ViewSite(ctx context.Context, id, password, unlockToken string) (ViewResult, error) {
	rec, ok, err := a.store.Get(id)
	if err != nil {
		return ViewResult{}, err
	}
	if !ok {
		return ViewResult{}, ErrNotFound
	}

	// Counting is a lookup side effect, not an access one, and must not
	// refresh UpdatedAt. Save replaces the full record with timestamps
	// untouched.
	rec.Views++
	if err := a.store.Save(rec); err != nil {
		return ViewResult{}, fmt.Errorf("count view: %w", err)
	}
	a.publish(ctx, event.TypeWebsiteViewed, rec)

	if !gate.CanView(rec, password) && !a.unlocks.IsUnlocked(id, unlockToken) {
		return ViewResult{Record: rec, Locked: true}, nil
	}

	html, err := a.renderSite(rec)
	if err != nil {
		return ViewResult{}, err
	}
	return ViewResult{Record: rec, HTML: html}, nil
}

// renderSite renders through the cache. Rendering is pure, so output is
// keyed by everything it depends on.
func (a *App) renderSite(rec domain.WebsiteRecord) ([]byte, error) {
	key := fmt.Sprintf("%s|%d|%s|%s", rec.ID, rec.UpdatedAt.UnixNano(), rec.Template, rec.Theme)
	if cached, ok := a.renders.Get(key); ok {
		return cached.([]byte), nil
	}
	html, err := render.Render(rec.PersonalInfo, rec.Template, rec.Theme)
	if err != nil {
		return nil, err
	}
	a.renders.Set(key, html, gocache.DefaultExpiration)
	return html, nil
}

// Unlock trades a correct password for an unlock token the viewer can
// carry across visits to the same private site.
func (a *App) Unlock(id, password string) (string, error) {
	rec, ok, err := a.store.Get(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	if !gate.CanView(rec, password) {
		return "", ErrAccessDenied
	}
	token, err := a.unlocks.Unlock(id)
	if err != nil {
		return "", fmt.Errorf("issue unlock token: %w", err)
	}
	return token, nil
}

// ShareSite builds the share links and stats payload for one site.
func (a *App) ShareSite(id string) (share.Links, share.Stats, error) {
	rec, ok, err := a.store.Get(id)
	if err != nil {
		return share.Links{}, share.Stats{}, err
	}
	if !ok {
		return share.Links{}, share.Stats{}, ErrNotFound
	}
	return a.shares.LinksFor(rec), share.StatsFor(rec, time.Now().UTC()), nil
}

// UploadImage stores one image and returns the reference to embed in
// personal info.
func (a *App) UploadImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if a.media == nil {
		return "", fmt.Errorf("media storage not configured")
	}
	ref, err := a.media.Put(ctx, filename, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}
