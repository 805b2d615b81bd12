package share

import (
	"strings"
	"testing"
	"time"

	"siteforge/pkg/domain"
)

func shareRecord() domain.WebsiteRecord {
	return domain.WebsiteRecord{
		ID: "w1",
		PersonalInfo: domain.PersonalInfo{
			Name:       "张伟",
			Profession: "前端工程师",
		},
		Views:     42,
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestSiteURL(t *testing.T) {
	b := NewBuilder("https://example.com/")
	if got := b.SiteURL("w1"); got != "https://example.com/site/w1" {
		t.Fatalf("SiteURL = %q", got)
	}
}

func TestLinksForEncodesIntents(t *testing.T) {
	b := NewBuilder("https://example.com")
	links := b.LinksFor(shareRecord())

	if links.URL != "https://example.com/site/w1" {
		t.Fatalf("URL = %q", links.URL)
	}
	if links.Text != "查看我的个人网站：张伟 - 前端工程师" {
		t.Fatalf("Text = %q", links.Text)
	}
	if !strings.HasPrefix(links.Twitter, "https://twitter.com/intent/tweet?text=") {
		t.Fatalf("Twitter = %q", links.Twitter)
	}
	if strings.Contains(links.Twitter, "张伟") {
		t.Fatalf("intent text must be URL-encoded: %q", links.Twitter)
	}
	if !strings.Contains(links.Facebook, "u=https%3A%2F%2Fexample.com%2Fsite%2Fw1") {
		t.Fatalf("Facebook = %q", links.Facebook)
	}
	if !strings.Contains(links.LinkedIn, "share-offsite") {
		t.Fatalf("LinkedIn = %q", links.LinkedIn)
	}
}

func TestStatsFor(t *testing.T) {
	rec := shareRecord()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	stats := StatsFor(rec, now)
	if stats.Views != 42 {
		t.Fatalf("Views = %d", stats.Views)
	}
	if stats.DaysOnline != 27 {
		t.Fatalf("DaysOnline = %d, want 27", stats.DaysOnline)
	}
	if !stats.LastUpdated.Equal(rec.UpdatedAt) {
		t.Fatalf("LastUpdated = %v", stats.LastUpdated)
	}
}

func TestStatsForFreshSiteCountsOneDay(t *testing.T) {
	rec := shareRecord()
	stats := StatsFor(rec, rec.CreatedAt.Add(2*time.Hour))
	if stats.DaysOnline != 1 {
		t.Fatalf("DaysOnline = %d, want 1", stats.DaysOnline)
	}
}
