// Package share builds the public link and social share payloads for a
// published site.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"siteforge/pkg/domain"
)

// Links is everything a share dialog needs for one site.
type Links struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
}

// Stats summarizes a site's public activity for the share dialog.
type Stats struct {
	Views       int64     `json:"views"`
	DaysOnline  int       `json:"daysOnline"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Builder renders share links relative to a configured public base URL.
type Builder struct {
	baseURL string
}

// NewBuilder trims a trailing slash so joined paths stay canonical.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// SiteURL is the canonical public address of a site.
func (b *Builder) SiteURL(siteID string) string {
	return fmt.Sprintf("%s/site/%s", b.baseURL, siteID)
}

// shareText is the message pre-filled into social share intents.
func shareText(info domain.PersonalInfo) string {
	return fmt.Sprintf("查看我的个人网站：%s - %s", info.Name, info.Profession)
}

// LinksFor builds the share payload for one record.
func (b *Builder) LinksFor(rec domain.WebsiteRecord) Links {
	siteURL := b.SiteURL(rec.ID)
	text := shareText(rec.PersonalInfo)
	encURL := url.QueryEscape(siteURL)
	encText := url.QueryEscape(text)
	return Links{
		URL:      siteURL,
		Text:     text,
		Twitter:  fmt.Sprintf("https://twitter.com/intent/tweet?text=%s&url=%s", encText, encURL),
		Facebook: fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s", encURL),
		LinkedIn: fmt.Sprintf("https://www.linkedin.com/sharing/share-offsite/?url=%s", encURL),
	}
}

// StatsFor computes the activity summary shown alongside the share links.
// DaysOnline counts whole days since creation, at least 1 so a site
// published today does not show zero.
func StatsFor(rec domain.WebsiteRecord, now time.Time) Stats {
	days := int(now.Sub(rec.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return Stats{
		Views:       rec.Views,
		DaysOnline:  days,
		LastUpdated: rec.UpdatedAt,
	}
}
