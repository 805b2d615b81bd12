// Package render turns a site's personal info plus a template and theme
// choice into a standalone HTML document. Rendering is pure: the same
// inputs always produce the same bytes, which makes the output cacheable
// by (id, updatedAt, template, theme).
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"siteforge/pkg/domain"
)

var pages *template.Template

func init() {
	pages = template.New("pages")
	for _, src := range []string{baseCSSSrc, sectionsSrc, modernSrc, creativeSrc, professionalSrc, minimalSrc, fallbackSrc} {
		pages = template.Must(pages.Parse(src))
	}
}

// icons is the closed set of recognized social platforms. Anything else,
// including platforms we store but have no glyph for, gets the globe.
var icons = map[domain.SocialPlatform]string{
	domain.PlatformLinkedIn: "linkedin",
	domain.PlatformGitHub:   "github",
	domain.PlatformTwitter:  "twitter",
	domain.PlatformWebsite:  "website",
}

var iconLabels = map[string]string{
	"linkedin": "in",
	"github":   "gh",
	"twitter":  "tw",
	"website":  "web",
	"globe":    "🌐",
}

// IconFor resolves the icon slug for a platform, falling back to "globe".
func IconFor(platform domain.SocialPlatform) string {
	if icon, ok := icons[platform]; ok {
		return icon
	}
	return "globe"
}

type socialLink struct {
	Platform string
	URL      string
	Icon     string
	Label    string
}

type pageData struct {
	Info   domain.PersonalInfo
	Bio    template.HTML
	Colors Palette
	Social []socialLink
}

// socialLinks flattens the social map into display order. Known platforms
// come first in their canonical order, then any remaining keys sorted, so
// output stays deterministic regardless of map iteration.
func socialLinks(links domain.SocialLinks) []socialLink {
	if len(links) == 0 {
		return nil
	}
	seen := make(map[domain.SocialPlatform]bool, len(links))
	var out []socialLink
	add := func(p domain.SocialPlatform, url string) {
		icon := IconFor(p)
		out = append(out, socialLink{
			Platform: string(p),
			URL:      url,
			Icon:     icon,
			Label:    iconLabels[icon],
		})
		seen[p] = true
	}
	for _, p := range domain.SocialPlatforms {
		if url := links[p]; url != "" {
			add(p, url)
		}
	}
	rest := make([]domain.SocialPlatform, 0, len(links))
	for p, url := range links {
		if !seen[p] && url != "" {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, p := range rest {
		add(p, links[p])
	}
	return out
}

// bioHTML passes the bio through as markup with line breaks preserved.
// The bio is owner-authored content for the owner's own page; it is
// trusted input and renders verbatim.
func bioHTML(bio string) template.HTML {
	if strings.TrimSpace(bio) == "" {
		return ""
	}
	return template.HTML(strings.ReplaceAll(bio, "\n", "<br>"))
}

// Render produces the HTML page for info under the given template and
// theme. Unknown template ids render the default minimal layout and
// unknown theme ids fall back to the default palette; Render never fails
// on bad ids, only on template execution itself.
func Render(info domain.PersonalInfo, tmpl domain.TemplateID, theme domain.ThemeID) ([]byte, error) {
	name := "fallback"
	switch tmpl {
	case domain.TemplateModern, domain.TemplateCreative, domain.TemplateProfessional, domain.TemplateMinimal:
		name = string(tmpl)
	}
	data := pageData{
		Info:   info,
		Bio:    bioHTML(info.Bio),
		Colors: PaletteFor(theme),
		Social: socialLinks(info.SocialLinks),
	}
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
