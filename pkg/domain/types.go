package domain

import "time"

// TemplateID selects a structural page layout. The set is closed: unknown
// values are kept verbatim in storage and fall back at render time.
type TemplateID string

const (
	TemplateModern       TemplateID = "modern"
	TemplateCreative     TemplateID = "creative"
	TemplateProfessional TemplateID = "professional"
	TemplateMinimal      TemplateID = "minimal"
)

// DefaultTemplate is assigned to newly created records.
const DefaultTemplate = TemplateModern

// ThemeID selects a color palette from a closed set.
type ThemeID string

const (
	ThemeBlue   ThemeID = "blue"
	ThemePurple ThemeID = "purple"
	ThemeGreen  ThemeID = "green"
	ThemeOrange ThemeID = "orange"
	ThemePink   ThemeID = "pink"
)

// DefaultTheme is assigned to newly created records and used as the
// fallback palette for unknown theme ids.
const DefaultTheme = ThemeBlue

// SocialPlatform is one of the fixed social link keys.
type SocialPlatform string

const (
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformGitHub    SocialPlatform = "github"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformWebsite   SocialPlatform = "website"
)

// SocialPlatforms lists the supported platforms in display order.
var SocialPlatforms = []SocialPlatform{
	PlatformLinkedIn,
	PlatformGitHub,
	PlatformTwitter,
	PlatformInstagram,
	PlatformWebsite,
}

// SocialLinks maps a platform key to an optional URL. Empty values mean
// the platform is not shown.
type SocialLinks map[SocialPlatform]string

// Project is one portfolio entry owned by a record.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image,omitempty"`
	Link         string   `json:"link,omitempty"`
	Technologies []string `json:"technologies"`
}

// PersonalInfo is the content a visitor sees once a site renders.
// Bio holds owner-authored markup rendered verbatim on the owner's own
// page; avatar and background image are opaque references supplied by
// the image intake and never interpreted here.
type PersonalInfo struct {
	Name            string      `json:"name"`
	Profession      string      `json:"profession"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Location        string      `json:"location,omitempty"`
	Bio             string      `json:"bio,omitempty"`
	Skills          []string    `json:"skills"`
	SocialLinks     SocialLinks `json:"socialLinks"`
	Projects        []Project   `json:"projects"`
	Avatar          string      `json:"avatar,omitempty"`
	BackgroundImage string      `json:"backgroundImage,omitempty"`
}

// WebsiteRecord is one user's persisted website configuration.
//
// Password is a soft content gate compared by plain string equality. It is
// not a security boundary: anyone with access to the store can read the
// record directly. It must be empty whenever IsPublic is true.
type WebsiteRecord struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Template     TemplateID   `json:"template"`
	Theme        ThemeID      `json:"theme"`
	IsPublic     bool         `json:"isPublic"`
	Password     string       `json:"password,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Views        int64        `json:"views"`
}

// Clone returns a deep copy so callers can hold a record by value without
// sharing slice or map backing storage.
func (r WebsiteRecord) Clone() WebsiteRecord {
	out := r
	out.PersonalInfo = r.PersonalInfo.Clone()
	return out
}

// Clone returns a deep copy of the personal info.
func (p PersonalInfo) Clone() PersonalInfo {
	out := p
	if p.Skills != nil {
		out.Skills = append([]string(nil), p.Skills...)
	}
	if p.SocialLinks != nil {
		out.SocialLinks = make(SocialLinks, len(p.SocialLinks))
		for k, v := range p.SocialLinks {
			out.SocialLinks[k] = v
		}
	}
	if p.Projects != nil {
		out.Projects = make([]Project, len(p.Projects))
		for i, proj := range p.Projects {
			cp := proj
			if proj.Technologies != nil {
				cp.Technologies = append([]string(nil), proj.Technologies...)
			}
			out.Projects[i] = cp
		}
	}
	return out
}
