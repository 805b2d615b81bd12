package store

import (
	"time"

	"siteforge/pkg/domain"
)

// Store defines persistence operations for website records.
//
// Save is a full-record upsert: the caller supplies the complete record and
// an existing record with the same id is replaced, timestamps untouched.
// Update merges only the supplied fields and refreshes UpdatedAt.
// Delete is idempotent. Every mutating call persists synchronously before
// returning.
type Store interface {
	List() ([]domain.WebsiteRecord, error)
	Get(id string) (domain.WebsiteRecord, bool, error)
	Save(rec domain.WebsiteRecord) error
	Update(id string, fields UpdateFields) (domain.WebsiteRecord, bool, error)
	Delete(id string) error
}

// UpdateFields names the record fields a partial update may touch. Nil
// pointers leave the existing value alone.
type UpdateFields struct {
	Template     *domain.TemplateID
	Theme        *domain.ThemeID
	IsPublic     *bool
	Password     *string
	PersonalInfo *domain.PersonalInfo
}

// applyUpdate merges fields into rec and refreshes UpdatedAt. The
// password/visibility coupling is enforced here, in one place, for every
// store implementation: a public record never keeps a password.
func applyUpdate(rec *domain.WebsiteRecord, fields UpdateFields, now time.Time) {
	if fields.Template != nil {
		rec.Template = *fields.Template
	}
	if fields.Theme != nil {
		rec.Theme = *fields.Theme
	}
	if fields.PersonalInfo != nil {
		rec.PersonalInfo = fields.PersonalInfo.Clone()
	}
	if fields.IsPublic != nil {
		rec.IsPublic = *fields.IsPublic
	}
	if fields.Password != nil {
		rec.Password = *fields.Password
	}
	if rec.IsPublic {
		rec.Password = ""
	}
	rec.UpdatedAt = now.UTC()
}
