package store

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"siteforge/pkg/domain"
)

// RecordModel is the GORM row for a website record. PersonalInfo stays a
// JSON document so the embedded schema matches the snapshot serialization.
type RecordModel struct {
	ID           string         `gorm:"primaryKey"`
	PersonalInfo datatypes.JSON `gorm:"not null"`
	Template     string         `gorm:"not null"`
	Theme        string         `gorm:"not null"`
	IsPublic     bool           `gorm:"not null"`
	Password     string
	// Timestamps are owned by the store semantics, never by the ORM:
	// Save must not refresh UpdatedAt.
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
	Views        int64     `gorm:"not null;default:0"`
}

// TableName keeps the table name stable across gorm naming changes.
func (RecordModel) TableName() string { return "website_records" }

func recordToModel(rec domain.WebsiteRecord) (RecordModel, error) {
	info, err := json.Marshal(rec.PersonalInfo)
	if err != nil {
		return RecordModel{}, err
	}
	return RecordModel{
		ID:           rec.ID,
		PersonalInfo: datatypes.JSON(info),
		Template:     string(rec.Template),
		Theme:        string(rec.Theme),
		IsPublic:     rec.IsPublic,
		Password:     rec.Password,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Views:        rec.Views,
	}, nil
}

func recordFromModel(m RecordModel) (domain.WebsiteRecord, error) {
	var info domain.PersonalInfo
	if len(m.PersonalInfo) > 0 {
		if err := json.Unmarshal(m.PersonalInfo, &info); err != nil {
			return domain.WebsiteRecord{}, err
		}
	}
	return domain.WebsiteRecord{
		ID:           m.ID,
		PersonalInfo: info,
		Template:     domain.TemplateID(m.Template),
		Theme:        domain.ThemeID(m.Theme),
		IsPublic:     m.IsPublic,
		Password:     m.Password,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Views:        m.Views,
	}, nil
}
