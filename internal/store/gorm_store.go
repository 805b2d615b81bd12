package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"siteforge/pkg/domain"
)

// GormStore implements Store on Postgres for hosted deployments where a
// snapshot file is not enough. It mirrors the snapshot semantics: full-row
// upserts, idempotent deletes, undecodable rows dropped from listings.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&RecordModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// List returns all records ordered by creation time.
func (s *GormStore) List() ([]domain.WebsiteRecord, error) {
	var models []RecordModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.WebsiteRecord, 0, len(models))
	for _, m := range models {
		rec, err := recordFromModel(m)
		if err != nil {
			slog.Warn("dropping undecodable record", "id", m.ID, "err", err)
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

// Get retrieves a record by id.
func (s *GormStore) Get(id string) (domain.WebsiteRecord, bool, error) {
	var model RecordModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WebsiteRecord{}, false, nil
		}
		return domain.WebsiteRecord{}, false, err
	}
	rec, err := recordFromModel(model)
	if err != nil {
		return domain.WebsiteRecord{}, false, err
	}
	return rec, true, nil
}

// Save upserts the complete record.
func (s *GormStore) Save(rec domain.WebsiteRecord) error {
	if rec.ID == "" {
		return errors.New("record id required")
	}
	model, err := recordToModel(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"personal_info", "template", "theme", "is_public", "password",
			"created_at", "updated_at", "views",
		}),
	}).Create(&model).Error
}

// Update merges the supplied fields inside a transaction.
func (s *GormStore) Update(id string, fields UpdateFields) (domain.WebsiteRecord, bool, error) {
	var updated domain.WebsiteRecord
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model RecordModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		rec, err := recordFromModel(model)
		if err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		applyUpdate(&rec, fields, time.Now())
		next, err := recordToModel(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = rec
		found = true
		return nil
	})
	if err != nil {
		return domain.WebsiteRecord{}, false, err
	}
	return updated, found, nil
}

// Delete removes a record; deleting an absent id is a no-op.
func (s *GormStore) Delete(id string) error {
	return s.db.Delete(&RecordModel{}, "id = ?", id).Error
}
