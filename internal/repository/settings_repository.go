package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/site"
)

// SettingModel is the GORM model for the site_settings table.
type SettingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Section   string    `gorm:"not null;size:30;uniqueIndex:idx_section_key"`
	Key       string    `gorm:"not null;size:60;uniqueIndex:idx_section_key"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SettingModel) TableName() string {
	return "site_settings"
}

// GormSettingRepository is the GORM-based implementation of SettingRepository.
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository.
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// ListBySection returns all rows for one section.
func (r *GormSettingRepository) ListBySection(ctx context.Context, section string) ([]*site.Setting, error) {
	var models []SettingModel
	if err := r.db.WithContext(ctx).
		Where("section = ?", section).
		Order("key ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return toDomainSettings(models), nil
}

// ListAll returns every setting row (admin).
func (r *GormSettingRepository) ListAll(ctx context.Context) ([]*site.Setting, error) {
	var models []SettingModel
	if err := r.db.WithContext(ctx).Order("section ASC, key ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return toDomainSettings(models), nil
}

// Upsert inserts or replaces the row for (section, key).
func (r *GormSettingRepository) Upsert(ctx context.Context, s *site.Setting) error {
	model := &SettingModel{
		ID:        s.ID,
		Section:   s.Section,
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

// Delete removes one row by section and key.
func (r *GormSettingRepository) Delete(ctx context.Context, section, key string) error {
	result := r.db.WithContext(ctx).Delete(&SettingModel{}, "section = ? AND key = ?", section, key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Setting", section+"/"+key)
	}
	return nil
}

func toDomainSettings(models []SettingModel) []*site.Setting {
	settings := make([]*site.Setting, len(models))
	for i, m := range models {
		settings[i] = &site.Setting{
			ID:        m.ID,
			Section:   m.Section,
			Key:       m.Key,
			Value:     m.Value,
			UpdatedAt: m.UpdatedAt,
		}
	}
	return settings
}
