package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
)

// MediaModel is the GORM model for the media_assets table.
type MediaModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerKind string    `gorm:"not null;size:20;index:idx_media_owner"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_media_owner"`
	URL       string    `gorm:"not null;size:500"`
	Caption   string    `gorm:"size:300"`
	SizeBytes int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (MediaModel) TableName() string {
	return "media_assets"
}

// GormMediaRepository is the GORM-based implementation of MediaRepository.
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository.
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// FindByOwner returns all media attached to one catalog entity.
func (r *GormMediaRepository) FindByOwner(ctx context.Context, kind catalog.MediaOwner, ownerID uuid.UUID) ([]*catalog.MediaAsset, error) {
	var models []MediaModel
	if err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", string(kind), ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	assets := make([]*catalog.MediaAsset, len(models))
	for i, m := range models {
		assets[i] = &catalog.MediaAsset{
			ID:        m.ID,
			OwnerKind: catalog.MediaOwner(m.OwnerKind),
			OwnerID:   m.OwnerID,
			URL:       m.URL,
			Caption:   m.Caption,
			SizeBytes: m.SizeBytes,
			CreatedAt: m.CreatedAt,
		}
	}
	return assets, nil
}

// Save persists a new media asset.
func (r *GormMediaRepository) Save(ctx context.Context, a *catalog.MediaAsset) error {
	model := &MediaModel{
		ID:        a.ID,
		OwnerKind: string(a.OwnerKind),
		OwnerID:   a.OwnerID,
		URL:       a.URL,
		Caption:   a.Caption,
		SizeBytes: a.SizeBytes,
		CreatedAt: a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save media asset: %w", err)
	}
	return nil
}

// Delete removes a media asset row.
func (r *GormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MediaModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete media asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("MediaAsset", id.String())
	}
	return nil
}
