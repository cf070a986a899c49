package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// SeasonModel is the GORM model for the seasons table.
type SeasonModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:30"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	IsRecurring bool      `gorm:"not null;default:false"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SeasonModel) TableName() string {
	return "seasons"
}

// PriceModel is the GORM model for the price_entries table. The
// (package, vehicle type, season) triple carries a unique index.
type PriceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_package_vehicle_season"`
	VehicleType string    `gorm:"not null;size:20;uniqueIndex:idx_package_vehicle_season"`
	SeasonName  string    `gorm:"not null;size:30;uniqueIndex:idx_package_vehicle_season"`
	Price       int64     `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PriceModel) TableName() string {
	return "price_entries"
}

// GormSeasonRepository is the GORM-based implementation of SeasonRepository.
type GormSeasonRepository struct {
	db *gorm.DB
}

// NewGormSeasonRepository creates a new GormSeasonRepository.
func NewGormSeasonRepository(db *gorm.DB) *GormSeasonRepository {
	return &GormSeasonRepository{db: db}
}

// ListActive returns the active seasons used by price resolution.
func (r *GormSeasonRepository) ListActive(ctx context.Context) ([]pricing.Season, error) {
	var models []SeasonModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list active seasons: %w", err)
	}

	seasons := make([]pricing.Season, len(models))
	for i, m := range models {
		seasons[i] = toSeason(&m)
	}
	return seasons, nil
}

// ListAll returns every season row (admin).
func (r *GormSeasonRepository) ListAll(ctx context.Context) ([]pricing.SeasonRecord, error) {
	var models []SeasonModel
	if err := r.db.WithContext(ctx).Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}

	records := make([]pricing.SeasonRecord, len(models))
	for i, m := range models {
		records[i] = toSeasonRecord(&m)
	}
	return records, nil
}

// FindByID retrieves one season row.
func (r *GormSeasonRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.SeasonRecord, error) {
	var model SeasonModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Season", id.String())
		}
		return nil, fmt.Errorf("failed to find season: %w", err)
	}
	rec := toSeasonRecord(&model)
	return &rec, nil
}

// Save persists a new season row.
func (r *GormSeasonRepository) Save(ctx context.Context, rec *pricing.SeasonRecord) error {
	if err := r.db.WithContext(ctx).Create(toSeasonModel(rec)).Error; err != nil {
		return fmt.Errorf("failed to save season: %w", err)
	}
	return nil
}

// Update persists changes to a season row.
func (r *GormSeasonRepository) Update(ctx context.Context, rec *pricing.SeasonRecord) error {
	result := r.db.WithContext(ctx).
		Model(&SeasonModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"name":         rec.Name,
			"start_date":   rec.StartDate,
			"end_date":     rec.EndDate,
			"is_recurring": rec.IsRecurring,
			"is_active":    rec.IsActive,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update season: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Season", rec.ID.String())
	}
	return nil
}

// Delete removes a season row.
func (r *GormSeasonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&SeasonModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete season: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Season", id.String())
	}
	return nil
}

// GormPriceRepository is the GORM-based implementation of PriceRepository.
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository.
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// ListActiveByPackage returns the active price entries for one package.
func (r *GormPriceRepository) ListActiveByPackage(ctx context.Context, packageID uuid.UUID) ([]pricing.PriceEntry, error) {
	var models []PriceModel
	if err := r.db.WithContext(ctx).
		Where("package_id = ? AND is_active = ?", packageID, true).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list active prices: %w", err)
	}

	entries := make([]pricing.PriceEntry, len(models))
	for i, m := range models {
		entries[i] = toPriceEntry(&m)
	}
	return entries, nil
}

// ListByPackage returns every price row for one package (admin).
func (r *GormPriceRepository) ListByPackage(ctx context.Context, packageID uuid.UUID) ([]pricing.PriceRecord, error) {
	var models []PriceModel
	if err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("vehicle_type ASC, season_name ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	records := make([]pricing.PriceRecord, len(models))
	for i, m := range models {
		records[i] = toPriceRecord(&m)
	}
	return records, nil
}

// FindByID retrieves one price row.
func (r *GormPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PriceRecord, error) {
	var model PriceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PriceEntry", id.String())
		}
		return nil, fmt.Errorf("failed to find price entry: %w", err)
	}
	rec := toPriceRecord(&model)
	return &rec, nil
}

// Save persists a new price row.
func (r *GormPriceRepository) Save(ctx context.Context, rec *pricing.PriceRecord) error {
	if err := r.db.WithContext(ctx).Create(toPriceModel(rec)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("a price for this package, vehicle type and season already exists")
		}
		return fmt.Errorf("failed to save price entry: %w", err)
	}
	return nil
}

// Update persists changes to a price row.
func (r *GormPriceRepository) Update(ctx context.Context, rec *pricing.PriceRecord) error {
	result := r.db.WithContext(ctx).
		Model(&PriceModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"price":      rec.Price,
			"is_active":  rec.IsActive,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update price entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("PriceEntry", rec.ID.String())
	}
	return nil
}

// Delete removes a price row.
func (r *GormPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PriceModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete price entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("PriceEntry", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toSeason(m *SeasonModel) pricing.Season {
	return pricing.Season{
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsRecurring: m.IsRecurring,
		IsActive:    m.IsActive,
	}
}

func toSeasonRecord(m *SeasonModel) pricing.SeasonRecord {
	return pricing.SeasonRecord{
		ID:        m.ID,
		Season:    toSeason(m),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toSeasonModel(rec *pricing.SeasonRecord) *SeasonModel {
	return &SeasonModel{
		ID:          rec.ID,
		Name:        rec.Name,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		IsRecurring: rec.IsRecurring,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toPriceEntry(m *PriceModel) pricing.PriceEntry {
	return pricing.PriceEntry{
		VehicleType: pricing.VehicleType(m.VehicleType),
		SeasonName:  m.SeasonName,
		Price:       m.Price,
		IsActive:    m.IsActive,
	}
}

func toPriceRecord(m *PriceModel) pricing.PriceRecord {
	return pricing.PriceRecord{
		ID:         m.ID,
		PackageID:  m.PackageID,
		PriceEntry: toPriceEntry(m),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toPriceModel(rec *pricing.PriceRecord) *PriceModel {
	return &PriceModel{
		ID:          rec.ID,
		PackageID:   rec.PackageID,
		VehicleType: rec.VehicleType.String(),
		SeasonName:  rec.SeasonName,
		Price:       rec.Price,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
