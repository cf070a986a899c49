package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// PackageModel is the GORM model for the tour_packages table.
type PackageModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Slug         string          `gorm:"uniqueIndex;not null;size:120"`
	Title        string          `gorm:"not null;size:200"`
	Summary      string          `gorm:"size:500"`
	Body         string          `gorm:"type:text"`
	DurationDays int             `gorm:"not null;default:0"`
	DistanceKm   int             `gorm:"not null;default:0"`
	Highlights   json.RawMessage `gorm:"type:jsonb"`
	HeroImageURL string          `gorm:"size:500"`
	SortOrder    int             `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PackageModel) TableName() string {
	return "tour_packages"
}

// TempleModel is the GORM model for the temples table.
type TempleModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug         string    `gorm:"uniqueIndex;not null;size:120"`
	Name         string    `gorm:"not null;size:200"`
	Deity        string    `gorm:"size:100"`
	Location     string    `gorm:"size:200"`
	Summary      string    `gorm:"size:500"`
	Body         string    `gorm:"type:text"`
	Timings      string    `gorm:"size:200"`
	HeroImageURL string    `gorm:"size:500"`
	SortOrder    int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TempleModel) TableName() string {
	return "temples"
}

// FleetModel is the GORM model for the fleet_vehicles table.
type FleetModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VehicleType string          `gorm:"not null;size:20;index"`
	Name        string          `gorm:"not null;size:100"`
	Model       string          `gorm:"size:100"`
	Capacity    int             `gorm:"not null;default:4"`
	ImageURL    string          `gorm:"size:500"`
	Features    json.RawMessage `gorm:"type:jsonb"`
	SortOrder   int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (FleetModel) TableName() string {
	return "fleet_vehicles"
}

// GormPackageRepository is the GORM-based implementation of PackageRepository.
type GormPackageRepository struct {
	db *gorm.DB
}

// NewGormPackageRepository creates a new GormPackageRepository.
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

// FindByID retrieves a package by ID.
func (r *GormPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TourPackage, error) {
	var model PackageModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Package", id.String())
		}
		return nil, fmt.Errorf("failed to find package: %w", err)
	}
	return toDomainPackage(&model)
}

// FindBySlug retrieves a package by its URL slug.
func (r *GormPackageRepository) FindBySlug(ctx context.Context, slug string) (*catalog.TourPackage, error) {
	var model PackageModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Package", slug)
		}
		return nil, fmt.Errorf("failed to find package by slug: %w", err)
	}
	return toDomainPackage(&model)
}

// ListActive returns active packages in display order.
func (r *GormPackageRepository) ListActive(ctx context.Context) ([]*catalog.TourPackage, error) {
	return r.list(ctx, r.db.Where("is_active = ?", true))
}

// ListAll returns every package row (admin).
func (r *GormPackageRepository) ListAll(ctx context.Context) ([]*catalog.TourPackage, error) {
	return r.list(ctx, r.db)
}

func (r *GormPackageRepository) list(ctx context.Context, tx *gorm.DB) ([]*catalog.TourPackage, error) {
	var models []PackageModel
	if err := tx.WithContext(ctx).Order("sort_order ASC, title ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	packages := make([]*catalog.TourPackage, len(models))
	for i, m := range models {
		p, err := toDomainPackage(&m)
		if err != nil {
			return nil, err
		}
		packages[i] = p
	}
	return packages, nil
}

// Save persists a new package.
func (r *GormPackageRepository) Save(ctx context.Context, p *catalog.TourPackage) error {
	model, err := toPackageModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("a package with this slug already exists")
		}
		return fmt.Errorf("failed to save package: %w", err)
	}
	return nil
}

// Update persists changes to a package.
func (r *GormPackageRepository) Update(ctx context.Context, p *catalog.TourPackage) error {
	model, err := toPackageModel(p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&PackageModel{}).Where("id = ?", p.ID).Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Package", p.ID.String())
	}
	return nil
}

// Delete removes a package row.
func (r *GormPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PackageModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Package", id.String())
	}
	return nil
}

// GormTempleRepository is the GORM-based implementation of TempleRepository.
type GormTempleRepository struct {
	db *gorm.DB
}

// NewGormTempleRepository creates a new GormTempleRepository.
func NewGormTempleRepository(db *gorm.DB) *GormTempleRepository {
	return &GormTempleRepository{db: db}
}

// FindByID retrieves a temple by ID.
func (r *GormTempleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Temple, error) {
	var model TempleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Temple", id.String())
		}
		return nil, fmt.Errorf("failed to find temple: %w", err)
	}
	return toDomainTemple(&model), nil
}

// FindBySlug retrieves a temple by its URL slug.
func (r *GormTempleRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Temple, error) {
	var model TempleModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Temple", slug)
		}
		return nil, fmt.Errorf("failed to find temple by slug: %w", err)
	}
	return toDomainTemple(&model), nil
}

// ListActive returns active temples in display order.
func (r *GormTempleRepository) ListActive(ctx context.Context) ([]*catalog.Temple, error) {
	return r.list(ctx, r.db.Where("is_active = ?", true))
}

// ListAll returns every temple row (admin).
func (r *GormTempleRepository) ListAll(ctx context.Context) ([]*catalog.Temple, error) {
	return r.list(ctx, r.db)
}

func (r *GormTempleRepository) list(ctx context.Context, tx *gorm.DB) ([]*catalog.Temple, error) {
	var models []TempleModel
	if err := tx.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list temples: %w", err)
	}

	temples := make([]*catalog.Temple, len(models))
	for i, m := range models {
		temples[i] = toDomainTemple(&m)
	}
	return temples, nil
}

// Save persists a new temple.
func (r *GormTempleRepository) Save(ctx context.Context, t *catalog.Temple) error {
	if err := r.db.WithContext(ctx).Create(toTempleModel(t)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("a temple with this slug already exists")
		}
		return fmt.Errorf("failed to save temple: %w", err)
	}
	return nil
}

// Update persists changes to a temple.
func (r *GormTempleRepository) Update(ctx context.Context, t *catalog.Temple) error {
	result := r.db.WithContext(ctx).Model(&TempleModel{}).Where("id = ?", t.ID).Updates(toTempleModel(t))
	if result.Error != nil {
		return fmt.Errorf("failed to update temple: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Temple", t.ID.String())
	}
	return nil
}

// Delete removes a temple row.
func (r *GormTempleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TempleModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete temple: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Temple", id.String())
	}
	return nil
}

// GormFleetRepository is the GORM-based implementation of FleetRepository.
type GormFleetRepository struct {
	db *gorm.DB
}

// NewGormFleetRepository creates a new GormFleetRepository.
func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

// FindByID retrieves a fleet vehicle by ID.
func (r *GormFleetRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.FleetVehicle, error) {
	var model FleetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("FleetVehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find fleet vehicle: %w", err)
	}
	return toDomainFleet(&model)
}

// ListActive returns active fleet vehicles in display order.
func (r *GormFleetRepository) ListActive(ctx context.Context) ([]*catalog.FleetVehicle, error) {
	return r.list(ctx, r.db.Where("is_active = ?", true))
}

// ListAll returns every fleet row (admin).
func (r *GormFleetRepository) ListAll(ctx context.Context) ([]*catalog.FleetVehicle, error) {
	return r.list(ctx, r.db)
}

func (r *GormFleetRepository) list(ctx context.Context, tx *gorm.DB) ([]*catalog.FleetVehicle, error) {
	var models []FleetModel
	if err := tx.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list fleet vehicles: %w", err)
	}

	vehicles := make([]*catalog.FleetVehicle, len(models))
	for i, m := range models {
		v, err := toDomainFleet(&m)
		if err != nil {
			return nil, err
		}
		vehicles[i] = v
	}
	return vehicles, nil
}

// Save persists a new fleet vehicle.
func (r *GormFleetRepository) Save(ctx context.Context, v *catalog.FleetVehicle) error {
	model, err := toFleetModel(v)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save fleet vehicle: %w", err)
	}
	return nil
}

// Update persists changes to a fleet vehicle.
func (r *GormFleetRepository) Update(ctx context.Context, v *catalog.FleetVehicle) error {
	model, err := toFleetModel(v)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&FleetModel{}).Where("id = ?", v.ID).Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update fleet vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("FleetVehicle", v.ID.String())
	}
	return nil
}

// Delete removes a fleet row.
func (r *GormFleetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&FleetModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete fleet vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("FleetVehicle", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toDomainPackage(m *PackageModel) (*catalog.TourPackage, error) {
	highlights, err := unmarshalStrings(m.Highlights)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal package highlights: %w", err)
	}
	return &catalog.TourPackage{
		ID:           m.ID,
		Slug:         m.Slug,
		Title:        m.Title,
		Summary:      m.Summary,
		Body:         m.Body,
		DurationDays: m.DurationDays,
		DistanceKm:   m.DistanceKm,
		Highlights:   highlights,
		HeroImageURL: m.HeroImageURL,
		SortOrder:    m.SortOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func toPackageModel(p *catalog.TourPackage) (*PackageModel, error) {
	highlights, err := marshalStrings(p.Highlights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal package highlights: %w", err)
	}
	return &PackageModel{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Summary:      p.Summary,
		Body:         p.Body,
		DurationDays: p.DurationDays,
		DistanceKm:   p.DistanceKm,
		Highlights:   highlights,
		HeroImageURL: p.HeroImageURL,
		SortOrder:    p.SortOrder,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func toDomainTemple(m *TempleModel) *catalog.Temple {
	return &catalog.Temple{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		Deity:        m.Deity,
		Location:     m.Location,
		Summary:      m.Summary,
		Body:         m.Body,
		Timings:      m.Timings,
		HeroImageURL: m.HeroImageURL,
		SortOrder:    m.SortOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTempleModel(t *catalog.Temple) *TempleModel {
	return &TempleModel{
		ID:           t.ID,
		Slug:         t.Slug,
		Name:         t.Name,
		Deity:        t.Deity,
		Location:     t.Location,
		Summary:      t.Summary,
		Body:         t.Body,
		Timings:      t.Timings,
		HeroImageURL: t.HeroImageURL,
		SortOrder:    t.SortOrder,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toDomainFleet(m *FleetModel) (*catalog.FleetVehicle, error) {
	features, err := unmarshalStrings(m.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal fleet features: %w", err)
	}
	return &catalog.FleetVehicle{
		ID:          m.ID,
		VehicleType: pricing.VehicleType(m.VehicleType),
		Name:        m.Name,
		Model:       m.Model,
		Capacity:    m.Capacity,
		ImageURL:    m.ImageURL,
		Features:    features,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toFleetModel(v *catalog.FleetVehicle) (*FleetModel, error) {
	features, err := marshalStrings(v.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fleet features: %w", err)
	}
	return &FleetModel{
		ID:          v.ID,
		VehicleType: v.VehicleType.String(),
		Name:        v.Name,
		Model:       v.Model,
		Capacity:    v.Capacity,
		ImageURL:    v.ImageURL,
		Features:    features,
		SortOrder:   v.SortOrder,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}, nil
}

func marshalStrings(values []string) (json.RawMessage, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
