package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

const maxMediaSizeBytes = 10 << 20 // 10 MiB

var allowedMediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PackageInput is the admin payload for creating or updating a tour package.
type PackageInput struct {
	Slug         string   `json:"slug" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Summary      string   `json:"summary"`
	Body         string   `json:"body"`
	DurationDays int      `json:"duration_days"`
	DistanceKm   int      `json:"distance_km"`
	Highlights   []string `json:"highlights"`
	HeroImageURL string   `json:"hero_image_url"`
	SortOrder    int      `json:"sort_order"`
	IsActive     bool     `json:"is_active"`
}

// TempleInput is the admin payload for creating or updating a temple page.
type TempleInput struct {
	Slug         string `json:"slug" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Deity        string `json:"deity"`
	Location     string `json:"location"`
	Summary      string `json:"summary"`
	Body         string `json:"body"`
	Timings      string `json:"timings"`
	HeroImageURL string `json:"hero_image_url"`
	SortOrder    int    `json:"sort_order"`
	IsActive     bool   `json:"is_active"`
}

// FleetInput is the admin payload for creating or updating a fleet vehicle.
type FleetInput struct {
	VehicleType string   `json:"vehicle_type" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Model       string   `json:"model"`
	Capacity    int      `json:"capacity"`
	ImageURL    string   `json:"image_url"`
	Features    []string `json:"features"`
	SortOrder   int      `json:"sort_order"`
	IsActive    bool     `json:"is_active"`
}

// CatalogService manages the public catalog: tour packages, temple pages,
// the fleet listing and their uploaded media.
type CatalogService struct {
	packages catalog.PackageRepository
	temples  catalog.TempleRepository
	fleet    catalog.FleetRepository
	media    catalog.MediaRepository
	mediaDir string
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService. Uploaded media is stored
// under mediaDir and served from /media.
func NewCatalogService(
	packages catalog.PackageRepository,
	temples catalog.TempleRepository,
	fleet catalog.FleetRepository,
	media catalog.MediaRepository,
	mediaDir string,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		packages: packages,
		temples:  temples,
		fleet:    fleet,
		media:    media,
		mediaDir: mediaDir,
		logger:   logger,
	}
}

// --- Packages ---

// ListPackages returns the active packages for the public site.
func (s *CatalogService) ListPackages(ctx context.Context) ([]*catalog.TourPackage, error) {
	return s.packages.ListActive(ctx)
}

// ListAllPackages returns every package, active or not (admin).
func (s *CatalogService) ListAllPackages(ctx context.Context) ([]*catalog.TourPackage, error) {
	return s.packages.ListAll(ctx)
}

// GetPackageBySlug returns one package page by its URL slug.
func (s *CatalogService) GetPackageBySlug(ctx context.Context, slug string) (*catalog.TourPackage, error) {
	return s.packages.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// CreatePackage adds a tour package (admin).
func (s *CatalogService) CreatePackage(ctx context.Context, input PackageInput) (*catalog.TourPackage, error) {
	p, err := catalog.NewTourPackage(input.Slug, input.Title, input.Summary)
	if err != nil {
		return nil, err
	}
	applyPackageInput(p, input)

	if err := s.packages.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("package created", zap.String("slug", p.Slug))
	return p, nil
}

// UpdatePackage replaces a package's content (admin).
func (s *CatalogService) UpdatePackage(ctx context.Context, id uuid.UUID, input PackageInput) (*catalog.TourPackage, error) {
	p, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(strings.ToLower(input.Slug))
	title := strings.TrimSpace(input.Title)
	if slug == "" || title == "" {
		return nil, domain.NewValidationError("package slug and title are required")
	}
	p.Slug = slug
	p.Title = title
	p.Summary = strings.TrimSpace(input.Summary)
	applyPackageInput(p, input)

	if err := s.packages.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePackage removes a package (admin).
func (s *CatalogService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if _, err := s.packages.FindByID(ctx, id); err != nil {
		return err
	}
	return s.packages.Delete(ctx, id)
}

// --- Temples ---

// ListTemples returns the active temple pages for the public site.
func (s *CatalogService) ListTemples(ctx context.Context) ([]*catalog.Temple, error) {
	return s.temples.ListActive(ctx)
}

// ListAllTemples returns every temple page, active or not (admin).
func (s *CatalogService) ListAllTemples(ctx context.Context) ([]*catalog.Temple, error) {
	return s.temples.ListAll(ctx)
}

// GetTempleBySlug returns one temple page by its URL slug.
func (s *CatalogService) GetTempleBySlug(ctx context.Context, slug string) (*catalog.Temple, error) {
	return s.temples.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// CreateTemple adds a temple page (admin).
func (s *CatalogService) CreateTemple(ctx context.Context, input TempleInput) (*catalog.Temple, error) {
	t, err := catalog.NewTemple(input.Slug, input.Name, input.Location)
	if err != nil {
		return nil, err
	}
	applyTempleInput(t, input)

	if err := s.temples.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("temple created", zap.String("slug", t.Slug))
	return t, nil
}

// UpdateTemple replaces a temple page's content (admin).
func (s *CatalogService) UpdateTemple(ctx context.Context, id uuid.UUID, input TempleInput) (*catalog.Temple, error) {
	t, err := s.temples.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(strings.ToLower(input.Slug))
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, domain.NewValidationError("temple slug and name are required")
	}
	t.Slug = slug
	t.Name = name
	t.Location = strings.TrimSpace(input.Location)
	applyTempleInput(t, input)

	if err := s.temples.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemple removes a temple page (admin).
func (s *CatalogService) DeleteTemple(ctx context.Context, id uuid.UUID) error {
	if _, err := s.temples.FindByID(ctx, id); err != nil {
		return err
	}
	return s.temples.Delete(ctx, id)
}

// --- Fleet ---

// ListFleet returns the active fleet vehicles for the public site.
func (s *CatalogService) ListFleet(ctx context.Context) ([]*catalog.FleetVehicle, error) {
	return s.fleet.ListActive(ctx)
}

// ListAllFleet returns every fleet vehicle, active or not (admin).
func (s *CatalogService) ListAllFleet(ctx context.Context) ([]*catalog.FleetVehicle, error) {
	return s.fleet.ListAll(ctx)
}

// CreateFleetVehicle adds a fleet vehicle (admin).
func (s *CatalogService) CreateFleetVehicle(ctx context.Context, input FleetInput) (*catalog.FleetVehicle, error) {
	v, err := catalog.NewFleetVehicle(pricing.VehicleType(input.VehicleType), input.Name, input.Model)
	if err != nil {
		return nil, err
	}
	applyFleetInput(v, input)

	if err := s.fleet.Save(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("fleet vehicle created", zap.String("name", v.Name))
	return v, nil
}

// UpdateFleetVehicle replaces a fleet vehicle's definition (admin).
func (s *CatalogService) UpdateFleetVehicle(ctx context.Context, id uuid.UUID, input FleetInput) (*catalog.FleetVehicle, error) {
	v, err := s.fleet.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicleType := pricing.VehicleType(input.VehicleType)
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError("invalid vehicle type: " + input.VehicleType)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("vehicle name is required")
	}
	v.VehicleType = vehicleType
	v.Name = name
	v.Model = strings.TrimSpace(input.Model)
	applyFleetInput(v, input)

	if err := s.fleet.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteFleetVehicle removes a fleet vehicle (admin).
func (s *CatalogService) DeleteFleetVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.fleet.FindByID(ctx, id); err != nil {
		return err
	}
	return s.fleet.Delete(ctx, id)
}

// --- Media ---

// ListMedia returns the uploaded media for one catalog entity.
func (s *CatalogService) ListMedia(ctx context.Context, kind catalog.MediaOwner, ownerID uuid.UUID) ([]*catalog.MediaAsset, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("invalid media owner kind: " + string(kind))
	}
	return s.media.FindByOwner(ctx, kind, ownerID)
}

// UploadMedia stores an uploaded image on disk and records it against its
// owning catalog entity (admin).
func (s *CatalogService) UploadMedia(
	ctx context.Context,
	kind catalog.MediaOwner,
	ownerID uuid.UUID,
	filename, caption string,
	size int64,
	r io.Reader,
) (*catalog.MediaAsset, error) {
	if size > maxMediaSizeBytes {
		return nil, domain.NewValidationError("media file exceeds the 10 MiB limit")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedMediaExtensions[ext] {
		return nil, domain.NewValidationError("unsupported media type: " + ext)
	}
	if err := s.ownerExists(ctx, kind, ownerID); err != nil {
		return nil, err
	}

	storedName := uuid.NewString() + ext
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.mediaDir, storedName))
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(r, maxMediaSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}
	if written > maxMediaSizeBytes {
		os.Remove(dst.Name())
		return nil, domain.NewValidationError("media file exceeds the 10 MiB limit")
	}

	asset, err := catalog.NewMediaAsset(kind, ownerID, "/media/"+storedName, caption, written)
	if err != nil {
		os.Remove(dst.Name())
		return nil, err
	}
	if err := s.media.Save(ctx, asset); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	s.logger.Info("media uploaded",
		zap.String("owner_kind", string(kind)),
		zap.String("owner_id", ownerID.String()),
		zap.Int64("size_bytes", written),
	)
	return asset, nil
}

// DeleteMedia removes a media record (admin). The file on disk is left for
// the cleanup job.
func (s *CatalogService) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	return s.media.Delete(ctx, id)
}

// ownerExists verifies the media's owning entity before accepting an upload.
func (s *CatalogService) ownerExists(ctx context.Context, kind catalog.MediaOwner, ownerID uuid.UUID) error {
	var err error
	switch kind {
	case catalog.MediaOwnerPackage:
		_, err = s.packages.FindByID(ctx, ownerID)
	case catalog.MediaOwnerTemple:
		_, err = s.temples.FindByID(ctx, ownerID)
	case catalog.MediaOwnerFleet:
		_, err = s.fleet.FindByID(ctx, ownerID)
	default:
		return domain.NewValidationError("invalid media owner kind: " + string(kind))
	}
	return err
}

// --- Helpers ---

func applyPackageInput(p *catalog.TourPackage, input PackageInput) {
	p.Body = input.Body
	p.DurationDays = input.DurationDays
	p.DistanceKm = input.DistanceKm
	p.Highlights = input.Highlights
	p.HeroImageURL = strings.TrimSpace(input.HeroImageURL)
	p.SortOrder = input.SortOrder
	p.IsActive = input.IsActive
}

func applyTempleInput(t *catalog.Temple, input TempleInput) {
	t.Deity = strings.TrimSpace(input.Deity)
	t.Summary = strings.TrimSpace(input.Summary)
	t.Body = input.Body
	t.Timings = strings.TrimSpace(input.Timings)
	t.HeroImageURL = strings.TrimSpace(input.HeroImageURL)
	t.SortOrder = input.SortOrder
	t.IsActive = input.IsActive
}

func applyFleetInput(v *catalog.FleetVehicle, input FleetInput) {
	if input.Capacity > 0 {
		v.Capacity = input.Capacity
	}
	v.ImageURL = strings.TrimSpace(input.ImageURL)
	v.Features = input.Features
	v.SortOrder = input.SortOrder
	v.IsActive = input.IsActive
}
