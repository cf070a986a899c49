package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PackageRepository defines the persistence contract for tour packages.
type PackageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TourPackage, error)
	FindBySlug(ctx context.Context, slug string) (*TourPackage, error)
	ListActive(ctx context.Context) ([]*TourPackage, error)
	ListAll(ctx context.Context) ([]*TourPackage, error)
	Save(ctx context.Context, p *TourPackage) error
	Update(ctx context.Context, p *TourPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TempleRepository defines the persistence contract for temples.
type TempleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Temple, error)
	FindBySlug(ctx context.Context, slug string) (*Temple, error)
	ListActive(ctx context.Context) ([]*Temple, error)
	ListAll(ctx context.Context) ([]*Temple, error)
	Save(ctx context.Context, t *Temple) error
	Update(ctx context.Context, t *Temple) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FleetRepository defines the persistence contract for fleet vehicles.
type FleetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FleetVehicle, error)
	ListActive(ctx context.Context) ([]*FleetVehicle, error)
	ListAll(ctx context.Context) ([]*FleetVehicle, error)
	Save(ctx context.Context, v *FleetVehicle) error
	Update(ctx context.Context, v *FleetVehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaRepository defines the persistence contract for uploaded media.
type MediaRepository interface {
	FindByOwner(ctx context.Context, kind MediaOwner, ownerID uuid.UUID) ([]*MediaAsset, error)
	Save(ctx context.Context, a *MediaAsset) error
	Delete(ctx context.Context, id uuid.UUID) error
}
