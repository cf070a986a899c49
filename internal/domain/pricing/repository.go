package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SeasonRecord is a persisted season row.
type SeasonRecord struct {
	ID uuid.UUID
	Season
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceRecord is a persisted price row for one package/vehicle/season
// combination. The (PackageID, VehicleType, SeasonName) triple is unique.
type PriceRecord struct {
	ID        uuid.UUID
	PackageID uuid.UUID
	PriceEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeasonRepository defines the persistence contract for seasons.
type SeasonRepository interface {
	// ListActive returns the active seasons used by price resolution.
	ListActive(ctx context.Context) ([]Season, error)

	// ListAll returns every season row (admin).
	ListAll(ctx context.Context) ([]SeasonRecord, error)

	// FindByID retrieves one season row.
	FindByID(ctx context.Context, id uuid.UUID) (*SeasonRecord, error)

	// Save persists a new season row.
	Save(ctx context.Context, rec *SeasonRecord) error

	// Update persists changes to a season row.
	Update(ctx context.Context, rec *SeasonRecord) error

	// Delete removes a season row.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriceRepository defines the persistence contract for price entries.
type PriceRepository interface {
	// ListActiveByPackage returns the active price entries for one package,
	// shaped for LookupPrice.
	ListActiveByPackage(ctx context.Context, packageID uuid.UUID) ([]PriceEntry, error)

	// ListByPackage returns every price row for one package (admin).
	ListByPackage(ctx context.Context, packageID uuid.UUID) ([]PriceRecord, error)

	// FindByID retrieves one price row.
	FindByID(ctx context.Context, id uuid.UUID) (*PriceRecord, error)

	// Save persists a new price row. A duplicate
	// (package, vehicle type, season) triple surfaces as a conflict.
	Save(ctx context.Context, rec *PriceRecord) error

	// Update persists changes to a price row.
	Update(ctx context.Context, rec *PriceRecord) error

	// Delete removes a price row.
	Delete(ctx context.Context, id uuid.UUID) error
}
