package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// FleetVehicle is a fleet page entity: one car model offered under a priced
// vehicle type. Capacity defaults from the vehicle type's table but can be
// overridden per model.
type FleetVehicle struct {
	ID          uuid.UUID           `json:"id"`
	VehicleType pricing.VehicleType `json:"vehicle_type"`
	Name        string              `json:"name"`
	Model       string              `json:"model"`
	Capacity    int                 `json:"capacity"`
	ImageURL    string              `json:"image_url"`
	Features    []string            `json:"features"`
	SortOrder   int                 `json:"sort_order"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewFleetVehicle creates a fleet entry under one of the priced vehicle types.
func NewFleetVehicle(vehicleType pricing.VehicleType, name, model string) (*FleetVehicle, error) {
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError("invalid vehicle type: " + vehicleType.String())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("vehicle name is required")
	}

	now := time.Now().UTC()
	return &FleetVehicle{
		ID:          uuid.New(),
		VehicleType: vehicleType,
		Name:        name,
		Model:       strings.TrimSpace(model),
		Capacity:    vehicleType.Capacity(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
