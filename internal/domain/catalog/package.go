package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
)

// TourPackage is a bookable tour or point-to-point transfer product. Long-form
// page content lives in Body; pricing lives in the price table keyed by
// (package, vehicle type, season).
type TourPackage struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body"`
	DurationDays int       `json:"duration_days"`
	DistanceKm   int       `json:"distance_km"`
	Highlights   []string  `json:"highlights"`
	HeroImageURL string    `json:"hero_image_url"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTourPackage creates a tour package, rejecting rows missing required
// fields rather than coercing them.
func NewTourPackage(slug, title, summary string) (*TourPackage, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	title = strings.TrimSpace(title)
	if slug == "" {
		return nil, domain.NewValidationError("package slug is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("package title is required")
	}

	now := time.Now().UTC()
	return &TourPackage{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     title,
		Summary:   strings.TrimSpace(summary),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
