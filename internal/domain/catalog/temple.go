package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
)

// Temple is a destination page entity: a temple the fleet runs trips to, with
// long-form visitor content maintained in the admin area.
type Temple struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Deity        string    `json:"deity"`
	Location     string    `json:"location"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body"`
	Timings      string    `json:"timings"`
	HeroImageURL string    `json:"hero_image_url"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTemple creates a temple entry, rejecting rows missing required fields.
func NewTemple(slug, name, location string) (*Temple, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	name = strings.TrimSpace(name)
	if slug == "" {
		return nil, domain.NewValidationError("temple slug is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("temple name is required")
	}

	now := time.Now().UTC()
	return &Temple{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		Location:  strings.TrimSpace(location),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
