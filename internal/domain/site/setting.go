package site

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
)

// Setting sections. Each section groups the key/value rows one part of the
// site reads: header nav, footer links, contact details, tracking snippets.
const (
	SectionHeader   = "header"
	SectionFooter   = "footer"
	SectionContact  = "contact"
	SectionTracking = "tracking"
)

// Setting is one site-configuration row, unique per (section, key).
type Setting struct {
	ID        uuid.UUID `json:"id"`
	Section   string    `json:"section"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSetting creates a setting row, rejecting rows missing section or key.
func NewSetting(section, key, value string) (*Setting, error) {
	section = strings.TrimSpace(strings.ToLower(section))
	key = strings.TrimSpace(key)
	if section == "" {
		return nil, domain.NewValidationError("setting section is required")
	}
	if key == "" {
		return nil, domain.NewValidationError("setting key is required")
	}

	return &Setting{
		ID:        uuid.New(),
		Section:   section,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// SettingRepository defines the persistence contract for site settings.
type SettingRepository interface {
	// ListBySection returns all rows for one section.
	ListBySection(ctx context.Context, section string) ([]*Setting, error)

	// ListAll returns every setting row (admin).
	ListAll(ctx context.Context) ([]*Setting, error)

	// Upsert inserts or replaces the row for (section, key).
	Upsert(ctx context.Context, s *Setting) error

	// Delete removes one row by section and key.
	Delete(ctx context.Context, section, key string) error
}
