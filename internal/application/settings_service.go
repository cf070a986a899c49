package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/site"
)

var knownSections = map[string]bool{
	site.SectionHeader:   true,
	site.SectionFooter:   true,
	site.SectionContact:  true,
	site.SectionTracking: true,
}

// SettingInput is the admin payload for setting one site-configuration value.
type SettingInput struct {
	Section string `json:"section" binding:"required"`
	Key     string `json:"key" binding:"required"`
	Value   string `json:"value"`
}

// SettingsService reads and writes the key/value rows behind the site's
// header, footer, contact and tracking blocks.
type SettingsService struct {
	repo   site.SettingRepository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo site.SettingRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// GetSection returns one section's settings as a key/value map for the
// public site.
func (s *SettingsService) GetSection(ctx context.Context, section string) (map[string]string, error) {
	section = strings.TrimSpace(strings.ToLower(section))
	if !knownSections[section] {
		return nil, domain.NewNotFoundError("Settings section", section)
	}

	rows, err := s.repo.ListBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// ListAll returns every setting row (admin).
func (s *SettingsService) ListAll(ctx context.Context) ([]*site.Setting, error) {
	return s.repo.ListAll(ctx)
}

// Put inserts or replaces one setting row (admin).
func (s *SettingsService) Put(ctx context.Context, input SettingInput) (*site.Setting, error) {
	section := strings.TrimSpace(strings.ToLower(input.Section))
	if !knownSections[section] {
		return nil, domain.NewValidationError("unknown settings section: " + input.Section)
	}

	setting, err := site.NewSetting(section, input.Key, input.Value)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}

	s.logger.Info("setting saved",
		zap.String("section", setting.Section),
		zap.String("key", setting.Key),
	)
	return setting, nil
}

// Delete removes one setting row (admin).
func (s *SettingsService) Delete(ctx context.Context, section, key string) error {
	section = strings.TrimSpace(strings.ToLower(section))
	key = strings.TrimSpace(key)
	if section == "" || key == "" {
		return domain.NewValidationError("setting section and key are required")
	}
	return s.repo.Delete(ctx, section, key)
}
