package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	bookingDomain "github.com/nilgiri-travels/service-booking/internal/domain/booking"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// QuoteRequest asks for the price of one trip before booking it.
type QuoteRequest struct {
	PackageID   uuid.UUID `json:"package_id" binding:"required"`
	VehicleType string    `json:"vehicle_type" binding:"required"`
	TravelDate  string    `json:"travel_date" binding:"required"`
}

// QuoteDTO is the priced answer to a QuoteRequest.
type QuoteDTO struct {
	PackageID       uuid.UUID `json:"package_id"`
	VehicleType     string    `json:"vehicle_type"`
	VehicleName     string    `json:"vehicle_name"`
	TravelDate      string    `json:"travel_date"`
	SeasonName      string    `json:"season_name"`
	TotalAmount     int64     `json:"total_amount"`
	AdvanceAmount   int64     `json:"advance_amount"`
	RemainingAmount int64     `json:"remaining_amount"`
	TotalDisplay    string    `json:"total_display"`
	AdvanceDisplay  string    `json:"advance_display"`
}

// SeasonInput is the admin payload for creating or updating a season window.
type SeasonInput struct {
	Name        string `json:"name" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
	IsActive    bool   `json:"is_active"`
}

// SeasonDTO is the response representation of a season window.
type SeasonDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriceInput is the admin payload for creating or updating a price entry.
type PriceInput struct {
	PackageID   uuid.UUID `json:"package_id" binding:"required"`
	VehicleType string    `json:"vehicle_type" binding:"required"`
	SeasonName  string    `json:"season_name" binding:"required"`
	// No required binding: zero is a valid configured price.
	Price int64 `json:"price"`
	IsActive    bool      `json:"is_active"`
}

// PriceDTO is the response representation of a price entry.
type PriceDTO struct {
	ID           uuid.UUID `json:"id"`
	PackageID    uuid.UUID `json:"package_id"`
	VehicleType  string    `json:"vehicle_type"`
	SeasonName   string    `json:"season_name"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PricingService answers quote requests and manages the season and price
// tables behind them.
type PricingService struct {
	seasons pricing.SeasonRepository
	prices  pricing.PriceRepository
	logger  *zap.Logger
}

// NewPricingService creates a new PricingService.
func NewPricingService(seasons pricing.SeasonRepository, prices pricing.PriceRepository, logger *zap.Logger) *PricingService {
	return &PricingService{seasons: seasons, prices: prices, logger: logger}
}

// Quote prices a trip for the given package, vehicle and travel date without
// creating anything.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	vehicleType := pricing.VehicleType(req.VehicleType)
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError("invalid vehicle type: " + req.VehicleType)
	}
	date, err := time.ParseInLocation(bookingDomain.DateLayout, req.TravelDate, time.Local)
	if err != nil {
		return nil, domain.NewValidationError("invalid travel date: " + req.TravelDate)
	}

	seasons, err := s.seasons.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasons: %w", err)
	}
	seasonName := pricing.ResolveSeason(date, seasons)

	entries, err := s.prices.ListActiveByPackage(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	total, err := pricing.LookupPrice(entries, vehicleType, seasonName)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotConfigured) {
			return nil, domain.NewNotFoundError("Price",
				fmt.Sprintf("%s/%s/%s", req.PackageID, vehicleType, seasonName))
		}
		return nil, err
	}

	advance := pricing.CalculateAdvanceAmount(total)
	return &QuoteDTO{
		PackageID:       req.PackageID,
		VehicleType:     vehicleType.String(),
		VehicleName:     vehicleType.DisplayName(),
		TravelDate:      req.TravelDate,
		SeasonName:      seasonName,
		TotalAmount:     total,
		AdvanceAmount:   advance,
		RemainingAmount: pricing.CalculateRemainingAmount(total),
		TotalDisplay:    pricing.FormatPrice(total),
		AdvanceDisplay:  pricing.FormatPrice(advance),
	}, nil
}

// --- Season administration ---

// ListSeasons returns all season windows, active or not (admin).
func (s *PricingService) ListSeasons(ctx context.Context) ([]SeasonDTO, error) {
	records, err := s.seasons.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	dtos := make([]SeasonDTO, len(records))
	for i := range records {
		dtos[i] = toSeasonDTO(&records[i])
	}
	return dtos, nil
}

// CreateSeason adds a new season window (admin).
func (s *PricingService) CreateSeason(ctx context.Context, input SeasonInput) (*SeasonDTO, error) {
	season, err := parseSeasonInput(input)
	if err != nil {
		return nil, err
	}

	record := &pricing.SeasonRecord{
		ID:        uuid.New(),
		Season:    *season,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.seasons.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save season: %w", err)
	}

	s.logger.Info("season created", zap.String("name", record.Name))
	result := toSeasonDTO(record)
	return &result, nil
}

// UpdateSeason replaces a season window's definition (admin).
func (s *PricingService) UpdateSeason(ctx context.Context, id uuid.UUID, input SeasonInput) (*SeasonDTO, error) {
	record, err := s.seasons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	season, err := parseSeasonInput(input)
	if err != nil {
		return nil, err
	}

	record.Season = *season
	record.UpdatedAt = time.Now().UTC()
	if err := s.seasons.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update season: %w", err)
	}

	result := toSeasonDTO(record)
	return &result, nil
}

// DeleteSeason removes a season window (admin).
func (s *PricingService) DeleteSeason(ctx context.Context, id uuid.UUID) error {
	if _, err := s.seasons.FindByID(ctx, id); err != nil {
		return err
	}
	return s.seasons.Delete(ctx, id)
}

// --- Price administration ---

// ListPrices returns all price entries for a package (admin).
func (s *PricingService) ListPrices(ctx context.Context, packageID uuid.UUID) ([]PriceDTO, error) {
	records, err := s.prices.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	dtos := make([]PriceDTO, len(records))
	for i := range records {
		dtos[i] = toPriceDTO(&records[i])
	}
	return dtos, nil
}

// CreatePrice adds a new price entry (admin).
func (s *PricingService) CreatePrice(ctx context.Context, input PriceInput) (*PriceDTO, error) {
	entry, err := parsePriceInput(input)
	if err != nil {
		return nil, err
	}

	record := &pricing.PriceRecord{
		ID:         uuid.New(),
		PackageID:  input.PackageID,
		PriceEntry: *entry,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.prices.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("price created",
		zap.String("package_id", input.PackageID.String()),
		zap.String("vehicle_type", input.VehicleType),
		zap.String("season", input.SeasonName),
	)
	result := toPriceDTO(record)
	return &result, nil
}

// UpdatePrice replaces a price entry's definition (admin).
func (s *PricingService) UpdatePrice(ctx context.Context, id uuid.UUID, input PriceInput) (*PriceDTO, error) {
	record, err := s.prices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := parsePriceInput(input)
	if err != nil {
		return nil, err
	}

	record.PackageID = input.PackageID
	record.PriceEntry = *entry
	record.UpdatedAt = time.Now().UTC()
	if err := s.prices.Update(ctx, record); err != nil {
		return nil, err
	}

	result := toPriceDTO(record)
	return &result, nil
}

// DeletePrice removes a price entry (admin).
func (s *PricingService) DeletePrice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.prices.FindByID(ctx, id); err != nil {
		return err
	}
	return s.prices.Delete(ctx, id)
}

// --- Helpers ---

func parseSeasonInput(input SeasonInput) (*pricing.Season, error) {
	if input.Name != pricing.SeasonPeak && input.Name != pricing.SeasonOff {
		return nil, domain.NewValidationError(
			fmt.Sprintf("season name must be %q or %q", pricing.SeasonPeak, pricing.SeasonOff))
	}
	start, err := time.ParseInLocation(bookingDomain.DateLayout, input.StartDate, time.Local)
	if err != nil {
		return nil, domain.NewValidationError("invalid start date: " + input.StartDate)
	}
	end, err := time.ParseInLocation(bookingDomain.DateLayout, input.EndDate, time.Local)
	if err != nil {
		return nil, domain.NewValidationError("invalid end date: " + input.EndDate)
	}
	if !input.IsRecurring && end.Before(start) {
		return nil, domain.NewValidationError("end date must not be before start date")
	}
	return &pricing.Season{
		Name:        input.Name,
		StartDate:   start,
		EndDate:     end,
		IsRecurring: input.IsRecurring,
		IsActive:    input.IsActive,
	}, nil
}

func parsePriceInput(input PriceInput) (*pricing.PriceEntry, error) {
	vehicleType := pricing.VehicleType(input.VehicleType)
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError("invalid vehicle type: " + input.VehicleType)
	}
	if input.SeasonName != pricing.SeasonPeak && input.SeasonName != pricing.SeasonOff {
		return nil, domain.NewValidationError(
			fmt.Sprintf("season name must be %q or %q", pricing.SeasonPeak, pricing.SeasonOff))
	}
	// Zero is a configured price (a free tier), distinct from no row at all.
	if input.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}
	return &pricing.PriceEntry{
		VehicleType: vehicleType,
		SeasonName:  input.SeasonName,
		Price:       input.Price,
		IsActive:    input.IsActive,
	}, nil
}

func toSeasonDTO(r *pricing.SeasonRecord) SeasonDTO {
	return SeasonDTO{
		ID:          r.ID,
		Name:        r.Name,
		StartDate:   r.StartDate.Format(bookingDomain.DateLayout),
		EndDate:     r.EndDate.Format(bookingDomain.DateLayout),
		IsRecurring: r.IsRecurring,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toPriceDTO(r *pricing.PriceRecord) PriceDTO {
	return PriceDTO{
		ID:           r.ID,
		PackageID:    r.PackageID,
		VehicleType:  r.VehicleType.String(),
		SeasonName:   r.SeasonName,
		Price:        r.Price,
		PriceDisplay: pricing.FormatPrice(r.Price),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
