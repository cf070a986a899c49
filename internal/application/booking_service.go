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
	"github.com/nilgiri-travels/service-booking/internal/events"
)

// EventPublisher publishes CloudEvents to the message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	CustomerName   string    `json:"customer_name" binding:"required"`
	Phone          string    `json:"phone" binding:"required"`
	Email          string    `json:"email"`
	PackageID      uuid.UUID `json:"package_id" binding:"required"`
	VehicleType    string    `json:"vehicle_type" binding:"required"`
	TravelDate     string    `json:"travel_date" binding:"required"`
	TravelTime     string    `json:"travel_time" binding:"required"`
	PickupLocation string    `json:"pickup_location" binding:"required"`
	Notes          string    `json:"notes"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	CustomerName    string     `json:"customer_name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email,omitempty"`
	PackageID       uuid.UUID  `json:"package_id"`
	VehicleType     string     `json:"vehicle_type"`
	VehicleName     string     `json:"vehicle_name"`
	TravelDate      string     `json:"travel_date"`
	TravelTime      string     `json:"travel_time"`
	PickupLocation  string     `json:"pickup_location"`
	SeasonName      string     `json:"season_name"`
	Status          string     `json:"status"`
	TotalAmount     int64      `json:"total_amount"`
	AdvanceAmount   int64      `json:"advance_amount"`
	RemainingAmount int64      `json:"remaining_amount"`
	TotalDisplay    string     `json:"total_display"`
	AdvanceDisplay  string     `json:"advance_display"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelNote      string     `json:"cancel_note,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo          bookingDomain.BookingRepository
	seasons       pricing.SeasonRepository
	prices        pricing.PriceRepository
	producer      EventPublisher
	logger        *zap.Logger
	leadTimeHours int
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	seasons pricing.SeasonRepository,
	prices pricing.PriceRepository,
	producer EventPublisher,
	logger *zap.Logger,
	leadTimeHours int,
) *BookingService {
	if leadTimeHours <= 0 {
		leadTimeHours = bookingDomain.DefaultLeadTimeHours
	}
	return &BookingService{
		repo:          repo,
		seasons:       seasons,
		prices:        prices,
		producer:      producer,
		logger:        logger,
		leadTimeHours: leadTimeHours,
	}
}

// CreateBooking validates the submission, prices the trip from the season and
// price tables, and persists a pending booking.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	if !bookingDomain.MeetsLeadTime(req.TravelDate, req.TravelTime, s.leadTimeHours) {
		return nil, domain.NewValidationError(
			fmt.Sprintf("bookings need at least %d hours notice before the trip starts", s.leadTimeHours))
	}

	price, seasonName, err := s.priceTrip(ctx, req.PackageID, pricing.VehicleType(req.VehicleType), req.TravelDate)
	if err != nil {
		return nil, err
	}

	draft := bookingDomain.BookingDraft{
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Email:           req.Email,
		TravelDate:      req.TravelDate,
		TravelTime:      req.TravelTime,
		VehicleType:     req.VehicleType,
		PickupLocation:  req.PickupLocation,
		CalculatedPrice: price,
	}

	// Booking numbers are random; retry once if the unique index rejects one.
	var bk *bookingDomain.Booking
	for attempt := 0; attempt < 2; attempt++ {
		bk, err = bookingDomain.NewBooking(draft, req.PackageID, seasonName, req.Notes)
		if err != nil {
			return nil, err
		}
		err = s.repo.Save(ctx, bk)
		if err == nil {
			break
		}
		var domainErr *domain.Error
		if !errors.As(err, &domainErr) || domainErr.Kind != domain.KindConflict {
			return nil, fmt.Errorf("failed to save booking: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishBookingRequested(ctx, bk)

	s.logger.Info("booking created",
		zap.String("booking_number", bk.BookingNumber()),
		zap.String("season", seasonName),
		zap.Int64("total", bk.TotalAmount()),
	)

	result := toBookingDTO(bk)
	return &result, nil
}

// priceTrip resolves the season for the travel date and looks up the
// configured price for the vehicle type.
func (s *BookingService) priceTrip(ctx context.Context, packageID uuid.UUID, vehicleType pricing.VehicleType, travelDate string) (int64, string, error) {
	if !vehicleType.IsValid() {
		return 0, "", domain.NewValidationError("invalid vehicle type: " + vehicleType.String())
	}
	date, err := time.ParseInLocation(bookingDomain.DateLayout, travelDate, time.Local)
	if err != nil {
		return 0, "", domain.NewValidationError("invalid travel date: " + travelDate)
	}

	seasons, err := s.seasons.ListActive(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("failed to load seasons: %w", err)
	}
	seasonName := pricing.ResolveSeason(date, seasons)

	entries, err := s.prices.ListActiveByPackage(ctx, packageID)
	if err != nil {
		return 0, "", fmt.Errorf("failed to load prices: %w", err)
	}

	price, err := pricing.LookupPrice(entries, vehicleType, seasonName)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotConfigured) {
			return 0, "", domain.NewNotFoundError("Price",
				fmt.Sprintf("%s/%s/%s", packageID, vehicleType, seasonName))
		}
		return 0, "", err
	}
	return price, seasonName, nil
}

// ConfirmBooking marks a pending booking as confirmed (admin).
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Confirm(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingConfirmedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		Phone:         bk.Phone(),
		TravelDate:    bk.TravelDate().Format(bookingDomain.DateLayout),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBookingPayment confirms a booking after its advance payment event.
// It satisfies the payment consumer's BookingConfirmer contract.
func (s *BookingService) ConfirmBookingPayment(ctx context.Context, bookingID uuid.UUID) error {
	_, err := s.ConfirmBooking(ctx, bookingID)
	return err
}

// CompleteBooking marks a confirmed booking as completed after the trip.
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Complete(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCompletedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		TotalAmount:   bk.TotalAmount(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCompleted, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking that is not yet in a terminal state.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByNumber retrieves a single booking by its booking number, used
// by the public status page.
func (s *BookingService) GetBookingByNumber(ctx context.Context, number string) (*BookingDTO, error) {
	bk, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetCustomerBookings retrieves paginated bookings for a phone number.
func (s *BookingService) GetCustomerBookings(ctx context.Context, phone string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	if !bookingDomain.IsValidPhone(phone) {
		return nil, domain.NewValidationError("invalid phone number")
	}

	bookings, total, err := s.repo.FindByPhone(ctx, bookingDomain.NormalizePhone(phone), page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// ListBookingsForDate returns the trips scheduled on one date (admin).
func (s *BookingService) ListBookingsForDate(ctx context.Context, date time.Time) ([]BookingDTO, error) {
	bookings, err := s.repo.FindByTravelDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		CustomerName:    bk.CustomerName(),
		Phone:           bk.Phone(),
		Email:           bk.Email(),
		PackageID:       bk.PackageID(),
		VehicleType:     bk.VehicleType().String(),
		VehicleName:     bk.VehicleType().DisplayName(),
		TravelDate:      bk.TravelDate().Format(bookingDomain.DateLayout),
		TravelTime:      bk.TravelTime(),
		PickupLocation:  bk.PickupLocation(),
		SeasonName:      bk.SeasonName(),
		Status:          string(bk.Status()),
		TotalAmount:     bk.TotalAmount(),
		AdvanceAmount:   bk.AdvanceAmount(),
		RemainingAmount: bk.RemainingAmount(),
		TotalDisplay:    pricing.FormatPrice(bk.TotalAmount()),
		AdvanceDisplay:  pricing.FormatPrice(bk.AdvanceAmount()),
		ConfirmedAt:     bk.ConfirmedAt(),
		CompletedAt:     bk.CompletedAt(),
		CancelledAt:     bk.CancelledAt(),
		CancelNote:      bk.CancelNote(),
		Notes:           bk.Notes(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func (s *BookingService) publishBookingRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:      bk.ID(),
		BookingNumber:  bk.BookingNumber(),
		CustomerName:   bk.CustomerName(),
		Phone:          bk.Phone(),
		Email:          bk.Email(),
		PackageID:      bk.PackageID(),
		VehicleType:    bk.VehicleType().String(),
		TravelDate:     bk.TravelDate().Format(bookingDomain.DateLayout),
		TravelTime:     bk.TravelTime(),
		PickupLocation: bk.PickupLocation(),
		SeasonName:     bk.SeasonName(),
		TotalAmount:    bk.TotalAmount(),
		AdvanceAmount:  bk.AdvanceAmount(),
		OccurredAt:     time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
