package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	bookingDomain "github.com/nilgiri-travels/service-booking/internal/domain/booking"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingNumber  string     `gorm:"uniqueIndex;not null;size:20"`
	CustomerName   string     `gorm:"not null;size:100"`
	Phone          string     `gorm:"not null;size:15;index"`
	Email          string     `gorm:"size:254"`
	PackageID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	VehicleType    string     `gorm:"not null;size:20"`
	TravelDate     time.Time  `gorm:"not null;index"`
	TravelTime     string     `gorm:"not null;size:5"`
	PickupLocation string     `gorm:"not null;size:300"`
	SeasonName     string     `gorm:"not null;size:30"`
	Status         string     `gorm:"not null;size:20;index"`
	TotalAmount    int64      `gorm:"not null"`
	AdvanceAmount  int64      `gorm:"not null"`
	ConfirmedAt    *time.Time `gorm:""`
	CompletedAt    *time.Time `gorm:""`
	CancelledAt    *time.Time `gorm:""`
	CancelNote     string     `gorm:"size:500"`
	Notes          string     `gorm:"size:1000"`
	Version        int64      `gorm:"not null;default:1"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByPhone retrieves bookings made with a phone number, newest first.
func (r *GormBookingRepository) FindByPhone(ctx context.Context, phone string, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("phone = ?", phone).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings by phone: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings by phone: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindByTravelDate retrieves bookings for trips on a given calendar date.
func (r *GormBookingRepository) FindByTravelDate(ctx context.Context, date time.Time) ([]*bookingDomain.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("travel_date >= ? AND travel_date < ?", dayStart, dayEnd).
		Order("travel_time ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by travel date: %w", err)
	}
	return toDomainBookings(models)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("booking number already exists")
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before Update).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"confirmed_at": model.ConfirmedAt,
			"completed_at": model.CompletedAt,
			"cancelled_at": model.CancelledAt,
			"cancel_note":  model.CancelNote,
			"notes":        model.Notes,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             bk.ID(),
		BookingNumber:  bk.BookingNumber(),
		CustomerName:   bk.CustomerName(),
		Phone:          bk.Phone(),
		Email:          bk.Email(),
		PackageID:      bk.PackageID(),
		VehicleType:    bk.VehicleType().String(),
		TravelDate:     bk.TravelDate(),
		TravelTime:     bk.TravelTime(),
		PickupLocation: bk.PickupLocation(),
		SeasonName:     bk.SeasonName(),
		Status:         string(bk.Status()),
		TotalAmount:    bk.TotalAmount(),
		AdvanceAmount:  bk.AdvanceAmount(),
		ConfirmedAt:    bk.ConfirmedAt(),
		CompletedAt:    bk.CompletedAt(),
		CancelledAt:    bk.CancelledAt(),
		CancelNote:     bk.CancelNote(),
		Notes:          bk.Notes(),
		Version:        bk.Version(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.CustomerName,
		m.Phone,
		m.Email,
		m.PackageID,
		pricing.VehicleType(m.VehicleType),
		m.TravelDate,
		m.TravelTime,
		m.PickupLocation,
		m.SeasonName,
		status,
		m.TotalAmount,
		m.AdvanceAmount,
		m.ConfirmedAt,
		m.CompletedAt,
		m.CancelledAt,
		m.CancelNote,
		m.Notes,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
