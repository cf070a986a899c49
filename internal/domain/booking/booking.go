package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

const bookingIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id             uuid.UUID
	bookingNumber  string
	customerName   string
	phone          string
	email          string
	packageID      uuid.UUID
	vehicleType    pricing.VehicleType
	travelDate     time.Time
	travelTime     string
	pickupLocation string
	seasonName     string
	status         BookingStatus

	totalAmount   int64
	advanceAmount int64

	confirmedAt *time.Time
	completedAt *time.Time
	cancelledAt *time.Time
	cancelNote  string
	notes       string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// GenerateBookingID creates a booking number in the format "NT-YYYYMMDD-XXXX"
// where the date portion is the current UTC date and the suffix is 4 random
// uppercase alphanumeric characters. Global uniqueness is enforced by the
// unique index on the bookings table; callers retry on a constraint failure.
func GenerateBookingID() (string, error) {
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingIDChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking id: %w", err)
		}
		suffix[i] = bookingIDChars[n.Int64()]
	}
	return fmt.Sprintf("NT-%s-%s", time.Now().UTC().Format("20060102"), suffix), nil
}

// NewBooking creates a new Booking aggregate with status=pending. The draft
// must already carry the price computed from the season/price tables; the
// advance amount is derived here.
func NewBooking(
	draft BookingDraft,
	packageID uuid.UUID,
	seasonName string,
	notes string,
) (*Booking, error) {
	if result := ValidateDraft(draft); !result.IsValid {
		return nil, domain.NewValidationError(strings.Join(result.Errors, "; "))
	}
	if packageID == uuid.Nil {
		return nil, domain.NewValidationError("package ID is required")
	}

	travelDate, err := time.ParseInLocation(DateLayout, strings.TrimSpace(draft.TravelDate), time.Local)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid travel date: %s", draft.TravelDate))
	}

	bookingNumber, err := GenerateBookingID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		bookingNumber:  bookingNumber,
		customerName:   strings.TrimSpace(draft.CustomerName),
		phone:          NormalizePhone(draft.Phone),
		email:          strings.TrimSpace(draft.Email),
		packageID:      packageID,
		vehicleType:    pricing.VehicleType(draft.VehicleType),
		travelDate:     travelDate,
		travelTime:     strings.TrimSpace(draft.TravelTime),
		pickupLocation: strings.TrimSpace(draft.PickupLocation),
		seasonName:     seasonName,
		status:         StatusPending,
		totalAmount:    draft.CalculatedPrice,
		advanceAmount:  pricing.CalculateAdvanceAmount(draft.CalculatedPrice),
		notes:          notes,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	customerName string,
	phone string,
	email string,
	packageID uuid.UUID,
	vehicleType pricing.VehicleType,
	travelDate time.Time,
	travelTime string,
	pickupLocation string,
	seasonName string,
	status BookingStatus,
	totalAmount int64,
	advanceAmount int64,
	confirmedAt *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
	cancelNote string,
	notes string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		bookingNumber:  bookingNumber,
		customerName:   customerName,
		phone:          phone,
		email:          email,
		packageID:      packageID,
		vehicleType:    vehicleType,
		travelDate:     travelDate,
		travelTime:     travelTime,
		pickupLocation: pickupLocation,
		seasonName:     seasonName,
		status:         status,
		totalAmount:    totalAmount,
		advanceAmount:  advanceAmount,
		confirmedAt:    confirmedAt,
		completedAt:    completedAt,
		cancelledAt:    cancelledAt,
		cancelNote:     cancelNote,
		notes:          notes,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// CustomerName returns the customer's name.
func (b *Booking) CustomerName() string { return b.customerName }

// Phone returns the customer's normalized 10-digit phone number.
func (b *Booking) Phone() string { return b.phone }

// Email returns the customer's email, possibly empty.
func (b *Booking) Email() string { return b.email }

// PackageID returns the booked package's identifier.
func (b *Booking) PackageID() uuid.UUID { return b.packageID }

// VehicleType returns the booked vehicle type.
func (b *Booking) VehicleType() pricing.VehicleType { return b.vehicleType }

// TravelDate returns the trip date.
func (b *Booking) TravelDate() time.Time { return b.travelDate }

// TravelTime returns the trip start time (HH:MM).
func (b *Booking) TravelTime() string { return b.travelTime }

// PickupLocation returns where the customer is picked up.
func (b *Booking) PickupLocation() string { return b.pickupLocation }

// SeasonName returns the season the trip was priced under.
func (b *Booking) SeasonName() string { return b.seasonName }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// TotalAmount returns the trip total in whole Rupees.
func (b *Booking) TotalAmount() int64 { return b.totalAmount }

// AdvanceAmount returns the upfront amount in whole Rupees.
func (b *Booking) AdvanceAmount() int64 { return b.advanceAmount }

// RemainingAmount returns the balance due after the advance.
func (b *Booking) RemainingAmount() int64 { return b.totalAmount - b.advanceAmount }

// ConfirmedAt returns when the advance was received, or nil.
func (b *Booking) ConfirmedAt() *time.Time { return b.confirmedAt }

// CompletedAt returns when the trip was completed, or nil.
func (b *Booking) CompletedAt() *time.Time { return b.completedAt }

// CancelledAt returns when the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// CancelNote returns the cancellation reason.
func (b *Booking) CancelNote() string { return b.cancelNote }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed once the advance
// payment is received.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	b.status = StatusConfirmed
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

// Complete transitions the booking from confirmed to completed after the trip.
func (b *Booking) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	now := time.Now().UTC()
	b.status = StatusCompleted
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

// Cancel transitions the booking to cancelled if it is not in a terminal state.
func (b *Booking) Cancel(reason string) error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelNote = reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
