package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Booking event types, consumed by the notification system.
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
)

// Payment event types, produced by the payment gateway integration.
const (
	PaymentAdvanceReceived = "payment.advance.received"
)

// BookingRequestedEvent is published when a visitor submits a valid booking.
type BookingRequestedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	BookingNumber  string    `json:"booking_number"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	PackageID      uuid.UUID `json:"package_id"`
	VehicleType    string    `json:"vehicle_type"`
	TravelDate     string    `json:"travel_date"`
	TravelTime     string    `json:"travel_time"`
	PickupLocation string    `json:"pickup_location"`
	SeasonName     string    `json:"season_name"`
	TotalAmount    int64     `json:"total_amount"`
	AdvanceAmount  int64     `json:"advance_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published once the advance payment is received.
type BookingConfirmedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Phone         string    `json:"phone"`
	TravelDate    string    `json:"travel_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is withdrawn.
type BookingCancelledEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published after the trip takes place.
type BookingCompletedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	TotalAmount   int64     `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AdvanceReceivedEvent is the payment gateway's notice that a booking's
// advance was paid.
type AdvanceReceivedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PaymentRef string    `json:"payment_ref"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
