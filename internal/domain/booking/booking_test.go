package booking

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingNumberPattern = regexp.MustCompile(`^NT-\d{8}-[A-Z0-9]{4}$`)

func TestGenerateBookingID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateBookingID()
		require.NoError(t, err)
		assert.Regexp(t, bookingNumberPattern, id)
		seen[id] = true
	}
	// 50 draws from a 36^4 space colliding would indicate broken randomness.
	assert.Greater(t, len(seen), 45)
}

func TestNewBooking(t *testing.T) {
	draft := validDraft()
	draft.Phone = "+919876543210"
	packageID := uuid.New()

	bk, err := NewBooking(draft, packageID, "Off-Season", "window seat please")
	require.NoError(t, err)

	assert.Regexp(t, bookingNumberPattern, bk.BookingNumber())
	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, "9876543210", bk.Phone(), "phone is normalized on creation")
	assert.Equal(t, packageID, bk.PackageID())
	assert.Equal(t, "Off-Season", bk.SeasonName())
	assert.Equal(t, int64(4500), bk.TotalAmount())
	assert.Equal(t, int64(1125), bk.AdvanceAmount())
	assert.Equal(t, int64(3375), bk.RemainingAmount())
	assert.Equal(t, "window seat please", bk.Notes())
	assert.Equal(t, int64(1), bk.Version())
	assert.Nil(t, bk.ConfirmedAt())
}

func TestNewBooking_AdvanceFloor(t *testing.T) {
	draft := validDraft()
	draft.CalculatedPrice = 1200

	bk, err := NewBooking(draft, uuid.New(), "Off-Season", "")
	require.NoError(t, err)
	assert.Equal(t, int64(500), bk.AdvanceAmount())
	assert.Equal(t, int64(700), bk.RemainingAmount())
}

func TestNewBooking_RejectsInvalidDraft(t *testing.T) {
	draft := validDraft()
	draft.Phone = "12345"

	_, err := NewBooking(draft, uuid.New(), "Off-Season", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid 10-digit mobile number")
}

func TestNewBooking_RequiresPackageID(t *testing.T) {
	_, err := NewBooking(validDraft(), uuid.Nil, "Off-Season", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package ID is required")
}

func TestBookingLifecycle(t *testing.T) {
	bk, err := NewBooking(validDraft(), uuid.New(), "Season", "")
	require.NoError(t, err)

	require.NoError(t, bk.Confirm())
	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.NotNil(t, bk.ConfirmedAt())

	require.NoError(t, bk.Complete())
	assert.Equal(t, StatusCompleted, bk.Status())
	assert.NotNil(t, bk.CompletedAt())

	assert.Error(t, bk.Cancel("too late"), "completed bookings cannot be cancelled")
}

func TestBookingCancel(t *testing.T) {
	bk, err := NewBooking(validDraft(), uuid.New(), "Season", "")
	require.NoError(t, err)

	require.NoError(t, bk.Cancel("plans changed"))
	assert.Equal(t, StatusCancelled, bk.Status())
	assert.Equal(t, "plans changed", bk.CancelNote())
	assert.NotNil(t, bk.CancelledAt())

	assert.Error(t, bk.Confirm(), "cancelled is terminal")
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())

	_, err := ParseBookingStatus("delivered")
	assert.Error(t, err)

	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)
}
