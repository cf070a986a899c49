package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() BookingDraft {
	return BookingDraft{
		CustomerName:    "Meena Krishnan",
		Phone:           "9876543210",
		Email:           "meena@example.com",
		TravelDate:      time.Now().AddDate(0, 0, 7).Format(DateLayout),
		TravelTime:      "06:30",
		VehicleType:     "sedan",
		PickupLocation:  "Coimbatore Airport",
		CalculatedPrice: 4500,
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	result := ValidateDraft(validDraft())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateDraft_EmailOptional(t *testing.T) {
	d := validDraft()
	d.Email = ""
	result := ValidateDraft(d)
	assert.True(t, result.IsValid)
}

func TestValidateDraft_BlankDraftCollectsEveryError(t *testing.T) {
	result := ValidateDraft(BookingDraft{})

	assert.False(t, result.IsValid)
	// Seven errors: every rule except email, which accepts the empty string.
	require.Len(t, result.Errors, 7)
	assert.Equal(t, []string{
		"Please enter your name (at least 2 characters)",
		"Please enter a valid 10-digit mobile number",
		"Please choose a travel date of today or later",
		"Please select a pickup time",
		"Please select a vehicle type",
		"Price is not available for the selected trip",
		"Please enter a pickup location (at least 3 characters)",
	}, result.Errors)
}

func TestValidateDraft_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingDraft)
		wantErr string
	}{
		{
			"short name",
			func(d *BookingDraft) { d.CustomerName = " M " },
			"Please enter your name (at least 2 characters)",
		},
		{
			"bad phone",
			func(d *BookingDraft) { d.Phone = "12345" },
			"Please enter a valid 10-digit mobile number",
		},
		{
			"bad email",
			func(d *BookingDraft) { d.Email = "not-an-email" },
			"Please enter a valid email address",
		},
		{
			"past date",
			func(d *BookingDraft) { d.TravelDate = "2020-01-01" },
			"Please choose a travel date of today or later",
		},
		{
			"missing time",
			func(d *BookingDraft) { d.TravelTime = "" },
			"Please select a pickup time",
		},
		{
			"missing vehicle",
			func(d *BookingDraft) { d.VehicleType = "" },
			"Please select a vehicle type",
		},
		{
			"zero price",
			func(d *BookingDraft) { d.CalculatedPrice = 0 },
			"Price is not available for the selected trip",
		},
		{
			"short pickup",
			func(d *BookingDraft) { d.PickupLocation = "ab" },
			"Please enter a pickup location (at least 3 characters)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			result := ValidateDraft(d)
			assert.False(t, result.IsValid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantErr, result.Errors[0])
		})
	}
}
