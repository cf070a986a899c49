package booking

import "strings"

// BookingDraft holds the fields a visitor supplies before submission, plus the
// price computed from the season/price tables. Drafts are transient; only a
// valid draft becomes a Booking.
type BookingDraft struct {
	CustomerName    string
	Phone           string
	Email           string
	TravelDate      string
	TravelTime      string
	VehicleType     string
	PickupLocation  string
	CalculatedPrice int64
}

// ValidationResult is the outcome of validating a draft. Errors are
// human-readable and appear in a fixed order.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateDraft runs every booking rule against the draft. All checks run
// unconditionally so each violated rule appears in Errors, in this order:
// name, phone, email, date, time, vehicle type, price, pickup location.
func ValidateDraft(d BookingDraft) ValidationResult {
	errs := make([]string, 0, 8)

	if len(strings.TrimSpace(d.CustomerName)) < 2 {
		errs = append(errs, "Please enter your name (at least 2 characters)")
	}
	if d.Phone == "" || !IsValidPhone(d.Phone) {
		errs = append(errs, "Please enter a valid 10-digit mobile number")
	}
	if !IsValidEmail(d.Email) {
		errs = append(errs, "Please enter a valid email address")
	}
	if d.TravelDate == "" || !IsFutureOrTodayDate(d.TravelDate) {
		errs = append(errs, "Please choose a travel date of today or later")
	}
	if d.TravelTime == "" {
		errs = append(errs, "Please select a pickup time")
	}
	if d.VehicleType == "" {
		errs = append(errs, "Please select a vehicle type")
	}
	if d.CalculatedPrice <= 0 {
		errs = append(errs, "Price is not available for the selected trip")
	}
	if len(strings.TrimSpace(d.PickupLocation)) < 3 {
		errs = append(errs, "Please enter a pickup location (at least 3 characters)")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
