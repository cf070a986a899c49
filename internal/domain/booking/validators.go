package booking

import (
	"regexp"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date format accepted from booking forms.
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day format accepted from booking forms.
	TimeLayout = "15:04"
	// DefaultLeadTimeHours is the minimum notice required before a trip starts.
	DefaultLeadTimeHours = 24
)

// Indian mobile numbers: optional +91/91 prefix, then 10 digits starting 6-9.
var phonePattern = regexp.MustCompile(`^(\+91|91)?[6-9][0-9]{9}$`)

// IsValidPhone reports whether the input is a valid Indian mobile number.
// Spaces and hyphens are stripped before matching. Returns false on any
// malformed input, including the empty string.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(stripSeparators(phone))
}

// NormalizePhone strips spaces/hyphens and a leading "+91" or "91" prefix,
// returning the bare 10-digit form. The prefix is only removed when the
// remainder is exactly 10 digits. It does not validate; validate first.
func NormalizePhone(phone string) string {
	p := stripSeparators(phone)
	if rest := strings.TrimPrefix(p, "+91"); rest != p && len(rest) == 10 {
		return rest
	}
	if rest := strings.TrimPrefix(p, "91"); rest != p && len(rest) == 10 {
		return rest
	}
	return p
}

// IsValidEmail reports whether the input is a plausible email address. The
// empty string is valid because email is an optional booking field. Otherwise
// the input needs a single "@" with non-whitespace on both sides and a "."
// somewhere after the "@".
func IsValidEmail(email string) bool {
	if email == "" {
		return true
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	at := strings.Index(email, "@")
	local, domain := email[:at], email[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if strings.ContainsAny(email, " \t\n") {
		return false
	}
	return strings.Contains(domain, ".")
}

// IsFutureOrTodayDate reports whether the date string (YYYY-MM-DD) is today
// or later in the local calendar. Time-of-day is ignored. Malformed input
// returns false.
func IsFutureOrTodayDate(dateStr string) bool {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(dateStr), time.Local)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !d.Before(today)
}

// MeetsLeadTime reports whether the combined trip date and time is at least
// minHours ahead of now. Exactly minHours ahead satisfies the requirement.
// Malformed input returns false.
func MeetsLeadTime(dateStr, timeStr string, minHours int) bool {
	instant, err := time.ParseInLocation(
		DateLayout+" "+TimeLayout,
		strings.TrimSpace(dateStr)+" "+strings.TrimSpace(timeStr),
		time.Local,
	)
	if err != nil {
		return false
	}
	cutoff := time.Now().Add(time.Duration(minHours) * time.Hour)
	return !instant.Before(cutoff)
}

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}
