package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"9876543210",
		"6123456789",
		"+919876543210",
		"919876543210",
		"98765 43210",
		"+91-98765-43210",
	}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"12345",
		"5123456789",
		"98765432101",
		"987654321",
		"+929876543210",
		"abcdefghij",
	}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), "expected %q to be invalid", phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"+919876543210", "9876543210"},
		{"919876543210", "9876543210"},
		{"98765 43210", "9876543210"},
		{"+91-98765-43210", "9876543210"},
		// A bare number starting 91 must not lose its first digits.
		{"9198765432", "9198765432"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail(""), "email is optional")
	assert.True(t, IsValidEmail("meena@example.com"))
	assert.True(t, IsValidEmail("a.b+c@sub.example.co.in"))

	invalid := []string{
		"no-at-sign",
		"two@@example.com",
		"@example.com",
		"user@",
		"user@nodot",
		"user name@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestIsFutureOrTodayDate(t *testing.T) {
	today := time.Now().Format(DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(DateLayout)

	assert.True(t, IsFutureOrTodayDate(today), "today is bookable")
	assert.True(t, IsFutureOrTodayDate(tomorrow))
	assert.False(t, IsFutureOrTodayDate(yesterday))
	assert.False(t, IsFutureOrTodayDate("not-a-date"))
	assert.False(t, IsFutureOrTodayDate(""))
}

func TestMeetsLeadTime(t *testing.T) {
	farAhead := time.Now().Add(48 * time.Hour)
	assert.True(t, MeetsLeadTime(farAhead.Format(DateLayout), farAhead.Format(TimeLayout), 24))

	tooSoon := time.Now().Add(2 * time.Hour)
	assert.False(t, MeetsLeadTime(tooSoon.Format(DateLayout), tooSoon.Format(TimeLayout), 24))

	// A minute past the cutoff satisfies the inclusive boundary.
	boundary := time.Now().Add(24*time.Hour + time.Minute)
	assert.True(t, MeetsLeadTime(boundary.Format(DateLayout), boundary.Format(TimeLayout), 24))

	assert.False(t, MeetsLeadTime("bad", "06:00", 24))
	assert.False(t, MeetsLeadTime("2026-09-15", "bad", 24))
}
