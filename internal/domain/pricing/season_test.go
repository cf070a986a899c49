package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestSeasonContains_FixedRange(t *testing.T) {
	s := Season{
		Name:      SeasonPeak,
		StartDate: date(2026, time.April, 1),
		EndDate:   date(2026, time.June, 15),
		IsActive:  true,
	}

	assert.True(t, s.Contains(date(2026, time.April, 1)), "start date is inclusive")
	assert.True(t, s.Contains(date(2026, time.June, 15)), "end date is inclusive")
	assert.True(t, s.Contains(date(2026, time.May, 10)))
	assert.False(t, s.Contains(date(2026, time.March, 31)))
	assert.False(t, s.Contains(date(2026, time.June, 16)))
	assert.False(t, s.Contains(date(2027, time.May, 10)), "fixed ranges do not repeat across years")
}

func TestSeasonContains_RecurringWrapsYearBoundary(t *testing.T) {
	// Winter peak: Nov 1 through Feb 28, every year.
	s := Season{
		Name:        SeasonPeak,
		StartDate:   date(2025, time.November, 1),
		EndDate:     date(2026, time.February, 28),
		IsRecurring: true,
		IsActive:    true,
	}

	assert.True(t, s.Contains(date(2026, time.December, 25)))
	assert.True(t, s.Contains(date(2027, time.January, 10)))
	assert.True(t, s.Contains(date(2030, time.November, 1)), "start month/day matches in any year")
	assert.True(t, s.Contains(date(2030, time.February, 28)), "end month/day matches in any year")
	assert.False(t, s.Contains(date(2026, time.March, 1)))
	assert.False(t, s.Contains(date(2026, time.October, 31)))
}

func TestSeasonContains_MixedZones(t *testing.T) {
	// Bounds entered at IST midnight come back from the database as UTC
	// timestamps on the previous calendar day. Containment must still follow
	// the calendar dates the admin entered, judged in the target's zone.
	ist := time.FixedZone("IST", 5*3600+1800)
	inIST := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, ist)
	}

	t.Run("fixed range with UTC-rendered bounds", func(t *testing.T) {
		s := Season{
			Name:      SeasonPeak,
			StartDate: inIST(2026, time.April, 1).UTC(),
			EndDate:   inIST(2026, time.June, 30).UTC(),
			IsActive:  true,
		}

		assert.True(t, s.Contains(inIST(2026, time.April, 1)), "start date stays inclusive across zones")
		assert.True(t, s.Contains(inIST(2026, time.June, 30)), "end date stays inclusive across zones")
		assert.False(t, s.Contains(inIST(2026, time.March, 31)))
		assert.False(t, s.Contains(inIST(2026, time.July, 1)))
	})

	t.Run("recurring wrap with UTC-rendered bounds", func(t *testing.T) {
		s := Season{
			Name:        SeasonPeak,
			StartDate:   inIST(2025, time.November, 1).UTC(),
			EndDate:     inIST(2026, time.February, 28).UTC(),
			IsRecurring: true,
			IsActive:    true,
		}

		assert.True(t, s.Contains(inIST(2026, time.November, 1)))
		assert.True(t, s.Contains(inIST(2027, time.February, 28)))
		assert.True(t, s.Contains(inIST(2026, time.December, 25)))
		assert.False(t, s.Contains(inIST(2026, time.October, 31)))
		assert.False(t, s.Contains(inIST(2026, time.March, 1)))
	})
}

func TestSeasonContains_RecurringWithinYear(t *testing.T) {
	s := Season{
		Name:        SeasonPeak,
		StartDate:   date(2025, time.April, 10),
		EndDate:     date(2025, time.June, 10),
		IsRecurring: true,
		IsActive:    true,
	}

	assert.True(t, s.Contains(date(2028, time.May, 1)))
	assert.False(t, s.Contains(date(2028, time.July, 1)))
}

func TestResolveSeason(t *testing.T) {
	peak := Season{
		Name:      SeasonPeak,
		StartDate: date(2026, time.April, 1),
		EndDate:   date(2026, time.June, 15),
		IsActive:  true,
	}
	off := Season{
		Name:      SeasonOff,
		StartDate: date(2026, time.January, 1),
		EndDate:   date(2026, time.December, 31),
		IsActive:  true,
	}

	t.Run("no seasons defaults to off-season", func(t *testing.T) {
		assert.Equal(t, SeasonOff, ResolveSeason(date(2026, time.May, 1), nil))
	})

	t.Run("single match wins", func(t *testing.T) {
		assert.Equal(t, SeasonPeak, ResolveSeason(date(2026, time.May, 1), []Season{peak}))
	})

	t.Run("peak wins overlap regardless of order", func(t *testing.T) {
		assert.Equal(t, SeasonPeak, ResolveSeason(date(2026, time.May, 1), []Season{off, peak}))
		assert.Equal(t, SeasonPeak, ResolveSeason(date(2026, time.May, 1), []Season{peak, off}))
	})

	t.Run("inactive seasons are skipped", func(t *testing.T) {
		inactive := peak
		inactive.IsActive = false
		assert.Equal(t, SeasonOff, ResolveSeason(date(2026, time.May, 1), []Season{inactive}))
	})

	t.Run("no match defaults to off-season", func(t *testing.T) {
		assert.Equal(t, SeasonOff, ResolveSeason(date(2026, time.September, 1), []Season{peak}))
	})

	t.Run("non-peak match returns its own name", func(t *testing.T) {
		assert.Equal(t, SeasonOff, ResolveSeason(date(2026, time.May, 1), []Season{off}))
	})
}
