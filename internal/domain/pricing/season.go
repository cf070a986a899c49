package pricing

import "time"

// Canonical season names. Pricing recognizes exactly these two: "Season" is
// peak pricing, "Off-Season" is the default. An admin-added third name takes
// part in range matching but never wins the tie-break and has no fallback row.
const (
	SeasonPeak = "Season"
	SeasonOff  = "Off-Season"
)

// Season is an admin-configured named date range used to select seasonal
// pricing. When IsRecurring is set the month/day portion of the range applies
// every year regardless of the stored year.
type Season struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	IsRecurring bool
	IsActive    bool
}

// Contains reports whether the target date falls within the season's range,
// inclusive on both ends. Comparison is at calendar-date granularity in the
// target's location: stored bounds are converted to that location before their
// date components are read, so rows that come back from the database in a
// different zone (midnight IST rendered as a UTC timestamp, say) still name
// the calendar dates the admin entered.
func (s Season) Contains(target time.Time) bool {
	loc := target.Location()
	if s.IsRecurring {
		return s.containsMonthDay(target, loc)
	}
	t := dateOnly(target, loc)
	return !t.Before(dateOnly(s.StartDate, loc)) && !t.After(dateOnly(s.EndDate, loc))
}

// containsMonthDay compares month/day tuples so that recurring ranges crossing
// a year boundary (e.g. Nov 1 - Feb 28) match on both sides of the new year.
func (s Season) containsMonthDay(target time.Time, loc *time.Location) bool {
	start := monthDayKey(s.StartDate, loc)
	end := monthDayKey(s.EndDate, loc)
	t := monthDayKey(target, loc)

	if start <= end {
		return t >= start && t <= end
	}
	// Range wraps the year boundary.
	return t >= start || t <= end
}

// ResolveSeason returns the season name applicable to the target date.
// Inactive seasons are skipped. When more than one active season covers the
// date, "Season" wins over "Off-Season" (peak pricing wins ties). When no
// season matches, the result is "Off-Season".
func ResolveSeason(target time.Time, seasons []Season) string {
	matched := make([]string, 0, len(seasons))
	for _, s := range seasons {
		if !s.IsActive {
			continue
		}
		if s.Contains(target) {
			matched = append(matched, s.Name)
		}
	}

	for _, name := range matched {
		if name == SeasonPeak {
			return SeasonPeak
		}
	}
	if len(matched) > 0 {
		return matched[0]
	}
	return SeasonOff
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func monthDayKey(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return int(t.Month())*100 + t.Day()
}
