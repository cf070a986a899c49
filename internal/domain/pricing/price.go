package pricing

import "errors"

// ErrPriceNotConfigured is returned when no price row exists for a
// vehicle/season combination even after the off-season fallback. A zero price
// is a legitimate configured value and is never conflated with this error.
var ErrPriceNotConfigured = errors.New("no price configured for this vehicle and season")

// PriceEntry is a configured price for one (package, vehicle type, season)
// combination. Amounts are whole Rupees.
type PriceEntry struct {
	VehicleType VehicleType
	SeasonName  string
	Price       int64
	IsActive    bool
}

// LookupPrice finds the configured price for the vehicle type and resolved
// season name among the active entries of a single package.
//
// Lookup order: exact match on (vehicle type, season name) first; when the
// season is "Season" and no exact match exists, fall back to the vehicle's
// "Off-Season" entry. No further fallback.
func LookupPrice(entries []PriceEntry, vehicleType VehicleType, seasonName string) (int64, error) {
	if price, ok := findPrice(entries, vehicleType, seasonName); ok {
		return price, nil
	}
	if seasonName == SeasonPeak {
		if price, ok := findPrice(entries, vehicleType, SeasonOff); ok {
			return price, nil
		}
	}
	return 0, ErrPriceNotConfigured
}

func findPrice(entries []PriceEntry, vehicleType VehicleType, seasonName string) (int64, bool) {
	for _, e := range entries {
		if !e.IsActive {
			continue
		}
		if e.VehicleType == vehicleType && e.SeasonName == seasonName {
			return e.Price, true
		}
	}
	return 0, false
}
