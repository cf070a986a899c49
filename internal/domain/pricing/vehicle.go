package pricing

// VehicleType identifies the fleet category a package is priced against.
type VehicleType string

const (
	VehicleSedan     VehicleType = "sedan"
	VehicleSUVNormal VehicleType = "suv_normal"
	VehicleSUVDeluxe VehicleType = "suv_deluxe"
	VehicleSUVLuxury VehicleType = "suv_luxury"
)

// defaultCapacity is used for unrecognized vehicle types.
const defaultCapacity = 4

// IsValid returns true if the vehicle type is one of the four priced categories.
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleSedan, VehicleSUVNormal, VehicleSUVDeluxe, VehicleSUVLuxury:
		return true
	default:
		return false
	}
}

// String returns the string representation of the vehicle type.
func (v VehicleType) String() string {
	return string(v)
}

// DisplayName returns the customer-facing name for a vehicle type. Unknown
// types echo the raw value so admin-added categories still render.
func (v VehicleType) DisplayName() string {
	switch v {
	case VehicleSedan:
		return "Sedan"
	case VehicleSUVNormal:
		return "SUV"
	case VehicleSUVDeluxe:
		return "SUV Deluxe"
	case VehicleSUVLuxury:
		return "SUV Luxury"
	default:
		return string(v)
	}
}

// Capacity returns the passenger capacity for a vehicle type.
func (v VehicleType) Capacity() int {
	switch v {
	case VehicleSedan:
		return 4
	case VehicleSUVNormal:
		return 6
	case VehicleSUVDeluxe:
		return 7
	case VehicleSUVLuxury:
		return 7
	default:
		return defaultCapacity
	}
}
