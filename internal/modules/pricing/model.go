// README: Tariff definitions for each vehicle class.
package pricing

// Vehicle is the class of vehicle requested for a delivery.
type Vehicle string

const (
	VehicleBike Vehicle = "bike"
	VehicleCar  Vehicle = "car"
	VehicleVan  Vehicle = "van"
)

// Currency is the minor-unit currency all quotes are expressed in.
const Currency = "NGN"

const (
	baseFare  = 500
	perKm     = 250
	roundStep = 100

	bikeMultiplier = 1.0
	carMultiplier  = 1.5
	vanMultiplier  = 2.5
)

func (v Vehicle) Valid() bool {
	switch v {
	case VehicleBike, VehicleCar, VehicleVan:
		return true
	}
	return false
}

func (v Vehicle) multiplier() float64 {
	switch v {
	case VehicleCar:
		return carMultiplier
	case VehicleVan:
		return vanMultiplier
	default:
		return bikeMultiplier
	}
}
