// README: Pricing computes delivery fares from route distance and vehicle class.
package pricing

import (
	"errors"
	"math"

	"swiftdrop/internal/types"
)

var (
	ErrBadDistance = errors.New("distance must be non-negative")
	ErrBadVehicle  = errors.New("unknown vehicle class")
)

// Quote prices a delivery: base = 500 + 250*km, rounded up to the nearest 100
// minor units, then scaled by the vehicle multiplier. The result is always a
// non-negative integer amount.
func Quote(distanceKm float64, vehicle Vehicle) (types.Money, error) {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return types.Money{}, ErrBadDistance
	}
	if !vehicle.Valid() {
		return types.Money{}, ErrBadVehicle
	}
	base := float64(baseFare) + float64(perKm)*distanceKm
	// The epsilon keeps binary float noise (250*3.2 = 800.0000000000001)
	// from pushing an exact boundary into the next step.
	steps := math.Ceil(base/roundStep - 1e-9)
	amount := int64(steps * roundStep * vehicle.multiplier())
	return types.Money{Amount: amount, Currency: Currency}, nil
}
