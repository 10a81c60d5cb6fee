// README: Presence tracks which drivers are online and where they are.
package presence

import (
	"time"

	"swiftdrop/internal/types"
)

// DriverPing is a single position report from a driver's device.
type DriverPing struct {
	DriverID types.ID    `json:"driver_id"`
	Location types.Point `json:"location"`
	At       time.Time   `json:"at"`
}

// NearbyDriver is a geo-index hit ordered by distance from the query point.
type NearbyDriver struct {
	DriverID   types.ID    `json:"driver_id"`
	Location   types.Point `json:"location"`
	DistanceKm float64     `json:"distance_km"`
}
