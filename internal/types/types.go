// README: Common identifier and coordinate value objects shared across modules.
package types

// ID is an opaque identity reference (profile or mission).
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
