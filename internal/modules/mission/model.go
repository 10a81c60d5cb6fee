// README: Mission aggregate and status definitions.
package mission

import (
	"time"

	"swiftdrop/internal/modules/pricing"
	"swiftdrop/internal/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusArrived    Status = "arrived"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusArrived, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether a mission in this status can still move.
func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// AllowedTransitions represents the delivery state flow as code. The chain is
// strictly linear: a status never moves backward and never skips a step. A
// pending mission can additionally be deleted by its creator, which is a
// removal rather than a transition.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusArrived},
	StatusArrived:    {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type Mission struct {
	ID         types.ID  `json:"id"`
	CustomerID types.ID  `json:"customer_id"`
	DriverID   *types.ID `json:"driver_id,omitempty"`
	Status     Status    `json:"status"`

	PickupAddress  string      `json:"pickup_address"`
	Pickup         types.Point `json:"pickup"`
	DropoffAddress string      `json:"dropoff_address"`
	Dropoff        types.Point `json:"dropoff"`

	DistanceKm float64         `json:"distance_km"`
	Vehicle    pricing.Vehicle `json:"vehicle"`
	Price      types.Money     `json:"price"`

	// DeliveryPIN is generated once at creation and never rewritten.
	DeliveryPIN string `json:"delivery_pin"`

	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
