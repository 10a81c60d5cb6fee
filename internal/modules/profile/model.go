// README: Profile aggregate and role definitions.
package profile

import (
	"time"

	"swiftdrop/internal/types"
)

// Role determines which views and lifecycle transitions an identity may
// invoke. It is fixed at account creation; nothing in this package or its
// callers ever rewrites it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// ParseRole decodes a stored role value. A missing or malformed role means
// "no role assigned" and resolves to the default customer view instead of
// failing hard.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return Role(s)
	}
	return RoleCustomer
}

type Profile struct {
	ID          types.ID `json:"id"`
	Role        Role     `json:"role"`
	FullName    string   `json:"full_name"`
	PhoneNumber string   `json:"phone_number"`

	// Driver-only live state. IsOnline mirrors the driver's saved
	// preference; Location is the last reported position, if any.
	IsOnline bool         `json:"is_online"`
	Location *types.Point `json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
