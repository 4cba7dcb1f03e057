package model

import (
	"time"

	"github.com/google/uuid"
)

// Role defines what a user is in the system: someone who orders food,
// someone who runs a restaurant, or someone who delivers.
type Role string

// Known user roles.
const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleDeliveryPerson  Role = "delivery_person"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleRestaurantOwner, RoleDeliveryPerson:
		return true
	}
	return false
}

// User represents an account in the identity store. The order ledger
// only ever reads users; account management lives elsewhere.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Role        Role      `json:"role" db:"role"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Address     *string   `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
