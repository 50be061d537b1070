package shared

import "github.com/google/uuid"

// ActorRole identifies which side of the marketplace an actor operates on
type ActorRole string

const (
	ActorRoleCustomer ActorRole = "customer"
	ActorRoleDesigner ActorRole = "designer"
	ActorRoleShop     ActorRole = "shop"
	ActorRoleAdmin    ActorRole = "admin"
)

// IsValid checks if the role is a known ActorRole
func (r ActorRole) IsValid() bool {
	switch r {
	case ActorRoleCustomer, ActorRoleDesigner, ActorRoleShop, ActorRoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of ActorRole
func (r ActorRole) String() string {
	return string(r)
}

// Actor identifies who is performing an operation. For shop actors the ID is
// the shop ID, for designers the designer ID, for customers the customer ID.
type Actor struct {
	ID   uuid.UUID
	Role ActorRole
}

// NewActor creates an actor
func NewActor(id uuid.UUID, role ActorRole) Actor {
	return Actor{ID: id, Role: role}
}

// IsShop returns true if the actor is a fulfillment shop
func (a Actor) IsShop() bool {
	return a.Role == ActorRoleShop
}

// IsCustomer returns true if the actor is a customer
func (a Actor) IsCustomer() bool {
	return a.Role == ActorRoleCustomer
}

// IsDesigner returns true if the actor is a designer
func (a Actor) IsDesigner() bool {
	return a.Role == ActorRoleDesigner
}
