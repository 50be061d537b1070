package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShopStatus represents the operational status of a shop
type ShopStatus string

const (
	ShopStatusActive    ShopStatus = "active"
	ShopStatusSuspended ShopStatus = "suspended"
	ShopStatusClosed    ShopStatus = "closed"
)

// IsValid checks if the status is a valid ShopStatus
func (s ShopStatus) IsValid() bool {
	switch s {
	case ShopStatusActive, ShopStatusSuspended, ShopStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of ShopStatus
func (s ShopStatus) String() string {
	return string(s)
}

// Shop represents a printing/fulfillment shop on the marketplace.
// Specialties declare the product categories and tags the shop can produce;
// rating and completed order count rank the shop in matching results.
type Shop struct {
	shared.BaseAggregateRoot
	Name            string
	OwnerDesignerID *uuid.UUID // set when the shop is operated by a designer
	Specialties     []string   `gorm:"type:jsonb;serializer:json"`
	PrintingEnabled bool
	Approved        bool
	Status          ShopStatus
	Rating          decimal.Decimal
	CompletedOrders int64
}

// TableName returns the table name
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(name string) (*Shop, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Shop name cannot be empty")
	}
	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Specialties:       make([]string, 0),
		PrintingEnabled:   true,
		Status:            ShopStatusActive,
		Rating:            decimal.Zero,
	}, nil
}

// SetSpecialties replaces the shop's declared specialties
func (s *Shop) SetSpecialties(specialties []string) {
	s.Specialties = specialties
	s.UpdatedAt = time.Now()
}

// Approve marks the shop as approved by platform review
func (s *Shop) Approve() {
	s.Approved = true
	s.UpdatedAt = time.Now()
}

// IsEligible returns true if the shop can be offered as a fulfillment
// candidate: it must be active, approved, and offer printing.
func (s *Shop) IsEligible() bool {
	return s.Status == ShopStatusActive && s.Approved && s.PrintingEnabled
}

// MatchesAny returns true if any of the given terms intersects the shop's
// declared specialties
func (s *Shop) MatchesAny(terms []string) bool {
	for _, spec := range s.Specialties {
		for _, term := range terms {
			if spec == term {
				return true
			}
		}
	}
	return false
}

// RecordCompletedOrder increments the completed order counter
func (s *Shop) RecordCompletedOrder() {
	s.CompletedOrders++
	s.UpdatedAt = time.Now()
}
