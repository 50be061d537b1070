package discount

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/printmarket/backend/internal/domain/shared"
)

// DiscountType defines how the discount value is interpreted
type DiscountType string

const (
	TypePercentage  DiscountType = "percentage"
	TypeFixedAmount DiscountType = "fixed_amount"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	return t == TypePercentage || t == TypeFixedAmount
}

// DiscountScope defines the financial base the discount applies against
type DiscountScope string

const (
	ScopeOrder    DiscountScope = "order"
	ScopeProduct  DiscountScope = "product"
	ScopeCategory DiscountScope = "category"
	ScopeShipping DiscountScope = "shipping"
)

// IsValid checks if the discount scope is valid
func (s DiscountScope) IsValid() bool {
	switch s {
	case ScopeOrder, ScopeProduct, ScopeCategory, ScopeShipping:
		return true
	}
	return false
}

// DiscountStatus represents whether a discount can currently be offered
type DiscountStatus string

const (
	StatusActive   DiscountStatus = "active"
	StatusInactive DiscountStatus = "inactive"
)

// Discount is the discount aggregate root. It is created and edited by shop
// or platform administrators; checkout only reads it and increments UsedCount.
type Discount struct {
	shared.BaseAggregateRoot
	Name              string           `gorm:"not null" json:"name"`
	Type              DiscountType     `gorm:"not null" json:"type"`
	Scope             DiscountScope    `gorm:"not null;default:'order'" json:"scope"`
	Value             decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	TargetIDs         []string         `gorm:"serializer:json" json:"target_ids,omitempty"`
	MinOrderAmount    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_order_amount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"max_discount_amount,omitempty"`
	StartDate         time.Time        `gorm:"not null" json:"start_date"`
	EndDate           time.Time        `gorm:"not null" json:"end_date"`
	Status            DiscountStatus   `gorm:"not null;default:'active'" json:"status"`
	AllowedUserIDs    []uuid.UUID      `gorm:"serializer:json" json:"allowed_user_ids,omitempty"`
	UsageLimit        *int64           `json:"usage_limit,omitempty"`
	UsedCount         int64            `gorm:"not null;default:0" json:"used_count"`
	OwnerShopID       *uuid.UUID       `gorm:"type:uuid;index" json:"owner_shop_id,omitempty"`
}

// TableName returns the table name
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a new discount
func NewDiscount(name string, discountType DiscountType, scope DiscountScope, value decimal.Decimal, startDate, endDate time.Time) (*Discount, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_NAME", "discount name cannot be empty")
	}
	if !discountType.IsValid() {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_TYPE", "discount type must be percentage or fixed_amount")
	}
	if !scope.IsValid() {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_SCOPE", "discount scope must be order, product, category or shipping")
	}
	if value.IsNegative() {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_VALUE", "discount value cannot be negative")
	}
	if discountType == TypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_VALUE", "percentage discount cannot exceed 100")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewValidationError("INVALID_DISCOUNT_WINDOW", "end date cannot precede start date")
	}
	return &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              discountType,
		Scope:             scope,
		Value:             value,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            StatusActive,
	}, nil
}

// Calculate computes the discount amount for the given bases. Pure, no side
// effects: orderAmount is the whole order, scopedAmount the sum of matching
// line amounts for product/category scopes, shippingAmount the shipping cost.
func (d *Discount) Calculate(orderAmount, scopedAmount, shippingAmount decimal.Decimal) decimal.Decimal {
	var base decimal.Decimal
	switch d.Scope {
	case ScopeShipping:
		base = shippingAmount
	case ScopeProduct, ScopeCategory:
		base = scopedAmount
	default:
		base = orderAmount
	}
	if base.IsNegative() {
		base = decimal.Zero
	}

	var amount decimal.Decimal
	switch d.Type {
	case TypePercentage:
		amount = base.Mul(d.Value).Div(decimal.NewFromInt(100))
		if d.MaxDiscountAmount != nil && amount.GreaterThan(*d.MaxDiscountAmount) {
			amount = *d.MaxDiscountAmount
		}
	case TypeFixedAmount:
		amount = d.Value
		if amount.GreaterThan(base) {
			amount = base
		}
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}

// Validate checks whether the discount is applicable to an order right now.
// A non-empty reason means the discount must not be applied at all.
func (d *Discount) Validate(now time.Time, orderAmount decimal.Decimal, userID *uuid.UUID) (reason string) {
	if d.Status != StatusActive {
		return "discount is not active"
	}
	if now.Before(d.StartDate) {
		return "discount is not yet valid"
	}
	if now.After(d.EndDate) {
		return "discount has expired"
	}
	if d.MinOrderAmount != nil && orderAmount.LessThan(*d.MinOrderAmount) {
		return "order amount is below the discount minimum"
	}
	if len(d.AllowedUserIDs) > 0 {
		if userID == nil {
			return "discount is restricted to specific customers"
		}
		allowed := false
		for _, id := range d.AllowedUserIDs {
			if id == *userID {
				allowed = true
				break
			}
		}
		if !allowed {
			return "discount is restricted to specific customers"
		}
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return "discount usage limit reached"
	}
	return ""
}

// AppliesTo reports whether any of the given keys (product ids or category
// names) fall under the discount's target list. An empty target list matches
// everything in scope.
func (d *Discount) AppliesTo(keys []string) bool {
	if len(d.TargetIDs) == 0 {
		return true
	}
	for _, target := range d.TargetIDs {
		for _, key := range keys {
			if target == key {
				return true
			}
		}
	}
	return false
}

// Deactivate turns the discount off
func (d *Discount) Deactivate() {
	d.Status = StatusInactive
	d.UpdatedAt = time.Now()
}

// Activate turns the discount back on
func (d *Discount) Activate() {
	d.Status = StatusActive
	d.UpdatedAt = time.Now()
}
