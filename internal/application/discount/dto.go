package discount

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/discount"
	"github.com/shopspring/decimal"
)

// CreateDiscountRequest represents an administrator's request to create a discount
type CreateDiscountRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Type              string           `json:"type" binding:"required,oneof=percentage fixed_amount"`
	Scope             string           `json:"scope" binding:"required,oneof=order product category shipping"`
	Value             decimal.Decimal  `json:"value" binding:"required"`
	TargetIDs         []string         `json:"target_ids"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartDate         time.Time        `json:"start_date" binding:"required"`
	EndDate           time.Time        `json:"end_date" binding:"required"`
	AllowedUserIDs    []uuid.UUID      `json:"allowed_user_ids"`
	UsageLimit        *int64           `json:"usage_limit"`
	OwnerShopID       *uuid.UUID       `json:"owner_shop_id"`
}

// ValidateDiscountRequest represents a request to check a discount against an order
type ValidateDiscountRequest struct {
	OrderAmount  decimal.Decimal `json:"order_amount" binding:"required"`
	UserID       *uuid.UUID      `json:"user_id"`
	ProductIDs   []uuid.UUID     `json:"product_ids"`
	CategoryIDs  []string        `json:"category_ids"`
	ScopedAmount decimal.Decimal `json:"scoped_amount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

// ApplyDiscountRequest represents a request to consume one discount usage
type ApplyDiscountRequest struct {
	OrderAmount  decimal.Decimal `json:"order_amount" binding:"required"`
	ScopedAmount decimal.Decimal `json:"scoped_amount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

// ValidateDiscountResponse reports whether a discount applies and for how much.
// When Valid is false, Reason explains the failing check and Amount is zero:
// a discount is never partially applied.
type ValidateDiscountResponse struct {
	Valid  bool            `json:"valid"`
	Reason string          `json:"reason,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// DiscountResponse represents a discount in responses
type DiscountResponse struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	Scope             string           `json:"scope"`
	Value             decimal.Decimal  `json:"value"`
	TargetIDs         []string         `json:"target_ids,omitempty"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Status            string           `json:"status"`
	UsageLimit        *int64           `json:"usage_limit,omitempty"`
	UsedCount         int64            `json:"used_count"`
	OwnerShopID       *uuid.UUID       `json:"owner_shop_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ToDiscountResponse converts a discount aggregate to a response DTO
func ToDiscountResponse(d *discount.Discount) DiscountResponse {
	return DiscountResponse{
		ID:                d.ID,
		Name:              d.Name,
		Type:              string(d.Type),
		Scope:             string(d.Scope),
		Value:             d.Value,
		TargetIDs:         d.TargetIDs,
		MinOrderAmount:    d.MinOrderAmount,
		MaxDiscountAmount: d.MaxDiscountAmount,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Status:            string(d.Status),
		UsageLimit:        d.UsageLimit,
		UsedCount:         d.UsedCount,
		OwnerShopID:       d.OwnerShopID,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDiscountResponses converts discounts to response DTOs
func ToDiscountResponses(discounts []*discount.Discount) []DiscountResponse {
	responses := make([]DiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		responses = append(responses, ToDiscountResponse(d))
	}
	return responses
}
