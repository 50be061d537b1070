package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CreateOrderItemInput represents a line in the create order request
type CreateOrderItemInput struct {
	ProductID              *uuid.UUID `json:"product_id"`
	DesignID               *uuid.UUID `json:"design_id"`
	Quantity               int        `json:"quantity" binding:"required,min=1"`
	CustomizationRequestID *uuid.UUID `json:"customization_request_id"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	ShopID       uuid.UUID              `json:"shop_id" binding:"required"`
	Items        []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	DiscountID   *uuid.UUID             `json:"discount_id"`
	Tax          decimal.Decimal        `json:"tax"`
	ShippingCost decimal.Decimal        `json:"shipping_cost"`
	Notes        string                 `json:"notes" binding:"max=1000"`
}

// RejectOrderRequest represents a request to reject/cancel an order
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ShipOrderRequest represents a request to add tracking and ship an order
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=100"`
	Carrier        string `json:"carrier" binding:"max=100"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search   string             `form:"search"`
	Status   *order.OrderStatus `form:"status"`
	Page     int                `form:"page"`
	PageSize int                `form:"page_size"`
	OrderBy  string             `form:"order_by"`
	OrderDir string             `form:"order_dir"`
}

// OrderItemResponse represents an order line in responses
type OrderItemResponse struct {
	ID                     uuid.UUID       `json:"id"`
	ProductID              *uuid.UUID      `json:"product_id,omitempty"`
	DesignID               *uuid.UUID      `json:"design_id,omitempty"`
	CustomizationRequestID *uuid.UUID      `json:"customization_request_id,omitempty"`
	Name                   string          `json:"name"`
	Quantity               int             `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	Amount                 decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	ShopID         uuid.UUID           `json:"shop_id"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Tax            decimal.Decimal     `json:"tax"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	Carrier        string              `json:"carrier,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderListItemResponse represents an order in list responses
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToOrderResponse converts an order aggregate to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:                     item.ID,
			ProductID:              item.ProductID,
			DesignID:               item.DesignID,
			CustomizationRequestID: item.CustomizationRequestID,
			Name:                   item.Name,
			Quantity:               item.Quantity,
			UnitPrice:              item.UnitPrice,
			Amount:                 item.Amount,
		})
	}

	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		ShopID:         o.ShopID,
		Items:          items,
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		ShippingCost:   o.ShippingCost,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		Status:         o.Status.String(),
		PaymentStatus:  string(o.PaymentStatus),
		TrackingNumber: o.TrackingNumber,
		Carrier:        o.Carrier,
		Notes:          o.Notes,
		CancelReason:   o.CancelReason,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts orders to list item DTOs
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		responses = append(responses, OrderListItemResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			CustomerID:  o.CustomerID,
			ShopID:      o.ShopID,
			ItemCount:   o.ItemCount(),
			TotalAmount: o.TotalAmount,
			Status:      o.Status.String(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return responses
}
