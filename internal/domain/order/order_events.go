package order

import (
	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated     = "OrderCreated"
	EventTypeOrderAccepted    = "OrderAccepted"
	EventTypeOrderReadyToShip = "OrderReadyToShip"
	EventTypeOrderShipped     = "OrderShipped"
	EventTypeOrderDelivered   = "OrderDelivered"
	EventTypeOrderCancelled   = "OrderCancelled"
)

// OrderItemInfo represents item information carried on events
type OrderItemInfo struct {
	ItemID                 uuid.UUID       `json:"item_id"`
	ProductID              *uuid.UUID      `json:"product_id,omitempty"`
	DesignID               *uuid.UUID      `json:"design_id,omitempty"`
	CustomizationRequestID *uuid.UUID      `json:"customization_request_id,omitempty"`
	Name                   string          `json:"name"`
	Quantity               int             `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	Amount                 decimal.Decimal `json:"amount"`
}

func itemInfos(o *Order) []OrderItemInfo {
	items := make([]OrderItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemInfo{
			ItemID:                 item.ID,
			ProductID:              item.ProductID,
			DesignID:               item.DesignID,
			CustomizationRequestID: item.CustomizationRequestID,
			Name:                   item.Name,
			Quantity:               item.Quantity,
			UnitPrice:              item.UnitPrice,
			Amount:                 item.Amount,
		}
	}
	return items
}

// OrderCreatedEvent is raised when a new order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order, actorID uuid.UUID) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		ShopID:          o.ShopID,
		TotalAmount:     o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderAcceptedEvent is raised when the fulfilling shop accepts the order
type OrderAcceptedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ShopID      uuid.UUID `json:"shop_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewOrderAcceptedEvent creates a new OrderAcceptedEvent
func NewOrderAcceptedEvent(o *Order, actorID uuid.UUID) *OrderAcceptedEvent {
	return &OrderAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAccepted, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		ShopID:          o.ShopID,
		CustomerID:      o.CustomerID,
	}
}

// EventType returns the event type name
func (e *OrderAcceptedEvent) EventType() string {
	return EventTypeOrderAccepted
}

// OrderReadyToShipEvent is raised when production finishes
type OrderReadyToShipEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ShopID      uuid.UUID `json:"shop_id"`
}

// NewOrderReadyToShipEvent creates a new OrderReadyToShipEvent
func NewOrderReadyToShipEvent(o *Order, actorID uuid.UUID) *OrderReadyToShipEvent {
	return &OrderReadyToShipEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReadyToShip, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		ShopID:          o.ShopID,
	}
}

// EventType returns the event type name
func (e *OrderReadyToShipEvent) EventType() string {
	return EventTypeOrderReadyToShip
}

// OrderShippedEvent is raised when tracking is added and the order ships.
// EscrowReleased reports whether held funds were released as part of the
// transition (true only for customization-linked orders).
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	ShopID         uuid.UUID       `json:"shop_id"`
	TrackingNumber string          `json:"tracking_number"`
	Carrier        string          `json:"carrier,omitempty"`
	Items          []OrderItemInfo `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	EscrowReleased bool            `json:"escrow_released"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(o *Order, actorID uuid.UUID) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		ShopID:          o.ShopID,
		TrackingNumber:  o.TrackingNumber,
		Carrier:         o.Carrier,
		Items:           itemInfos(o),
		TotalAmount:     o.TotalAmount,
		EscrowReleased:  o.HasCustomization(),
	}
}

// EventType returns the event type name
func (e *OrderShippedEvent) EventType() string {
	return EventTypeOrderShipped
}

// OrderDeliveredEvent is raised when the order reaches the customer
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID                 uuid.UUID   `json:"order_id"`
	OrderNumber             string      `json:"order_number"`
	CustomerID              uuid.UUID   `json:"customer_id"`
	ShopID                  uuid.UUID   `json:"shop_id"`
	CustomizationRequestIDs []uuid.UUID `json:"customization_request_ids,omitempty"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order, actorID uuid.UUID) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent:         shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, o.ID, actorID),
		OrderID:                 o.ID,
		OrderNumber:             o.OrderNumber,
		CustomerID:              o.CustomerID,
		ShopID:                  o.ShopID,
		CustomizationRequestIDs: o.CustomizationRequestIDs(),
	}
}

// EventType returns the event type name
func (e *OrderDeliveredEvent) EventType() string {
	return EventTypeOrderDelivered
}

// OrderCancelledEvent is raised when the shop rejects/cancels the order.
// WasAccepted distinguishes cancellation of an already-accepted order so
// notification handling can differ downstream.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID                 uuid.UUID   `json:"order_id"`
	OrderNumber             string      `json:"order_number"`
	CustomerID              uuid.UUID   `json:"customer_id"`
	ShopID                  uuid.UUID   `json:"shop_id"`
	Reason                  string      `json:"reason,omitempty"`
	WasAccepted             bool        `json:"was_accepted"`
	CustomizationRequestIDs []uuid.UUID `json:"customization_request_ids,omitempty"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, actorID uuid.UUID, wasAccepted bool) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent:         shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID, actorID),
		OrderID:                 o.ID,
		OrderNumber:             o.OrderNumber,
		CustomerID:              o.CustomerID,
		ShopID:                  o.ShopID,
		Reason:                  o.CancelReason,
		WasAccepted:             wasAccepted,
		CustomizationRequestIDs: o.CustomizationRequestIDs(),
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}
