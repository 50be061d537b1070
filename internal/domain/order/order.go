package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusToShip     OrderStatus = "to_ship"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusToShip,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// This is the single transition table for orders; no other code may move an
// order between states.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusToShip || target == OrderStatusCancelled
	case OrderStatusToShip:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem represents a line item in an order. A line references either a
// catalog product or a design, and may carry the customization request it
// fulfills.
type OrderItem struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductID              *uuid.UUID `gorm:"type:uuid"`
	DesignID               *uuid.UUID `gorm:"type:uuid"`
	CustomizationRequestID *uuid.UUID `gorm:"type:uuid;index"`
	Name                   string     `gorm:"not null"`
	Quantity               int        `gorm:"not null"`
	UnitPrice              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount                 decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName returns the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item referencing a product or a design.
// The price arrives as Money so the currency is explicit at the boundary;
// the stored columns keep the decimal amount.
func NewOrderItem(orderID uuid.UUID, productID, designID *uuid.UUID, name string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == nil && designID == nil {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Order item must reference a product or a design")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Order item name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		DesignID:  designID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		Amount:    unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// LinkCustomizationRequest associates the item with a customization request.
// Orders carrying such items hold escrow funds released on shipment.
func (i *OrderItem) LinkCustomizationRequest(requestID uuid.UUID) error {
	if requestID == uuid.Nil {
		return shared.NewValidationError("INVALID_REQUEST", "Customization request ID cannot be empty")
	}
	i.CustomizationRequestID = &requestID
	i.UpdatedAt = time.Now()
	return nil
}

// Order represents a placed order aggregate root. It is created by customer
// checkout and driven to completion by the fulfilling shop.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string      `gorm:"uniqueIndex;not null"`
	CustomerID     uuid.UUID   `gorm:"type:uuid;index;not null"`
	ShopID         uuid.UUID   `gorm:"type:uuid;index;not null"` // fulfilling shop
	Items          []OrderItem `gorm:"foreignKey:OrderID"`
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	DiscountID     *uuid.UUID
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	TrackingNumber string
	Carrier        string
	Notes          string
	AcceptedAt     *time.Time
	ReadyAt        *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// TableName returns the table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status
func NewOrder(orderNumber string, customerID, shopID uuid.UUID) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SHOP", "Fulfilling shop ID cannot be empty")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		ShopID:            shopID,
		Items:             make([]OrderItem, 0),
		Subtotal:          decimal.Zero,
		Tax:               decimal.Zero,
		ShippingCost:      decimal.Zero,
		DiscountAmount:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o, customerID))

	return o, nil
}

// AddItem adds a line item. Only allowed while the order is pending.
func (o *Order) AddItem(productID, designID *uuid.UUID, name string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewConflictError("INVALID_STATE", "Cannot add items to an order that is already in fulfillment")
	}

	item, err := NewOrderItem(o.ID, productID, designID, name, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// SetCharges sets tax and shipping cost and recalculates the total
func (o *Order) SetCharges(tax, shippingCost decimal.Decimal) error {
	if tax.IsNegative() || shippingCost.IsNegative() {
		return shared.NewValidationError("INVALID_CHARGES", "Tax and shipping cost cannot be negative")
	}
	o.Tax = tax
	o.ShippingCost = shippingCost
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return nil
}

// ApplyDiscount records a discount against the order and recalculates the
// total. The amount is expected to come from the discount engine.
func (o *Order) ApplyDiscount(discountID uuid.UUID, amount decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewConflictError("INVALID_STATE", "Cannot apply discount to an order in fulfillment")
	}
	if amount.IsNegative() {
		return shared.NewValidationError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	o.DiscountID = &discountID
	o.DiscountAmount = amount
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid records successful payment capture
func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentStatusPaid
	o.UpdatedAt = time.Now()
}

// guardShopActor validates that the actor is the fulfilling shop
func (o *Order) guardShopActor(actor shared.Actor) error {
	if !actor.IsShop() || actor.ID != o.ShopID {
		return shared.NewPermissionError("NOT_FULFILLING_SHOP", "Only the fulfilling shop may perform this action")
	}
	return nil
}

// guardTransition validates the transition table
func (o *Order) guardTransition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewConflictError("INVALID_STATE",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	return nil
}

// Accept moves the order from pending to processing. Shop only.
func (o *Order) Accept(actor shared.Actor) error {
	if err := o.guardShopActor(actor); err != nil {
		return err
	}
	if err := o.guardTransition(OrderStatusProcessing); err != nil {
		return err
	}

	now := time.Now()
	o.Status = OrderStatusProcessing
	o.AcceptedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderAcceptedEvent(o, actor.ID))

	return nil
}

// Reject cancels the order from pending or processing. Shop only. The reason
// is optional; the cancelled event carries whether the order had already been
// accepted so downstream notifications can differ.
func (o *Order) Reject(actor shared.Actor, reason string) error {
	if err := o.guardShopActor(actor); err != nil {
		return err
	}
	if err := o.guardTransition(OrderStatusCancelled); err != nil {
		return err
	}

	wasAccepted := o.Status == OrderStatusProcessing
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o, actor.ID, wasAccepted))

	return nil
}

// MarkReadyToShip moves the order from processing to to_ship. Shop only.
func (o *Order) MarkReadyToShip(actor shared.Actor) error {
	if err := o.guardShopActor(actor); err != nil {
		return err
	}
	if err := o.guardTransition(OrderStatusToShip); err != nil {
		return err
	}

	now := time.Now()
	o.Status = OrderStatusToShip
	o.ReadyAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderReadyToShipEvent(o, actor.ID))

	return nil
}

// ShipWithTracking records the tracking number and moves the order from
// to_ship to shipped in one step. Setting tracking is the only way into the
// shipped state; escrow release for customization-linked orders hangs off
// this transition.
func (o *Order) ShipWithTracking(actor shared.Actor, trackingNumber, carrier string) error {
	if err := o.guardShopActor(actor); err != nil {
		return err
	}
	if trackingNumber == "" {
		return shared.NewValidationError("INVALID_TRACKING", "Tracking number is required to ship an order")
	}
	if err := o.guardTransition(OrderStatusShipped); err != nil {
		return err
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.TrackingNumber = trackingNumber
	o.Carrier = carrier
	o.ShippedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippedEvent(o, actor.ID))

	return nil
}

// MarkDelivered moves the order from shipped to delivered. Terminal.
func (o *Order) MarkDelivered(actor shared.Actor) error {
	if err := o.guardTransition(OrderStatusDelivered); err != nil {
		return err
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderDeliveredEvent(o, actor.ID))

	return nil
}

// recalculateTotals recalculates subtotal and total. The total is clamped to
// zero if the discount exceeds the charges.
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal

	total := o.Subtotal.Add(o.Tax).Add(o.ShippingCost).Sub(o.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.TotalAmount = total
}

// HasCustomization returns true if any item fulfills a customization request
func (o *Order) HasCustomization() bool {
	for _, item := range o.Items {
		if item.CustomizationRequestID != nil {
			return true
		}
	}
	return false
}

// CustomizationRequestIDs returns the distinct customization requests the
// order fulfills
func (o *Order) CustomizationRequestIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, item := range o.Items {
		if item.CustomizationRequestID == nil {
			continue
		}
		if _, ok := seen[*item.CustomizationRequestID]; ok {
			continue
		}
		seen[*item.CustomizationRequestID] = struct{}{}
		ids = append(ids, *item.CustomizationRequestID)
	}
	return ids
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
