package customization

import (
	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRequest = "CustomizationRequest"

// Event type constants
const (
	EventTypeRequestCreated           = "CustomizationRequestCreated"
	EventTypeRequestAccepted          = "CustomizationRequestAccepted"
	EventTypeRequestSubmitted         = "CustomizationRequestSubmitted"
	EventTypeRequestApproved          = "CustomizationRequestApproved"
	EventTypeRequestRevisionRequested = "CustomizationRequestRevisionRequested"
	EventTypeRequestCancelled         = "CustomizationRequestCancelled"
	EventTypeRequestCompleted         = "CustomizationRequestCompleted"
	EventTypeShopSelected             = "CustomizationShopSelected"
	EventTypeShopSelectionReopened    = "CustomizationShopSelectionReopened"
	EventTypePricingAgreementSet      = "PricingAgreementSet"
)

// RequestCreatedEvent is raised when a customer opens a customization request
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewRequestCreatedEvent creates a new RequestCreatedEvent
func NewRequestCreatedEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCreated, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		ProductID:       r.ProductID,
		CustomerID:      r.CustomerID,
	}
}

// EventType returns the event type name
func (e *RequestCreatedEvent) EventType() string {
	return EventTypeRequestCreated
}

// RequestAcceptedEvent is raised when the designer starts work
type RequestAcceptedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	DesignerID uuid.UUID `json:"designer_id"`
}

// NewRequestAcceptedEvent creates a new RequestAcceptedEvent
func NewRequestAcceptedEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestAcceptedEvent {
	return &RequestAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestAccepted, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		DesignerID:      actorID,
	}
}

// EventType returns the event type name
func (e *RequestAcceptedEvent) EventType() string {
	return EventTypeRequestAccepted
}

// RequestSubmittedEvent is raised when the designer submits final work
type RequestSubmittedEvent struct {
	shared.BaseDomainEvent
	RequestID    uuid.UUID `json:"request_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	DesignFiles  []string  `json:"design_files"`
	PreviewFiles []string  `json:"preview_files,omitempty"`
}

// NewRequestSubmittedEvent creates a new RequestSubmittedEvent
func NewRequestSubmittedEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestSubmittedEvent {
	return &RequestSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestSubmitted, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		CustomerID:      r.CustomerID,
		DesignFiles:     r.DesignFiles,
		PreviewFiles:    r.PreviewFiles,
	}
}

// EventType returns the event type name
func (e *RequestSubmittedEvent) EventType() string {
	return EventTypeRequestSubmitted
}

// RequestApprovedEvent is raised when the customer approves the design
type RequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID  `json:"request_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	DesignerID *uuid.UUID `json:"designer_id,omitempty"`
	ShopID     *uuid.UUID `json:"shop_id,omitempty"`
}

// NewRequestApprovedEvent creates a new RequestApprovedEvent
func NewRequestApprovedEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestApprovedEvent {
	return &RequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestApproved, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		CustomerID:      r.CustomerID,
		DesignerID:      r.DesignerID,
		ShopID:          r.ShopID,
	}
}

// EventType returns the event type name
func (e *RequestApprovedEvent) EventType() string {
	return EventTypeRequestApproved
}

// RequestRevisionRequestedEvent is raised when the customer asks for changes
type RequestRevisionRequestedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID  `json:"request_id"`
	DesignerID *uuid.UUID `json:"designer_id,omitempty"`
	Reason     string     `json:"reason"`
}

// NewRequestRevisionRequestedEvent creates a new RequestRevisionRequestedEvent
func NewRequestRevisionRequestedEvent(r *CustomizationRequest, actorID uuid.UUID, reason string) *RequestRevisionRequestedEvent {
	return &RequestRevisionRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestRevisionRequested, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		DesignerID:      r.DesignerID,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *RequestRevisionRequestedEvent) EventType() string {
	return EventTypeRequestRevisionRequested
}

// RequestCancelledEvent is raised when the customer cancels the request
type RequestCancelledEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID  `json:"request_id"`
	DesignerID *uuid.UUID `json:"designer_id,omitempty"`
}

// NewRequestCancelledEvent creates a new RequestCancelledEvent
func NewRequestCancelledEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestCancelledEvent {
	return &RequestCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCancelled, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		DesignerID:      r.DesignerID,
	}
}

// EventType returns the event type name
func (e *RequestCancelledEvent) EventType() string {
	return EventTypeRequestCancelled
}

// RequestCompletedEvent is raised when the fulfilling order closes the request
type RequestCompletedEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID `json:"request_id"`
}

// NewRequestCompletedEvent creates a new RequestCompletedEvent
func NewRequestCompletedEvent(r *CustomizationRequest, actorID uuid.UUID) *RequestCompletedEvent {
	return &RequestCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCompleted, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
	}
}

// EventType returns the event type name
func (e *RequestCompletedEvent) EventType() string {
	return EventTypeRequestCompleted
}

// ShopSelectedEvent is raised when the customer picks a fulfillment shop
type ShopSelectedEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID `json:"request_id"`
	ShopID    uuid.UUID `json:"shop_id"`
}

// NewShopSelectedEvent creates a new ShopSelectedEvent
func NewShopSelectedEvent(r *CustomizationRequest, actorID, shopID uuid.UUID) *ShopSelectedEvent {
	return &ShopSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopSelected, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		ShopID:          shopID,
	}
}

// EventType returns the event type name
func (e *ShopSelectedEvent) EventType() string {
	return EventTypeShopSelected
}

// ShopSelectionReopenedEvent is raised when the fulfilling order's
// cancellation reopens the shop choice on an approved request
type ShopSelectionReopenedEvent struct {
	shared.BaseDomainEvent
	RequestID      uuid.UUID `json:"request_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	PreviousShopID uuid.UUID `json:"previous_shop_id"`
}

// NewShopSelectionReopenedEvent creates a new ShopSelectionReopenedEvent
func NewShopSelectionReopenedEvent(r *CustomizationRequest, previousShopID uuid.UUID) *ShopSelectionReopenedEvent {
	return &ShopSelectionReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopSelectionReopened, AggregateTypeRequest, r.ID, uuid.Nil),
		RequestID:       r.ID,
		CustomerID:      r.CustomerID,
		PreviousShopID:  previousShopID,
	}
}

// EventType returns the event type name
func (e *ShopSelectionReopenedEvent) EventType() string {
	return EventTypeShopSelectionReopened
}

// PricingAgreementSetEvent is raised when the designer quotes the fee
type PricingAgreementSetEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID         `json:"request_id"`
	Agreement *PricingAgreement `json:"agreement"`
}

// NewPricingAgreementSetEvent creates a new PricingAgreementSetEvent
func NewPricingAgreementSetEvent(r *CustomizationRequest, actorID uuid.UUID) *PricingAgreementSetEvent {
	return &PricingAgreementSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePricingAgreementSet, AggregateTypeRequest, r.ID, actorID),
		RequestID:       r.ID,
		Agreement:       r.Agreement,
	}
}

// EventType returns the event type name
func (e *PricingAgreementSetEvent) EventType() string {
	return EventTypePricingAgreementSet
}
