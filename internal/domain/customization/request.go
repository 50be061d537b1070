package customization

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// RequestStatus represents the lifecycle status of a customization request
type RequestStatus string

const (
	RequestStatusPendingDesignerReview     RequestStatus = "pending_designer_review"
	RequestStatusInProgress                RequestStatus = "in_progress"
	RequestStatusAwaitingCustomerApproval  RequestStatus = "awaiting_customer_approval"
	RequestStatusApproved                  RequestStatus = "approved"
	RequestStatusCompleted                 RequestStatus = "completed"
	RequestStatusCancelled                 RequestStatus = "cancelled"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPendingDesignerReview, RequestStatusInProgress,
		RequestStatusAwaitingCustomerApproval, RequestStatusApproved,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The awaiting_customer_approval -> in_progress edge is the revision loop.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPendingDesignerReview:
		return target == RequestStatusInProgress || target == RequestStatusCancelled
	case RequestStatusInProgress:
		return target == RequestStatusAwaitingCustomerApproval || target == RequestStatusCancelled
	case RequestStatusAwaitingCustomerApproval:
		return target == RequestStatusApproved || target == RequestStatusInProgress
	case RequestStatusApproved:
		return target == RequestStatusCompleted
	case RequestStatusCompleted, RequestStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CustomizationRequest tracks a customer's bespoke design order from brief
// through designer delivery and shop fulfillment. Shop selection and pricing
// run as independent sub-processes but both gate the approved state.
type CustomizationRequest struct {
	shared.BaseAggregateRoot
	ProductID       uuid.UUID
	CustomerID      uuid.UUID
	DesignerID      *uuid.UUID
	ShopID          *uuid.UUID // selected fulfillment shop
	Status          RequestStatus
	CustomerNotes   string
	CustomerFiles   []string `gorm:"type:jsonb;serializer:json"` // opaque storage handles
	DesignFiles     []string `gorm:"type:jsonb;serializer:json"`
	PreviewFiles    []string `gorm:"type:jsonb;serializer:json"`
	Agreement       *PricingAgreement `gorm:"type:jsonb;serializer:json"`
	RejectionReason string
	RequestedAt     time.Time
	AssignedAt      *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name
func (CustomizationRequest) TableName() string {
	return "customization_requests"
}

// NewCustomizationRequest creates a request awaiting designer review
func NewCustomizationRequest(productID, customerID uuid.UUID, notes string, customerFiles []string) (*CustomizationRequest, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	r := &CustomizationRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		CustomerID:        customerID,
		Status:            RequestStatusPendingDesignerReview,
		CustomerNotes:     notes,
		CustomerFiles:     customerFiles,
		RequestedAt:       time.Now(),
	}

	r.AddDomainEvent(NewRequestCreatedEvent(r, customerID))

	return r, nil
}

// guardTransition validates the transition table
func (r *CustomizationRequest) guardTransition(target RequestStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return shared.NewConflictError("INVALID_STATE",
			fmt.Sprintf("Cannot move customization request from %s to %s", r.Status, target))
	}
	return nil
}

// guardCustomer validates that the actor is the requesting customer
func (r *CustomizationRequest) guardCustomer(actor shared.Actor) error {
	if !actor.IsCustomer() || actor.ID != r.CustomerID {
		return shared.NewPermissionError("NOT_REQUEST_CUSTOMER", "Only the requesting customer may perform this action")
	}
	return nil
}

// guardDesigner validates that the actor is the assigned designer
func (r *CustomizationRequest) guardDesigner(actor shared.Actor) error {
	if !actor.IsDesigner() || r.DesignerID == nil || actor.ID != *r.DesignerID {
		return shared.NewPermissionError("NOT_ASSIGNED_DESIGNER", "Only the assigned designer may perform this action")
	}
	return nil
}

// AssignDesigner records the designer matched to this request
func (r *CustomizationRequest) AssignDesigner(designerID uuid.UUID) error {
	if designerID == uuid.Nil {
		return shared.NewValidationError("INVALID_DESIGNER", "Designer ID cannot be empty")
	}
	if r.Status != RequestStatusPendingDesignerReview {
		return shared.NewConflictError("INVALID_STATE", "Designer can only be assigned while the request awaits review")
	}

	now := time.Now()
	r.DesignerID = &designerID
	r.AssignedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// DesignerAccept starts work: pending_designer_review -> in_progress
func (r *CustomizationRequest) DesignerAccept(actor shared.Actor) error {
	if err := r.guardDesigner(actor); err != nil {
		return err
	}
	if err := r.guardTransition(RequestStatusInProgress); err != nil {
		return err
	}

	r.Status = RequestStatusInProgress
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestAcceptedEvent(r, actor.ID))

	return nil
}

// SubmitForReview delivers the final work:
// in_progress -> awaiting_customer_approval. Final file handles replace any
// previous submission; a prior rejection reason stays visible.
func (r *CustomizationRequest) SubmitForReview(actor shared.Actor, designFiles, previewFiles []string) error {
	if err := r.guardDesigner(actor); err != nil {
		return err
	}
	if len(designFiles) == 0 {
		return shared.NewValidationError("MISSING_FILES", "At least one design file is required for review")
	}
	if err := r.guardTransition(RequestStatusAwaitingCustomerApproval); err != nil {
		return err
	}

	r.Status = RequestStatusAwaitingCustomerApproval
	r.DesignFiles = designFiles
	r.PreviewFiles = previewFiles
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestSubmittedEvent(r, actor.ID))

	return nil
}

// Approve accepts the design: awaiting_customer_approval -> approved.
// A selected shop and a finalized pricing agreement are blocking
// preconditions.
func (r *CustomizationRequest) Approve(actor shared.Actor) error {
	if err := r.guardCustomer(actor); err != nil {
		return err
	}
	if err := r.guardTransition(RequestStatusApproved); err != nil {
		return err
	}
	if r.ShopID == nil {
		return shared.NewConflictError("NO_SHOP_SELECTED", "A fulfillment shop must be selected before approval")
	}
	if r.Agreement == nil {
		return shared.NewConflictError("NO_PRICING_AGREEMENT", "A pricing agreement must be set before approval")
	}

	r.Status = RequestStatusApproved
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestApprovedEvent(r, actor.ID))

	return nil
}

// RequestRevision sends the design back:
// awaiting_customer_approval -> in_progress. The reason is mandatory and is
// retained for designer visibility; this is a revision request, not a
// terminal rejection.
func (r *CustomizationRequest) RequestRevision(actor shared.Actor, reason string) error {
	if err := r.guardCustomer(actor); err != nil {
		return err
	}
	if reason == "" {
		return shared.NewValidationError("MISSING_REASON", "A reason is required to request a revision")
	}
	if err := r.guardTransition(RequestStatusInProgress); err != nil {
		return err
	}

	r.Status = RequestStatusInProgress
	r.RejectionReason = reason
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestRevisionRequestedEvent(r, actor.ID, reason))

	return nil
}

// Cancel closes the request. Customer only, and only before the design is
// submitted for approval.
func (r *CustomizationRequest) Cancel(actor shared.Actor) error {
	if err := r.guardCustomer(actor); err != nil {
		return err
	}
	if r.Status != RequestStatusPendingDesignerReview && r.Status != RequestStatusInProgress {
		return shared.NewConflictError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel customization request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestCancelledEvent(r, actor.ID))

	return nil
}

// SelectShop records the chosen fulfillment shop. May occur at any point
// before approval, concurrently with design progress. An approved request
// accepts a new selection only after ReopenShopSelection cleared the
// previous one.
func (r *CustomizationRequest) SelectShop(actor shared.Actor, shopID uuid.UUID) error {
	if err := r.guardCustomer(actor); err != nil {
		return err
	}
	if shopID == uuid.Nil {
		return shared.NewValidationError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled {
		return shared.NewConflictError("INVALID_STATE", "Shop cannot be selected on a closed request")
	}
	if r.Status == RequestStatusApproved && r.ShopID != nil {
		return shared.NewConflictError("INVALID_STATE", "Shop cannot be changed after approval")
	}

	r.ShopID = &shopID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewShopSelectedEvent(r, actor.ID, shopID))

	return nil
}

// ReopenShopSelection clears the selected shop after the fulfilling order
// was cancelled, so the customer can pick a different shop. The request
// stays approved; only the fulfillment choice reopens.
func (r *CustomizationRequest) ReopenShopSelection() error {
	if r.Status != RequestStatusApproved {
		return shared.NewConflictError("INVALID_STATE", "Shop selection can only be reopened on an approved request")
	}
	if r.ShopID == nil {
		return nil
	}

	previous := *r.ShopID
	r.ShopID = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewShopSelectionReopenedEvent(r, previous))

	return nil
}

// SetPricingAgreement records the designer's fee quote. Pricing may precede
// or follow shop selection; it does not change the request status.
func (r *CustomizationRequest) SetPricingAgreement(actor shared.Actor, agreement *PricingAgreement) error {
	if err := r.guardDesigner(actor); err != nil {
		return err
	}
	if agreement == nil {
		return shared.NewValidationError("INVALID_AGREEMENT", "Pricing agreement cannot be empty")
	}
	if r.Status == RequestStatusApproved || r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled {
		return shared.NewConflictError("INVALID_STATE", "Pricing cannot be changed after approval")
	}

	r.Agreement = agreement
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewPricingAgreementSetEvent(r, actor.ID))

	return nil
}

// Complete closes the request after the fulfilling order ships or delivers.
// System transition, not actor-initiated.
func (r *CustomizationRequest) Complete() error {
	if err := r.guardTransition(RequestStatusCompleted); err != nil {
		return err
	}

	now := time.Now()
	r.Status = RequestStatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRequestCompletedEvent(r, uuid.Nil))

	return nil
}

// IsTerminal returns true if the request is completed or cancelled
func (r *CustomizationRequest) IsTerminal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled
}

// ReadyForApproval returns true when both approval preconditions hold
func (r *CustomizationRequest) ReadyForApproval() bool {
	return r.ShopID != nil && r.Agreement != nil
}

// HasFile returns true if the storage key is attached to the request as a
// customer, design, or preview file
func (r *CustomizationRequest) HasFile(storageKey string) bool {
	for _, files := range [][]string{r.CustomerFiles, r.DesignFiles, r.PreviewFiles} {
		for _, key := range files {
			if key == storageKey {
				return true
			}
		}
	}
	return false
}
