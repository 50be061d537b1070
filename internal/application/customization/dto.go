package customization

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateRequestRequest represents a request to open a customization request
type CreateRequestRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Notes     string    `json:"notes" binding:"max=2000"`
	Files     []string  `json:"files" binding:"max=20"`
}

// SubmitDesignRequest represents the designer's final work submission
type SubmitDesignRequest struct {
	DesignFiles  []string `json:"design_files" binding:"required,min=1,max=20"`
	PreviewFiles []string `json:"preview_files" binding:"max=20"`
}

// RequestRevisionRequest represents a customer's revision request
type RequestRevisionRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=1000"`
}

// SelectShopRequest represents the customer's shop choice
type SelectShopRequest struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required"`
}

// MilestoneInput represents one installment of a milestone plan
type MilestoneInput struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// SetPricingAgreementRequest represents the designer's fee quote
type SetPricingAgreementRequest struct {
	DesignFee   decimal.Decimal  `json:"design_fee" binding:"required"`
	PaymentType string           `json:"payment_type" binding:"required,oneof=upfront half_payment milestone"`
	Milestones  []MilestoneInput `json:"milestones"`
}

// RequestListFilter represents filter options for request lists
type RequestListFilter struct {
	Status   *customization.RequestStatus `form:"status"`
	Page     int                          `form:"page"`
	PageSize int                          `form:"page_size"`
}

// MilestoneResponse represents a milestone in responses
type MilestoneResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PricingAgreementResponse represents a pricing agreement in responses
type PricingAgreementResponse struct {
	DesignFee   decimal.Decimal     `json:"design_fee"`
	PaymentType string              `json:"payment_type"`
	Milestones  []MilestoneResponse `json:"milestones,omitempty"`
}

// RequestResponse represents a customization request in responses
type RequestResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ProductID       uuid.UUID                 `json:"product_id"`
	CustomerID      uuid.UUID                 `json:"customer_id"`
	DesignerID      *uuid.UUID                `json:"designer_id,omitempty"`
	ShopID          *uuid.UUID                `json:"shop_id,omitempty"`
	Status          string                    `json:"status"`
	CustomerNotes   string                    `json:"customer_notes,omitempty"`
	CustomerFiles   []string                  `json:"customer_files,omitempty"`
	DesignFiles     []string                  `json:"design_files,omitempty"`
	PreviewFiles    []string                  `json:"preview_files,omitempty"`
	Agreement       *PricingAgreementResponse `json:"agreement,omitempty"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time                 `json:"requested_at"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// ShopCandidateResponse represents one eligible shop in matching results
type ShopCandidateResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Rating          decimal.Decimal `json:"rating"`
	CompletedOrders int64           `json:"completed_orders"`
	Reason          string          `json:"reason"`
}

// ShopMatchResponse represents the three recommendation buckets.
// Buckets are disjoint; a shop appears in at most one.
type ShopMatchResponse struct {
	ProductOwner  []ShopCandidateResponse `json:"product_owner"`
	DesignerShops []ShopCandidateResponse `json:"designer_shops"`
	Others        []ShopCandidateResponse `json:"others"`
}

// IsEmpty reports whether no shop matched any bucket
func (r ShopMatchResponse) IsEmpty() bool {
	return len(r.ProductOwner) == 0 && len(r.DesignerShops) == 0 && len(r.Others) == 0
}

// ToRequestResponse converts a request aggregate to a response DTO
func ToRequestResponse(r *customization.CustomizationRequest) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		CustomerID:      r.CustomerID,
		DesignerID:      r.DesignerID,
		ShopID:          r.ShopID,
		Status:          r.Status.String(),
		CustomerNotes:   r.CustomerNotes,
		CustomerFiles:   r.CustomerFiles,
		DesignFiles:     r.DesignFiles,
		PreviewFiles:    r.PreviewFiles,
		RejectionReason: r.RejectionReason,
		RequestedAt:     r.RequestedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Agreement != nil {
		agreement := PricingAgreementResponse{
			DesignFee:   r.Agreement.DesignFee,
			PaymentType: r.Agreement.PaymentType.String(),
		}
		for _, m := range r.Agreement.Milestones {
			agreement.Milestones = append(agreement.Milestones, MilestoneResponse{
				Description: m.Description,
				Amount:      m.Amount,
			})
		}
		resp.Agreement = &agreement
	}
	return resp
}

// ToRequestResponses converts request aggregates to response DTOs
func ToRequestResponses(requests []*customization.CustomizationRequest) []RequestResponse {
	responses := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, ToRequestResponse(r))
	}
	return responses
}

func toShopCandidate(s *partner.Shop, reason string) ShopCandidateResponse {
	return ShopCandidateResponse{
		ID:              s.ID,
		Name:            s.Name,
		Rating:          s.Rating,
		CompletedOrders: s.CompletedOrders,
		Reason:          reason,
	}
}
