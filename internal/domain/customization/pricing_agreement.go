package customization

import (
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType represents how the design fee is paid out
type PaymentType string

const (
	PaymentTypeUpfront     PaymentType = "upfront"
	PaymentTypeHalfPayment PaymentType = "half_payment"
	PaymentTypeMilestone   PaymentType = "milestone"
)

// IsValid checks if the payment type is known
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeUpfront, PaymentTypeHalfPayment, PaymentTypeMilestone:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// milestoneSumTolerance is the allowed drift between the milestone sum and
// the design fee.
var milestoneSumTolerance = decimal.NewFromFloat(0.01)

// Milestone is a named installment of a milestone payment plan
type Milestone struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PricingAgreement is the designer's fee quote and payment plan for a
// customization request. It is embedded in the request and immutable once
// the request is approved.
type PricingAgreement struct {
	DesignFee   decimal.Decimal `json:"design_fee"`
	PaymentType PaymentType     `json:"payment_type"`
	Milestones  []Milestone     `json:"milestones,omitempty"`
}

// NewPricingAgreement validates and builds a pricing agreement
func NewPricingAgreement(designFee decimal.Decimal, paymentType PaymentType, milestones []Milestone) (*PricingAgreement, error) {
	if designFee.IsNegative() {
		return nil, shared.NewValidationError("INVALID_FEE", "Design fee cannot be negative")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewValidationError("INVALID_PAYMENT_TYPE", "Unknown payment type")
	}

	if paymentType == PaymentTypeMilestone {
		if len(milestones) == 0 {
			return nil, shared.NewValidationError("MISSING_MILESTONES", "Milestone payment plan requires at least one milestone")
		}
		sum := decimal.Zero
		for _, m := range milestones {
			if m.Description == "" {
				return nil, shared.NewValidationError("INVALID_MILESTONE", "Milestone description cannot be empty")
			}
			if m.Amount.IsNegative() {
				return nil, shared.NewValidationError("INVALID_MILESTONE", "Milestone amount cannot be negative")
			}
			sum = sum.Add(m.Amount)
		}
		if sum.Sub(designFee).Abs().GreaterThan(milestoneSumTolerance) {
			return nil, shared.NewValidationError("MILESTONE_SUM_MISMATCH",
				"Milestone amounts must sum to the design fee")
		}
	} else if len(milestones) > 0 {
		return nil, shared.NewValidationError("UNEXPECTED_MILESTONES", "Milestones are only allowed for milestone payment plans")
	}

	return &PricingAgreement{
		DesignFee:   designFee,
		PaymentType: paymentType,
		Milestones:  milestones,
	}, nil
}
