package discount

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/discount"
	"github.com/printmarket/backend/internal/domain/shared"
)

// DiscountService handles discount administration, validation and application
type DiscountService struct {
	discountRepo discount.DiscountRepository
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(discountRepo discount.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// Create creates a discount. Admin and shop actors only; a shop actor owns
// the discount it creates.
func (s *DiscountService) Create(ctx context.Context, actor shared.Actor, req CreateDiscountRequest) (*DiscountResponse, error) {
	if actor.Role != shared.ActorRoleAdmin && !actor.IsShop() {
		return nil, shared.NewPermissionError("NOT_DISCOUNT_OWNER", "Only shops and administrators may manage discounts")
	}

	d, err := discount.NewDiscount(req.Name, discount.DiscountType(req.Type), discount.DiscountScope(req.Scope),
		req.Value, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	d.TargetIDs = req.TargetIDs
	d.MinOrderAmount = req.MinOrderAmount
	d.MaxDiscountAmount = req.MaxDiscountAmount
	d.AllowedUserIDs = req.AllowedUserIDs
	d.UsageLimit = req.UsageLimit
	if actor.IsShop() {
		shopID := actor.ID
		d.OwnerShopID = &shopID
	} else {
		d.OwnerShopID = req.OwnerShopID
	}

	if err := s.discountRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDiscountResponse(d)
	return &response, nil
}

// GetByID retrieves a discount by ID
func (s *DiscountService) GetByID(ctx context.Context, discountID uuid.UUID) (*DiscountResponse, error) {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	response := ToDiscountResponse(d)
	return &response, nil
}

// ListByShop retrieves a shop's active discounts
func (s *DiscountService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]DiscountResponse, error) {
	discounts, err := s.discountRepo.FindActiveByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToDiscountResponses(discounts), nil
}

// Deactivate turns a discount off
func (s *DiscountService) Deactivate(ctx context.Context, actor shared.Actor, discountID uuid.UUID) (*DiscountResponse, error) {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	if err := s.guardOwner(actor, d); err != nil {
		return nil, err
	}

	d.Deactivate()
	if err := s.discountRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDiscountResponse(d)
	return &response, nil
}

// Validate checks the discount against an order without consuming a usage.
// All checks must pass; a failing check yields a structured reason and no
// amount.
func (s *DiscountService) Validate(ctx context.Context, discountID uuid.UUID, req ValidateDiscountRequest) (*ValidateDiscountResponse, error) {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}

	if reason := d.Validate(time.Now(), req.OrderAmount, req.UserID); reason != "" {
		return &ValidateDiscountResponse{Valid: false, Reason: reason}, nil
	}

	if d.Scope == discount.ScopeProduct || d.Scope == discount.ScopeCategory {
		keys := make([]string, 0, len(req.ProductIDs)+len(req.CategoryIDs))
		for _, id := range req.ProductIDs {
			keys = append(keys, id.String())
		}
		keys = append(keys, req.CategoryIDs...)
		if !d.AppliesTo(keys) {
			return &ValidateDiscountResponse{Valid: false, Reason: "discount does not apply to any item in the order"}, nil
		}
	}

	amount := d.Calculate(req.OrderAmount, req.ScopedAmount, req.ShippingCost)
	return &ValidateDiscountResponse{Valid: true, Amount: amount}, nil
}

// Apply computes the discount amount and consumes exactly one usage through
// the repository's guarded counter increment. Distinct from Validate, which
// has no side effects.
func (s *DiscountService) Apply(ctx context.Context, discountID uuid.UUID, req ApplyDiscountRequest) (*ValidateDiscountResponse, error) {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}

	if reason := d.Validate(time.Now(), req.OrderAmount, nil); reason != "" {
		return &ValidateDiscountResponse{Valid: false, Reason: reason}, nil
	}

	if err := s.discountRepo.IncrementUsage(ctx, discountID); err != nil {
		return nil, err
	}

	amount := d.Calculate(req.OrderAmount, req.ScopedAmount, req.ShippingCost)
	return &ValidateDiscountResponse{Valid: true, Amount: amount}, nil
}

func (s *DiscountService) guardOwner(actor shared.Actor, d *discount.Discount) error {
	if actor.Role == shared.ActorRoleAdmin {
		return nil
	}
	if actor.IsShop() && d.OwnerShopID != nil && *d.OwnerShopID == actor.ID {
		return nil
	}
	return shared.NewPermissionError("NOT_DISCOUNT_OWNER", "Only the owning shop or an administrator may manage this discount")
}
