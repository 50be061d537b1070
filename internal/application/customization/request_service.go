package customization

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/catalog"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ShopMatchInvalidator drops memoized shop matching results when their
// inputs change. Implemented by ShopMatchingService.
type ShopMatchInvalidator interface {
	InvalidateForRequest(ctx context.Context, requestID uuid.UUID) error
}

// RequestService handles customization request operations
type RequestService struct {
	requestRepo      customization.RequestRepository
	productRepo      catalog.ProductRepository
	shopRepo         partner.ShopRepository
	eventPublisher   shared.EventPublisher
	matchInvalidator ShopMatchInvalidator
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo customization.RequestRepository,
	productRepo catalog.ProductRepository,
	shopRepo partner.ShopRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMatchInvalidator sets the shop matching cache invalidator
func (s *RequestService) SetMatchInvalidator(invalidator ShopMatchInvalidator) {
	s.matchInvalidator = invalidator
}

// Create opens a customization request for a customizable product. When the
// product carries a designer of record, the request is assigned to them
// immediately.
func (s *RequestService) Create(ctx context.Context, actor shared.Actor, req CreateRequestRequest) (*RequestResponse, error) {
	if !actor.IsCustomer() {
		return nil, shared.NewPermissionError("NOT_CUSTOMER", "Only customers may open customization requests")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewConflictError("PRODUCT_INACTIVE", "Product is not available")
	}
	if !product.Customizable {
		return nil, shared.NewConflictError("NOT_CUSTOMIZABLE", "Product does not support customization")
	}

	request, err := customization.NewCustomizationRequest(product.ID, actor.ID, req.Notes, req.Files)
	if err != nil {
		return nil, err
	}

	if product.DesignerID != nil {
		if err := request.AssignDesigner(*product.DesignerID); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a request by ID
func (s *RequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(request)
	return &response, nil
}

// ListByCustomer retrieves a customer's requests
func (s *RequestService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter RequestListFilter) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByCustomer(ctx, customerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// ListByDesigner retrieves a designer's assigned requests
func (s *RequestService) ListByDesigner(ctx context.Context, designerID uuid.UUID, filter RequestListFilter) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByDesigner(ctx, designerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// DesignerAccept starts design work on a request
func (s *RequestService) DesignerAccept(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(r *customization.CustomizationRequest) error {
		return r.DesignerAccept(actor)
	})
}

// SubmitDesign delivers the final design for customer review
func (s *RequestService) SubmitDesign(ctx context.Context, actor shared.Actor, requestID uuid.UUID, req SubmitDesignRequest) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(r *customization.CustomizationRequest) error {
		return r.SubmitForReview(actor, req.DesignFiles, req.PreviewFiles)
	})
}

// Approve accepts the submitted design. Requires a selected shop and a
// pricing agreement.
func (s *RequestService) Approve(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(r *customization.CustomizationRequest) error {
		return r.Approve(actor)
	})
}

// RequestRevision sends the design back to the designer
func (s *RequestService) RequestRevision(ctx context.Context, actor shared.Actor, requestID uuid.UUID, req RequestRevisionRequest) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(r *customization.CustomizationRequest) error {
		return r.RequestRevision(actor, req.Reason)
	})
}

// Cancel closes the request before design submission
func (s *RequestService) Cancel(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(r *customization.CustomizationRequest) error {
		return r.Cancel(actor)
	})
}

// SelectShop records the customer's fulfillment shop choice. The shop must
// currently be an eligible fulfillment candidate.
func (s *RequestService) SelectShop(ctx context.Context, actor shared.Actor, requestID uuid.UUID, req SelectShopRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	if !shop.IsEligible() {
		return nil, shared.NewConflictError("SHOP_NOT_ELIGIBLE", "Shop is not an eligible fulfillment candidate")
	}

	if err := request.SelectShop(actor, shop.ID); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	if s.matchInvalidator != nil {
		// best effort: a stale memoized candidate list expires on its own
		_ = s.matchInvalidator.InvalidateForRequest(ctx, request.ID)
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

// SetPricingAgreement records the designer's validated fee quote. It does
// not change the request's status.
func (s *RequestService) SetPricingAgreement(ctx context.Context, actor shared.Actor, requestID uuid.UUID, req SetPricingAgreementRequest) (*RequestResponse, error) {
	milestones := make([]customization.Milestone, 0, len(req.Milestones))
	for _, m := range req.Milestones {
		milestones = append(milestones, customization.Milestone{
			Description: m.Description,
			Amount:      m.Amount,
		})
	}

	agreement, err := customization.NewPricingAgreement(req.DesignFee, customization.PaymentType(req.PaymentType), milestones)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.SetPricingAgreement(actor, agreement); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

// transition runs a domain mutation and persists it as a conditional write
// keyed on the pre-mutation status
func (s *RequestService) transition(ctx context.Context, requestID uuid.UUID, mutate func(r *customization.CustomizationRequest) error) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	from := request.Status
	if err := mutate(request); err != nil {
		return nil, err
	}

	if err := s.requestRepo.TransitionStatus(ctx, request, from); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

// publishEvents emits and clears pending domain events. Best effort.
func (s *RequestService) publishEvents(ctx context.Context, r *customization.CustomizationRequest) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range r.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	r.ClearDomainEvents()
}

func toDomainFilter(filter RequestListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	return domainFilter
}
