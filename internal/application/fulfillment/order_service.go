package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/catalog"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/discount"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EscrowLedger releases funds held for an order to the fulfilling shop.
// Release happens inside the shipping transition's transaction: a ledger
// failure rolls the transition back.
type EscrowLedger interface {
	ReleaseFunds(ctx context.Context, orderID, shopID uuid.UUID, amount decimal.Decimal) error
}

// OrderService handles order fulfillment operations
type OrderService struct {
	orderRepo      order.OrderRepository
	productRepo    catalog.ProductRepository
	requestRepo    customization.RequestRepository
	discountRepo   discount.DiscountRepository
	ledger         EscrowLedger
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	requestRepo customization.RequestRepository,
	discountRepo discount.DiscountRepository,
	ledger EscrowLedger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		requestRepo:  requestRepo,
		discountRepo: discountRepo,
		ledger:       ledger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new order for the acting customer. Lines referencing a
// customization request require the request to be approved and assigned to
// the fulfilling shop; their unit price is the product base price plus the
// agreed design fee.
func (s *OrderService) Create(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if !actor.IsCustomer() {
		return nil, shared.NewPermissionError("NOT_CUSTOMER", "Only customers may place orders")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(orderNumber, actor.ID, req.ShopID)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		name, unitPrice, err := s.resolveLine(ctx, req.ShopID, input)
		if err != nil {
			return nil, err
		}

		item, err := o.AddItem(input.ProductID, input.DesignID, name, input.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		if input.CustomizationRequestID != nil {
			if err := o.GetItem(item.ID).LinkCustomizationRequest(*input.CustomizationRequestID); err != nil {
				return nil, err
			}
		}
	}

	if err := o.SetCharges(req.Tax, req.ShippingCost); err != nil {
		return nil, err
	}
	o.Notes = req.Notes

	if req.DiscountID != nil {
		if err := s.applyDiscount(ctx, o, *req.DiscountID, actor.ID); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		if o.DiscountID != nil {
			// release the usage consumed above so a failed checkout
			// cannot burn the discount cap
			_ = s.discountRepo.DecrementUsage(ctx, *o.DiscountID)
		}
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// resolveLine prices an order line from the catalog and, for customization
// lines, the approved pricing agreement. The marketplace quotes in USD.
func (s *OrderService) resolveLine(ctx context.Context, shopID uuid.UUID, input CreateOrderItemInput) (string, valueobject.Money, error) {
	if input.ProductID == nil {
		return "", valueobject.ZeroUSD(), shared.NewValidationError("INVALID_REFERENCE", "Order line must reference a product")
	}

	product, err := s.productRepo.FindByID(ctx, *input.ProductID)
	if err != nil {
		return "", valueobject.ZeroUSD(), err
	}
	if !product.IsActive() {
		return "", valueobject.ZeroUSD(), shared.NewConflictError("PRODUCT_INACTIVE", "Product is not available for ordering")
	}

	unitPrice := product.BasePrice

	if input.CustomizationRequestID != nil {
		request, err := s.requestRepo.FindByID(ctx, *input.CustomizationRequestID)
		if err != nil {
			return "", valueobject.ZeroUSD(), err
		}
		if request.Status != customization.RequestStatusApproved {
			return "", valueobject.ZeroUSD(), shared.NewConflictError("REQUEST_NOT_APPROVED",
				"Customization request must be approved before ordering")
		}
		if request.ShopID == nil || *request.ShopID != shopID {
			return "", valueobject.ZeroUSD(), shared.NewConflictError("SHOP_MISMATCH",
				"Order must be fulfilled by the shop selected on the customization request")
		}
		if request.Agreement != nil {
			unitPrice = unitPrice.Add(request.Agreement.DesignFee)
		}
	}

	return product.Name, valueobject.NewMoneyUSD(unitPrice), nil
}

// applyDiscount validates the discount, computes its amount and consumes one
// usage. The guarded counter increment is what enforces the usage limit under
// concurrent checkouts.
func (s *OrderService) applyDiscount(ctx context.Context, o *order.Order, discountID, customerID uuid.UUID) error {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		return err
	}

	chargeBase := o.Subtotal.Add(o.Tax).Add(o.ShippingCost)
	if reason := d.Validate(o.CreatedAt, chargeBase, &customerID); reason != "" {
		return shared.NewValidationError("DISCOUNT_NOT_APPLICABLE", reason)
	}

	scopedAmount := s.scopedAmount(ctx, d, o)
	amount := d.Calculate(chargeBase, scopedAmount, o.ShippingCost)

	if err := s.discountRepo.IncrementUsage(ctx, discountID); err != nil {
		return err
	}

	return o.ApplyDiscount(discountID, amount)
}

// scopedAmount sums the line amounts the discount's target list covers
func (s *OrderService) scopedAmount(ctx context.Context, d *discount.Discount, o *order.Order) decimal.Decimal {
	if d.Scope != discount.ScopeProduct && d.Scope != discount.ScopeCategory {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, item := range o.Items {
		if item.ProductID == nil {
			continue
		}
		keys := []string{item.ProductID.String()}
		if d.Scope == discount.ScopeCategory {
			// category targets are matched through the product's catalog entry
			product, err := s.productRepo.FindByID(ctx, *item.ProductID)
			if err != nil {
				continue
			}
			keys = []string{product.Category}
		}
		if !d.AppliesTo(keys) {
			continue
		}
		sum = sum.Add(item.Amount)
	}
	return sum
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListItemResponses(orders), total, nil
}

// ListByCustomer retrieves a customer's orders
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderListItemResponses(orders), nil
}

// ListByShop retrieves a shop's incoming orders
func (s *OrderService) ListByShop(ctx context.Context, shopID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, error) {
	orders, err := s.orderRepo.FindByShop(ctx, shopID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderListItemResponses(orders), nil
}

// Accept moves the order into processing on behalf of the fulfilling shop
func (s *OrderService) Accept(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Accept(actor)
	}, nil)
}

// Reject cancels the order from pending or processing
func (s *OrderService) Reject(ctx context.Context, actor shared.Actor, orderID uuid.UUID, req RejectOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Reject(actor, req.Reason)
	}, nil)
}

// MarkReadyToShip marks the order ready for shipment
func (s *OrderService) MarkReadyToShip(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.MarkReadyToShip(actor)
	}, nil)
}

// AddTrackingAndShip records tracking and ships the order in one transition.
// For customization-linked orders the escrow release runs inside the same
// conditional write, so funds are released exactly once even when the call
// races with itself.
func (s *OrderService) AddTrackingAndShip(ctx context.Context, actor shared.Actor, orderID uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := o.ShipWithTracking(actor, req.TrackingNumber, req.Carrier); err != nil {
		return nil, err
	}

	var sideEffect func(ctx context.Context) error
	if o.HasCustomization() {
		sideEffect = func(ctx context.Context) error {
			return s.ledger.ReleaseFunds(ctx, o.ID, o.ShopID, o.TotalAmount)
		}
	}

	if err := s.orderRepo.TransitionStatus(ctx, o, from, sideEffect); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// MarkDelivered records delivery of a shipped order
func (s *OrderService) MarkDelivered(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.MarkDelivered(actor)
	}, nil)
}

// transition runs a domain mutation and persists it as a conditional write
// keyed on the pre-mutation status
func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, mutate func(o *order.Order) error, sideEffect func(ctx context.Context) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := mutate(o); err != nil {
		return nil, err
	}

	if err := s.orderRepo.TransitionStatus(ctx, o, from, sideEffect); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// publishEvents emits and clears the order's pending domain events.
// Best effort: a publish failure never fails the operation.
func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	return domainFilter
}
