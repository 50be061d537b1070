package customization

import (
	"context"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// RequestRepository defines the persistence contract for customization requests
type RequestRepository interface {
	// FindByID finds a request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomizationRequest, error)

	// FindAll finds requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*CustomizationRequest, error)

	// FindByCustomer finds requests opened by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*CustomizationRequest, error)

	// FindByDesigner finds requests assigned to a designer
	FindByDesigner(ctx context.Context, designerID uuid.UUID, filter shared.Filter) ([]*CustomizationRequest, error)

	// FindByStatus finds requests in a given status
	FindByStatus(ctx context.Context, status RequestStatus, filter shared.Filter) ([]*CustomizationRequest, error)

	// Save persists a request and its embedded agreement
	Save(ctx context.Context, r *CustomizationRequest) error

	// SaveWithLock persists the shop-selection and pricing columns under an
	// optimistic version check ("UPDATE ... WHERE version = ?"). The domain
	// mutation has already incremented Version; returns
	// shared.ErrConcurrencyConflict when the request changed since it was
	// read. Status is never written through this path.
	SaveWithLock(ctx context.Context, r *CustomizationRequest) error

	// TransitionStatus persists a status transition as a single conditional
	// write keyed on the prior status ("UPDATE ... WHERE status = from").
	// Returns shared.ErrConcurrencyConflict when no row matched, meaning a
	// concurrent actor moved the request first.
	TransitionStatus(ctx context.Context, r *CustomizationRequest, from RequestStatus) error

	// Count counts requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
