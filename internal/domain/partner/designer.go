package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
)

// DesignerStatus represents the availability status of a designer
type DesignerStatus string

const (
	DesignerStatusActive   DesignerStatus = "active"
	DesignerStatusInactive DesignerStatus = "inactive"
)

// IsValid checks if the status is a valid DesignerStatus
func (s DesignerStatus) IsValid() bool {
	switch s {
	case DesignerStatusActive, DesignerStatusInactive:
		return true
	}
	return false
}

// Designer represents an independent designer who takes customization work.
// A designer may also operate their own shop (ShopID), which gives that shop
// second-bucket priority when matching shops for the designer's requests.
type Designer struct {
	shared.BaseAggregateRoot
	DisplayName string
	ShopID      *uuid.UUID
	Status      DesignerStatus
}

// TableName returns the table name
func (Designer) TableName() string {
	return "designers"
}

// NewDesigner creates a new designer
func NewDesigner(displayName string) (*Designer, error) {
	if displayName == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Designer display name cannot be empty")
	}
	return &Designer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DisplayName:       displayName,
		Status:            DesignerStatusActive,
	}, nil
}

// LinkShop records the shop operated by this designer
func (d *Designer) LinkShop(shopID uuid.UUID) error {
	if shopID == uuid.Nil {
		return shared.NewValidationError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	d.ShopID = &shopID
	d.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the designer accepts new work
func (d *Designer) IsActive() bool {
	return d.Status == DesignerStatusActive
}
