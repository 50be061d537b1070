package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product represents a catalog product offered on the marketplace.
// Products are owned by a shop and may carry a designer of record whose
// designs the product is based on. Category and tags drive shop matching
// for customization requests.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Category    string
	Tags        []string `gorm:"type:jsonb;serializer:json"`
	ShopID      uuid.UUID
	DesignerID  *uuid.UUID
	BasePrice   decimal.Decimal
	Customizable bool
	Status      ProductStatus
	Description string
}

// TableName returns the table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, category string, shopID uuid.UUID, basePrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Product name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewValidationError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SHOP", "Owning shop ID cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Tags:              make([]string, 0),
		ShopID:            shopID,
		BasePrice:         basePrice,
		Status:            ProductStatusActive,
	}, nil
}

// SetDesigner assigns the designer of record
func (p *Product) SetDesigner(designerID uuid.UUID) error {
	if designerID == uuid.Nil {
		return shared.NewValidationError("INVALID_DESIGNER", "Designer ID cannot be empty")
	}
	p.DesignerID = &designerID
	p.UpdatedAt = time.Now()
	return nil
}

// SetTags replaces the product tags
func (p *Product) SetTags(tags []string) {
	p.Tags = tags
	p.UpdatedAt = time.Now()
}

// EnableCustomization marks the product as customizable
func (p *Product) EnableCustomization() {
	p.Customizable = true
	p.UpdatedAt = time.Now()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// MatchTerms returns the category plus tags used for shop specialty matching
func (p *Product) MatchTerms() []string {
	terms := make([]string, 0, len(p.Tags)+1)
	terms = append(terms, p.Category)
	terms = append(terms, p.Tags...)
	return terms
}
