package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
)

// GormDesignerRepository implements partner.DesignerRepository using GORM
type GormDesignerRepository struct {
	db *gorm.DB
}

// NewGormDesignerRepository creates a new GormDesignerRepository
func NewGormDesignerRepository(db *gorm.DB) *GormDesignerRepository {
	return &GormDesignerRepository{db: db}
}

// FindByID finds a designer by ID
func (r *GormDesignerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Designer, error) {
	var designer partner.Designer
	if err := r.db.WithContext(ctx).First(&designer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &designer, nil
}

// Save creates or updates a designer
func (r *GormDesignerRepository) Save(ctx context.Context, designer *partner.Designer) error {
	return r.db.WithContext(ctx).Save(designer).Error
}

// Ensure GormDesignerRepository implements DesignerRepository
var _ partner.DesignerRepository = (*GormDesignerRepository)(nil)
