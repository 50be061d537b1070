package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/printmarket/backend/internal/domain/shared"
)

// ============================================================================
// IncrementUsage Tests
// ============================================================================

func TestGormDiscountRepository_IncrementUsage(t *testing.T) {
	t.Run("should bump the counter through the guarded update", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDiscountRepository(gormDB)
		id := uuid.New()

		mock.ExpectExec(`UPDATE "discounts" SET "used_count"=used_count \+ 1.*WHERE id = \$\d+ AND \(usage_limit IS NULL OR used_count < usage_limit\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementUsage(context.Background(), id)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should return conflict when the cap is exhausted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDiscountRepository(gormDB)

		mock.ExpectExec(`UPDATE "discounts" SET "used_count"=used_count \+ 1.*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementUsage(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Equal(t, shared.ErrorKindConflict, shared.KindOf(err))
	})
}

// ============================================================================
// FindByID Tests
// ============================================================================

func TestGormDiscountRepository_FindByID(t *testing.T) {
	t.Run("should translate missing rows to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDiscountRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "discounts" WHERE id = \$1.*`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Equal(t, shared.ErrorKindNotFound, shared.KindOf(err))
	})
}
