package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
)

// newSqliteDB opens a fresh in-memory database with the partner, activity,
// and customization schema for round-trip tests.
func newSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&partner.Shop{}, &partner.Designer{}, &activity.ActivityLog{},
		&customization.CustomizationRequest{}))
	return db
}

func newEligibleShop(t *testing.T, name string, rating string, completed int64) *partner.Shop {
	t.Helper()
	shop, err := partner.NewShop(name)
	require.NoError(t, err)
	shop.Approve()
	shop.Rating = decimal.RequireFromString(rating)
	shop.CompletedOrders = completed
	return shop
}

func TestGormShopRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormShopRepository(newSqliteDB(t))
	ctx := context.Background()

	shop, err := partner.NewShop("Rapid Prints")
	require.NoError(t, err)
	shop.SetSpecialties([]string{"apparel", "embroidery"})
	shop.Rating = decimal.RequireFromString("4.5")

	require.NoError(t, repo.Save(ctx, shop))

	found, err := repo.FindByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rapid Prints", found.Name)
	assert.Equal(t, []string{"apparel", "embroidery"}, found.Specialties)
	assert.True(t, found.Rating.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, partner.ShopStatusActive, found.Status)
}

func TestGormShopRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormShopRepository(newSqliteDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormShopRepository_FindEligible(t *testing.T) {
	repo := NewGormShopRepository(newSqliteDB(t))
	ctx := context.Background()

	best := newEligibleShop(t, "Best Shop", "4.9", 120)
	tied := newEligibleShop(t, "Tied Rating Fewer Orders", "4.9", 30)
	mid := newEligibleShop(t, "Mid Shop", "3.2", 500)

	unapproved, err := partner.NewShop("Pending Review")
	require.NoError(t, err)

	suspended := newEligibleShop(t, "Suspended Shop", "5.0", 999)
	suspended.Status = partner.ShopStatusSuspended

	noPrinting := newEligibleShop(t, "Design Only", "5.0", 999)
	noPrinting.PrintingEnabled = false

	for _, s := range []*partner.Shop{mid, tied, best, unapproved, suspended, noPrinting} {
		require.NoError(t, repo.Save(ctx, s))
	}

	shops, err := repo.FindEligible(ctx)
	require.NoError(t, err)

	require.Len(t, shops, 3)
	assert.Equal(t, "Best Shop", shops[0].Name)
	assert.Equal(t, "Tied Rating Fewer Orders", shops[1].Name)
	assert.Equal(t, "Mid Shop", shops[2].Name)
}

func TestGormShopRepository_IncrementCompletedOrders(t *testing.T) {
	repo := NewGormShopRepository(newSqliteDB(t))
	ctx := context.Background()

	shop := newEligibleShop(t, "Counting Shop", "4.0", 7)
	require.NoError(t, repo.Save(ctx, shop))

	require.NoError(t, repo.IncrementCompletedOrders(ctx, shop.ID))
	require.NoError(t, repo.IncrementCompletedOrders(ctx, shop.ID))

	found, err := repo.FindByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), found.CompletedOrders)
}

func TestGormShopRepository_IncrementCompletedOrders_NotFound(t *testing.T) {
	repo := NewGormShopRepository(newSqliteDB(t))

	err := repo.IncrementCompletedOrders(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDesignerRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormDesignerRepository(newSqliteDB(t))
	ctx := context.Background()

	designer, err := partner.NewDesigner("Mira Chen")
	require.NoError(t, err)
	shopID := uuid.New()
	designer.ShopID = &shopID

	require.NoError(t, repo.Save(ctx, designer))

	found, err := repo.FindByID(ctx, designer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mira Chen", found.DisplayName)
	require.NotNil(t, found.ShopID)
	assert.Equal(t, shopID, *found.ShopID)
	assert.Equal(t, partner.DesignerStatusActive, found.Status)
}

func TestGormDesignerRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormDesignerRepository(newSqliteDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
