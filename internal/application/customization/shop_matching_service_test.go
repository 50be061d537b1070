package customization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/catalog"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type matchingFixture struct {
	svc          *ShopMatchingService
	requestRepo  *MockRequestRepository
	productRepo  *MockProductRepository
	shopRepo     *MockShopRepository
	designerRepo *MockDesignerRepository
	cache        *fakeCache
}

func newMatchingFixture() *matchingFixture {
	f := &matchingFixture{
		requestRepo:  new(MockRequestRepository),
		productRepo:  new(MockProductRepository),
		shopRepo:     new(MockShopRepository),
		designerRepo: new(MockDesignerRepository),
		cache:        newFakeCache(),
	}
	f.svc = NewShopMatchingService(f.requestRepo, f.productRepo, f.shopRepo, f.designerRepo, f.cache, zap.NewNop())
	return f
}

func eligibleShop(t *testing.T, name string, rating float64, specialties ...string) *partner.Shop {
	s, err := partner.NewShop(name)
	require.NoError(t, err)
	s.Approve()
	s.Rating = decimal.NewFromFloat(rating)
	s.SetSpecialties(specialties)
	return s
}

func TestShopMatchingService_ListEligibleShops(t *testing.T) {
	ctx := context.Background()

	t.Run("three disjoint buckets in priority order", func(t *testing.T) {
		f := newMatchingFixture()

		ownerShop := eligibleShop(t, "Owner Shop", 4.0)
		designerShop := eligibleShop(t, "Designer Shop", 3.5)
		highRated := eligibleShop(t, "High Rated", 4.9, "apparel")
		lowRated := eligibleShop(t, "Low Rated", 3.0, "apparel")
		unrelated := eligibleShop(t, "Unrelated", 5.0, "ceramics")

		designerID := uuid.New()
		designer, err := partner.NewDesigner("Mara")
		require.NoError(t, err)
		designer.ID = designerID
		require.NoError(t, designer.LinkShop(designerShop.ID))

		product, err := catalog.NewProduct("Custom Hoodie", "apparel", ownerShop.ID, decimal.NewFromInt(60))
		require.NoError(t, err)
		require.NoError(t, product.SetDesigner(designerID))

		request, err := customization.NewCustomizationRequest(product.ID, uuid.New(), "", nil)
		require.NoError(t, err)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.shopRepo.On("FindByID", ctx, ownerShop.ID).Return(ownerShop, nil)
		f.designerRepo.On("FindByID", ctx, designerID).Return(designer, nil)
		f.shopRepo.On("FindByID", ctx, designerShop.ID).Return(designerShop, nil)
		// repository returns eligible shops ordered rating desc
		f.shopRepo.On("FindEligible", ctx).Return([]partner.Shop{*unrelated, *highRated, *ownerShop, *lowRated}, nil)

		resp, err := f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)

		require.Len(t, resp.ProductOwner, 1)
		assert.Equal(t, ownerShop.ID, resp.ProductOwner[0].ID)

		require.Len(t, resp.DesignerShops, 1)
		assert.Equal(t, designerShop.ID, resp.DesignerShops[0].ID)

		// owner already claimed by bucket 1, unrelated fails the specialty
		// filter, leaving the two apparel shops in repository order
		require.Len(t, resp.Others, 2)
		assert.Equal(t, highRated.ID, resp.Others[0].ID)
		assert.Equal(t, lowRated.ID, resp.Others[1].ID)
	})

	t.Run("no match yields an empty result, not a fallback", func(t *testing.T) {
		f := newMatchingFixture()

		suspendedOwner := eligibleShop(t, "Suspended Owner", 4.0)
		suspendedOwner.Status = partner.ShopStatusSuspended

		product, err := catalog.NewProduct("Niche Item", "glassware", suspendedOwner.ID, decimal.NewFromInt(20))
		require.NoError(t, err)
		request, err := customization.NewCustomizationRequest(product.ID, uuid.New(), "", nil)
		require.NoError(t, err)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.shopRepo.On("FindByID", ctx, suspendedOwner.ID).Return(suspendedOwner, nil)
		f.shopRepo.On("FindEligible", ctx).Return([]partner.Shop{}, nil)

		resp, err := f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsEmpty())
	})

	t.Run("second call is served from the cache", func(t *testing.T) {
		f := newMatchingFixture()

		ownerShop := eligibleShop(t, "Owner Shop", 4.0)
		product, err := catalog.NewProduct("Mug", "mugs", ownerShop.ID, decimal.NewFromInt(10))
		require.NoError(t, err)
		request, err := customization.NewCustomizationRequest(product.ID, uuid.New(), "", nil)
		require.NoError(t, err)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil).Once()
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		f.shopRepo.On("FindByID", ctx, ownerShop.ID).Return(ownerShop, nil).Once()
		f.shopRepo.On("FindEligible", ctx).Return([]partner.Shop{}, nil).Once()

		first, err := f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)
		second, err := f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		f.requestRepo.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("invalidation forces a recompute", func(t *testing.T) {
		f := newMatchingFixture()

		ownerShop := eligibleShop(t, "Owner Shop", 4.0)
		product, err := catalog.NewProduct("Mug", "mugs", ownerShop.ID, decimal.NewFromInt(10))
		require.NoError(t, err)
		request, err := customization.NewCustomizationRequest(product.ID, uuid.New(), "", nil)
		require.NoError(t, err)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.shopRepo.On("FindByID", ctx, ownerShop.ID).Return(ownerShop, nil)
		f.shopRepo.On("FindEligible", ctx).Return([]partner.Shop{}, nil)

		_, err = f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)
		require.NoError(t, f.svc.InvalidateAll(ctx))
		_, err = f.svc.ListEligibleShops(ctx, request.ID)
		require.NoError(t, err)

		f.requestRepo.AssertNumberOfCalls(t, "FindByID", 2)
	})
}
