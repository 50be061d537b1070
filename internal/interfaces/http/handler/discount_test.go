package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discountapp "github.com/printmarket/backend/internal/application/discount"
	"github.com/printmarket/backend/internal/domain/discount"
	"github.com/printmarket/backend/internal/domain/shared"
)

func setupDiscountRouter(actor shared.Actor) (*gin.Engine, *MockDiscountRepository) {
	repo := new(MockDiscountRepository)
	service := discountapp.NewDiscountService(repo)
	handler := NewDiscountHandler(service)

	router := gin.New()
	router.Use(actorMiddleware(actor))
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, repo
}

func newTestDiscount(t *testing.T, ownerShopID uuid.UUID) *discount.Discount {
	t.Helper()
	d, err := discount.NewDiscount("Spring promo", discount.TypePercentage, discount.ScopeOrder,
		decimal.NewFromInt(10), time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	d.OwnerShopID = &ownerShopID
	return d
}

func TestDiscountHandler_Create(t *testing.T) {
	t.Run("shop creates its own discount", func(t *testing.T) {
		actor := shopActor()
		router, repo := setupDiscountRouter(actor)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(d *discount.Discount) bool {
			return d.OwnerShopID != nil && *d.OwnerShopID == actor.ID
		})).Return(nil)

		w := postJSON(router, "/api/v1/discounts", discountapp.CreateDiscountRequest{
			Name:      "Spring promo",
			Type:      "percentage",
			Scope:     "order",
			Value:     decimal.NewFromInt(10),
			StartDate: time.Now(),
			EndDate:   time.Now().Add(48 * time.Hour),
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("customer cannot create discounts", func(t *testing.T) {
		router, _ := setupDiscountRouter(customerActor())

		w := postJSON(router, "/api/v1/discounts", discountapp.CreateDiscountRequest{
			Name:      "Spring promo",
			Type:      "percentage",
			Scope:     "order",
			Value:     decimal.NewFromInt(10),
			StartDate: time.Now(),
			EndDate:   time.Now().Add(48 * time.Hour),
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		router, _ := setupDiscountRouter(shopActor())

		w := postJSON(router, "/api/v1/discounts", map[string]any{
			"name":       "Spring promo",
			"type":       "loyalty_points",
			"scope":      "order",
			"value":      "10",
			"start_date": time.Now().Format(time.RFC3339),
			"end_date":   time.Now().Add(time.Hour).Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDiscountHandler_Validate(t *testing.T) {
	t.Run("reports amount for applicable discount", func(t *testing.T) {
		router, repo := setupDiscountRouter(customerActor())

		d := newTestDiscount(t, uuid.New())
		repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		w := postJSON(router, "/api/v1/discounts/"+d.ID.String()+"/validate", discountapp.ValidateDiscountRequest{
			OrderAmount: decimal.NewFromInt(200),
		})

		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w.Body.Bytes())
		payload, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var result discountapp.ValidateDiscountResponse
		require.NoError(t, json.Unmarshal(payload, &result))
		assert.True(t, result.Valid)
		assert.True(t, decimal.NewFromInt(20).Equal(result.Amount))
	})

	t.Run("reports reason for expired discount", func(t *testing.T) {
		router, repo := setupDiscountRouter(customerActor())

		d := newTestDiscount(t, uuid.New())
		d.EndDate = time.Now().Add(-time.Minute)
		repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		w := postJSON(router, "/api/v1/discounts/"+d.ID.String()+"/validate", discountapp.ValidateDiscountRequest{
			OrderAmount: decimal.NewFromInt(200),
		})

		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w.Body.Bytes())
		payload, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var result discountapp.ValidateDiscountResponse
		require.NoError(t, json.Unmarshal(payload, &result))
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("returns 404 for unknown discount", func(t *testing.T) {
		router, repo := setupDiscountRouter(customerActor())

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := postJSON(router, "/api/v1/discounts/"+id.String()+"/validate", discountapp.ValidateDiscountRequest{
			OrderAmount: decimal.NewFromInt(200),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDiscountHandler_Deactivate(t *testing.T) {
	t.Run("owning shop deactivates", func(t *testing.T) {
		actor := shopActor()
		router, repo := setupDiscountRouter(actor)

		d := newTestDiscount(t, actor.ID)
		repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
		repo.On("Save", mock.Anything, d).Return(nil)

		w := postJSON(router, "/api/v1/discounts/"+d.ID.String()+"/deactivate", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, discount.StatusInactive, d.Status)
	})

	t.Run("other shop cannot deactivate", func(t *testing.T) {
		router, repo := setupDiscountRouter(shopActor())

		d := newTestDiscount(t, uuid.New())
		repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		w := postJSON(router, "/api/v1/discounts/"+d.ID.String()+"/deactivate", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDiscountHandler_ListByShop(t *testing.T) {
	router, repo := setupDiscountRouter(customerActor())

	shopID := uuid.New()
	repo.On("FindActiveByShop", mock.Anything, shopID).
		Return([]*discount.Discount{newTestDiscount(t, shopID)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+shopID.String()+"/discounts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
