package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	activityapp "github.com/printmarket/backend/internal/application/activity"
	"github.com/printmarket/backend/internal/domain/activity"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/shared"
)

func setupActivityRouter() (*gin.Engine, *MockActivityRepository) {
	repo := new(MockActivityRepository)
	service := activityapp.NewQueryService(repo)
	handler := NewActivityHandler(service)

	router := gin.New()
	router.Use(actorMiddleware(adminActor()))
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, repo
}

func TestActivityHandler_ListForAggregate(t *testing.T) {
	t.Run("returns audit trail for order", func(t *testing.T) {
		router, repo := setupActivityRouter()

		orderID := uuid.New()
		logs := []*activity.ActivityLog{
			activity.NewActivityLog("order.shipped", order.AggregateTypeOrder, orderID, uuid.New(),
				map[string]any{"tracking_number": "TRK-1"}, time.Now()),
			activity.NewActivityLog("order.accepted", order.AggregateTypeOrder, orderID, uuid.New(),
				nil, time.Now().Add(-time.Minute)),
		}
		repo.On("FindByAggregate", mock.Anything, order.AggregateTypeOrder, orderID, mock.AnythingOfType("shared.Filter")).
			Return(logs, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/activity/Order/"+orderID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown aggregate type", func(t *testing.T) {
		router, repo := setupActivityRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/activity/Invoice/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindByAggregate")
	})

	t.Run("rejects malformed aggregate ID", func(t *testing.T) {
		router, _ := setupActivityRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/activity/Order/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("surfaces repository errors", func(t *testing.T) {
		router, repo := setupActivityRouter()

		orderID := uuid.New()
		repo.On("FindByAggregate", mock.Anything, order.AggregateTypeOrder, orderID, mock.AnythingOfType("shared.Filter")).
			Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/activity/Order/"+orderID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
