package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printmarket/backend/internal/application/fulfillment"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order fulfillment endpoints
type OrderHandler struct {
	BaseHandler
	orderService *fulfillment.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *fulfillment.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/number/:order_number", h.GetByOrderNumber)
		orders.POST("/:id/accept", h.Accept)
		orders.POST("/:id/reject", h.Reject)
		orders.POST("/:id/ready", h.MarkReadyToShip)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/delivered", h.MarkDelivered)
	}
}

// Create places a new order for the acting customer
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	var req fulfillment.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves an order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByOrderNumber retrieves an order by its order number
func (h *OrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.orderService.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists orders scoped to the acting party: customers see their own
// orders, shops the orders placed with them, admins everything
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	filter := fulfillment.OrderListFilter{
		Search:   listReq.Search,
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status := order.OrderStatus(statusParam)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown order status: "+statusParam)
			return
		}
		filter.Status = &status
	}

	switch {
	case actor.IsCustomer():
		items, err := h.orderService.ListByCustomer(c.Request.Context(), actor.ID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
	case actor.IsShop():
		items, err := h.orderService.ListByShop(c.Request.Context(), actor.ID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
	default:
		items, total, err := h.orderService.List(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessWithMeta(c, items, total, listReq.Page, listReq.PageSize)
	}
}

// Accept moves a pending order into processing
func (h *OrderHandler) Accept(c *gin.Context) {
	h.transition(c, h.orderService.Accept)
}

// Reject cancels an order with a reason
func (h *OrderHandler) Reject(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req fulfillment.RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.orderService.Reject(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkReadyToShip moves a processing order to to_ship
func (h *OrderHandler) MarkReadyToShip(c *gin.Context) {
	h.transition(c, h.orderService.MarkReadyToShip)
}

// Ship sets tracking and ships the order in one operation
func (h *OrderHandler) Ship(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req fulfillment.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.orderService.AddTrackingAndShip(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkDelivered confirms delivery of a shipped order
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.transition(c, h.orderService.MarkDelivered)
}

// transition handles the shared shape of body-less status transitions
func (h *OrderHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*fulfillment.OrderResponse, error),
) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := op(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
