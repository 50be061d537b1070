package handler

import (
	"github.com/gin-gonic/gin"

	discountapp "github.com/printmarket/backend/internal/application/discount"
)

// DiscountHandler handles discount endpoints
type DiscountHandler struct {
	BaseHandler
	discountService *discountapp.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService *discountapp.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// RegisterRoutes registers discount routes
func (h *DiscountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	discounts := rg.Group("/discounts")
	{
		discounts.POST("", h.Create)
		discounts.GET("/:id", h.GetByID)
		discounts.POST("/:id/validate", h.Validate)
		discounts.POST("/:id/deactivate", h.Deactivate)
	}
	rg.GET("/shops/:shop_id/discounts", h.ListByShop)
}

// Create creates a discount owned by the acting shop (or global for admins)
func (h *DiscountHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	var req discountapp.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.discountService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves a discount
func (h *DiscountHandler) GetByID(c *gin.Context) {
	discountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	resp, err := h.discountService.GetByID(c.Request.Context(), discountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByShop lists a shop's active discounts
func (h *DiscountHandler) ListByShop(c *gin.Context) {
	shopID, err := parseIDParam(c, "shop_id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID format")
		return
	}

	resp, err := h.discountService.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Validate checks a discount against an order without consuming usage
func (h *DiscountHandler) Validate(c *gin.Context) {
	discountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	var req discountapp.ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.discountService.Validate(c.Request.Context(), discountID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate turns a discount off
func (h *DiscountHandler) Deactivate(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	discountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	resp, err := h.discountService.Deactivate(c.Request.Context(), actor, discountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
