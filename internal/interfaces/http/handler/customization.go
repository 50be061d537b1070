package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customizationapp "github.com/printmarket/backend/internal/application/customization"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/interfaces/http/dto"
)

// CustomizationHandler handles customization request endpoints
type CustomizationHandler struct {
	BaseHandler
	requestService  *customizationapp.RequestService
	matchingService *customizationapp.ShopMatchingService
	fileService     *customizationapp.FileService
}

// NewCustomizationHandler creates a new CustomizationHandler
func NewCustomizationHandler(
	requestService *customizationapp.RequestService,
	matchingService *customizationapp.ShopMatchingService,
	fileService *customizationapp.FileService,
) *CustomizationHandler {
	return &CustomizationHandler{
		requestService:  requestService,
		matchingService: matchingService,
		fileService:     fileService,
	}
}

// RegisterRoutes registers customization request routes
func (h *CustomizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/customization-requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/accept", h.DesignerAccept)
		requests.POST("/:id/design", h.SubmitDesign)
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/revision", h.RequestRevision)
		requests.POST("/:id/cancel", h.Cancel)
		requests.GET("/:id/eligible-shops", h.ListEligibleShops)
		requests.POST("/:id/shop", h.SelectShop)
		requests.PUT("/:id/pricing", h.SetPricingAgreement)
		requests.POST("/:id/files/upload-url", h.GenerateUploadURL)
		requests.GET("/:id/files/download-url", h.ResolveDownloadURL)
	}
}

// Create opens a customization request for the acting customer
func (h *CustomizationHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	var req customizationapp.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.requestService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID retrieves a customization request
func (h *CustomizationHandler) GetByID(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	resp, err := h.requestService.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists requests scoped to the acting party: customers see requests
// they opened, designers the requests assigned to them
func (h *CustomizationHandler) List(c *gin.Context) {
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

	filter := customizationapp.RequestListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status := customization.RequestStatus(statusParam)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown request status: "+statusParam)
			return
		}
		filter.Status = &status
	}

	switch {
	case actor.IsCustomer():
		items, err := h.requestService.ListByCustomer(c.Request.Context(), actor.ID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
	case actor.IsDesigner():
		items, err := h.requestService.ListByDesigner(c.Request.Context(), actor.ID, filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
	default:
		h.Forbidden(c, "Only customers and designers may list customization requests")
	}
}

// DesignerAccept assigns the acting designer to a pending request
func (h *CustomizationHandler) DesignerAccept(c *gin.Context) {
	h.transition(c, h.requestService.DesignerAccept)
}

// SubmitDesign records the designer's deliverables and moves the request to
// awaiting customer approval
func (h *CustomizationHandler) SubmitDesign(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req customizationapp.SubmitDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.requestService.SubmitDesign(c.Request.Context(), actor, requestID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Approve locks in the design, selected shop, and pricing
func (h *CustomizationHandler) Approve(c *gin.Context) {
	h.transition(c, h.requestService.Approve)
}

// RequestRevision sends the design back to the designer with a reason
func (h *CustomizationHandler) RequestRevision(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req customizationapp.RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.requestService.RequestRevision(c.Request.Context(), actor, requestID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel withdraws a request before design work completes
func (h *CustomizationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.requestService.Cancel)
}

// ListEligibleShops returns the matching engine's recommendation buckets
func (h *CustomizationHandler) ListEligibleShops(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	resp, err := h.matchingService.ListEligibleShops(c.Request.Context(), requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// SelectShop records the customer's fulfillment shop choice
func (h *CustomizationHandler) SelectShop(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req customizationapp.SelectShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.requestService.SelectShop(c.Request.Context(), actor, requestID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetPricingAgreement records the designer's fee quote
func (h *CustomizationHandler) SetPricingAgreement(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req customizationapp.SetPricingAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.requestService.SetPricingAgreement(c.Request.Context(), actor, requestID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// FileUploadURLRequest represents a request for a presigned upload URL
type FileUploadURLRequest struct {
	Filename    string `json:"filename" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// GenerateUploadURL mints a presigned upload URL for a request file
func (h *CustomizationHandler) GenerateUploadURL(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req FileUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.fileService.GenerateUploadURL(c.Request.Context(), actor, requestID, req.Filename, req.ContentType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ResolveDownloadURL mints a presigned download URL for an attached file
func (h *CustomizationHandler) ResolveDownloadURL(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	storageKey := c.Query("key")
	if storageKey == "" {
		h.BadRequest(c, "Query parameter 'key' is required")
		return
	}

	resp, err := h.fileService.ResolveDownloadURL(c.Request.Context(), actor, requestID, storageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// transition handles the shared shape of body-less request transitions
func (h *CustomizationHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*customizationapp.RequestResponse, error),
) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Actor not resolved")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	resp, err := op(c.Request.Context(), actor, requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
