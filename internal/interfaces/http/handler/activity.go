package handler

import (
	"github.com/gin-gonic/gin"

	activityapp "github.com/printmarket/backend/internal/application/activity"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/order"
	"github.com/printmarket/backend/internal/interfaces/http/dto"
)

// aggregateTypes allowed in the audit trail endpoint
var auditedAggregateTypes = map[string]bool{
	order.AggregateTypeOrder:           true,
	customization.AggregateTypeRequest: true,
}

// ActivityHandler handles audit trail endpoints
type ActivityHandler struct {
	BaseHandler
	queryService *activityapp.QueryService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(queryService *activityapp.QueryService) *ActivityHandler {
	return &ActivityHandler{queryService: queryService}
}

// RegisterRoutes registers audit trail routes
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	activity := rg.Group("/activity")
	{
		activity.GET("/:aggregate_type/:id", h.ListForAggregate)
	}
}

// ListForAggregate returns the audit trail of one aggregate, newest first
func (h *ActivityHandler) ListForAggregate(c *gin.Context) {
	aggregateType := c.Param("aggregate_type")
	if !auditedAggregateTypes[aggregateType] {
		h.BadRequest(c, "Unknown aggregate type: "+aggregateType)
		return
	}

	aggregateID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid aggregate ID format")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	entries, err := h.queryService.ListForAggregate(c.Request.Context(), aggregateType, aggregateID, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}
