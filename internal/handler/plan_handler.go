package handler

import (
	"github.com/accessway-travel/service-planner/internal/application"
	"github.com/gin-gonic/gin"
)

// PlanHandler handles HTTP requests for journey planning.
type PlanHandler struct {
	service *application.PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(service *application.PlannerService) *PlanHandler {
	return &PlanHandler{service: service}
}

// RegisterRoutes registers the planning routes on the given router group.
func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/plan-journey", h.PlanJourney)
}

// PlanJourney handles POST /plan-journey. A search with no viable itinerary
// returns 200 with an empty list; 4xx is reserved for malformed input.
func (h *PlanHandler) PlanJourney(c *gin.Context) {
	var req application.PlanJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.PlanJourney(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, result)
}
