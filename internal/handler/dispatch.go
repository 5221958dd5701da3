package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/middleware"
	"cabrix/internal/service"
)

// DispatchHandler handles HTTP requests for fleet-level driver/vehicle
// assignment.
type DispatchHandler struct {
	assignment *service.Assignment
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(assignment *service.Assignment) *DispatchHandler {
	return &DispatchHandler{assignment: assignment}
}

// AssignDriverRequest is the HTTP request body for linking a driver to a
// vehicle.
type AssignDriverRequest struct {
	DriverID  string `json:"driver_id"`
	VehicleID string `json:"vehicle_id"`
}

// AssignDriver handles POST /api/drivers/assign
func (h *DispatchHandler) AssignDriver(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.DriverID == "" {
		respondError(c, &service.ValidationError{Field: "driver_id"})
		return
	}
	if req.VehicleID == "" {
		respondError(c, &service.ValidationError{Field: "vehicle_id"})
		return
	}

	if err := h.assignment.AssignDriverToVehicle(c.Request.Context(), req.DriverID, req.VehicleID, actor); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "Driver assigned to vehicle successfully"})
}
