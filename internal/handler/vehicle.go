package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/domain"
	"cabrix/internal/middleware"
	"cabrix/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// CreateVehicleRequest is the HTTP request body for creating a vehicle.
type CreateVehicleRequest struct {
	RegistrationNumber string `json:"registration_number"`
	Model              string `json:"model"`
	CapacityType       string `json:"capacity_type"`
	Capacity           int    `json:"capacity"`
	Status             string `json:"status"`
}

// UpdateVehicleRequest is the HTTP request body for updating a vehicle.
type UpdateVehicleRequest struct {
	Model        *string `json:"model"`
	CapacityType *string `json:"capacity_type"`
	Capacity     *int    `json:"capacity"`
	Status       *string `json:"status"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Model              string `json:"model"`
	CapacityType       string `json:"capacity_type"`
	Capacity           int    `json:"capacity"`
	Status             string `json:"status"`
}

func vehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 vehicle.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		Model:              vehicle.Model,
		CapacityType:       vehicle.CapacityType,
		Capacity:           vehicle.Capacity,
		Status:             string(vehicle.Status),
	}
}

// Create handles POST /api/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicles.CreateVehicle(c.Request.Context(), actor, service.CreateVehicleRequest{
		RegistrationNumber: req.RegistrationNumber,
		Model:              req.Model,
		CapacityType:       req.CapacityType,
		Capacity:           req.Capacity,
		Status:             req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{
		"message": "Vehicle created successfully",
		"vehicle": vehicleResponse(vehicle),
	})
}

// Update handles PUT /api/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicles.UpdateVehicle(c.Request.Context(), actor, c.Param("id"), service.UpdateVehicleRequest{
		Model:        req.Model,
		CapacityType: req.CapacityType,
		Capacity:     req.Capacity,
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"message": "Vehicle updated successfully",
		"vehicle": vehicleResponse(vehicle),
	})
}

// GetAll handles GET /api/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicles.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, vehicleResponse(vehicle))
	}

	respondJSON(c, http.StatusOK, response)
}
