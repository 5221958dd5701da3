package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/domain"
	"cabrix/internal/middleware"
	"cabrix/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	trips *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupTime      string `json:"pickup_time"`
	CompanyID       string `json:"company_id"`
	Notes           string `json:"notes"`
}

// UpdateTripRequest is the HTTP request body for updating a trip. All
// fields are optional; each is applied only where the lifecycle and the
// actor's role permit.
type UpdateTripRequest struct {
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	PickupTime      *string `json:"pickup_time"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status"`
	DriverID        *string `json:"driver_id"`
	VehicleID       *string `json:"vehicle_id"`
}

// TripResponse is the HTTP response for trip data.
type TripResponse struct {
	ID              string `json:"id"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupTime      string `json:"pickup_time"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	CompletedAt     string `json:"completed_at,omitempty"`
	Notes           string `json:"notes,omitempty"`
	PassengerID     string `json:"passenger_id"`
	CompanyID       string `json:"company_id"`
	DriverID        string `json:"driver_id,omitempty"`
	VehicleID       string `json:"vehicle_id,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func tripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:              trip.ID,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		PickupTime:      trip.PickupTime.Format(timeLayout),
		Status:          string(trip.Status),
		CreatedAt:       trip.CreatedAt.Format(timeLayout),
		Notes:           trip.Notes,
		PassengerID:     trip.PassengerID,
		CompanyID:       trip.CompanyID,
		DriverID:        trip.DriverID,
		VehicleID:       trip.VehicleID,
	}
	if !trip.CompletedAt.IsZero() {
		resp.CompletedAt = trip.CompletedAt.Format(timeLayout)
	}
	return resp
}

// Create handles POST /api/trips
func (h *TripHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.trips.CreateTrip(c.Request.Context(), actor, service.CreateTripRequest{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      req.PickupTime,
		CompanyID:       req.CompanyID,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{
		"message": "Trip created successfully",
		"trip":    tripResponse(trip),
	})
}

// GetAll handles GET /api/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	trips, err := h.trips.ListTrips(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, tripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /api/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	trip, err := h.trips.GetTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// Update handles PUT /api/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.trips.UpdateTrip(c.Request.Context(), actor, c.Param("id"), service.UpdateTripRequest{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      req.PickupTime,
		Notes:           req.Notes,
		Status:          req.Status,
		DriverID:        req.DriverID,
		VehicleID:       req.VehicleID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"message": "Trip updated successfully",
		"trip":    tripResponse(trip),
	})
}

// Delete handles DELETE /api/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	if err := h.trips.DeleteTrip(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}
