package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/repository"
	"cabrix/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var validationErr *service.ValidationError
	var transitionErr *service.InvalidTransitionError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization denials
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Validation and state-machine errors - Bad Request
	case errors.As(err, &validationErr),
		errors.As(err, &transitionErr),
		errors.Is(err, service.ErrNotADriver),
		errors.Is(err, service.ErrNoCompany),
		errors.Is(err, service.ErrInvalidPickupTime),
		errors.Is(err, service.ErrCompanyExists),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrVehicleExists):
		return http.StatusBadRequest

	// Conflict errors - the caller may retry
	case errors.Is(err, service.ErrTripClosed),
		errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrDriverBusy),
		errors.Is(err, service.ErrVehicleBusy),
		errors.Is(err, service.ErrDispatchConflict):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
