package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrRequestNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidCarDetails),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidUserDetails),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrCapacityExceedsVehicle):
		return http.StatusBadRequest

	// Authentication failures
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Ownership / capability failures
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrNoVehicleRegistered):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrTripFull),
		errors.Is(err, service.ErrTripNotOpen),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrPlateExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrContention):
		return http.StatusConflict

	// Default to internal server error (store unavailable and friends)
	default:
		return http.StatusInternalServerError
	}
}
