package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// TripHandler handles HTTP requests for trips and reservations.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for publishing a trip.
type CreateTripRequest struct {
	StartPoint    string  `json:"start_point"`
	EndPoint      string  `json:"end_point"`
	Sector        string  `json:"sector"`
	DepartureTime string  `json:"departure_time"`
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Capacity      int     `json:"capacity"`
}

// ReserveRequest is the HTTP request body for requesting a seat.
type ReserveRequest struct {
	Location string `json:"location"`
}

// DecideRequest is the HTTP request body for deciding a pending request.
type DecideRequest struct {
	RiderID string `json:"rider_id"`
	Action  string `json:"action"` // "accept" or "reject"
}

// SetStateRequest is the HTTP request body for changing a trip's state.
type SetStateRequest struct {
	NewState int `json:"new_state"`
}

// RequestEntry mirrors a reservation request in responses.
type RequestEntry struct {
	RiderID  string `json:"rider_id"`
	Location string `json:"location"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID            string         `json:"trip_id"`
	DriverID          string         `json:"driver_id"`
	StartPoint        string         `json:"start_point"`
	EndPoint          string         `json:"end_point"`
	Sector            string         `json:"sector"`
	DepartureTime     string         `json:"departure_time"`
	Date              string         `json:"date"`
	Price             float64        `json:"price"`
	Capacity          int            `json:"capacity"`
	Availability      int            `json:"availability"`
	ReservationsCount int            `json:"reservations_count"`
	State             int            `json:"state"`
	CarPhotoURL       string         `json:"car_photo_url,omitempty"`
	PendingRequests   []RequestEntry `json:"pending_requests"`
	AcceptedRequests  []RequestEntry `json:"accepted_requests"`
	RejectedRequests  []RequestEntry `json:"rejected_requests"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:            trip.ID,
		DriverID:          trip.DriverID,
		StartPoint:        trip.Route.StartPoint,
		EndPoint:          trip.Route.EndPoint,
		Sector:            trip.Route.Sector,
		DepartureTime:     trip.Route.DepartureTime,
		Date:              trip.Route.Date,
		Price:             trip.Price,
		Capacity:          trip.Capacity,
		Availability:      trip.Availability,
		ReservationsCount: trip.ReservationsCount,
		State:             int(trip.State),
		CarPhotoURL:       trip.CarPhotoURL,
		PendingRequests:   toRequestEntries(trip.PendingRequests),
		AcceptedRequests:  toRequestEntries(trip.AcceptedRequests),
		RejectedRequests:  toRequestEntries(trip.RejectedRequests),
	}
}

func toRequestEntries(list []domain.ReservationRequest) []RequestEntry {
	entries := make([]RequestEntry, 0, len(list))
	for _, r := range list {
		entries = append(entries, RequestEntry{RiderID: r.RiderID, Location: r.Location})
	}
	return entries
}

func toTripResponses(trips []*domain.Trip) []TripResponse {
	responses := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, toTripResponse(trip))
	}
	return responses
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		DriverID: middleware.CallerID(c),
		Route: domain.Route{
			StartPoint:    req.StartPoint,
			EndPoint:      req.EndPoint,
			Sector:        req.Sector,
			DepartureTime: req.DepartureTime,
			Date:          req.Date,
		},
		Price:    req.Price,
		Capacity: req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), repository.TripFilter{})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// GetMyTrips handles GET /v1/trips/my-trips
func (h *TripHandler) GetMyTrips(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), repository.TripFilter{
		DriverID: middleware.CallerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// GetMyReservations handles GET /v1/trips/my-reservations
func (h *TripHandler) GetMyReservations(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), repository.TripFilter{
		RiderID:      middleware.CallerID(c),
		AcceptedOnly: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// Reserve handles POST /v1/trips/:id/reserve
func (h *TripHandler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.RequestReservation(c.Request.Context(), c.Param("id"), middleware.CallerID(c), req.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// Decide handles PUT /v1/trips/:id/reservations
func (h *TripHandler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.DecideReservation(c.Request.Context(),
		c.Param("id"), middleware.CallerID(c), req.RiderID, service.Decision(req.Action))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CancelReservation handles DELETE /v1/trips/:id/reservations
func (h *TripHandler) CancelReservation(c *gin.Context) {
	trip, err := h.tripService.CancelAcceptedReservation(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// SetState handles PUT /v1/trips/:id/state
func (h *TripHandler) SetState(c *gin.Context) {
	var req SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.SetTripState(c.Request.Context(),
		c.Param("id"), middleware.CallerID(c), domain.TripState(req.NewState))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// Delete handles DELETE /v1/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	err := h.tripService.DeleteTrip(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "trip deleted"})
}
