package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// CarHandler handles HTTP requests for vehicle registration.
type CarHandler struct {
	carService *service.CarService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// RegisterCarRequest is the HTTP request body for registering a car.
type RegisterCarRequest struct {
	Plate       string `json:"plate"`
	Capacity    int    `json:"capacity"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	CarPhotoURL string `json:"car_photo_url,omitempty"`
}

// CarResponse is the HTTP response for car data.
type CarResponse struct {
	ID          string `json:"id"`
	Plate       string `json:"plate"`
	Capacity    int    `json:"capacity"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	CarPhotoURL string `json:"car_photo_url,omitempty"`
}

func toCarResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:          car.ID,
		Plate:       car.Plate,
		Capacity:    car.Capacity,
		Brand:       car.Brand,
		Model:       car.Model,
		CarPhotoURL: car.CarPhotoURL,
	}
}

// Register handles POST /v1/cars
func (h *CarHandler) Register(c *gin.Context) {
	var req RegisterCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	car, err := h.carService.RegisterCar(c.Request.Context(), service.RegisterCarRequest{
		OwnerID:     middleware.CallerID(c),
		Plate:       req.Plate,
		Capacity:    req.Capacity,
		Brand:       req.Brand,
		Model:       req.Model,
		CarPhotoURL: req.CarPhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCarResponse(car))
}

// GetMine handles GET /v1/cars/me
func (h *CarHandler) GetMine(c *gin.Context) {
	cars, err := h.carService.GetOwnCars(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		response = append(response, toCarResponse(car))
	}

	respondJSON(c, http.StatusOK, response)
}

// DeleteMine handles DELETE /v1/cars/me
func (h *CarHandler) DeleteMine(c *gin.Context) {
	if err := h.carService.DeleteOwnCars(c.Request.Context(), middleware.CallerID(c)); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "car deleted"})
}
