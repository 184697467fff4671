package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// UserHandler handles HTTP requests for users and sessions.
type UserHandler struct {
	userService *service.UserService

	// cookieMaxAge matches the configured token TTL so the cookie and
	// the JWT expire together.
	cookieMaxAge int
}

// NewUserHandler creates a new UserHandler. tokenTTL is the configured
// lifetime of issued identity tokens.
func NewUserHandler(userService *service.UserService, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{
		userService:  userService,
		cookieMaxAge: int(tokenTTL.Seconds()),
	}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	UniversityID string `json:"university_id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Password     string `json:"password"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the HTTP request body for profile updates.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password,omitempty"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	UniversityID string `json:"university_id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Surname:      user.Surname,
		UniversityID: user.UniversityID,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
	}
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterUserRequest{
		Name:         req.Name,
		Surname:      req.Surname,
		UniversityID: req.UniversityID,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// The token travels in an HttpOnly cookie; it is also returned in the
	// body for non-browser clients that prefer the Authorization header.
	c.SetCookie("token", token, h.cookieMaxAge, "/", "", false, true)
	respondJSON(c, http.StatusOK, gin.H{"message": "login successful", "token": token})
}

// Logout handles POST /v1/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	respondJSON(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GetMe handles GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.CallerUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), service.UpdateProfileRequest{
		UserID:      middleware.CallerUserID(c),
		Name:        req.Name,
		Surname:     req.Surname,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// DeleteMe handles DELETE /v1/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), middleware.CallerUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)
	respondJSON(c, http.StatusOK, gin.H{"message": "user deleted"})
}
