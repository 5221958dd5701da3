package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for a successful login.
type LoginResponse struct {
	Message     string        `json:"message"`
	AccessToken string        `json:"access_token"`
	User        LoginUserInfo `json:"user"`
}

// LoginUserInfo is the user payload of a login response.
type LoginUserInfo struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Role      string           `json:"role"`
	Companies []CompanySummary `json:"companies"`
}

// CompanySummary is a minimal company reference.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	companies := make([]CompanySummary, 0, len(result.Companies))
	for _, company := range result.Companies {
		companies = append(companies, CompanySummary{ID: company.ID, Name: company.Name})
	}

	respondJSON(c, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		AccessToken: result.Token,
		User: LoginUserInfo{
			ID:        result.User.ID,
			Username:  result.User.Username,
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Role:      string(result.User.Role),
			Companies: companies,
		},
	})
}
