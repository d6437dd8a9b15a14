package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/middleware"
	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

type authService interface {
	Login(req models.LoginRequest) (*models.LoginResponse, error)
	Logout(username string)
}

// AuthHandler exposes login, logout and the current-user endpoint.
type AuthHandler struct {
	service authService
}

// NewAuthHandler builds the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates a teacher or student and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid login payload"))
		return
	}

	resp, err := h.service.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Logout acknowledges a logout; tokens are stateless so the client discards it.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		h.service.Logout(claims.Username)
	}
	response.NoContent(c)
}

// Me returns the identity behind the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.UserInfo{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
}
