package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/service"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

type profileService interface {
	List() []models.Profile
	Get(name string) (*models.Profile, error)
	Create(req service.ProfileRequest) (*models.Profile, bool, error)
	Update(name string, req service.ProfileRequest) (*models.Profile, error)
	Delete(name string, confirmed bool) error
}

// ProfileHandler exposes the teacher's profile management endpoints.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler builds the handler.
func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// List returns all student profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Get returns one profile by student name.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Create adds a new profile.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid profile payload"))
		return
	}

	profile, accountCreated, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, profile, map[string]interface{}{"account_created": accountCreated})
}

// Update replaces the named profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid profile payload"))
		return
	}

	profile, err := h.service.Update(c.Param("name"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Delete removes the named profile. The first call answers 409 until the
// client repeats it with ?confirm=true inside the confirmation window.
func (h *ProfileHandler) Delete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.service.Delete(c.Param("name"), confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
