package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/service"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

type accountService interface {
	List() []models.Account
	Add(req service.AccountRequest) (*models.Account, error)
	Remove(username string, confirmed bool) (*service.RemovalSummary, error)
}

// AccountHandler exposes the teacher's account management endpoints.
type AccountHandler struct {
	service accountService
}

// NewAccountHandler builds the handler.
func NewAccountHandler(service accountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List returns every student account.
func (h *AccountHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Create adds a student account.
func (h *AccountHandler) Create(c *gin.Context) {
	var req service.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid account payload"))
		return
	}

	account, err := h.service.Add(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Delete removes an account and cascades to the student's profile and
// results. Two-step: the first call answers 409 until repeated with
// ?confirm=true inside the confirmation window.
func (h *AccountHandler) Delete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	summary, err := h.service.Remove(c.Param("username"), confirmed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
