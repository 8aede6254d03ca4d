package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/models"
)

// FamilyHandler serves the family view.
type FamilyHandler struct {
	svc domain.FamilyService
	log *logrus.Logger
}

// NewFamilyHandler creates a FamilyHandler.
func NewFamilyHandler(svc domain.FamilyService, log *logrus.Logger) *FamilyHandler {
	return &FamilyHandler{svc: svc, log: log}
}

// Get handles GET /api/v1/persons/:id/family.
func (h *FamilyHandler) Get(c *gin.Context) {
	personID := c.Param("id")
	if err := models.ValidatePersonID("id", personID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	view, err := h.svc.FamilyView(c.Request.Context(), personID)
	if err != nil {
		handleServiceError(c, h.log, "family.view", err)

		return
	}

	c.JSON(http.StatusOK, view)
}
