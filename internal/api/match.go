package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/models"
)

// MatchHandler serves the partner-match search.
type MatchHandler struct {
	svc          domain.MatchService
	defaultDepth int
	log          *logrus.Logger
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(svc domain.MatchService, defaultDepth int, log *logrus.Logger) *MatchHandler {
	return &MatchHandler{svc: svc, defaultDepth: defaultDepth, log: log}
}

// Search handles POST /api/v1/matches/search.
func (h *MatchHandler) Search(c *gin.Context) {
	var req models.MatchSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)

		return
	}

	if err := req.Validate(h.defaultDepth); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, h.log, "match.search", err)

		return
	}

	c.JSON(http.StatusOK, result)
}
