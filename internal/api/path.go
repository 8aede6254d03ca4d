package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// PathHandler serves the path finder.
type PathHandler struct {
	svc          domain.PathService
	defaultDepth int
	log          *logrus.Logger
}

// NewPathHandler creates a PathHandler. defaultDepth applies when the request
// has no depth parameter.
func NewPathHandler(svc domain.PathService, defaultDepth int, log *logrus.Logger) *PathHandler {
	return &PathHandler{svc: svc, defaultDepth: defaultDepth, log: log}
}

// Get handles GET /api/v1/path/:from/:to?depth=N.
func (h *PathHandler) Get(c *gin.Context) {
	from, to := c.Param("from"), c.Param("to")

	depth, err := validatePathQuery(from, to, c.Query("depth"), h.defaultDepth)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.svc.FindPath(c.Request.Context(), from, to, depth)
	if err != nil {
		handleServiceError(c, h.log, "path.find", err)

		return
	}

	c.JSON(http.StatusOK, result)
}

// validatePathQuery checks both ids and parses depth, which may be empty.
func validatePathQuery(from, to, rawDepth string, defaultDepth int) (int, error) {
	if err := models.ValidatePersonID("from", from); err != nil {
		return 0, err
	}

	if err := models.ValidatePersonID("to", to); err != nil {
		return 0, err
	}

	if from == to {
		return 0, models.ErrSamePerson
	}

	if rawDepth == "" {
		return defaultDepth, nil
	}

	depth, err := strconv.Atoi(rawDepth)
	if err != nil {
		return 0, models.ErrOutOfRange("depth", kinship.MinDepth, kinship.MaxDepth)
	}

	if err := models.ValidateDepth(depth); err != nil {
		return 0, err
	}

	return depth, nil
}
