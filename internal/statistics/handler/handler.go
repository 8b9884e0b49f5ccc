// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/apierror"
	"github.com/festy23/querystudy/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetAgeStatistics handles GET /statistics/members request.
// @Summary Get aggregate statistics over member ages
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.AgeStatisticsResponse
// @Failure 500 {object} apierror.Response
// @Router /statistics/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetAgeStatistics(c *gin.Context) {
	resp, err := h.service.GetAgeStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting age statistics", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeamStatistics handles GET /statistics/teams request.
// @Summary Get average member age per team
// @Tags Statistics
// @Produce json
// @Param minAverage query number false "Only teams whose average age is at least this"
// @Success 200 {object} model.TeamStatisticsResponse
// @Failure 400 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /statistics/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeamStatistics(c *gin.Context) {
	var minAverage *float64
	if raw := c.Query("minAverage"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apierror.BadRequest(c, "minAverage must be a number")
			return
		}
		minAverage = &parsed
	}

	resp, err := h.service.GetTeamStatistics(c.Request.Context(), minAverage)
	if err != nil {
		h.logger.Errorw("error getting team statistics", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}
