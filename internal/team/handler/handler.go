// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/apierror"
	memberModel "github.com/festy23/querystudy/internal/member/model"
	teamModel "github.com/festy23/querystudy/internal/team/model"
	"github.com/festy23/querystudy/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams request.
// @Summary Create a team with optional members
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} teamModel.TeamResponse
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} apierror.Response "Team name taken (TEAM_EXISTS)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamExists):
			apierror.Write(c, http.StatusConflict, apierror.CodeTeamExists, "team name already exists")
		case errors.Is(err, teamModel.ErrInvalidTeamName):
			apierror.BadRequest(c, "name is required")
		case errors.Is(err, memberModel.ErrInvalidUsername), errors.Is(err, memberModel.ErrInvalidAge):
			apierror.BadRequest(c, err.Error())
		default:
			h.logger.Errorw("error creating team", "name", req.Name, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTeam handles GET /teams/:id request.
// @Summary Get a team with members
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} teamModel.TeamResponse
// @Failure 400 {object} apierror.Response "Bad request (invalid id)"
// @Failure 404 {object} apierror.Response "Team not found"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /teams/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierror.BadRequest(c, "id must be a positive integer")
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			apierror.NotFound(c, "team not found")
			return
		}
		h.logger.Errorw("error getting team", "team_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTeams handles GET /teams request.
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param members query bool false "Include members"
// @Success 200 {object} map[string][]teamModel.TeamResponse "Teams wrapped in teams object"
// @Failure 400 {object} apierror.Response "Bad request (invalid members flag)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	withMembers := false
	if raw := c.Query("members"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierror.BadRequest(c, "members must be a boolean")
			return
		}
		withMembers = parsed
	}

	teams, err := h.service.ListTeams(c.Request.Context(), withMembers)
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}
