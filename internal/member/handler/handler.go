// Package handler provides HTTP handlers for member endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/apierror"
	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/service"
	teamModel "github.com/festy23/querystudy/internal/team/model"
	"github.com/festy23/querystudy/pkg/page"
)

// Handler handles HTTP requests for member endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new member handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// SearchV1 handles GET /v1/members request.
// @Summary Search members with their teams
// @Tags Members
// @Produce json
// @Param username query string false "Exact username"
// @Param teamName query string false "Exact team name"
// @Param ageGoe query int false "Minimum age"
// @Param ageLoe query int false "Maximum age"
// @Success 200 {array} model.MemberTeamDto
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /v1/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SearchV1(c *gin.Context) {
	var cond model.MemberSearchCondition
	if err := c.ShouldBindQuery(&cond); err != nil {
		invalidRequest(c, err, "invalid search condition")
		return
	}

	rows, err := h.service.Search(c.Request.Context(), cond)
	if err != nil {
		h.handleSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// SearchV2 handles GET /v2/members request. The total is always counted.
// @Summary Search members page by page
// @Tags Members
// @Produce json
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Success 200 {object} page.Page[model.MemberTeamDto]
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /v2/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SearchV2(c *gin.Context) {
	h.searchPage(c, service.SearchModeSimple)
}

// SearchV3 handles GET /v3/members request. The total is counted only when the page cannot prove it.
// @Summary Search members page by page with deferred count
// @Tags Members
// @Produce json
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Success 200 {object} page.Page[model.MemberTeamDto]
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /v3/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SearchV3(c *gin.Context) {
	h.searchPage(c, service.SearchModeComplex)
}

func (h *Handler) searchPage(c *gin.Context, mode service.SearchMode) {
	var cond model.MemberSearchCondition
	if err := c.ShouldBindQuery(&cond); err != nil {
		invalidRequest(c, err, "invalid search condition")
		return
	}
	var req page.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err, "page and size must be integers")
		return
	}

	result, err := h.service.SearchPage(c.Request.Context(), cond, req, mode)
	if err != nil {
		h.handleSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleSearchError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidAgeRange) {
		apierror.BadRequest(c, err.Error())
		return
	}
	h.logger.Errorw("error searching members", "error", err)
	apierror.Internal(c)
}

// GetMember handles GET /members/:id request.
// @Summary Get a member with its team name
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} model.MemberResponse
// @Failure 400 {object} apierror.Response "Bad request (invalid id)"
// @Failure 404 {object} apierror.Response "Member not found"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /members/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierror.BadRequest(c, "id must be a positive integer")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			apierror.NotFound(c, "member not found")
			return
		}
		h.logger.Errorw("error getting member", "member_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterMember handles POST /members request.
// @Summary Register a member, optionally into a team
// @Tags Members
// @Accept json
// @Produce json
// @Param request body model.RegisterMemberRequest true "Request"
// @Success 201 {object} model.MemberResponse
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 404 {object} apierror.Response "Team not found"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /members [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RegisterMember(c *gin.Context) {
	var req model.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err, "invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			apierror.NotFound(c, "team not found")
		case errors.Is(err, model.ErrInvalidUsername), errors.Is(err, model.ErrInvalidAge):
			apierror.BadRequest(c, err.Error())
		default:
			h.logger.Errorw("error registering member", "username", req.Username, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}
