// Package handler exposes the hello table over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/apierror"
	"github.com/festy23/querystudy/internal/hello/model"
	"github.com/festy23/querystudy/internal/hello/repository"
)

// Handler handles HTTP requests for hello endpoints.
type Handler struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new hello handler instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /hello request.
func (h *Handler) Create(c *gin.Context) {
	var hello model.Hello
	if err := h.repo.Create(c.Request.Context(), &hello); err != nil {
		h.logger.Errorw("error creating hello", "error", err)
		apierror.Internal(c)
		return
	}
	c.JSON(http.StatusCreated, hello)
}

// List handles GET /hello request.
func (h *Handler) List(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing hello", "error", err)
		apierror.Internal(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hello": rows})
}
