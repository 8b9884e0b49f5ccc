// Package router provides member module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appconfig "github.com/festy23/querystudy/internal/config"
	"github.com/festy23/querystudy/internal/member/handler"
	"github.com/festy23/querystudy/internal/member/repository"
	"github.com/festy23/querystudy/internal/member/service"
	teamRepository "github.com/festy23/querystudy/internal/team/repository"
)

// RegisterRoutes registers member module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, paging appconfig.PagingConfig, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	teamRepo := teamRepository.New(db, logger)
	svc := service.New(repo, teamRepo, db, paging, logger)
	h := handler.New(svc, logger)

	r.GET("/v1/members", h.SearchV1)
	r.GET("/v2/members", h.SearchV2)
	r.GET("/v3/members", h.SearchV3)

	members := r.Group("/members")
	members.POST("", h.RegisterMember)
	members.GET("/:id", h.GetMember)
}
