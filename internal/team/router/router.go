// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memberRepository "github.com/festy23/querystudy/internal/member/repository"
	"github.com/festy23/querystudy/internal/team/handler"
	"github.com/festy23/querystudy/internal/team/repository"
	"github.com/festy23/querystudy/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	memberRepo := memberRepository.New(db, logger)
	svc := service.New(repo, memberRepo, db, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams")
	teams.POST("", h.CreateTeam)
	teams.GET("", h.ListTeams)
	teams.GET("/:id", h.GetTeam)
}
