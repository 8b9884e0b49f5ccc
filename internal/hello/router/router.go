// Package router provides hello module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/hello/handler"
	"github.com/festy23/querystudy/internal/hello/repository"
)

// RegisterRoutes registers hello module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	h := handler.New(repository.New(db, logger), logger)

	r.POST("/hello", h.Create)
	r.GET("/hello", h.List)
}
