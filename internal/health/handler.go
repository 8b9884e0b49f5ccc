// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/database/database"
	"github.com/festy23/querystudy/internal/database/migrate"
)

const checkTimeout = 5 * time.Second

// SchemaVersionFunc reports the applied migration version of db.
type SchemaVersionFunc func(db *gorm.DB) (version uint, dirty bool, err error)

// Handler handles health check requests.
type Handler struct {
	db            *gorm.DB
	schemaVersion SchemaVersionFunc
	logger        *zap.SugaredLogger
}

// New creates a health handler that reads the schema version from the migrations table.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return NewWithSchemaVersion(db, migrate.Version, logger)
}

// NewWithSchemaVersion creates a health handler with a custom schema version source.
// A nil source omits the schema section.
func NewWithSchemaVersion(db *gorm.DB, schemaVersion SchemaVersionFunc, logger *zap.SugaredLogger) *Handler {
	return &Handler{db: db, schemaVersion: schemaVersion, logger: logger}
}

// Response represents health check response.
type Response struct {
	Status   string          `json:"status"`
	Database *DatabaseStatus `json:"database,omitempty"`
	Schema   *SchemaStatus   `json:"schema,omitempty"`
}

// DatabaseStatus reports connection pool usage.
type DatabaseStatus struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// SchemaStatus reports the applied migration version.
type SchemaStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Check handles GET /health request.
// The service is unhealthy when the database does not answer a ping
// or the schema is left dirty by a failed migration.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
		return
	}

	resp := Response{Status: "ok"}
	if stats, err := database.GetStats(h.db); err == nil {
		resp.Database = &DatabaseStatus{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		}
	}

	if h.schemaVersion != nil {
		version, dirty, err := h.schemaVersion(h.db)
		if err != nil {
			h.logger.Warnw("schema version unavailable", "error", err)
		} else {
			resp.Schema = &SchemaStatus{Version: version, Dirty: dirty}
			if dirty {
				resp.Status = "unhealthy"
				c.JSON(http.StatusServiceUnavailable, resp)
				return
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
