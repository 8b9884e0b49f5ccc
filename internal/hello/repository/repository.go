// Package repository provides data access for the hello table.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/hello/model"
)

// Repository defines the interface for hello data access operations.
type Repository interface {
	// Create inserts a new row and fills in its id.
	Create(ctx context.Context, hello *model.Hello) error

	// FindAll returns every row ordered by id.
	FindAll(ctx context.Context) ([]model.Hello, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new hello repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, hello *model.Hello) error {
	if err := r.db.WithContext(ctx).Create(hello).Error; err != nil {
		r.logger.Errorw("Create database error", "error", err)
		return err
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context) ([]model.Hello, error) {
	var rows []model.Hello
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("FindAll database error", "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []model.Hello{}
	}
	return rows, nil
}
