// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetAgeAggregate returns count, sum, average, max and min of member ages.
	GetAgeAggregate(ctx context.Context) (*model.AgeAggregate, error)

	// GetTeamAgeAverages returns the average member age per team ordered by team name.
	// When minAverage is set, only teams averaging at least that much are returned.
	GetTeamAgeAverages(ctx context.Context, minAverage *float64) ([]model.TeamAgeAverage, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetAgeAggregate returns aggregate functions over member ages.
// An empty table yields zeros.
func (r *repository) GetAgeAggregate(ctx context.Context) (*model.AgeAggregate, error) {
	r.logger.Debugw("GetAgeAggregate called")

	var stats model.AgeAggregate
	err := r.db.WithContext(ctx).
		Table("member").
		Select(`
			COUNT(member.member_id) AS member_count,
			COALESCE(SUM(member.age), 0) AS age_sum,
			COALESCE(AVG(member.age), 0) AS age_avg,
			COALESCE(MAX(member.age), 0) AS age_max,
			COALESCE(MIN(member.age), 0) AS age_min
		`).
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("GetAgeAggregate database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("GetAgeAggregate completed", "count", stats.Count)
	return &stats, nil
}

// GetTeamAgeAverages groups members by team name through an inner join.
func (r *repository) GetTeamAgeAverages(ctx context.Context, minAverage *float64) ([]model.TeamAgeAverage, error) {
	r.logger.Debugw("GetTeamAgeAverages called", "min_average", minAverage)

	tx := r.db.WithContext(ctx).
		Table("member").
		Select("team.name AS team_name, COUNT(member.member_id) AS member_count, AVG(member.age) AS average_age").
		Joins("JOIN team ON team.team_id = member.team_id").
		Group("team.name")
	if minAverage != nil {
		tx = tx.Having("AVG(member.age) >= ?", *minAverage)
	}

	var stats []model.TeamAgeAverage
	if err := tx.Order("team.name ASC").Scan(&stats).Error; err != nil {
		r.logger.Errorw("GetTeamAgeAverages database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.TeamAgeAverage{}
	}

	r.logger.Debugw("GetTeamAgeAverages completed", "count", len(stats))
	return stats, nil
}
