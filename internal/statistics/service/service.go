// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/querystudy/internal/statistics/model"
	"github.com/festy23/querystudy/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetAgeStatistics returns aggregate statistics over member ages.
	GetAgeStatistics(ctx context.Context) (*model.AgeStatisticsResponse, error)

	// GetTeamStatistics returns the average member age per team.
	GetTeamStatistics(ctx context.Context, minAverage *float64) (*model.TeamStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetAgeStatistics returns aggregate statistics over member ages.
func (s *service) GetAgeStatistics(ctx context.Context) (*model.AgeStatisticsResponse, error) {
	s.logger.Debugw("GetAgeStatistics called")

	stats, err := s.repo.GetAgeAggregate(ctx)
	if err != nil {
		s.logger.Errorw("GetAgeStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetAgeStatistics completed", "count", stats.Count)
	return &model.AgeStatisticsResponse{
		Statistics: *stats,
	}, nil
}

// GetTeamStatistics returns the average member age per team.
func (s *service) GetTeamStatistics(ctx context.Context, minAverage *float64) (*model.TeamStatisticsResponse, error) {
	s.logger.Debugw("GetTeamStatistics called")

	teams, err := s.repo.GetTeamAgeAverages(ctx, minAverage)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []model.TeamAgeAverage{}
	}

	s.logger.Infow("GetTeamStatistics completed", "count", len(teams))
	return &model.TeamStatisticsResponse{
		Teams: teams,
		Total: len(teams),
	}, nil
}
