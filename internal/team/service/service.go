// Package service provides business logic layer for team module.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/database/database"
	memberModel "github.com/festy23/querystudy/internal/member/model"
	memberRepository "github.com/festy23/querystudy/internal/member/repository"
	teamModel "github.com/festy23/querystudy/internal/team/model"
	"github.com/festy23/querystudy/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a team and its initial members atomically.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its members.
	GetTeam(ctx context.Context, id uint) (*teamModel.TeamResponse, error)

	// ListTeams returns every team, with members when withMembers is set.
	ListTeams(ctx context.Context, withMembers bool) ([]teamModel.TeamResponse, error)
}

type service struct {
	repo       repository.Repository
	memberRepo memberRepository.Repository
	db         *gorm.DB
	logger     *zap.SugaredLogger
}

// New creates a new team service instance.
func New(
	repo repository.Repository,
	memberRepo memberRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		db:         db,
		logger:     logger,
	}
}

// CreateTeam creates the team and then its members in one transaction.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	for _, m := range req.Members {
		if strings.TrimSpace(m.Username) == "" {
			return nil, memberModel.ErrInvalidUsername
		}
		if m.Age < 0 {
			return nil, memberModel.ErrInvalidAge
		}
	}

	team := memberModel.NewTeam(name)
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, team); err != nil {
			return err
		}

		members := make([]*memberModel.Member, 0, len(req.Members))
		for _, m := range req.Members {
			members = append(members, memberModel.NewMemberInTeam(team, m.Username, m.Age))
		}
		if err := s.memberRepo.WithTx(tx).SaveAll(ctx, members); err != nil {
			return fmt.Errorf("failed to save team members: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Team created", "team_id", team.ID, "name", team.Name, "members", len(team.Members))
	resp := teamModel.NewTeamResponse(team)
	return &resp, nil
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, id uint) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := teamModel.NewTeamResponse(team)
	return &resp, nil
}

// ListTeams returns every team.
func (s *service) ListTeams(ctx context.Context, withMembers bool) ([]teamModel.TeamResponse, error) {
	teams, err := s.repo.List(ctx, withMembers)
	if err != nil {
		return nil, err
	}

	resp := make([]teamModel.TeamResponse, 0, len(teams))
	for i := range teams {
		resp = append(resp, teamModel.NewTeamResponse(&teams[i]))
	}
	return resp, nil
}
