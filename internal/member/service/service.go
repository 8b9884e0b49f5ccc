// Package service provides business logic layer for member module.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	appconfig "github.com/festy23/querystudy/internal/config"
	"github.com/festy23/querystudy/internal/database/database"
	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/repository"
	teamRepository "github.com/festy23/querystudy/internal/team/repository"
	"github.com/festy23/querystudy/pkg/page"
)

// SearchMode selects how a paged search computes its total.
type SearchMode string

const (
	// SearchModeSimple always runs the count query.
	SearchModeSimple SearchMode = "simple"
	// SearchModeComplex skips the count query when the page proves the total.
	SearchModeComplex SearchMode = "complex"
)

// ErrInvalidSearchMode indicates an unknown paged search mode.
var ErrInvalidSearchMode = errors.New("invalid search mode")

// Service defines the interface for member business logic operations.
type Service interface {
	// Search returns every member/team row matching cond.
	Search(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error)

	// SearchPage returns one page of matching rows.
	SearchPage(
		ctx context.Context,
		cond model.MemberSearchCondition,
		req page.Request,
		mode SearchMode,
	) (page.Page[model.MemberTeamDto], error)

	// Register creates a member, optionally inside an existing team.
	Register(ctx context.Context, req *model.RegisterMemberRequest) (*model.MemberResponse, error)

	// Get returns a member with its team name.
	Get(ctx context.Context, id uint) (*model.MemberResponse, error)
}

type service struct {
	repo     repository.Repository
	teamRepo teamRepository.Repository
	db       *gorm.DB
	paging   appconfig.PagingConfig
	logger   *zap.SugaredLogger
}

// New creates a new member service instance.
func New(
	repo repository.Repository,
	teamRepo teamRepository.Repository,
	db *gorm.DB,
	paging appconfig.PagingConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		teamRepo: teamRepo,
		db:       db,
		paging:   paging,
		logger:   logger,
	}
}

// Search returns every member/team row matching cond.
func (s *service) Search(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.Search(ctx, cond)
	if err != nil {
		s.logger.Errorw("Search failed", "error", err)
		return nil, err
	}
	return rows, nil
}

// SearchPage normalizes req against the paging defaults and runs the search in mode.
func (s *service) SearchPage(
	ctx context.Context,
	cond model.MemberSearchCondition,
	req page.Request,
	mode SearchMode,
) (page.Page[model.MemberTeamDto], error) {
	if err := cond.Validate(); err != nil {
		return page.Page[model.MemberTeamDto]{}, err
	}
	req = req.Normalize(s.paging.DefaultSize, s.paging.MaxSize)

	var (
		result page.Page[model.MemberTeamDto]
		err    error
	)
	switch mode {
	case SearchModeSimple:
		result, err = s.repo.SearchPageSimple(ctx, cond, req)
	case SearchModeComplex:
		result, err = s.repo.SearchPageComplex(ctx, cond, req)
	default:
		return page.Page[model.MemberTeamDto]{}, ErrInvalidSearchMode
	}
	if err != nil {
		s.logger.Errorw("SearchPage failed", "mode", mode, "page", req.Page, "size", req.Size, "error", err)
		return page.Page[model.MemberTeamDto]{}, err
	}

	s.logger.Debugw("SearchPage completed", "mode", mode, "returned", len(result.Content), "total", result.TotalElements)
	return result, nil
}

// Register creates a member. A member joining a team is saved in the same
// transaction that loads the team.
func (s *service) Register(ctx context.Context, req *model.RegisterMemberRequest) (*model.MemberResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, model.ErrInvalidUsername
	}
	if req.Age < 0 {
		return nil, model.ErrInvalidAge
	}

	if req.TeamID == nil {
		member := model.NewMember(username, req.Age)
		if err := s.repo.Save(ctx, member); err != nil {
			s.logger.Errorw("Register failed", "username", username, "error", err)
			return nil, err
		}
		s.logger.Infow("Member registered", "member_id", member.ID)
		resp := model.NewMemberResponse(member)
		return &resp, nil
	}

	var member *model.Member
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		team, err := s.teamRepo.WithTx(tx).GetByID(ctx, *req.TeamID)
		if err != nil {
			return err
		}
		member = model.NewMemberInTeam(team, username, req.Age)
		return s.repo.WithTx(tx).Save(ctx, member)
	})
	if err != nil {
		s.logger.Errorw("Register failed", "username", username, "team_id", *req.TeamID, "error", err)
		return nil, err
	}

	s.logger.Infow("Member registered", "member_id", member.ID, "team_id", *req.TeamID)
	resp := model.NewMemberResponse(member)
	return &resp, nil
}

// Get returns a member with its team name.
func (s *service) Get(ctx context.Context, id uint) (*model.MemberResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewMemberResponse(member)
	return &resp, nil
}
