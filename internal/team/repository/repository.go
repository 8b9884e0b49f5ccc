// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	memberModel "github.com/festy23/querystudy/internal/member/model"
	teamModel "github.com/festy23/querystudy/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// WithTx returns a repository bound to tx.
	WithTx(tx *gorm.DB) Repository

	// Create inserts a new team. Its members are not cascaded.
	Create(ctx context.Context, team *memberModel.Team) error

	// GetByID finds team by team_id together with its members.
	GetByID(ctx context.Context, id uint) (*memberModel.Team, error)

	// GetByName finds team by name.
	GetByName(ctx context.Context, name string) (*memberModel.Team, error)

	// List returns every team ordered by team_id, loading members when withMembers is set.
	List(ctx context.Context, withMembers bool) ([]memberModel.Team, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// WithTx returns a repository bound to tx.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *memberModel.Team) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
	if err != nil {
		if isDuplicateError(err) {
			r.logger.Debugw("Create team exists", "name", team.Name)
			return teamModel.ErrTeamExists
		}
		r.logger.Errorw("Create database error", "name", team.Name, "error", err)
		return err
	}

	r.logger.Debugw("Create completed", "team_id", team.ID, "name", team.Name)
	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func membersByID(db *gorm.DB) *gorm.DB {
	return db.Order("member.member_id ASC")
}

// GetByID finds team by team_id together with its members.
func (r *repository) GetByID(ctx context.Context, id uint) (*memberModel.Team, error) {
	var team memberModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members", membersByID).
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", id, "error", err)
		return nil, err
	}

	return &team, nil
}

// GetByName finds team by name.
func (r *repository) GetByName(ctx context.Context, name string) (*memberModel.Team, error) {
	var team memberModel.Team
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByName database error", "name", name, "error", err)
		return nil, err
	}

	return &team, nil
}

// List returns every team ordered by team_id.
func (r *repository) List(ctx context.Context, withMembers bool) ([]memberModel.Team, error) {
	tx := r.db.WithContext(ctx).Order("team_id ASC")
	if withMembers {
		tx = tx.Preload("Members", membersByID)
	}

	var teams []memberModel.Team
	if err := tx.Find(&teams).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []memberModel.Team{}
	}

	r.logger.Debugw("List completed", "count", len(teams), "with_members", withMembers)
	return teams, nil
}
