// Package repository provides data access layer for member module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/query"
	"github.com/festy23/querystudy/pkg/page"
)

// Repository defines the interface for member data access operations.
type Repository interface {
	// WithTx returns a repository bound to tx.
	WithTx(tx *gorm.DB) Repository

	// Save inserts a new member or updates an existing one. The team is never cascaded.
	Save(ctx context.Context, member *model.Member) error

	// SaveAll saves members in order, stopping at the first failure.
	SaveAll(ctx context.Context, members []*model.Member) error

	// FindByID finds member by member_id.
	FindByID(ctx context.Context, id uint) (*model.Member, error)

	// FindAll returns every member ordered by member_id.
	FindAll(ctx context.Context) ([]model.Member, error)

	// FindByUsername returns members with the exact username.
	FindByUsername(ctx context.Context, username string) ([]model.Member, error)

	// FindAllWhere returns members matching every non-nil expression.
	FindAllWhere(ctx context.Context, exprs ...clause.Expression) ([]model.Member, error)

	// CountWhere counts members matching every non-nil expression.
	CountWhere(ctx context.Context, exprs ...clause.Expression) (int64, error)

	// Delete removes member by member_id.
	Delete(ctx context.Context, id uint) error

	// Search returns member/team rows matching cond, built from where parameters.
	Search(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error)

	// SearchByBuilder returns the same rows as Search, built with an accumulating builder.
	SearchByBuilder(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error)

	// SearchPageSimple returns one page of Search and always runs the count query.
	SearchPageSimple(ctx context.Context, cond model.MemberSearchCondition, req page.Request) (page.Page[model.MemberTeamDto], error)

	// SearchPageComplex returns one page of Search and runs the count query only when needed.
	SearchPageComplex(ctx context.Context, cond model.MemberSearchCondition, req page.Request) (page.Page[model.MemberTeamDto], error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new member repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// WithTx returns a repository bound to tx.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Save inserts or updates member without touching its team.
func (r *repository) Save(ctx context.Context, member *model.Member) error {
	if member.Team != nil {
		if member.Team.ID == 0 {
			r.logger.Debugw("Save rejected transient team", "username", member.Username.String)
			return model.ErrTransientTeam
		}
		id := member.Team.ID
		member.TeamID = &id
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(member).Error; err != nil {
		r.logger.Errorw("Save database error", "member_id", member.ID, "error", err)
		return err
	}

	r.logger.Debugw("Save completed", "member_id", member.ID)
	return nil
}

// SaveAll saves members in order.
func (r *repository) SaveAll(ctx context.Context, members []*model.Member) error {
	for _, m := range members {
		if err := r.Save(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds member by member_id.
func (r *repository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	r.logger.Debugw("FindByID called", "member_id", id)

	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where(query.Eq(memberID, id)).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("FindByID member not found", "member_id", id)
			return nil, model.ErrMemberNotFound
		}
		r.logger.Errorw("FindByID database error", "member_id", id, "error", err)
		return nil, err
	}

	return &member, nil
}

// FindAll returns every member ordered by member_id.
func (r *repository) FindAll(ctx context.Context) ([]model.Member, error) {
	return r.FindAllWhere(ctx)
}

// FindByUsername returns members with the exact username.
func (r *repository) FindByUsername(ctx context.Context, username string) ([]model.Member, error) {
	return r.FindAllWhere(ctx, query.Eq(memberUsername, username))
}

// FindAllWhere returns members matching every non-nil expression.
func (r *repository) FindAllWhere(ctx context.Context, exprs ...clause.Expression) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Scopes(query.Where(exprs...), query.OrderBy(query.Asc(memberID))).
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("FindAllWhere database error", "error", err)
		return nil, err
	}

	if members == nil {
		members = []model.Member{}
	}

	r.logger.Debugw("FindAllWhere completed", "count", len(members))
	return members, nil
}

// CountWhere counts members matching every non-nil expression.
func (r *repository) CountWhere(ctx context.Context, exprs ...clause.Expression) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Scopes(query.Where(exprs...)).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("CountWhere database error", "error", err)
		return 0, err
	}
	return count, nil
}

// Delete removes member by member_id.
func (r *repository) Delete(ctx context.Context, id uint) error {
	r.logger.Infow("Delete called", "member_id", id)

	result := r.db.WithContext(ctx).Where(query.Eq(memberID, id)).Delete(&model.Member{})
	if result.Error != nil {
		r.logger.Errorw("Delete database error", "member_id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}
