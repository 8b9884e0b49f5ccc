package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/query"
	"github.com/festy23/querystudy/pkg/page"
)

const memberTeamColumns = "member.member_id AS member_id, member.username AS username, member.age AS age, " +
	"team.team_id AS team_id, team.name AS team_name"

// memberTeam selects member rows left-joined with their team.
func (r *repository) memberTeam(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("member").
		Joins("LEFT JOIN team ON team.team_id = member.team_id")
}

func conditionScope(cond model.MemberSearchCondition) func(*gorm.DB) *gorm.DB {
	return query.Where(
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageGoe(cond.AgeGoe),
		ageLoe(cond.AgeLoe),
	)
}

func conditionBuilder(cond model.MemberSearchCondition) *query.Builder {
	b := query.NewBuilder()
	if cond.HasUsername() {
		b.And(query.Eq(memberUsername, cond.Username))
	}
	if cond.HasTeamName() {
		b.And(query.Eq(teamName, cond.TeamName))
	}
	if cond.AgeGoe != nil {
		b.And(query.Gte(memberAge, *cond.AgeGoe))
	}
	if cond.AgeLoe != nil {
		b.And(query.Lte(memberAge, *cond.AgeLoe))
	}
	return b
}

// Search returns member/team rows matching cond, ordered by member_id.
func (r *repository) Search(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error) {
	r.logger.Debugw("Search called", "condition", cond)
	return r.scanMemberTeams(ctx, "Search", conditionScope(cond))
}

// SearchByBuilder returns the rows Search returns.
func (r *repository) SearchByBuilder(ctx context.Context, cond model.MemberSearchCondition) ([]model.MemberTeamDto, error) {
	r.logger.Debugw("SearchByBuilder called", "condition", cond)
	return r.scanMemberTeams(ctx, "SearchByBuilder", conditionBuilder(cond).Scope())
}

// SearchPageSimple runs the content and count queries for one page.
func (r *repository) SearchPageSimple(
	ctx context.Context,
	cond model.MemberSearchCondition,
	req page.Request,
) (page.Page[model.MemberTeamDto], error) {
	content, err := r.scanMemberTeams(ctx, "SearchPageSimple",
		conditionScope(cond), query.Paginate(req.Offset(), req.Limit()))
	if err != nil {
		return page.Page[model.MemberTeamDto]{}, err
	}

	total, err := r.countMemberTeams(ctx, cond)
	if err != nil {
		return page.Page[model.MemberTeamDto]{}, err
	}

	return page.New(content, req, total), nil
}

// SearchPageComplex runs the count query only when the content does not determine the total.
func (r *repository) SearchPageComplex(
	ctx context.Context,
	cond model.MemberSearchCondition,
	req page.Request,
) (page.Page[model.MemberTeamDto], error) {
	content, err := r.scanMemberTeams(ctx, "SearchPageComplex",
		conditionScope(cond), query.Paginate(req.Offset(), req.Limit()))
	if err != nil {
		return page.Page[model.MemberTeamDto]{}, err
	}

	return page.Lazy(content, req, func() (int64, error) {
		return r.countMemberTeams(ctx, cond)
	})
}

func (r *repository) scanMemberTeams(
	ctx context.Context,
	op string,
	scopes ...func(*gorm.DB) *gorm.DB,
) ([]model.MemberTeamDto, error) {
	var rows []model.MemberTeamDto
	err := r.memberTeam(ctx).
		Select(memberTeamColumns).
		Scopes(scopes...).
		Scopes(query.OrderBy(query.Asc(memberID))).
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return nil, err
	}

	if rows == nil {
		rows = []model.MemberTeamDto{}
	}

	r.logger.Debugw(op+" completed", "count", len(rows))
	return rows, nil
}

func (r *repository) countMemberTeams(ctx context.Context, cond model.MemberSearchCondition) (int64, error) {
	var total int64
	err := r.memberTeam(ctx).
		Scopes(conditionScope(cond)).
		Count(&total).Error
	if err != nil {
		r.logger.Errorw("count member teams database error", "error", err)
		return 0, err
	}
	return total, nil
}
