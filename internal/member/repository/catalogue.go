package repository

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/querystudy/internal/member/model"
	"github.com/festy23/querystudy/internal/member/query"
	"github.com/festy23/querystudy/pkg/page"
)

// QueryRepository runs the member query catalogue: filters, sorting, paging,
// joins, subqueries, CASE and string expressions, projections, dynamic
// predicates and bulk statements.
type QueryRepository interface {
	// FindOne returns the single member matching exprs.
	// It fails with ErrMemberNotFound on no match and ErrNonUniqueResult on several.
	FindOne(ctx context.Context, exprs ...clause.Expression) (*model.Member, error)

	// FindFirst returns the lowest-id member matching exprs.
	FindFirst(ctx context.Context, exprs ...clause.Expression) (*model.Member, error)

	// FindResults returns one page of members together with the total count.
	FindResults(ctx context.Context, req page.Request) (page.Page[model.Member], error)

	// FindByAgeSorted returns members of age ordered by age desc, then username asc with nulls last.
	FindByAgeSorted(ctx context.Context, age int) ([]model.Member, error)

	// FindPage returns members ordered by username desc, skipping offset and returning at most limit.
	FindPage(ctx context.Context, offset, limit int) ([]model.Member, error)

	// Count returns the number of members.
	Count(ctx context.Context) (int64, error)

	// FindByTeamName returns members of the named team through an inner join.
	FindByTeamName(ctx context.Context, name string) ([]model.Member, error)

	// FindUsernameMatchingTeamName returns members whose username equals some team name (theta join).
	FindUsernameMatchingTeamName(ctx context.Context) ([]model.Member, error)

	// FindWithTeamOn returns every member, with team columns only where the team is named name.
	FindWithTeamOn(ctx context.Context, name string) ([]model.MemberTeamDto, error)

	// FindWithTeamByName returns only members of the named team, with team columns.
	FindWithTeamByName(ctx context.Context, name string) ([]model.MemberTeamDto, error)

	// FindWithTeamMatchingUsername left-joins team on username = team name, without the relation.
	FindWithTeamMatchingUsername(ctx context.Context) ([]model.MemberTeamDto, error)

	// FindByUsername returns members with username, loading the team in the same query when fetchTeam is set.
	FindByUsername(ctx context.Context, username string, fetchTeam bool) ([]model.Member, error)

	// FindOldest returns members whose age equals the maximum age.
	FindOldest(ctx context.Context) ([]model.Member, error)

	// FindAtLeastAverageAge returns members at or above the average age.
	FindAtLeastAverageAge(ctx context.Context) ([]model.Member, error)

	// FindWithAgeAbove returns members whose age is among the ages greater than age.
	FindWithAgeAbove(ctx context.Context, age int) ([]model.Member, error)

	// FindUsernamesWithAverageAge pairs every username with the overall average age.
	FindUsernamesWithAverageAge(ctx context.Context) ([]model.UsernameAverage, error)

	// AgeLabels maps age 10 to "ten", 20 to "twenty" and anything else to "other".
	AgeLabels(ctx context.Context) ([]string, error)

	// AgeBrackets maps ages to "0~20", "21~30" or "other".
	AgeBrackets(ctx context.Context) ([]string, error)

	// UsernamesWithConstant pairs every username with constant.
	UsernamesWithConstant(ctx context.Context, constant string) ([]model.UsernameConstant, error)

	// UsernameAgeConcat renders username_age for members named username.
	UsernameAgeConcat(ctx context.Context, username string) ([]string, error)

	// Usernames returns every username.
	Usernames(ctx context.Context) ([]null.String, error)

	// MemberDtos projects members onto MemberDto.
	MemberDtos(ctx context.Context) ([]model.MemberDto, error)

	// UserDtos projects members onto UserDto.
	UserDtos(ctx context.Context) ([]model.UserDto, error)

	// UserDtosWithMaxAge projects usernames onto UserDto carrying the maximum age.
	UserDtosWithMaxAge(ctx context.Context) ([]model.UserDto, error)

	// SearchWithBuilder filters by the given optional username and age with a builder.
	SearchWithBuilder(ctx context.Context, username *string, age *int) ([]model.Member, error)

	// SearchWithWhereParams filters by the given optional username and age with where parameters.
	SearchWithWhereParams(ctx context.Context, username *string, age *int) ([]model.Member, error)

	// BulkUpdateUsername renames members younger than ageBelow.
	BulkUpdateUsername(ctx context.Context, username string, ageBelow int) (int64, error)

	// BulkAddAge adds delta to every member's age.
	BulkAddAge(ctx context.Context, delta int) (int64, error)

	// BulkMultiplyAge multiplies every member's age by factor.
	BulkMultiplyAge(ctx context.Context, factor int) (int64, error)

	// BulkDeleteOlderThan deletes members older than age.
	BulkDeleteOlderThan(ctx context.Context, age int) (int64, error)

	// ReplaceInUsernames returns usernames with old replaced by replacement.
	ReplaceInUsernames(ctx context.Context, old, replacement string) ([]null.String, error)

	// UsernamesEqualToLower returns usernames already in lower case.
	UsernamesEqualToLower(ctx context.Context) ([]null.String, error)
}

type queryRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewQueryRepository creates a new member query repository instance.
func NewQueryRepository(db *gorm.DB, logger *zap.SugaredLogger) QueryRepository {
	return &queryRepository{db: db, logger: logger}
}

func (r *queryRepository) members(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Member{})
}

// memberSub selects from member under the member_sub alias for use as a subquery.
func (r *queryRepository) memberSub(ctx context.Context, selection string) *gorm.DB {
	return r.db.WithContext(ctx).Table("member AS member_sub").Select(selection)
}

func (r *queryRepository) findMembers(op string, tx *gorm.DB) ([]model.Member, error) {
	var members []model.Member
	if err := tx.Find(&members).Error; err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	r.logger.Debugw(op+" completed", "count", len(members))
	return members, nil
}

func (r *queryRepository) scan(op string, tx *gorm.DB, dest interface{}) error {
	if err := tx.Scan(dest).Error; err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return err
	}
	r.logger.Debugw(op+" completed")
	return nil
}

func (r *queryRepository) pluck(op string, tx *gorm.DB, column string) ([]null.String, error) {
	var values []null.String
	if err := tx.Pluck(column, &values).Error; err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return nil, err
	}
	if values == nil {
		values = []null.String{}
	}
	return values, nil
}

func byID() func(*gorm.DB) *gorm.DB {
	return query.OrderBy(query.Asc(memberID))
}

// FindOne returns the single member matching exprs.
func (r *queryRepository) FindOne(ctx context.Context, exprs ...clause.Expression) (*model.Member, error) {
	members, err := r.findMembers("FindOne", r.members(ctx).Scopes(query.Where(exprs...), byID()).Limit(2))
	if err != nil {
		return nil, err
	}

	switch len(members) {
	case 0:
		return nil, model.ErrMemberNotFound
	case 1:
		return &members[0], nil
	default:
		return nil, model.ErrNonUniqueResult
	}
}

// FindFirst returns the lowest-id member matching exprs.
func (r *queryRepository) FindFirst(ctx context.Context, exprs ...clause.Expression) (*model.Member, error) {
	members, err := r.findMembers("FindFirst", r.members(ctx).Scopes(query.Where(exprs...), byID()).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, model.ErrMemberNotFound
	}
	return &members[0], nil
}

// FindResults returns one page of members together with the total count.
func (r *queryRepository) FindResults(ctx context.Context, req page.Request) (page.Page[model.Member], error) {
	content, err := r.findMembers("FindResults",
		r.members(ctx).Scopes(byID(), query.Paginate(req.Offset(), req.Limit())))
	if err != nil {
		return page.Page[model.Member]{}, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return page.Page[model.Member]{}, err
	}

	return page.New(content, req, total), nil
}

// FindByAgeSorted orders by age desc, then username asc with nulls last.
func (r *queryRepository) FindByAgeSorted(ctx context.Context, age int) ([]model.Member, error) {
	return r.findMembers("FindByAgeSorted", r.members(ctx).Scopes(
		query.Where(query.Eq(memberAge, age)),
		query.OrderBy(query.Desc(memberAge), query.AscNullsLast(memberUsername)),
	))
}

// FindPage returns members ordered by username desc within offset and limit.
func (r *queryRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Member, error) {
	return r.findMembers("FindPage", r.members(ctx).Scopes(
		query.OrderBy(query.Desc(memberUsername)),
		query.Paginate(offset, limit),
	))
}

// Count returns the number of members.
func (r *queryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.members(ctx).Count(&count).Error; err != nil {
		r.logger.Errorw("Count database error", "error", err)
		return 0, err
	}
	return count, nil
}

// FindByTeamName returns members of the named team through an inner join.
func (r *queryRepository) FindByTeamName(ctx context.Context, name string) ([]model.Member, error) {
	return r.findMembers("FindByTeamName", r.members(ctx).
		Joins("JOIN team ON ?", query.Eq(teamID, memberTeamID)).
		Scopes(query.Where(query.Eq(teamName, name)), byID()))
}

// FindUsernameMatchingTeamName cross joins team and keeps rows where username = team name.
func (r *queryRepository) FindUsernameMatchingTeamName(ctx context.Context) ([]model.Member, error) {
	return r.findMembers("FindUsernameMatchingTeamName", r.members(ctx).
		Joins("CROSS JOIN team").
		Scopes(query.Where(query.Eq(memberUsername, teamName)), byID()))
}

// FindWithTeamOn filters the joined team in the ON clause, so members outside it keep null team columns.
func (r *queryRepository) FindWithTeamOn(ctx context.Context, name string) ([]model.MemberTeamDto, error) {
	var rows []model.MemberTeamDto
	tx := r.db.WithContext(ctx).Table("member").
		Select(memberTeamColumns).
		Joins("LEFT JOIN team ON ?", query.And(query.Eq(teamID, memberTeamID), query.Eq(teamName, name))).
		Scopes(byID())
	if err := r.scan("FindWithTeamOn", tx, &rows); err != nil {
		return nil, err
	}
	return nonNilRows(rows), nil
}

// FindWithTeamByName filters the joined team in WHERE, so only its members remain.
func (r *queryRepository) FindWithTeamByName(ctx context.Context, name string) ([]model.MemberTeamDto, error) {
	var rows []model.MemberTeamDto
	tx := r.db.WithContext(ctx).Table("member").
		Select(memberTeamColumns).
		Joins("JOIN team ON ?", query.Eq(teamID, memberTeamID)).
		Scopes(query.Where(query.Eq(teamName, name)), byID())
	if err := r.scan("FindWithTeamByName", tx, &rows); err != nil {
		return nil, err
	}
	return nonNilRows(rows), nil
}

// FindWithTeamMatchingUsername joins team on username = team name, ignoring team_id.
func (r *queryRepository) FindWithTeamMatchingUsername(ctx context.Context) ([]model.MemberTeamDto, error) {
	var rows []model.MemberTeamDto
	tx := r.db.WithContext(ctx).Table("member").
		Select(memberTeamColumns).
		Joins("LEFT JOIN team ON ?", query.Eq(memberUsername, teamName)).
		Scopes(byID())
	if err := r.scan("FindWithTeamMatchingUsername", tx, &rows); err != nil {
		return nil, err
	}
	return nonNilRows(rows), nil
}

// FindByUsername loads Team through an inner join when fetchTeam is set and leaves it nil otherwise.
func (r *queryRepository) FindByUsername(ctx context.Context, username string, fetchTeam bool) ([]model.Member, error) {
	tx := r.members(ctx)
	if fetchTeam {
		tx = tx.InnerJoins("Team")
	}
	return r.findMembers("FindByUsername", tx.Scopes(query.Where(query.Eq(memberUsername, username)), byID()))
}

// FindOldest returns members whose age equals the maximum age.
func (r *queryRepository) FindOldest(ctx context.Context) ([]model.Member, error) {
	maxAge := r.memberSub(ctx, "MAX(member_sub.age)")
	return r.findMembers("FindOldest", r.members(ctx).
		Scopes(query.Where(query.Eq(memberAge, query.Sub(maxAge))), byID()))
}

// FindAtLeastAverageAge returns members at or above the average age.
func (r *queryRepository) FindAtLeastAverageAge(ctx context.Context) ([]model.Member, error) {
	avgAge := r.memberSub(ctx, "AVG(member_sub.age)")
	return r.findMembers("FindAtLeastAverageAge", r.members(ctx).
		Scopes(query.Where(query.Gte(memberAge, query.Sub(avgAge))), byID()))
}

// FindWithAgeAbove matches ages through an IN subquery over members older than age.
func (r *queryRepository) FindWithAgeAbove(ctx context.Context, age int) ([]model.Member, error) {
	older := r.memberSub(ctx, "member_sub.age").
		Where(query.Gt(query.Col("member_sub", "age"), age))
	return r.findMembers("FindWithAgeAbove", r.members(ctx).
		Scopes(query.Where(query.InSub(memberAge, older)), byID()))
}

// FindUsernamesWithAverageAge selects the average age as a scalar subquery next to each username.
func (r *queryRepository) FindUsernamesWithAverageAge(ctx context.Context) ([]model.UsernameAverage, error) {
	var rows []model.UsernameAverage
	avgAge := r.memberSub(ctx, "AVG(member_sub.age)")
	tx := r.members(ctx).
		Select("member.username AS username, (?) AS average_age", avgAge).
		Scopes(byID())
	if err := r.scan("FindUsernamesWithAverageAge", tx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.UsernameAverage{}
	}
	return rows, nil
}

// AgeLabels uses a simple CASE on age.
func (r *queryRepository) AgeLabels(ctx context.Context) ([]string, error) {
	return r.labels(ctx, "AgeLabels",
		"CASE member.age WHEN 10 THEN 'ten' WHEN 20 THEN 'twenty' ELSE 'other' END")
}

// AgeBrackets uses a searched CASE over age ranges.
func (r *queryRepository) AgeBrackets(ctx context.Context) ([]string, error) {
	return r.labels(ctx, "AgeBrackets",
		"CASE WHEN member.age BETWEEN 0 AND 20 THEN '0~20' "+
			"WHEN member.age BETWEEN 21 AND 30 THEN '21~30' ELSE 'other' END")
}

func (r *queryRepository) labels(ctx context.Context, op, expr string) ([]string, error) {
	var labels []string
	tx := r.members(ctx).Select(expr + " AS label").Scopes(byID())
	if err := r.scan(op, tx, &labels); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// UsernamesWithConstant attaches constant to each row after the query.
// The constant never reaches the SQL statement.
func (r *queryRepository) UsernamesWithConstant(ctx context.Context, constant string) ([]model.UsernameConstant, error) {
	usernames, err := r.Usernames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]model.UsernameConstant, 0, len(usernames))
	for _, username := range usernames {
		rows = append(rows, model.UsernameConstant{Username: username, Constant: constant})
	}
	return rows, nil
}

// UsernameAgeConcat renders username_age for members named username.
func (r *queryRepository) UsernameAgeConcat(ctx context.Context, username string) ([]string, error) {
	var values []string
	tx := r.members(ctx).
		Select("member.username || '_' || CAST(member.age AS VARCHAR(11)) AS value").
		Scopes(query.Where(query.Eq(memberUsername, username)), byID())
	if err := r.scan("UsernameAgeConcat", tx, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// Usernames returns every username ordered by member_id.
func (r *queryRepository) Usernames(ctx context.Context) ([]null.String, error) {
	return r.pluck("Usernames", r.members(ctx).Scopes(byID()), "username")
}

// MemberDtos projects members onto MemberDto.
func (r *queryRepository) MemberDtos(ctx context.Context) ([]model.MemberDto, error) {
	var rows []model.MemberDto
	tx := r.members(ctx).Select("member.username AS username, member.age AS age").Scopes(byID())
	if err := r.scan("MemberDtos", tx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.MemberDto{}
	}
	return rows, nil
}

// UserDtos projects members onto UserDto, aliasing username as name.
func (r *queryRepository) UserDtos(ctx context.Context) ([]model.UserDto, error) {
	return r.userDtos(ctx, "UserDtos", "member.username AS name, member.age AS age")
}

// UserDtosWithMaxAge fills the age of every UserDto from a scalar subquery.
func (r *queryRepository) UserDtosWithMaxAge(ctx context.Context) ([]model.UserDto, error) {
	maxAge := r.memberSub(ctx, "MAX(member_sub.age)")
	return r.userDtos(ctx, "UserDtosWithMaxAge", "member.username AS name, (?) AS age", maxAge)
}

func (r *queryRepository) userDtos(ctx context.Context, op, selection string, args ...interface{}) ([]model.UserDto, error) {
	var rows []model.UserDto
	tx := r.members(ctx).Select(selection, args...).Scopes(byID())
	if err := r.scan(op, tx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.UserDto{}
	}
	return rows, nil
}

// SearchWithBuilder accumulates the optional filters in a builder.
func (r *queryRepository) SearchWithBuilder(ctx context.Context, username *string, age *int) ([]model.Member, error) {
	b := query.NewBuilder()
	if username != nil {
		b.And(query.Eq(memberUsername, *username))
	}
	if age != nil {
		b.And(query.Eq(memberAge, *age))
	}
	return r.findMembers("SearchWithBuilder", r.members(ctx).Scopes(b.Scope(), byID()))
}

// SearchWithWhereParams passes the optional filters as where parameters; nil ones are skipped.
func (r *queryRepository) SearchWithWhereParams(ctx context.Context, username *string, age *int) ([]model.Member, error) {
	return r.findMembers("SearchWithWhereParams", r.members(ctx).
		Scopes(query.Where(query.And(optionalUsernameEq(username), ageEq(age))), byID()))
}

// BulkUpdateUsername renames members younger than ageBelow in one statement.
func (r *queryRepository) BulkUpdateUsername(ctx context.Context, username string, ageBelow int) (int64, error) {
	return r.bulk("BulkUpdateUsername", r.members(ctx).
		Scopes(query.Where(query.Lt(memberAge, ageBelow))).
		Update("username", username))
}

// BulkAddAge adds delta to every member's age in one statement.
func (r *queryRepository) BulkAddAge(ctx context.Context, delta int) (int64, error) {
	return r.bulk("BulkAddAge", r.members(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("age", gorm.Expr("age + ?", delta)))
}

// BulkMultiplyAge multiplies every member's age by factor in one statement.
func (r *queryRepository) BulkMultiplyAge(ctx context.Context, factor int) (int64, error) {
	return r.bulk("BulkMultiplyAge", r.members(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("age", gorm.Expr("age * ?", factor)))
}

// BulkDeleteOlderThan deletes members older than age in one statement.
func (r *queryRepository) BulkDeleteOlderThan(ctx context.Context, age int) (int64, error) {
	return r.bulk("BulkDeleteOlderThan", r.db.WithContext(ctx).
		Scopes(query.Where(query.Gt(memberAge, age))).
		Delete(&model.Member{}))
}

func (r *queryRepository) bulk(op string, result *gorm.DB) (int64, error) {
	if result.Error != nil {
		r.logger.Errorw(op+" database error", "error", result.Error)
		return 0, fmt.Errorf("%s: %w", op, result.Error)
	}
	r.logger.Infow(op+" completed", "rows_affected", result.RowsAffected)
	return result.RowsAffected, nil
}

// ReplaceInUsernames calls the SQL REPLACE function on every username.
func (r *queryRepository) ReplaceInUsernames(ctx context.Context, old, replacement string) ([]null.String, error) {
	var values []null.String
	tx := r.members(ctx).
		Select("REPLACE(member.username, ?, ?) AS value", old, replacement).
		Scopes(byID())
	if err := r.scan("ReplaceInUsernames", tx, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []null.String{}
	}
	return values, nil
}

// UsernamesEqualToLower keeps usernames equal to their LOWER() form.
func (r *queryRepository) UsernamesEqualToLower(ctx context.Context) ([]null.String, error) {
	return r.pluck("UsernamesEqualToLower", r.members(ctx).
		Scopes(query.Where(query.Eq(memberUsername, query.Lower(memberUsername))), byID()), "username")
}

func nonNilRows(rows []model.MemberTeamDto) []model.MemberTeamDto {
	if rows == nil {
		return []model.MemberTeamDto{}
	}
	return rows
}
