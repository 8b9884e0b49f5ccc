package repository

import (
	"strings"

	"gorm.io/gorm/clause"

	"github.com/festy23/querystudy/internal/member/query"
)

var (
	memberID       = query.Col("member", "member_id")
	memberUsername = query.Col("member", "username")
	memberAge      = query.Col("member", "age")
	memberTeamID   = query.Col("member", "team_id")
	teamID         = query.Col("team", "team_id")
	teamName       = query.Col("team", "name")
)

func usernameEq(username string) clause.Expression {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	return query.Eq(memberUsername, username)
}

func teamNameEq(name string) clause.Expression {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return query.Eq(teamName, name)
}

func ageEq(age *int) clause.Expression {
	if age == nil {
		return nil
	}
	return query.Eq(memberAge, *age)
}

func ageGoe(age *int) clause.Expression {
	if age == nil {
		return nil
	}
	return query.Gte(memberAge, *age)
}

func ageLoe(age *int) clause.Expression {
	if age == nil {
		return nil
	}
	return query.Lte(memberAge, *age)
}

func optionalUsernameEq(username *string) clause.Expression {
	if username == nil {
		return nil
	}
	return query.Eq(memberUsername, *username)
}
