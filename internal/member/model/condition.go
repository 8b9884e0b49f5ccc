package model

import "strings"

// MemberSearchCondition holds optional member search filters.
// Blank strings and nil ages mean no filter.
type MemberSearchCondition struct {
	Username string `form:"username"`
	TeamName string `form:"teamName"`
	AgeGoe   *int   `form:"ageGoe"   binding:"omitempty,gte=0"`
	AgeLoe   *int   `form:"ageLoe"   binding:"omitempty,gte=0"`
}

// HasUsername reports whether the username filter is set.
func (c MemberSearchCondition) HasUsername() bool {
	return strings.TrimSpace(c.Username) != ""
}

// HasTeamName reports whether the team name filter is set.
func (c MemberSearchCondition) HasTeamName() bool {
	return strings.TrimSpace(c.TeamName) != ""
}

// Validate checks that the age bounds do not cross.
func (c MemberSearchCondition) Validate() error {
	if c.AgeGoe != nil && c.AgeLoe != nil && *c.AgeGoe > *c.AgeLoe {
		return ErrInvalidAgeRange
	}
	return nil
}
