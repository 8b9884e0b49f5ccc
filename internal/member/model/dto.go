package model

import "github.com/volatiletech/null/v8"

// MemberDto is a username and age projection.
type MemberDto struct {
	Username null.String `gorm:"column:username" json:"username"`
	Age      int         `gorm:"column:age"      json:"age"`
}

// UserDto is the same projection with the username exposed as name.
type UserDto struct {
	Name null.String `gorm:"column:name" json:"name"`
	Age  int         `gorm:"column:age"  json:"age"`
}

// MemberTeamDto is a member row joined with its optional team.
type MemberTeamDto struct {
	MemberID uint        `gorm:"column:member_id" json:"member_id"`
	Username null.String `gorm:"column:username"  json:"username"`
	Age      int         `gorm:"column:age"       json:"age"`
	TeamID   null.Uint   `gorm:"column:team_id"   json:"team_id"`
	TeamName null.String `gorm:"column:team_name" json:"team_name"`
}

// UsernameAverage pairs a username with the average age of all members.
type UsernameAverage struct {
	Username   null.String `gorm:"column:username"    json:"username"`
	AverageAge float64     `gorm:"column:average_age" json:"average_age"`
}

// UsernameConstant pairs a username with a constant attached to every row.
type UsernameConstant struct {
	Username null.String `json:"username"`
	Constant string      `json:"constant"`
}

// RegisterMemberRequest represents the request to register a member.
type RegisterMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Age      int    `json:"age"      binding:"gte=0"`
	TeamID   *uint  `json:"team_id"`
}

// MemberResponse represents a member with its team name in API responses.
type MemberResponse struct {
	MemberID uint        `json:"member_id"`
	Username null.String `json:"username"`
	Age      int         `json:"age"`
	TeamID   *uint       `json:"team_id"`
	TeamName null.String `json:"team_name"`
}

// NewMemberResponse builds the API view of m.
func NewMemberResponse(m *Member) MemberResponse {
	resp := MemberResponse{
		MemberID: m.ID,
		Username: m.Username,
		Age:      m.Age,
		TeamID:   m.TeamID,
	}
	if m.Team != nil {
		resp.TeamName = null.StringFrom(m.Team.Name)
	}
	return resp
}
