// Package model provides request and response types and errors for the team module.
package model

import (
	"github.com/volatiletech/null/v8"

	memberModel "github.com/festy23/querystudy/internal/member/model"
)

// TeamMemberRequest describes a member created together with its team.
type TeamMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Age      int    `json:"age"      binding:"gte=0"`
}

// CreateTeamRequest represents the request to create a team with optional members.
type CreateTeamRequest struct {
	Name    string              `json:"name"    binding:"required"`
	Members []TeamMemberRequest `json:"members" binding:"omitempty,dive"`
}

// TeamMember represents a team member in API responses.
type TeamMember struct {
	MemberID uint        `json:"member_id"`
	Username null.String `json:"username"`
	Age      int         `json:"age"`
}

// TeamResponse represents a team in API responses.
// Members is omitted when they were not loaded.
type TeamResponse struct {
	TeamID  uint         `json:"team_id"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members,omitempty"`
}

// NewTeamResponse builds the API view of team, including whatever members are loaded.
func NewTeamResponse(team *memberModel.Team) TeamResponse {
	resp := TeamResponse{
		TeamID: team.ID,
		Name:   team.Name,
	}
	if len(team.Members) > 0 {
		resp.Members = make([]TeamMember, 0, len(team.Members))
		for _, m := range team.Members {
			resp.Members = append(resp.Members, TeamMember{
				MemberID: m.ID,
				Username: m.Username,
				Age:      m.Age,
			})
		}
	}
	return resp
}
