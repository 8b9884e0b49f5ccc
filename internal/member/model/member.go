// Package model provides the member and team entities, their projections and errors.
package model

import "github.com/volatiletech/null/v8"

// Member represents a member entity. Matches the member table schema.
// Team is declared belongs-to explicitly: the team primary key column is
// also named team_id, which gorm would otherwise read as a has-one key.
type Member struct {
	ID       uint        `gorm:"primaryKey;column:member_id"                                json:"member_id"`
	Username null.String `gorm:"column:username;type:varchar(255);index:idx_member_username" json:"username"`
	Age      int         `gorm:"column:age;not null"                                        json:"age"`
	TeamID   *uint       `gorm:"column:team_id;index:idx_member_team_id"                    json:"team_id,omitempty"`
	Team     *Team       `gorm:"belongsTo:Team;foreignKey:TeamID;references:ID"             json:"team,omitempty"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "member"
}

// NewMember creates a member that belongs to no team.
func NewMember(username string, age int) *Member {
	return NewMemberInTeam(nil, username, age)
}

// NewMemberInTeam creates a member and links it into team's member list.
// A nil team links nothing.
func NewMemberInTeam(team *Team, username string, age int) *Member {
	m := &Member{
		Username: null.StringFrom(username),
		Age:      age,
	}
	m.ChangeTeam(team)
	return m
}

// ChangeTeam moves the member to team, keeping both sides of the link in step.
// Passing nil detaches the member.
func (m *Member) ChangeTeam(team *Team) {
	if m.Team != nil {
		m.Team.removeMember(m)
	}

	m.Team = team
	m.TeamID = nil
	if team == nil {
		return
	}
	if team.ID != 0 {
		id := team.ID
		m.TeamID = &id
	}
	team.Members = append(team.Members, m)
}

// TeamName returns the name of the loaded team, or an empty string.
func (m *Member) TeamName() string {
	if m.Team == nil {
		return ""
	}
	return m.Team.Name
}
