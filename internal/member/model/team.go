package model

// Team represents a team entity. Matches the team table schema.
// Members is a back-reference: the member side owns the team_id column.
type Team struct {
	ID      uint      `gorm:"primaryKey;column:team_id"                             json:"team_id"`
	Name    string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex"    json:"name"`
	Members []*Member `gorm:"foreignKey:TeamID;references:ID"                       json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "team"
}

// NewTeam creates a team with no members.
func NewTeam(name string) *Team {
	return &Team{Name: name}
}

func (t *Team) removeMember(m *Member) {
	for i, member := range t.Members {
		if member == m {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}
