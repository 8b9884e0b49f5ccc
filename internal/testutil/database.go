// Package testutil provides shared database fixtures for tests.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/festy23/querystudy/internal/database/migrate"
	"github.com/festy23/querystudy/internal/member/model"
)

// MigrationsRoot returns the absolute path of the repository migrations tree.
func MigrationsRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// SetupTestDB creates an in-memory SQLite database with the sqlite
// migrations applied.
// The pool is pinned to one connection because each connection to
// :memory: opens its own empty database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := migrate.MigrateFrom(db, MigrationsRoot()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	return db
}

// NopLogger returns a logger that discards everything.
func NopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Fixture holds the standard two-team, four-member data set.
type Fixture struct {
	TeamA   *model.Team
	TeamB   *model.Team
	Members []*model.Member
}

// Seed inserts teamA with member1 (10) and member2 (20) and teamB with
// member3 (30) and member4 (40).
func Seed(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()

	teamA := model.NewTeam("teamA")
	teamB := model.NewTeam("teamB")
	for _, team := range []*model.Team{teamA, teamB} {
		if err := db.Omit("Members").Create(team).Error; err != nil {
			t.Fatalf("Failed to create team %s: %v", team.Name, err)
		}
	}

	members := []*model.Member{
		model.NewMemberInTeam(teamA, "member1", 10),
		model.NewMemberInTeam(teamA, "member2", 20),
		model.NewMemberInTeam(teamB, "member3", 30),
		model.NewMemberInTeam(teamB, "member4", 40),
	}
	for _, m := range members {
		id := m.Team.ID
		m.TeamID = &id
		if err := db.Omit("Team").Create(m).Error; err != nil {
			t.Fatalf("Failed to create member %s: %v", m.Username.String, err)
		}
	}

	return Fixture{TeamA: teamA, TeamB: teamB, Members: members}
}

// CreateMember inserts a member without a team.
func CreateMember(t *testing.T, db *gorm.DB, m *model.Member) *model.Member {
	t.Helper()
	if err := db.Omit("Team").Create(m).Error; err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}
	return m
}

// TruncateTable removes every row from tableName.
func TruncateTable(t *testing.T, db *gorm.DB, tableName string) {
	t.Helper()
	if err := db.Exec("DELETE FROM " + tableName).Error; err != nil {
		t.Fatalf("Failed to truncate table %s: %v", tableName, err)
	}
}
