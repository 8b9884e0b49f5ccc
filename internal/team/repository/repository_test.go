package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	memberModel "github.com/festy23/querystudy/internal/member/model"
	teamModel "github.com/festy23/querystudy/internal/team/model"
	"github.com/festy23/querystudy/internal/testutil"
)

func setupRepository(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return New(db, testutil.NopLogger()), db
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, db := setupRepository(t)

		team := memberModel.NewTeam("teamA")
		require.NoError(t, repo.Create(ctx, team))
		assert.NotZero(t, team.ID)

		var stored memberModel.Team
		require.NoError(t, db.Where("name = ?", "teamA").First(&stored).Error)
		assert.Equal(t, team.ID, stored.ID)
	})

	t.Run("duplicate team name", func(t *testing.T) {
		repo, _ := setupRepository(t)
		require.NoError(t, repo.Create(ctx, memberModel.NewTeam("teamA")))

		err := repo.Create(ctx, memberModel.NewTeam("teamA"))

		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})

	t.Run("members are not cascaded", func(t *testing.T) {
		repo, db := setupRepository(t)
		team := memberModel.NewTeam("teamA")
		memberModel.NewMemberInTeam(team, "member1", 10)

		require.NoError(t, repo.Create(ctx, team))

		var count int64
		require.NoError(t, db.Model(&memberModel.Member{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("loads members in id order", func(t *testing.T) {
		repo, db := setupRepository(t)
		fixture := testutil.Seed(t, db)

		team, err := repo.GetByID(ctx, fixture.TeamB.ID)
		require.NoError(t, err)
		assert.Equal(t, "teamB", team.Name)
		require.Len(t, team.Members, 2)
		assert.Equal(t, "member3", team.Members[0].Username.String)
		assert.Equal(t, "member4", team.Members[1].Username.String)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _ := setupRepository(t)

		team, err := repo.GetByID(ctx, 42)

		assert.Nil(t, team)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestRepository_GetByName(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepository(t)
	fixture := testutil.Seed(t, db)

	team, err := repo.GetByName(ctx, "teamA")
	require.NoError(t, err)
	assert.Equal(t, fixture.TeamA.ID, team.ID)
	assert.Empty(t, team.Members)

	_, err = repo.GetByName(ctx, "teamZ")
	assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("without members", func(t *testing.T) {
		repo, db := setupRepository(t)
		testutil.Seed(t, db)

		teams, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "teamA", teams[0].Name)
		assert.Empty(t, teams[0].Members)
	})

	t.Run("with members", func(t *testing.T) {
		repo, db := setupRepository(t)
		testutil.Seed(t, db)

		teams, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Len(t, teams[0].Members, 2)
		assert.Equal(t, "member1", teams[0].Members[0].Username.String)
		assert.Len(t, teams[1].Members, 2)
	})

	t.Run("empty", func(t *testing.T) {
		repo, _ := setupRepository(t)

		teams, err := repo.List(ctx, true)
		require.NoError(t, err)
		assert.NotNil(t, teams)
		assert.Empty(t, teams)
	})
}

func TestRepository_WithTx(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepository(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).Create(ctx, memberModel.NewTeam("teamA")); err != nil {
			return err
		}
		return teamModel.ErrInvalidTeamName
	})
	require.ErrorIs(t, err, teamModel.ErrInvalidTeamName)

	_, err = repo.GetByName(ctx, "teamA")
	assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
}
