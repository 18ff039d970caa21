package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_FindByTournamentAndID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	team := seedTeam(t, db, tournamentID, "Les Invincibles")

	found, err := repo.FindByTournamentAndID(ctx, tournamentID, team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, found.ID)
	assert.Equal(t, "Les Invincibles", found.Name)
}

func TestTeamRepository_FindByTournamentAndID_WrongTournament(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)
	ctx := context.Background()

	firstID := seedTournament(t, db, "Summer Cup")
	secondID := seedTournament(t, db, "Winter Cup")
	team := seedTeam(t, db, firstID, "Les Invincibles")

	_, err := repo.FindByTournamentAndID(ctx, secondID, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamRepository_Rename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	team := seedTeam(t, db, tournamentID, "Les Invincibles")

	require.NoError(t, repo.Rename(ctx, nil, team.ID, "Les Conquerants"))

	found, err := repo.FindByTournamentAndID(ctx, tournamentID, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Les Conquerants", found.Name)
}

func TestTeamRepository_Rename_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)

	err := repo.Rename(context.Background(), nil, "33333333-3333-4333-8333-333333333333", "Les Conquerants")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamRepository_Delete_CascadesMemberships(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)
	rosterRepo := NewPostgresRosterRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")
	seedRegistration(t, db, tournamentID, playerID)
	team := seedTeam(t, db, tournamentID, "Les Invincibles")
	require.NoError(t, rosterRepo.Attach(ctx, nil, team.ID, tournamentID, playerID))

	require.NoError(t, repo.Delete(ctx, tournamentID, team.ID))

	_, err := repo.FindByTournamentAndID(ctx, tournamentID, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = rosterRepo.FindTeamIDByPlayer(ctx, nil, tournamentID, playerID)
	assert.ErrorIs(t, err, ErrRosterEntryNotFound)
}

func TestTeamRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresTeamRepository(db)

	tournamentID := seedTournament(t, db, "Summer Cup")

	err := repo.Delete(context.Background(), tournamentID, "33333333-3333-4333-8333-333333333333")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
