package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository_AttachAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRosterRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")
	seedRegistration(t, db, tournamentID, playerID)
	team := seedTeam(t, db, tournamentID, "Les Invincibles")

	require.NoError(t, repo.Attach(ctx, nil, team.ID, tournamentID, playerID))

	teamID, err := repo.FindTeamIDByPlayer(ctx, nil, tournamentID, playerID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, teamID)
}

func TestRosterRepository_FindTeamIDByPlayer_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRosterRepository(db)

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")

	_, err := repo.FindTeamIDByPlayer(context.Background(), nil, tournamentID, playerID)
	assert.ErrorIs(t, err, ErrRosterEntryNotFound)
}

func TestRosterRepository_Detach(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRosterRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")
	seedRegistration(t, db, tournamentID, playerID)
	team := seedTeam(t, db, tournamentID, "Les Invincibles")
	require.NoError(t, repo.Attach(ctx, nil, team.ID, tournamentID, playerID))

	require.NoError(t, repo.Detach(ctx, nil, team.ID, playerID))

	_, err := repo.FindTeamIDByPlayer(ctx, nil, tournamentID, playerID)
	assert.ErrorIs(t, err, ErrRosterEntryNotFound)

	// Detaching an absent player is a no-op, not an error.
	assert.NoError(t, repo.Detach(ctx, nil, team.ID, playerID))
}

func TestRosterRepository_ListPlayersByTournamentTeams(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRosterRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	teamA := seedTeam(t, db, tournamentID, "Les Invincibles")
	teamB := seedTeam(t, db, tournamentID, "Les Furieux")

	var teamAPlayers, teamBPlayers []string
	for i := 0; i < 2; i++ {
		id := seedPlayer(t, db, "PlayerA", "Test")
		seedRegistration(t, db, tournamentID, id)
		require.NoError(t, repo.Attach(ctx, nil, teamA.ID, tournamentID, id))
		teamAPlayers = append(teamAPlayers, id)
	}
	id := seedPlayer(t, db, "PlayerB", "Test")
	seedRegistration(t, db, tournamentID, id)
	require.NoError(t, repo.Attach(ctx, nil, teamB.ID, tournamentID, id))
	teamBPlayers = append(teamBPlayers, id)

	byTeam, err := repo.ListPlayersByTournamentTeams(ctx, tournamentID)
	require.NoError(t, err)
	require.Len(t, byTeam, 2)

	gotA := make([]string, 0, len(byTeam[teamA.ID]))
	for _, p := range byTeam[teamA.ID] {
		gotA = append(gotA, p.ID)
	}
	assert.ElementsMatch(t, teamAPlayers, gotA)

	gotB := make([]string, 0, len(byTeam[teamB.ID]))
	for _, p := range byTeam[teamB.ID] {
		gotB = append(gotB, p.ID)
	}
	assert.ElementsMatch(t, teamBPlayers, gotB)
}
