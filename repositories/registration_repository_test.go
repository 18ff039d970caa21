package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_CreateAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRegistrationRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")

	exists, err := repo.Exists(ctx, tournamentID, playerID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, tournamentID, playerID))

	exists, err = repo.Exists(ctx, tournamentID, playerID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegistrationRepository_ListPlayerIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRegistrationRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	otherID := seedTournament(t, db, "Winter Cup")

	var want []string
	for i := 0; i < 3; i++ {
		playerID := seedPlayer(t, db, "Player", "Test")
		seedRegistration(t, db, tournamentID, playerID)
		want = append(want, playerID)
	}
	outsider := seedPlayer(t, db, "Outsider", "Test")
	seedRegistration(t, db, otherID, outsider)

	ids, err := repo.ListPlayerIDs(ctx, nil, tournamentID)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, ids)
}

func TestRegistrationRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRegistrationRepository(db)
	ctx := context.Background()

	tournamentID := seedTournament(t, db, "Summer Cup")
	playerID := seedPlayer(t, db, "Alice", "Martin")
	seedRegistration(t, db, tournamentID, playerID)

	require.NoError(t, repo.Delete(ctx, tournamentID, playerID))

	exists, err := repo.Exists(ctx, tournamentID, playerID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Delete(ctx, tournamentID, playerID), ErrRegistrationNotFound)
}

func TestRegistrationRepository_ListTournamentsByPlayer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRegistrationRepository(db)
	ctx := context.Background()

	playerID := seedPlayer(t, db, "Alice", "Martin")
	firstID := seedTournament(t, db, "Summer Cup")
	secondID := seedTournament(t, db, "Winter Cup")
	seedRegistration(t, db, firstID, playerID)
	seedRegistration(t, db, secondID, playerID)

	tournaments, err := repo.ListTournamentsByPlayer(ctx, playerID)
	require.NoError(t, err)
	require.Len(t, tournaments, 2)

	ids := []string{tournaments[0].ID, tournaments[1].ID}
	assert.ElementsMatch(t, []string{firstID, secondID}, ids)
}
