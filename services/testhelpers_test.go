package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/Arnaud541/BabyFootClementine/repositories"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations.
// The database gets a unique name so parallel tests do not share state;
// cache=shared keeps every pooled connection on the same in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	database, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err, "Failed to open in-memory DB")
	t.Cleanup(func() { database.Close() })

	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

// testEnv bundles a test database with the repositories the services need.
type testEnv struct {
	db               *sql.DB
	playerRepo       repositories.PlayerRepository
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	rosterRepo       repositories.RosterRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	return &testEnv{
		db:               db,
		playerRepo:       repositories.NewPostgresPlayerRepository(db),
		tournamentRepo:   repositories.NewPostgresTournamentRepository(db),
		teamRepo:         repositories.NewPostgresTeamRepository(db),
		rosterRepo:       repositories.NewPostgresRosterRepository(db),
		registrationRepo: repositories.NewPostgresRegistrationRepository(db),
		matchRepo:        repositories.NewPostgresMatchRepository(db),
	}
}

func (e *testEnv) rosterService() RosterService {
	return NewRosterService(e.db, e.tournamentRepo, e.teamRepo, e.rosterRepo, e.registrationRepo)
}

func (e *testEnv) tournamentService() TournamentService {
	return NewTournamentService(e.tournamentRepo, e.teamRepo, e.rosterRepo, e.registrationRepo, e.matchRepo, nil)
}

func (e *testEnv) playerService() PlayerService {
	return NewPlayerService(e.playerRepo, e.tournamentRepo, e.registrationRepo)
}

func (e *testEnv) createPlayer(t *testing.T, firstName, lastName string) string {
	t.Helper()

	player := &models.Player{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, e.playerRepo.Create(context.Background(), player))
	return player.ID
}

func (e *testEnv) createTournament(t *testing.T, name string) string {
	t.Helper()

	tournament := &models.Tournament{
		ID:        uuid.NewString(),
		Name:      name,
		Date:      time.Now().UTC().Add(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, e.tournamentRepo.Create(context.Background(), tournament))
	return tournament.ID
}

func (e *testEnv) register(t *testing.T, tournamentID, playerID string) {
	t.Helper()
	require.NoError(t, e.registrationRepo.Create(context.Background(), tournamentID, playerID))
}

// registeredPlayers creates n players and registers them all for the tournament.
func (e *testEnv) registeredPlayers(t *testing.T, tournamentID string, n int) []string {
	t.Helper()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := e.createPlayer(t, fmt.Sprintf("Player%d", i+1), "Test")
		e.register(t, tournamentID, id)
		ids = append(ids, id)
	}
	return ids
}
