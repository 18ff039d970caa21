package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations.
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

func seedPlayer(t *testing.T, db *sql.DB, firstName, lastName string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO players (id, first_name, last_name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, firstName, lastName, fmt.Sprintf("%s@example.com", id), "not-a-real-hash", time.Now().UTC(),
	)
	require.NoError(t, err)
	return id
}

func seedTournament(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO tournaments (id, name, date, completed, created_at) VALUES ($1, $2, $3, FALSE, $4)`,
		id, name, time.Now().UTC().Add(24*time.Hour), time.Now().UTC(),
	)
	require.NoError(t, err)
	return id
}

func seedRegistration(t *testing.T, db *sql.DB, tournamentID, playerID string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO tournament_players (tournament_id, player_id) VALUES ($1, $2)`,
		tournamentID, playerID,
	)
	require.NoError(t, err)
}

func seedTeam(t *testing.T, db *sql.DB, tournamentID, name string) *models.Team {
	t.Helper()

	team := &models.Team{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	repo := NewPostgresTeamRepository(db)
	require.NoError(t, repo.Create(context.Background(), nil, team))
	return team
}
