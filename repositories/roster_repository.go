package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/lib/pq"
)

var (
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrRosterConflict      = errors.New("player already belongs to a team of this tournament")
)

// RosterRepository manages the team<->player membership edge. The
// (tournament_id, player_id) unique key backs the one-team-per-player
// rule even when two requests race past the service-level checks.
type RosterRepository interface {
	Attach(ctx context.Context, exec SQLExecutor, teamID, tournamentID, playerID string) error
	Detach(ctx context.Context, exec SQLExecutor, teamID, playerID string) error
	FindTeamIDByPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID string) (string, error)
	ListPlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	ListPlayersByTournamentTeams(ctx context.Context, tournamentID string) (map[string][]models.Player, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRosterRepository) Attach(ctx context.Context, exec SQLExecutor, teamID, tournamentID, playerID string) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO team_players (team_id, tournament_id, player_id) VALUES ($1, $2, $3)`

	_, err := executor.ExecContext(ctx, query, teamID, tournamentID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRosterConflict
		}
		return fmt.Errorf("failed to attach player %s to team %s: %w", playerID, teamID, err)
	}
	return nil
}

// Detach is a no-op when the player is not on the team, mirroring the
// disconnect semantics of the membership edge.
func (r *postgresRosterRepository) Detach(ctx context.Context, exec SQLExecutor, teamID, playerID string) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM team_players WHERE team_id = $1 AND player_id = $2`

	_, err := executor.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		return fmt.Errorf("failed to detach player %s from team %s: %w", playerID, teamID, err)
	}
	return nil
}

func (r *postgresRosterRepository) FindTeamIDByPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID string) (string, error) {
	executor := r.getExecutor(exec)
	query := `SELECT team_id FROM team_players WHERE tournament_id = $1 AND player_id = $2`

	var teamID string
	err := executor.QueryRowContext(ctx, query, tournamentID, playerID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrRosterEntryNotFound
		}
		return "", fmt.Errorf("failed to find team of player %s in tournament %s: %w", playerID, tournamentID, err)
	}
	return teamID, nil
}

func (r *postgresRosterRepository) ListPlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name
		FROM team_players tp
		JOIN players p ON tp.player_id = p.id
		WHERE tp.team_id = $1
		ORDER BY tp.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", teamID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan team player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ListPlayersByTournamentTeams returns the members of every team of the
// tournament in one query, keyed by team id.
func (r *postgresRosterRepository) ListPlayersByTournamentTeams(ctx context.Context, tournamentID string) (map[string][]models.Player, error) {
	query := `
		SELECT tp.team_id, p.id, p.first_name, p.last_name
		FROM team_players tp
		JOIN players p ON tp.player_id = p.id
		WHERE tp.tournament_id = $1
		ORDER BY tp.team_id, tp.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team players of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	byTeam := make(map[string][]models.Player)
	for rows.Next() {
		var teamID string
		var p models.Player
		if err := rows.Scan(&teamID, &p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan team player row: %w", err)
		}
		byTeam[teamID] = append(byTeam[teamID], p)
	}
	return byTeam, rows.Err()
}
