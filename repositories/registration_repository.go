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
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationConflict = errors.New("player already registered for this tournament")
)

// RegistrationRepository manages the tournament<->player registration edge.
type RegistrationRepository interface {
	Create(ctx context.Context, tournamentID, playerID string) error
	Delete(ctx context.Context, tournamentID, playerID string) error
	Exists(ctx context.Context, tournamentID, playerID string) (bool, error)
	ListPlayerIDs(ctx context.Context, exec SQLExecutor, tournamentID string) ([]string, error)
	ListPlayersByTournament(ctx context.Context, tournamentID string) ([]models.Player, error)
	ListTournamentsByPlayer(ctx context.Context, playerID string) ([]models.Tournament, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, tournamentID, playerID string) error {
	query := `INSERT INTO tournament_players (tournament_id, player_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRegistrationConflict
		}
		return fmt.Errorf("failed to register player %s for tournament %s: %w", playerID, tournamentID, err)
	}
	return nil
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, tournamentID, playerID string) error {
	query := `DELETE FROM tournament_players WHERE tournament_id = $1 AND player_id = $2`

	result, err := r.db.ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to unregister player %s from tournament %s: %w", playerID, tournamentID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Exists(ctx context.Context, tournamentID, playerID string) (bool, error) {
	query := `SELECT 1 FROM tournament_players WHERE tournament_id = $1 AND player_id = $2`

	var one int
	err := r.db.QueryRowContext(ctx, query, tournamentID, playerID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return true, nil
}

func (r *postgresRegistrationRepository) ListPlayerIDs(ctx context.Context, exec SQLExecutor, tournamentID string) ([]string, error) {
	executor := r.getExecutor(exec)
	query := `SELECT player_id FROM tournament_players WHERE tournament_id = $1`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered player ids of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan registered player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRegistrationRepository) ListPlayersByTournament(ctx context.Context, tournamentID string) ([]models.Player, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name
		FROM tournament_players tp
		JOIN players p ON tp.player_id = p.id
		WHERE tp.tournament_id = $1
		ORDER BY tp.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered players of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan registered player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresRegistrationRepository) ListTournamentsByPlayer(ctx context.Context, playerID string) ([]models.Tournament, error) {
	query := `
		SELECT t.id, t.name, t.date, t.description, t.completed, t.logo_key, t.created_at
		FROM tournament_players tp
		JOIN tournaments t ON tp.tournament_id = t.id
		WHERE tp.player_id = $1
		ORDER BY t.date ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments of player %s: %w", playerID, err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Date, &t.Description, &t.Completed, &t.LogoKey, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}
