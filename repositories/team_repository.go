package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arnaud541/BabyFootClementine/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	FindByTournamentAndID(ctx context.Context, tournamentID, teamID string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	Rename(ctx context.Context, exec SQLExecutor, teamID, name string) error
	Delete(ctx context.Context, tournamentID, teamID string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO teams (id, tournament_id, name, created_at) VALUES ($1, $2, $3, $4)`

	_, err := executor.ExecContext(ctx, query, team.ID, team.TournamentID, team.Name, team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	return nil
}

func (r *postgresTeamRepository) FindByTournamentAndID(ctx context.Context, tournamentID, teamID string) (*models.Team, error) {
	query := `SELECT id, tournament_id, name, created_at FROM teams WHERE tournament_id = $1 AND id = $2`

	var t models.Team
	row := r.db.QueryRowContext(ctx, query, tournamentID, teamID)
	err := row.Scan(&t.ID, &t.TournamentID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team %s in tournament %s: %w", teamID, tournamentID, err)
	}
	return &t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `SELECT id, tournament_id, name, created_at FROM teams WHERE tournament_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Rename(ctx context.Context, exec SQLExecutor, teamID, name string) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET name = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, name, teamID)
	if err != nil {
		return fmt.Errorf("failed to rename team %s: %w", teamID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, tournamentID, teamID string) error {
	// Membership links go away via ON DELETE CASCADE.
	query := `DELETE FROM teams WHERE tournament_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team %s: %w", teamID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
