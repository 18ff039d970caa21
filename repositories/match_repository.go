package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arnaud541/BabyFootClementine/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, tournament_id, team_a_id, team_b_id, score_a, score_b, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		match.ID,
		match.TournamentID,
		match.TeamAID,
		match.TeamBID,
		match.ScoreA,
		match.ScoreB,
		match.Completed,
		match.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, team_a_id, team_b_id, score_a, score_b, completed, created_at
		FROM matches WHERE id = $1`

	var m models.Match
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&m.ID, &m.TournamentID, &m.TeamAID, &m.TeamBID, &m.ScoreA, &m.ScoreB, &m.Completed, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %s: %w", id, err)
	}
	return &m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error) {
	query := `
		SELECT id, tournament_id, team_a_id, team_b_id, score_a, score_b, completed, created_at
		FROM matches WHERE tournament_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.TeamAID, &m.TeamBID, &m.ScoreA, &m.ScoreB, &m.Completed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
