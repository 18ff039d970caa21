package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// UpdateTournamentParams carries the optional fields of a partial update.
// A nil field leaves the column untouched.
type UpdateTournamentParams struct {
	Name        *string
	Date        *time.Time
	Description *string
	Completed   *bool
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	ListSummaries(ctx context.Context) ([]models.TournamentSummary, error)
	GetSummaryByID(ctx context.Context, id string) (*models.TournamentSummary, error)
	Update(ctx context.Context, id string, params UpdateTournamentParams) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (id, name, date, description, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		tournament.ID,
		tournament.Name,
		tournament.Date,
		tournament.Description,
		tournament.Completed,
		tournament.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT id, name, date, description, completed, logo_key, created_at FROM tournaments WHERE id = $1`

	var t models.Tournament
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&t.ID, &t.Name, &t.Date, &t.Description, &t.Completed, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament by id %s: %w", id, err)
	}
	return &t, nil
}

const tournamentSummarySelectSQL = `
	SELECT
		t.id, t.name, t.date, t.description, t.completed, t.logo_key, t.created_at,
		(SELECT COUNT(*) FROM teams e WHERE e.tournament_id = t.id) AS team_count,
		(SELECT COUNT(*) FROM matches m WHERE m.tournament_id = t.id) AS match_count,
		(SELECT COUNT(*) FROM tournament_players tp WHERE tp.tournament_id = t.id) AS player_count
	FROM tournaments t`

func scanTournamentSummary(rowScanner interface {
	Scan(dest ...interface{}) error
}, s *models.TournamentSummary) error {
	return rowScanner.Scan(
		&s.ID, &s.Name, &s.Date, &s.Description, &s.Completed, &s.LogoKey, &s.CreatedAt,
		&s.TeamCount, &s.MatchCount, &s.PlayerCount,
	)
}

func (r *postgresTournamentRepository) ListSummaries(ctx context.Context) ([]models.TournamentSummary, error) {
	query := tournamentSummarySelectSQL + ` ORDER BY t.date ASC, t.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.TournamentSummary, 0)
	for rows.Next() {
		var s models.TournamentSummary
		if err := scanTournamentSummary(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan tournament summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *postgresTournamentRepository) GetSummaryByID(ctx context.Context, id string) (*models.TournamentSummary, error) {
	query := tournamentSummarySelectSQL + ` WHERE t.id = $1`

	var s models.TournamentSummary
	row := r.db.QueryRowContext(ctx, query, id)
	if err := scanTournamentSummary(row, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament summary by id %s: %w", id, err)
	}
	return &s, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, id string, params UpdateTournamentParams) error {
	setClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	argCounter := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if params.Name != nil {
		addClause("name", *params.Name)
	}
	if params.Date != nil {
		addClause("date", *params.Date)
	}
	if params.Description != nil {
		addClause("description", *params.Description)
	}
	if params.Completed != nil {
		addClause("completed", *params.Completed)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE tournaments SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argCounter)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	query := `UPDATE tournaments SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
