package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/Arnaud541/BabyFootClementine/repositories"
	"github.com/Arnaud541/BabyFootClementine/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name        string    `json:"nom" validate:"required,min=3,max=100"`
	Date        time.Time `json:"date" validate:"required"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

type UpdateTournamentInput struct {
	Name        *string    `json:"nom" validate:"omitempty,min=3,max=100"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Completed   *bool      `json:"estTermine"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	List(ctx context.Context) ([]models.TournamentSummary, error)
	GetByID(ctx context.Context, id string) (*models.TournamentDetails, error)
	Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.TournamentSummary, error)
	Delete(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id string, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	rosterRepo       repositories.RosterRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	uploader         storage.FileUploader
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	rosterRepo repositories.RosterRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		rosterRepo:       rosterRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		uploader:         uploader,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	tournament := &models.Tournament{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Date:        input.Date,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.TournamentSummary, error) {
	summaries, err := s.tournamentRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for i := range summaries {
		s.populateLogoURL(&summaries[i].Tournament)
	}
	return summaries, nil
}

// GetByID composes the detail payload: registered players, teams with their
// members, and matches with both teams attached. The three sub-collections
// are independent reads, fetched concurrently.
func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.TournamentDetails, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	var (
		players       []models.Player
		teams         []models.Team
		playersByTeam map[string][]models.Player
		matches       []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.registrationRepo.ListPlayersByTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		playersByTeam, err = s.rosterRepo.ListPlayersByTournamentTeams(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %s details: %w", id, err)
	}

	teamByID := make(map[string]models.Team, len(teams))
	for i := range teams {
		teams[i].Players = playersByTeam[teams[i].ID]
		if teams[i].Players == nil {
			teams[i].Players = []models.Player{}
		}
		teamByID[teams[i].ID] = teams[i]
	}

	for i := range matches {
		if teamA, ok := teamByID[matches[i].TeamAID]; ok {
			matches[i].TeamA = &teamA
		}
		if teamB, ok := teamByID[matches[i].TeamBID]; ok {
			matches[i].TeamB = &teamB
		}
	}

	s.populateLogoURL(tournament)

	return &models.TournamentDetails{
		Tournament:        *tournament,
		RegisteredPlayers: players,
		Teams:             teams,
		Matches:           matches,
	}, nil
}

func (s *tournamentService) Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.TournamentSummary, error) {
	if input.Name == nil && input.Date == nil && input.Description == nil && input.Completed == nil {
		return nil, ErrNoFieldsToUpdate
	}

	params := repositories.UpdateTournamentParams{
		Name:        input.Name,
		Date:        input.Date,
		Description: input.Description,
		Completed:   input.Completed,
	}
	if err := s.tournamentRepo.Update(ctx, id, params); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %s: %w", id, err)
	}

	summary, err := s.tournamentRepo.GetSummaryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tournament %s after update: %w", id, err)
	}
	s.populateLogoURL(&summary.Tournament)
	return summary, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	err := s.tournamentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return nil
}

var allowedLogoContentTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

func (s *tournamentService) UploadLogo(ctx context.Context, id string, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	ext, ok := allowedLogoContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLogoContentType, contentType)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	key := fmt.Sprintf("tournaments/%s/logo-%s.%s", id, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist tournament logo key: %w", err)
	}
	if oldKey != nil && *oldKey != "" {
		// Best effort: a stale object in the bucket is not worth failing the
		// request over.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	tournament.LogoKey = &result.Key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if s.uploader == nil || t.LogoKey == nil || *t.LogoKey == "" {
		return
	}
	if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}
