package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/Arnaud541/BabyFootClementine/repositories"
)

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListTournaments(ctx context.Context, playerID string) ([]models.Tournament, error)
	Subscribe(ctx context.Context, playerID, tournamentID string) error
	Unsubscribe(ctx context.Context, playerID, tournamentID string) error
}

type playerService struct {
	playerRepo       repositories.PlayerRepository
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
) PlayerService {
	return &playerService{
		playerRepo:       playerRepo,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		players[i].PasswordHash = ""
	}
	return players, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	player.PasswordHash = ""
	return player, nil
}

func (s *playerService) ListTournaments(ctx context.Context, playerID string) ([]models.Tournament, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}

	tournaments, err := s.registrationRepo.ListTournamentsByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments of player %s: %w", playerID, err)
	}
	return tournaments, nil
}

func (s *playerService) Subscribe(ctx context.Context, playerID, tournamentID string) error {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to load player %s: %w", playerID, err)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	registered, err := s.registrationRepo.Exists(ctx, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to check registration: %w", err)
	}
	if registered {
		return ErrAlreadySubscribed
	}

	if err := s.registrationRepo.Create(ctx, tournamentID, playerID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to register player %s for tournament %s: %w", playerID, tournamentID, err)
	}
	return nil
}

func (s *playerService) Unsubscribe(ctx context.Context, playerID, tournamentID string) error {
	err := s.registrationRepo.Delete(ctx, tournamentID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to unregister player %s from tournament %s: %w", playerID, tournamentID, err)
	}
	return nil
}
