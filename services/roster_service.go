package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/Arnaud541/BabyFootClementine/repositories"
	"github.com/google/uuid"
)

// TeamProposal is one team of a batch-creation request.
type TeamProposal struct {
	Name      string   `json:"nom" validate:"required,min=3,max=100"`
	PlayerIDs []string `json:"joueursIds" validate:"required,min=1,dive,uuid4"`
}

// MemberSwap replaces a current team member with a new one.
type MemberSwap struct {
	CurrentPlayerID string `json:"currentUserId" validate:"required,uuid4"`
	NewPlayerID     string `json:"newUserId" validate:"required,uuid4"`
}

type UpdateTeamInput struct {
	Name        *string      `json:"nom" validate:"omitempty,min=3,max=100"`
	MemberSwaps []MemberSwap `json:"joueursIds" validate:"omitempty,dive"`
}

// RosterService mutates team rosters under the tournament-membership rules:
// every member must be registered for the tournament, and a player belongs
// to at most one team per tournament.
type RosterService interface {
	CreateTeams(ctx context.Context, tournamentID string, proposals []TeamProposal) error
	UpdateTeam(ctx context.Context, tournamentID, teamID string, input UpdateTeamInput) error
	DeleteTeam(ctx context.Context, tournamentID, teamID string) error
}

type rosterService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	rosterRepo       repositories.RosterRepository
	registrationRepo repositories.RegistrationRepository
}

func NewRosterService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	rosterRepo repositories.RosterRepository,
	registrationRepo repositories.RegistrationRepository,
) RosterService {
	return &rosterService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		rosterRepo:       rosterRepo,
		registrationRepo: registrationRepo,
	}
}

// CreateTeams creates the whole batch or nothing. The registration and
// exclusivity checks run inside the same transaction as the writes, so a
// concurrent batch cannot slip between check and write; the unique
// (tournament_id, player_id) key on the membership table backs this up.
func (s *rosterService) CreateTeams(ctx context.Context, tournamentID string, proposals []TeamProposal) error {
	if len(proposals) == 0 {
		return ErrNoTeamsProvided
	}
	for _, proposal := range proposals {
		if len(proposal.PlayerIDs) == 0 {
			return fmt.Errorf("%w: team %q", ErrTeamHasNoPlayers, proposal.Name)
		}
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin team creation transaction: %w", err)
	}
	defer tx.Rollback()

	registeredIDs, err := s.registrationRepo.ListPlayerIDs(ctx, tx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load registered players of tournament %s: %w", tournamentID, err)
	}
	registered := make(map[string]struct{}, len(registeredIDs))
	for _, id := range registeredIDs {
		registered[id] = struct{}{}
	}

	// Fail fast on the first offending player id.
	seen := make(map[string]struct{})
	for _, proposal := range proposals {
		for _, playerID := range proposal.PlayerIDs {
			if _, ok := registered[playerID]; !ok {
				return fmt.Errorf("%w: %s", ErrPlayerNotRegistered, playerID)
			}
			if _, ok := seen[playerID]; ok {
				return fmt.Errorf("%w: %s", ErrPlayerAlreadyTeamed, playerID)
			}
			seen[playerID] = struct{}{}

			_, err := s.rosterRepo.FindTeamIDByPlayer(ctx, tx, tournamentID, playerID)
			if err == nil {
				return fmt.Errorf("%w: %s", ErrPlayerAlreadyTeamed, playerID)
			}
			if !errors.Is(err, repositories.ErrRosterEntryNotFound) {
				return fmt.Errorf("failed to check membership of player %s: %w", playerID, err)
			}
		}
	}

	// Create each team and attach its members in the same step, so a
	// proposal never has to be re-paired with a created record afterwards.
	now := time.Now().UTC()
	for _, proposal := range proposals {
		team := &models.Team{
			ID:           uuid.NewString(),
			TournamentID: tournamentID,
			Name:         proposal.Name,
			CreatedAt:    now,
		}
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return fmt.Errorf("failed to create team %q: %w", proposal.Name, err)
		}
		for _, playerID := range proposal.PlayerIDs {
			if err := s.rosterRepo.Attach(ctx, tx, team.ID, tournamentID, playerID); err != nil {
				if errors.Is(err, repositories.ErrRosterConflict) {
					return fmt.Errorf("%w: %s", ErrPlayerAlreadyTeamed, playerID)
				}
				return fmt.Errorf("failed to attach player %s to team %q: %w", playerID, proposal.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team creation: %w", err)
	}
	return nil
}

// UpdateTeam renames the team and/or applies member swaps. Everything runs
// in one transaction: a failing swap rolls back the rename and the swaps
// already applied.
func (s *rosterService) UpdateTeam(ctx context.Context, tournamentID, teamID string, input UpdateTeamInput) error {
	if input.Name == nil && len(input.MemberSwaps) == 0 {
		return ErrNoFieldsToUpdate
	}

	team, err := s.teamRepo.FindByTournamentAndID(ctx, tournamentID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %s: %w", teamID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin team update transaction: %w", err)
	}
	defer tx.Rollback()

	if input.Name != nil {
		if err := s.teamRepo.Rename(ctx, tx, team.ID, *input.Name); err != nil {
			return fmt.Errorf("failed to rename team %s: %w", team.ID, err)
		}
	}

	if len(input.MemberSwaps) > 0 {
		registeredIDs, err := s.registrationRepo.ListPlayerIDs(ctx, tx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load registered players of tournament %s: %w", tournamentID, err)
		}
		registered := make(map[string]struct{}, len(registeredIDs))
		for _, id := range registeredIDs {
			registered[id] = struct{}{}
		}

		for _, swap := range input.MemberSwaps {
			if _, ok := registered[swap.NewPlayerID]; !ok {
				return fmt.Errorf("%w: %s", ErrPlayerNotRegistered, swap.NewPlayerID)
			}

			if holder, err := s.rosterRepo.FindTeamIDByPlayer(ctx, tx, tournamentID, swap.NewPlayerID); err == nil {
				if holder != team.ID || swap.NewPlayerID != swap.CurrentPlayerID {
					return fmt.Errorf("%w: %s", ErrPlayerAlreadyTeamed, swap.NewPlayerID)
				}
			} else if !errors.Is(err, repositories.ErrRosterEntryNotFound) {
				return fmt.Errorf("failed to check membership of player %s: %w", swap.NewPlayerID, err)
			}

			// Detach before attach so the team never transiently grows.
			if err := s.rosterRepo.Detach(ctx, tx, team.ID, swap.CurrentPlayerID); err != nil {
				return fmt.Errorf("failed to detach player %s: %w", swap.CurrentPlayerID, err)
			}
			if err := s.rosterRepo.Attach(ctx, tx, team.ID, tournamentID, swap.NewPlayerID); err != nil {
				if errors.Is(err, repositories.ErrRosterConflict) {
					return fmt.Errorf("%w: %s", ErrPlayerAlreadyTeamed, swap.NewPlayerID)
				}
				return fmt.Errorf("failed to attach player %s: %w", swap.NewPlayerID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team update: %w", err)
	}
	return nil
}

func (s *rosterService) DeleteTeam(ctx context.Context, tournamentID, teamID string) error {
	err := s.teamRepo.Delete(ctx, tournamentID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %s: %w", teamID, err)
	}
	return nil
}
