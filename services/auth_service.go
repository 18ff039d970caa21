package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Arnaud541/BabyFootClementine/models"
	"github.com/Arnaud541/BabyFootClementine/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignUpInput struct {
	FirstName string `json:"prenom" validate:"required,min=1,max=100"`
	LastName  string `json:"nom" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.Player, error)
	SignIn(ctx context.Context, credentials models.Credentials) (*models.Player, error)
}

type authService struct {
	playerRepo repositories.PlayerRepository
}

func NewAuthService(playerRepo repositories.PlayerRepository) AuthService {
	return &authService{playerRepo: playerRepo}
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.Player, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.playerRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailConflict
	} else if !errors.Is(err, repositories.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	player := &models.Player{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerEmailConflict) {
			return nil, ErrEmailConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	player.PasswordHash = ""
	return player, nil
}

func (s *authService) SignIn(ctx context.Context, credentials models.Credentials) (*models.Player, error) {
	player, err := s.playerRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(credentials.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find player by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(credentials.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	player.PasswordHash = ""
	return player, nil
}
