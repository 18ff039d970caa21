package services

import "errors"

// Sentinel errors shared across services and the HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrRegistrationNotFound = errors.New("player is not registered for this tournament")

	// Roster business rules. Both wrap the offending player id when raised.
	ErrPlayerNotRegistered = errors.New("player is not registered for the tournament")
	ErrPlayerAlreadyTeamed = errors.New("player is already in a team of this tournament")

	ErrNoTeamsProvided     = errors.New("at least one team must be provided")
	ErrTeamHasNoPlayers    = errors.New("a team must contain at least one player")
	ErrNoFieldsToUpdate    = errors.New("no fields provided for update")
	ErrAlreadySubscribed   = errors.New("player is already registered for this tournament")
	ErrEmailConflict       = errors.New("email address is already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrLogoContentType     = errors.New("unsupported logo content type")
	ErrLogoStorageDisabled = errors.New("logo storage is not configured")
)
