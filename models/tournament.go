package models

import "time"

// Tournament owns its teams and matches: deleting a tournament cascades to
// both, and to the registration links.
type Tournament struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"nom" db:"name"`
	Date        time.Time `json:"date" db:"date"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"estTermine" db:"completed"`
	CreatedAt   time.Time `json:"-" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logoUrl,omitempty" db:"-"`
}

// TournamentSummary is the list payload: the tournament plus derived counts.
type TournamentSummary struct {
	Tournament
	TeamCount   int `json:"nbEquipes" db:"team_count"`
	MatchCount  int `json:"nbMatchs" db:"match_count"`
	PlayerCount int `json:"nbJoueursInscrits" db:"player_count"`
}

// TournamentDetails is the single-tournament payload with nested collections.
type TournamentDetails struct {
	Tournament
	RegisteredPlayers []Player `json:"joueursInscrits"`
	Teams             []Team   `json:"equipes"`
	Matches           []Match  `json:"matchs"`
}
