package models

import "time"

type Team struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"-" db:"tournament_id"`
	Name         string    `json:"nom" db:"name"`
	CreatedAt    time.Time `json:"-" db:"created_at"`

	Players []Player `json:"joueurs,omitempty" db:"-"`
}
