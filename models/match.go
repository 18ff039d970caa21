package models

import "time"

type Match struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"-" db:"tournament_id"`
	TeamAID      string    `json:"-" db:"team_a_id"`
	TeamBID      string    `json:"-" db:"team_b_id"`
	ScoreA       int       `json:"scoreA" db:"score_a"`
	ScoreB       int       `json:"scoreB" db:"score_b"`
	Completed    bool      `json:"estTermine" db:"completed"`
	CreatedAt    time.Time `json:"-" db:"created_at"`

	TeamA *Team `json:"equipeA,omitempty" db:"-"`
	TeamB *Team `json:"equipeB,omitempty" db:"-"`
}
