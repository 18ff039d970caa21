package models

import "time"

type Player struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"prenom" db:"first_name"`
	LastName     string    `json:"nom" db:"last_name"`
	Email        string    `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
