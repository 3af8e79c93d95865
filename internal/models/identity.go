package models

import "time"

// Identity is the simulated logged-in user. There is no credential
// verification anywhere: the email doubles as the favourites partition key.
type Identity struct {
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"max=80"`
	LoginTime time.Time `json:"login_time"`
}
