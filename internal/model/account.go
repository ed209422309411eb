package model

import "time"

// Account is a registered user of the storage service. SecretHash never
// leaves the repository/service boundary (json:"-").
type Account struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
