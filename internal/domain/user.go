package domain

import "time"

// User represents a registered account of the portfolio.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Bio          string
	ProfileImage string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
