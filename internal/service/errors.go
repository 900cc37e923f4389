package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken indicates a malformed, tampered or expired bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// The message is the same for unknown identifiers and wrong passwords.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUnauthorized indicates a request that requires authentication but has none.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden indicates an authenticated user without sufficient privileges.
	ErrForbidden = errors.New("not enough privileges")
	// ErrNotFound indicates a missing record, including unpublished posts
	// masked from non-admin viewers.
	ErrNotFound = errors.New("not found")
	// ErrUsersExist is returned by admin bootstrap when accounts already exist.
	ErrUsersExist = errors.New("users already exist")
)

// ConflictError reports a uniqueness violation on the named field.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s '%s' already registered", e.Field, e.Value)
	}
	return fmt.Sprintf("%s already registered", e.Field)
}
