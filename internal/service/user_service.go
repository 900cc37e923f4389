package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"academic-portfolio/internal/domain"
	"academic-portfolio/internal/repository"
)

// UserService describes account lifecycle and identity resolution operations.
type UserService interface {
	Register(ctx context.Context, username, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (string, error)
	BootstrapAdmin(ctx context.Context, username, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	tokens   TokenService
	tokenTTL time.Duration
}

func NewUserService(users repository.UserRepository, tokens TokenService, tokenTTL time.Duration) UserService {
	return &userService{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new account. The first account ever created becomes
// admin; the store's unique indexes are the authoritative guard against
// duplicate usernames and emails, the lookups below only produce friendly
// errors ahead of the insert.
func (s *userService) Register(ctx context.Context, username, email, password, fullName string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, &ConflictError{Field: "username", Value: username}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, &ConflictError{Field: "email", Value: email}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		IsAdmin:      count == 0,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if _, lookupErr := s.users.GetByUsername(ctx, username); lookupErr == nil {
				return nil, &ConflictError{Field: "username", Value: username}
			}
			return nil, &ConflictError{Field: "email", Value: email}
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login matches the identifier against usernames first, then emails, and
// issues a bearer token on success. Unknown identifiers and wrong passwords
// fail identically.
func (s *userService) Login(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, s.tokenTTL)
}

// BootstrapAdmin creates the initial admin account. It only succeeds while
// the accounts collection is empty.
func (s *userService) BootstrapAdmin(ctx context.Context, username, email, password string) (*domain.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsersExist
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		FullName:     "Admin User",
		IsAdmin:      true,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsersExist
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// ResolveToken verifies the token and loads the account it asserts. This is
// the single verification primitive behind both required and optional
// authentication; optional callers discard the error.
func (s *userService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	subjectID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
