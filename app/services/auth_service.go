package services

import (
	"context"
	"errors"

	"feedback-board/app/hash"
	"feedback-board/app/models"
	"feedback-board/app/repo"
)

type AuthService struct {
	users *repo.UserRepository
}

func NewAuthService(users *repo.UserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterParams struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Register hashes the password and persists the new user. A collision on
// username or email comes back as repo.ErrDuplicateUsername or
// repo.ErrDuplicateEmail; the insert itself is the uniqueness check, so two
// racing registrations cannot both succeed.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	digest, err := hash.Hash(p.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     p.Username,
		PasswordHash: digest,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password are distinct errors; the bcrypt comparison dominates the
// response time on the password path.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if !hash.Verify(password, u.PasswordHash) {
		return nil, ErrBadPassword
	}
	return u, nil
}
