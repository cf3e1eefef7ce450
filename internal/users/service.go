package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/termination/collab-text-editor/internal/models"
	"github.com/termination/collab-text-editor/internal/password"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// password that does not verify. Callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service encapsulates registration and login logic
type Service struct {
	repo   UserRepository
	hasher password.Hasher
}

func NewService(r UserRepository, h password.Hasher) *Service {
	return &Service{repo: r, hasher: h}
}

// Register creates a new account. Returns ErrEmailInUse when the email is
// already taken; the unique index on email backs the pre-check.
func (s *Service) Register(ctx context.Context, username, email, plain string) (*models.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, email, plain string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(plain, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
