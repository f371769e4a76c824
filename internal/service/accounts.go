package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"avatar_platform/internal/models"
	"avatar_platform/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for account flows.
var (
	ErrValidation         = errors.New("email and password are required")
	ErrDuplicateEmail     = errors.New("account already exists with that email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// AccountService handles signup and credential checks.
type AccountService struct {
	store repository.CredentialStore
	cost  int
}

func NewAccountService(store repository.CredentialStore) *AccountService {
	return &AccountService{store: store, cost: bcrypt.DefaultCost}
}

// Create hashes password and stores a new user. email is expected to be
// normalized by the caller.
func (s *AccountService) Create(ctx context.Context, email, name, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrValidation
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, email, name, hash)
	if err != nil {
		// lost a race against a concurrent signup
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
		}
		return nil, err
	}

	return &models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Authenticate returns the user owning email when password matches.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// burn the same bcrypt time as a real comparison
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !s.Verify(u, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Verify recomputes the salted hash comparison for password.
func (s *AccountService) Verify(u *models.User, password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.FindByEmail(ctx, email)
}

func (s *AccountService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}

// helper: hash password safely
func (s *AccountService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	return h
})
