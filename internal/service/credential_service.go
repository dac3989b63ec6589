package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// CredentialService registers accounts and checks passwords against stored bcrypt hashes.
type CredentialService struct {
	users *repository.UserRepository
	cost  int
	// dummyHash is compared against when the email is unknown so both failure paths pay for a bcrypt check.
	dummyHash []byte
}

// NewCredentialService returns a service hashing with the given bcrypt cost (0 means bcrypt.DefaultCost).
func NewCredentialService(users *repository.UserRepository, cost int) (*CredentialService, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &CredentialService{users: users, cost: cost, dummyHash: dummy}, nil
}

func (s *CredentialService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("password longer than 72 bytes: %w", ErrInvalidInput)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the user whose email and password match. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
