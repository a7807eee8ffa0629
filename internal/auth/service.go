package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateOwner(ctx context.Context, o *Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*Owner, error)
}

type Service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type RegisterParams struct {
	FullName string
	Email    string
	Password string
}

// Register creates an owner account and returns a token for it.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Owner, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	o := &Owner{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(o.ID)
	if err != nil {
		return nil, "", err
	}

	return o, token, nil
}

// Login verifies credentials and returns the owner with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*Owner, string, error) {
	o, err := s.repo.GetOwnerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(o.ID)
	if err != nil {
		return nil, "", err
	}

	return o, token, nil
}
