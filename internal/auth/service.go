package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ProfileStore is the slice of the profiles repository auth needs.
type ProfileStore interface {
	GetOrCreateProfile(ctx context.Context, username string) (*entities.Profile, error)
	GetProfileByTokenHash(ctx context.Context, tokenHash string) (*entities.Profile, error)
	SetTokenHash(ctx context.Context, profileID uint, tokenHash string) error
}

// Service validates and issues API tokens.
type Service struct {
	profiles ProfileStore
	config   config.Auth
	now      func() time.Time
}

func NewService(profiles ProfileStore, cfg config.Auth) *Service {
	return &Service{
		profiles: profiles,
		config:   cfg,
		now:      time.Now,
	}
}

// ValidateToken checks a plaintext token and returns the owning profile.
// Returns ErrTokenExpired if the token is older than the configured expiry.
func (s *Service) ValidateToken(ctx context.Context, token string) (*entities.Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	profile, err := s.profiles.GetProfileByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.config.TokenExpiry > 0 && profile.TokenCreatedAt != nil {
		if s.now().Sub(*profile.TokenCreatedAt) > s.config.TokenExpiry {
			return nil, ErrTokenExpired
		}
	}

	return profile, nil
}

// IssueToken creates the profile if needed and replaces its API token.
// The plaintext token is returned once; only the hash is persisted.
func (s *Service) IssueToken(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	profile, err := s.profiles.GetOrCreateProfile(ctx, username)
	if err != nil {
		return "", err
	}

	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.profiles.SetTokenHash(ctx, profile.ID, hash); err != nil {
		return "", err
	}
	return plaintext, nil
}

// IsAuthEnabled returns true if requests must carry a token.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeToken
}
