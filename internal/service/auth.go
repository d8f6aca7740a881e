package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/smartbyte/shopassist/internal/domain"
)

// AuthService handles admin authentication. Unlike the conversation
// service it has no state machine: the persisted credential is the whole
// state, present and non-empty meaning authenticated.
type AuthService struct {
	sessions      *SessionStore
	authenticator domain.Authenticator
}

// NewAuthService creates a new auth service
func NewAuthService(sessions *SessionStore, authenticator domain.Authenticator) *AuthService {
	return &AuthService{
		sessions:      sessions,
		authenticator: authenticator,
	}
}

// Login exchanges the password for a credential and persists it
func (s *AuthService) Login(ctx context.Context, password string) error {
	result, err := s.authenticator.Login(ctx, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s.sessions.SaveCredential(ctx, result.Token)
	log.Info().Time("expires_at", result.ExpiresAt).Msg("admin login successful")
	return nil
}

// Logout clears the persisted credential
func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.ClearCredential(ctx)
}

// IsAuthenticated reports whether a credential is present
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.sessions.IsAuthenticated(ctx)
}

// Credential returns the persisted credential for privileged requests
func (s *AuthService) Credential(ctx context.Context) string {
	return s.sessions.Credential(ctx)
}
