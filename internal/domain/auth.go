package domain

import (
	"context"
	"time"
)

// LoginResult carries the credential returned by a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator defines the interface for the admin login operation.
type Authenticator interface {
	Login(ctx context.Context, password string) (*LoginResult, error)
}
