package auth

import (
	"context"
	"time"
)

// Session is a session issued by the hosted auth service.
type Session struct {
	Token     string
	UID       string
	ExpiresAt time.Time
}

// Provider is the hosted auth service.
type Provider interface {
	// SignIn opens a session for email/password.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// CurrentSession returns the session held by this client, or nil when
	// there is none or it is no longer valid.
	CurrentSession(ctx context.Context) (*Session, error)
	// SignOut ends the session held by this client.
	SignOut(ctx context.Context) error
}

// TokenStore persists the fallback admin token under a single key.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context) error
}
