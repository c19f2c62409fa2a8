package http

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

// Gate is the admin session gate as used by the handlers.
type Gate interface {
	State() auth.State
	Authorize(token string) bool
	Login(ctx context.Context, secret string) (token string, ok bool, err error)
	Logout(ctx context.Context)
}

type Handler struct {
	gate         Gate
	ttl          time.Duration
	secureCookie bool
}

func New(gate Gate, sessionTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{
		gate:         gate,
		ttl:          sessionTTL,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	OK         bool   `json:"ok"`
	Phase      string `json:"phase"`
	Source     string `json:"source,omitempty"`
	Authorized bool   `json:"authorized"`
}
