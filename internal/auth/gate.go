package auth

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
)

type GateConfig struct {
	AdminPassword string
	AdminEmail    string
	// SessionTTL bounds how long the persisted token lives.
	SessionTTL time.Duration
}

// Gate owns the single admin session. It starts Initializing and is resolved
// once by CheckSession; Login and Logout move it between the two resolved
// phases.
type Gate struct {
	provider Provider
	tokens   TokenStore
	cfg      GateConfig
	logger   *zap.Logger

	mu    sync.RWMutex
	state State
	token string

	once  sync.Once
	ready chan struct{}
}

func NewGate(provider Provider, tokens TokenStore, cfg GateConfig, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		provider: provider,
		tokens:   tokens,
		cfg:      cfg,
		logger:   logger,
		state:    initializing,
		ready:    make(chan struct{}),
	}
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Ready is closed once the initial session check has resolved.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// CheckSession resolves the initial state from the hosted session and the
// persisted token. It reads both sources without modifying either. Only the
// first call does any work.
func (g *Gate) CheckSession(ctx context.Context) State {
	g.once.Do(func() {
		var hostedToken string
		session, err := g.provider.CurrentSession(ctx)
		if err != nil {
			g.logger.Warn("hosted session check failed", zap.Error(err))
		} else if session != nil {
			hostedToken = session.Token
		}

		localToken, err := g.tokens.Get(ctx)
		if err != nil {
			g.logger.Warn("reading persisted admin token failed", zap.Error(err))
			localToken = ""
		}

		st := resolve(hostedToken != "", localToken != "")

		g.mu.Lock()
		g.state = st
		switch st.Source {
		case SourceHosted:
			g.token = hostedToken
		case SourceLocalToken:
			g.token = localToken
		}
		g.mu.Unlock()
		close(g.ready)

		g.logger.Info("admin session resolved",
			zap.Stringer("phase", st.Phase),
			zap.Stringer("source", st.Source),
		)
	})
	return g.State()
}

// Login checks secret against the admin password and, on a match, opens a
// hosted session for the admin identity and returns its token. A wrong
// secret reports ok=false with a nil error and touches nothing.
func (g *Gate) Login(ctx context.Context, secret string) (token string, ok bool, err error) {
	if !g.waitReady(ctx) {
		return "", false, apperrors.Remote("login", ctx.Err())
	}
	if g.cfg.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(g.cfg.AdminPassword)) != 1 {
		g.logger.Info("admin login rejected")
		return "", false, nil
	}

	session, err := g.provider.SignIn(ctx, g.cfg.AdminEmail, secret)
	if err != nil {
		return "", false, apperrors.Remote("sign in", err)
	}

	if err := g.tokens.Set(ctx, session.Token, g.cfg.SessionTTL); err != nil {
		if serr := g.provider.SignOut(ctx); serr != nil {
			g.logger.Warn("sign out after failed token persist", zap.Error(serr))
		}
		return "", false, apperrors.Remote("persist admin token", err)
	}

	g.mu.Lock()
	g.state = authenticated(SourceHosted)
	g.token = session.Token
	g.mu.Unlock()

	g.logger.Info("admin logged in", zap.String("uid", session.UID))
	return session.Token, true, nil
}

// Logout ends the session on both sides. Failures are logged and the gate
// ends Unauthenticated regardless.
func (g *Gate) Logout(ctx context.Context) {
	g.waitReady(ctx)

	if err := g.provider.SignOut(ctx); err != nil {
		g.logger.Warn("hosted sign out failed", zap.Error(err))
	}
	if err := g.tokens.Delete(ctx); err != nil {
		g.logger.Warn("deleting persisted admin token failed", zap.Error(err))
	}

	g.mu.Lock()
	g.state = unauthenticated
	g.token = ""
	g.mu.Unlock()

	g.logger.Info("admin logged out")
}

// Revalidate re-checks an active session against its source and drops it
// when the source no longer has it: a revoked or expired hosted session, or
// a persisted token that has expired. Lookup failures keep the session.
func (g *Gate) Revalidate(ctx context.Context) State {
	g.mu.RLock()
	st, token := g.state, g.token
	g.mu.RUnlock()
	if !st.Active() {
		return st
	}

	var gone bool
	switch st.Source {
	case SourceHosted:
		session, err := g.provider.CurrentSession(ctx)
		if err != nil {
			g.logger.Warn("hosted session recheck failed", zap.Error(err))
			return st
		}
		gone = session == nil
	case SourceLocalToken:
		stored, err := g.tokens.Get(ctx)
		if err != nil {
			g.logger.Warn("persisted admin token recheck failed", zap.Error(err))
			return st
		}
		gone = stored == ""
	}
	if !gone {
		return st
	}

	g.mu.Lock()
	// a login that raced this check keeps its new session
	if g.token != token {
		g.mu.Unlock()
		return g.State()
	}
	g.state = unauthenticated
	g.token = ""
	g.mu.Unlock()

	if st.Source == SourceHosted {
		if err := g.tokens.Delete(ctx); err != nil {
			g.logger.Warn("deleting persisted admin token failed", zap.Error(err))
		}
	}
	g.logger.Info("admin session expired", zap.Stringer("source", st.Source))
	return unauthenticated
}

// Authorize reports whether token belongs to the active session.
func (g *Gate) Authorize(token string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.state.Active() || token == "" || g.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) == 1
}

func (g *Gate) waitReady(ctx context.Context) bool {
	select {
	case <-g.ready:
		return true
	case <-ctx.Done():
		return false
	}
}
