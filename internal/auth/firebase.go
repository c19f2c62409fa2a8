package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	fastshot "github.com/opus-domini/fast-shot"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
)

// IdentityToolkitURL is the Firebase REST endpoint for password sign-in.
const IdentityToolkitURL = "https://identitytoolkit.googleapis.com"

// cloudPlatformScope covers the auth and storage APIs.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// InitializeFirebase initializes the Firebase Admin SDK app used for auth and
// storage. Without a credentials file it uses Application Default Credentials.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig, bucket string) (*firebase.App, error) {
	var opt option.ClientOption
	if cfg.CredentialsPath != "" {
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	} else {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is not set and no default credentials found: %w", err)
		}
		opt = option.WithCredentials(creds)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	return app, nil
}

// SessionAuth is the subset of the Admin SDK auth client used for sessions.
type SessionAuth interface {
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*fbauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseProvider signs the admin in with email/password and keeps the
// session as a Firebase session cookie.
type FirebaseProvider struct {
	auth   SessionAuth
	client fastshot.ClientHttpMethods
	apiKey string
	ttl    time.Duration
	// persisted is consulted when no session was opened by this process.
	persisted TokenStore

	mu     sync.Mutex
	cookie string
}

type ProviderOptions struct {
	APIKey     string
	SessionTTL time.Duration
	// BaseURL overrides IdentityToolkitURL.
	BaseURL   string
	Persisted TokenStore
}

func NewFirebaseProvider(sa SessionAuth, opts ProviderOptions) *FirebaseProvider {
	base := opts.BaseURL
	if base == "" {
		base = IdentityToolkitURL
	}

	client := fastshot.NewClient(base).
		Config().SetTimeout(15 * time.Second).
		Header().Add("Content-Type", "application/json").
		Build()

	return &FirebaseProvider{
		auth:      sa,
		client:    client,
		apiKey:    opts.APIKey,
		ttl:       opts.SessionTTL,
		persisted: opts.Persisted,
	}
}

// NewFirebaseProviderFromApp builds a provider on the app's auth client.
func NewFirebaseProviderFromApp(ctx context.Context, app *firebase.App, opts ProviderOptions) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return NewFirebaseProvider(client, opts), nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken   string `json:"idToken"`
	LocalID   string `json:"localId"`
	ExpiresIn string `json:"expiresIn"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if p.apiKey == "" {
		return nil, errors.New("FIREBASE_API_KEY is not configured")
	}

	resp, err := p.client.
		POST("/v1/accounts:signInWithPassword").
		Query().AddParam("key", p.apiKey).
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Body().AsJSON(signInRequest{Email: email, Password: password, ReturnSecureToken: true}).
		Send()
	if err != nil {
		return nil, fmt.Errorf("sign in request: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		var ie identityError
		if jerr := resp.Body().AsJSON(&ie); jerr == nil && ie.Error.Message != "" {
			return nil, fmt.Errorf("sign in rejected: %s", ie.Error.Message)
		}
		return nil, fmt.Errorf("sign in rejected: status %d", resp.Status().Code())
	}

	var out signInResponse
	if err := resp.Body().AsJSON(&out); err != nil {
		return nil, fmt.Errorf("decode sign in response: %w", err)
	}
	if out.IDToken == "" {
		return nil, errors.New("sign in response has no id token")
	}

	cookie, err := p.auth.SessionCookie(ctx, out.IDToken, p.ttl)
	if err != nil {
		return nil, fmt.Errorf("create session cookie: %w", err)
	}

	p.mu.Lock()
	p.cookie = cookie
	p.mu.Unlock()

	return &Session{
		Token:     cookie,
		UID:       out.LocalID,
		ExpiresAt: time.Now().Add(p.ttl),
	}, nil
}

// CurrentSession verifies the session cookie against Firebase. A revoked or
// invalid cookie is reported as no session.
func (p *FirebaseProvider) CurrentSession(ctx context.Context) (*Session, error) {
	cookie, err := p.currentCookie(ctx)
	if err != nil || cookie == "" {
		return nil, err
	}

	tok, err := p.auth.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		if fbauth.IsSessionCookieRevoked(err) || fbauth.IsSessionCookieInvalid(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("verify session cookie: %w", err)
	}

	return &Session{
		Token:     cookie,
		UID:       tok.UID,
		ExpiresAt: time.Unix(tok.Expires, 0),
	}, nil
}

// SignOut revokes the admin's refresh tokens, which also invalidates every
// session cookie minted from them.
func (p *FirebaseProvider) SignOut(ctx context.Context) error {
	cookie, err := p.currentCookie(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.cookie = ""
	p.mu.Unlock()

	if cookie == "" {
		return nil
	}

	tok, err := p.auth.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		if fbauth.IsSessionCookieRevoked(err) || fbauth.IsSessionCookieInvalid(err) {
			return nil
		}
		return fmt.Errorf("verify session cookie: %w", err)
	}

	if err := p.auth.RevokeRefreshTokens(ctx, tok.UID); err != nil {
		return fmt.Errorf("revoke refresh tokens for %s: %w", tok.UID, err)
	}
	return nil
}

func (p *FirebaseProvider) currentCookie(ctx context.Context) (string, error) {
	p.mu.Lock()
	cookie := p.cookie
	p.mu.Unlock()
	if cookie != "" || p.persisted == nil {
		return cookie, nil
	}

	cookie, err := p.persisted.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read persisted session: %w", err)
	}
	return cookie, nil
}
