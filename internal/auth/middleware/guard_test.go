package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

type stubGate struct {
	state auth.State
	token string
}

func (s stubGate) State() auth.State { return s.state }

func (s stubGate) Authorize(token string) bool {
	return s.state.Active() && token != "" && token == s.token
}

var loading = []byte("<p>Loading...</p>")

func newGuardedRouter(gate Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	admin := r.Group("/admin", AdminGuard(gate, loading))
	admin.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard:"+auth.AdminSource(c).String())
	})

	api := r.Group("/api/v1/admin", APIGuard(gate))
	api.GET("/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r http.Handler, path, cookie, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookie})
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminGuard(t *testing.T) {
	hosted := auth.State{Phase: auth.PhaseAuthenticated, Source: auth.SourceHosted}
	local := auth.State{Phase: auth.PhaseAuthenticated, Source: auth.SourceLocalToken}

	tests := []struct {
		name       string
		gate       stubGate
		cookie     string
		wantStatus int
		wantBody   string
		wantLoc    string
	}{
		{
			name:       "initializing shows loading",
			gate:       stubGate{state: auth.State{Phase: auth.PhaseInitializing}, token: "t"},
			cookie:     "t",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   string(loading),
		},
		{
			name:       "unauthenticated redirects",
			gate:       stubGate{state: auth.State{Phase: auth.PhaseUnauthenticated}},
			wantStatus: http.StatusFound,
			wantLoc:    LoginPath,
		},
		{
			name:       "active without cookie redirects",
			gate:       stubGate{state: hosted, token: "t"},
			wantStatus: http.StatusFound,
			wantLoc:    LoginPath,
		},
		{
			name:       "active with wrong cookie redirects",
			gate:       stubGate{state: hosted, token: "t"},
			cookie:     "other",
			wantStatus: http.StatusFound,
			wantLoc:    LoginPath,
		},
		{
			name:       "hosted session renders",
			gate:       stubGate{state: hosted, token: "t"},
			cookie:     "t",
			wantStatus: http.StatusOK,
			wantBody:   "dashboard:hosted",
		},
		{
			name:       "local token renders",
			gate:       stubGate{state: local, token: "t"},
			cookie:     "t",
			wantStatus: http.StatusOK,
			wantBody:   "dashboard:local_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newGuardedRouter(tt.gate), "/admin/dashboard", tt.cookie, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
				assert.NotContains(t, w.Body.String(), "dashboard")
			}
			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestAPIGuard(t *testing.T) {
	active := auth.State{Phase: auth.PhaseAuthenticated, Source: auth.SourceHosted}

	w := get(newGuardedRouter(stubGate{state: auth.State{Phase: auth.PhaseInitializing}}), "/api/v1/admin/session", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(newGuardedRouter(stubGate{state: active, token: "t"}), "/api/v1/admin/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	w = get(newGuardedRouter(stubGate{state: active, token: "t"}), "/api/v1/admin/session", "", "t")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(newGuardedRouter(stubGate{state: active, token: "t"}), "/api/v1/admin/session", "t", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// slowProvider holds CurrentSession until released.
type slowProvider struct {
	release chan struct{}
}

func (p *slowProvider) SignIn(context.Context, string, string) (*auth.Session, error) {
	return &auth.Session{Token: "t"}, nil
}

func (p *slowProvider) CurrentSession(context.Context) (*auth.Session, error) {
	<-p.release
	return &auth.Session{Token: "hosted-token"}, nil
}

func (p *slowProvider) SignOut(context.Context) error { return nil }

type memTokens struct{ v string }

func (m *memTokens) Get(context.Context) (string, error) { return m.v, nil }
func (m *memTokens) Set(_ context.Context, v string, _ time.Duration) error { m.v = v; return nil }
func (m *memTokens) Delete(context.Context) error { m.v = ""; return nil }

func TestAdminGuard_NeverRendersWhileInitializing(t *testing.T) {
	p := &slowProvider{release: make(chan struct{})}
	gate := auth.NewGate(p, &memTokens{}, auth.GateConfig{AdminPassword: "pw"}, nil)
	r := newGuardedRouter(gate)

	done := make(chan struct{})
	go func() {
		gate.CheckSession(context.Background())
		close(done)
	}()

	for i := 0; i < 3; i++ {
		w := get(r, "/admin/dashboard", "hosted-token", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "dashboard")
	}

	close(p.release)
	<-done

	w := get(r, "/admin/dashboard", "hosted-token", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard:hosted", w.Body.String())
}
