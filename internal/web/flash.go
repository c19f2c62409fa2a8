package web

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// FlashSessionName is the cookie holding pending notifications.
const FlashSessionName = "portfolio_flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// FlashStore keeps notifications in a signed cookie across a redirect.
type FlashStore struct {
	store *sessions.CookieStore
}

// NewFlashStore signs cookies with a key derived from secret.
func NewFlashStore(secret string, secure bool) *FlashStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

func (f *FlashStore) Add(c *gin.Context, kind, message string) {
	// a tampered or stale cookie yields a fresh session
	s, _ := f.store.Get(c.Request, FlashSessionName)
	s.AddFlash(Flash{Kind: kind, Message: message})
	_ = s.Save(c.Request, c.Writer)
}

// Pop returns and clears the pending notifications.
func (f *FlashStore) Pop(c *gin.Context) []Flash {
	s, _ := f.store.Get(c.Request, FlashSessionName)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(c.Request, c.Writer)

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if fl, ok := v.(Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}
