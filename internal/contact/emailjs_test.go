package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJSClient_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewEmailJSClient(EmailJSConfig{
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pub",
		PrivateKey: "priv",
		BaseURL:    srv.URL,
	})

	err := c.Send(context.Background(), map[string]string{"from_name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "priv", got.AccessToken)
	assert.Equal(t, "Ana", got.TemplateParams["from_name"])
}

func TestEmailJSClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	c := NewEmailJSClient(EmailJSConfig{ServiceID: "s", TemplateID: "t", PublicKey: "p", BaseURL: srv.URL})
	err := c.Send(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template ID is invalid")

	unconfigured := NewEmailJSClient(EmailJSConfig{BaseURL: srv.URL})
	assert.False(t, unconfigured.Configured())
	assert.Error(t, unconfigured.Send(context.Background(), nil))
}
