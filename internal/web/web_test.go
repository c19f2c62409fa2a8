package web

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/contact"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/entitytest"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/service"
)

const adminPassword = "letmein"

type stubProvider struct {
	n int
}

func (p *stubProvider) SignIn(context.Context, string, string) (*auth.Session, error) {
	p.n++
	return &auth.Session{Token: "session-" + strconv.Itoa(p.n), UID: "admin"}, nil
}

func (p *stubProvider) CurrentSession(context.Context) (*auth.Session, error) { return nil, nil }
func (p *stubProvider) SignOut(context.Context) error                         { return nil }

type memTokens struct{ v string }

func (m *memTokens) Get(context.Context) (string, error) { return m.v, nil }

func (m *memTokens) Set(_ context.Context, v string, _ time.Duration) error {
	m.v = v
	return nil
}

func (m *memTokens) Delete(context.Context) error {
	m.v = ""
	return nil
}

type contactRecorder struct {
	params []map[string]string
	err    error
}

func (r *contactRecorder) Send(_ context.Context, p map[string]string) error {
	r.params = append(r.params, p)
	return r.err
}

type site struct {
	t        *testing.T
	router   *gin.Engine
	projects *entitytest.MemStore[domain.Project]
	certs    *entitytest.MemStore[domain.Certificate]
	mail     *contactRecorder
	jar      map[string]*http.Cookie
}

func newSite(t *testing.T) *site {
	t.Helper()
	gin.SetMode(gin.TestMode)

	projects := entitytest.NewMemStore(domain.ProjectSchema)
	certs := entitytest.NewMemStore(domain.CertificateSchema)
	objs := entitytest.NewMemObjects()
	mail := &contactRecorder{}

	gate := auth.NewGate(&stubProvider{}, &memTokens{}, auth.GateConfig{
		AdminPassword: adminPassword,
		AdminEmail:    "admin@example.com",
		SessionTTL:    time.Hour,
	}, nil)
	gate.CheckSession(context.Background())

	tmpl, err := Templates()
	require.NoError(t, err)
	loading, err := LoadingPage(tmpl)
	require.NoError(t, err)

	h := New(Deps{
		Projects:     service.New(domain.ProjectSchema, projects, objs),
		Certificates: service.New(domain.CertificateSchema, certs, objs),
		Gate:         gate,
		Contact:      contact.NewService(mail, "Owner"),
		Flashes:      NewFlashStore("test-secret", false),
		SessionTTL:   time.Hour,
	})

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	pass := func(c *gin.Context) { c.Next() }
	h.Register(r, authmw.AdminGuard(gate, loading), pass, pass)

	return &site{t: t, router: r, projects: projects, certs: certs, mail: mail, jar: map[string]*http.Cookie{}}
}

func (s *site) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.jar {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.jar, c.Name)
			continue
		}
		s.jar[c.Name] = c
	}
	return w
}

func (s *site) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *site) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *site) login() {
	w := s.postForm("/admin/login", url.Values{"password": {adminPassword}})
	require.Equal(s.t, http.StatusSeeOther, w.Code)
	require.Equal(s.t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestPublicPages(t *testing.T) {
	s := newSite(t)
	ctx := context.Background()
	_, err := s.projects.Insert(ctx, domain.ProjectSchema.Normalize(domain.Fields{
		"title": "Loja Virtual", "description": "E-commerce", "technologies": "Go, Postgres",
	}))
	require.NoError(t, err)
	_, err = s.certs.Insert(ctx, domain.CertificateSchema.Normalize(domain.Fields{
		"title": "Go Avançado", "institution": "Udemy",
	}))
	require.NoError(t, err)

	w := s.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loja Virtual")
	assert.Contains(t, w.Body.String(), `<span class="tag">Postgres</span>`)
	assert.Contains(t, w.Body.String(), "Go Avançado")
	assert.Contains(t, w.Body.String(), "Ver todos os certificados")

	w = s.get("/certificados")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go Avançado")
	assert.Contains(t, w.Body.String(), "Udemy")
}

func TestPublicPages_LoadError(t *testing.T) {
	s := newSite(t)
	s.projects.Err = errors.New("db down")

	w := s.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Erro ao carregar projetos")
	assert.NotContains(t, w.Body.String(), "db down")
	// certificates still render
	assert.Contains(t, w.Body.String(), "Nenhum certificado cadastrado ainda.")
}

func TestAdmin_RequiresLogin(t *testing.T) {
	s := newSite(t)

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/projetos", "/admin/certificados"} {
		w := s.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestAdmin_WrongPassword(t *testing.T) {
	s := newSite(t)

	w := s.postForm("/admin/login", url.Values{"password": {"nope"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	assert.NotContains(t, s.jar, auth.SessionCookie)

	w = s.get("/admin/login")
	assert.Contains(t, w.Body.String(), "Senha incorreta")

	// flash shows once
	w = s.get("/admin/login")
	assert.NotContains(t, w.Body.String(), "Senha incorreta")
}

func TestAdmin_LoginDashboardLogout(t *testing.T) {
	s := newSite(t)
	s.login()
	require.Contains(t, s.jar, auth.SessionCookie)

	w := s.get("/admin")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = s.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login realizado com sucesso!")
	assert.Contains(t, w.Body.String(), "Gerenciar projetos")
	assert.Contains(t, w.Body.String(), "Gerenciar certificados")
	assert.Contains(t, w.Body.String(), "Sessão: Firebase")

	// already logged in
	w = s.get("/admin/login")
	assert.Equal(t, http.StatusFound, w.Code)

	w = s.postForm("/admin/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, s.jar, auth.SessionCookie)

	w = s.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdmin_StaleCookieAfterRelogin(t *testing.T) {
	s := newSite(t)
	s.login()
	old := *s.jar[auth.SessionCookie]

	s.login()
	s.jar[auth.SessionCookie] = &old

	w := s.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdmin_ProjectLifecycle(t *testing.T) {
	s := newSite(t)
	s.login()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Portfolio"))
	require.NoError(t, mw.WriteField("description", "Meu site"))
	require.NoError(t, mw.WriteField("technologies", "Go, HTMX"))
	fw, err := mw.CreateFormFile("image", "capa.png")
	require.NoError(t, err)
	_, err = fw.Write(entitytest.PNG)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/projetos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/projetos", w.Header().Get("Location"))

	w = s.get("/admin/projetos")
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Projeto criado com sucesso!")
	assert.Contains(t, page, "Portfolio")
	assert.Contains(t, page, "https://storage.test/images/project-images/")

	items, err := s.projects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID

	w = s.postForm("/admin/projetos/"+itoa(id), url.Values{
		"title": {"Portfolio v2"}, "description": {"Meu site"}, "technologies": {"Go"},
		"github": {""}, "demo": {"https://demo.example.com"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = s.get("/admin/projetos")
	assert.Contains(t, w.Body.String(), "Projeto atualizado com sucesso!")

	items, err = s.projects.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Portfolio v2", items[0].Title)
	assert.Equal(t, "https://demo.example.com", items[0].Demo)
	assert.NotEmpty(t, items[0].Image, "image survives a text-only edit")

	w = s.postForm("/admin/projetos/"+itoa(id)+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = s.get("/admin/projetos")
	assert.Contains(t, w.Body.String(), "Projeto excluído com sucesso!")
	assert.Contains(t, w.Body.String(), "Nenhum projeto cadastrado.")

	w = s.postForm("/admin/projetos/"+itoa(id)+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = s.get("/admin/projetos")
	assert.Contains(t, w.Body.String(), "Projeto não encontrado")
}

func TestAdmin_CreateValidationFailure(t *testing.T) {
	s := newSite(t)
	s.login()

	w := s.postForm("/admin/certificados", url.Values{"title": {"  "}, "institution": {"Udemy"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, s.certs.Calls)

	w = s.get("/admin/certificados")
	assert.Contains(t, w.Body.String(), "title: is required")
	assert.NotContains(t, w.Body.String(), "title: title")
}

func TestAdmin_RemoteFailureIsGeneric(t *testing.T) {
	s := newSite(t)
	s.login()
	s.certs.Err = errors.New("connection reset by peer")

	w := s.postForm("/admin/certificados", url.Values{"title": {"Go"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	s.certs.Err = nil
	w = s.get("/admin/certificados")
	assert.Contains(t, w.Body.String(), "Erro ao criar certificado")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestContactSubmit(t *testing.T) {
	s := newSite(t)

	w := s.postForm("/contato", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Olá!"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/#contato", w.Header().Get("Location"))
	require.Len(t, s.mail.params, 1)
	assert.Equal(t, "Ana", s.mail.params[0]["from_name"])

	w = s.get("/")
	assert.Contains(t, w.Body.String(), "Mensagem enviada com sucesso!")

	s.mail.err = errors.New("emailjs 500")
	s.postForm("/contato", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Olá!"}})
	w = s.get("/")
	assert.Contains(t, w.Body.String(), "Erro ao enviar mensagem. Tente novamente.")

	s.postForm("/contato", url.Values{"name": {"Ana"}, "email": {"bad"}, "message": {"Olá!"}})
	assert.Len(t, s.mail.params, 2)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, splitList(" Go, Postgres ,,Redis "))
	assert.Empty(t, splitList(""))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
