package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	entityhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

// entityPages is the admin management page and form posts for one kind.
type entityPages[T any] struct {
	svc      entityhttp.Service[T]
	flashes  *FlashStore
	path     string
	template string
	title    string
	noun     string
}

func (p *entityPages[T]) register(rg *gin.RouterGroup) {
	rg.GET("", p.list)
	rg.POST("", p.create)
	rg.POST("/:id", p.update)
	rg.POST("/:id/delete", p.delete)
}

func (p *entityPages[T]) list(c *gin.Context) {
	data := gin.H{
		"Title":   p.title,
		"Admin":   true,
		"Flashes": p.flashes.Pop(c),
	}

	items, err := p.svc.List(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("load "+p.noun+"s", zap.Error(err))
		data["Error"] = "Erro ao carregar " + p.noun + "s"
	}
	data["Items"] = items

	c.HTML(http.StatusOK, p.template, data)
}

func (p *entityPages[T]) create(c *gin.Context) {
	fields, img, err := entityhttp.ReadFields(c)
	if err == nil {
		_, err = p.svc.Create(c.Request.Context(), fields, img)
	}
	p.done(c, err, "criar", p.noun+" criado com sucesso!")
}

// update applies the edit form. Image changes go through create only.
func (p *entityPages[T]) update(c *gin.Context) {
	id, ok := entityhttp.ParseID(c)
	if !ok {
		p.done(c, apperrors.ErrNotFound, "atualizar", "")
		return
	}

	fields, _, err := entityhttp.ReadFields(c)
	if err == nil {
		_, err = p.svc.Update(c.Request.Context(), id, fields)
	}
	p.done(c, err, "atualizar", p.noun+" atualizado com sucesso!")
}

func (p *entityPages[T]) delete(c *gin.Context) {
	id, ok := entityhttp.ParseID(c)
	if !ok {
		p.done(c, apperrors.ErrNotFound, "excluir", "")
		return
	}

	err := p.svc.Delete(c.Request.Context(), id)
	p.done(c, err, "excluir", p.noun+" excluído com sucesso!")
}

// done flashes the outcome and redirects back to the management page.
func (p *entityPages[T]) done(c *gin.Context, err error, verb, success string) {
	var ve *apperrors.ValidationError
	switch {
	case err == nil:
		p.flashes.Add(c, FlashSuccess, capitalize(success))
	case errors.As(err, &ve):
		p.flashes.Add(c, FlashError, ve.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		p.flashes.Add(c, FlashError, capitalize(p.noun)+" não encontrado")
	default:
		logging.FromContext(c.Request.Context()).Error("admin "+verb+" "+p.noun, zap.Error(err))
		p.flashes.Add(c, FlashError, "Erro ao "+verb+" "+p.noun)
	}
	c.Redirect(http.StatusSeeOther, p.path)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
