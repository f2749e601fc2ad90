// Package inertia implementa o protocolo de páginas usado pelo frontend:
// a primeira visita recebe um documento HTML com o objeto da página e as
// navegações seguintes recebem só o JSON.
package inertia

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Headers do protocolo
const (
	HeaderInertia  = "X-Inertia"
	HeaderVersion  = "X-Inertia-Version"
	HeaderLocation = "X-Inertia-Location"
)

// Níveis de notificação exibidos pelo frontend
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

const (
	flashKeyPrefix = "flash."
	errorsKey      = "errors"
)

//go:embed app.html
var appHTML string

// Page é o objeto de página trocado com o frontend
type Page struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	URL       string         `json:"url"`
	Version   string         `json:"version"`
}

// SharedFunc calcula uma prop presente em todas as páginas
type SharedFunc func(c *gin.Context) any

// Options configura o documento HTML inicial
type Options struct {
	Version string
	Title   string
	Entry   string // script de entrada do frontend
}

// Renderer responde páginas e redirecionamentos no formato do frontend
type Renderer struct {
	sessions *scs.SessionManager
	options  Options
	template *template.Template
	shared   map[string]SharedFunc
}

type shellData struct {
	Lang  string
	Title string
	Entry string
	Page  string
}

// New cria um Renderer. Flash e erros de validação vivem em sessions.
func New(sessions *scs.SessionManager, options Options) *Renderer {
	if options.Title == "" {
		options.Title = "Admin"
	}
	if options.Entry == "" {
		options.Entry = "/build/app.js"
	}

	return &Renderer{
		sessions: sessions,
		options:  options,
		template: template.Must(template.New("app").Parse(appHTML)),
		shared:   make(map[string]SharedFunc),
	}
}

// Version retorna a versão dos assets
func (r *Renderer) Version() string {
	return r.options.Version
}

// Share registra uma prop compartilhada. Props da página têm prioridade.
func (r *Renderer) Share(key string, fn SharedFunc) {
	r.shared[key] = fn
}

// IsInertia indica se a requisição veio do frontend já carregado
func IsInertia(c *gin.Context) bool {
	return c.GetHeader(HeaderInertia) == "true"
}

// Middleware força recarga completa quando a versão dos assets mudou
func (r *Renderer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", HeaderInertia)

		if IsInertia(c) && c.Request.Method == http.MethodGet && c.GetHeader(HeaderVersion) != r.options.Version {
			c.Header(HeaderLocation, c.Request.URL.RequestURI())
			c.AbortWithStatus(http.StatusConflict)
			return
		}

		c.Next()
	}
}

// Render responde a página component com props
func (r *Renderer) Render(c *gin.Context, component string, props gin.H) {
	page := Page{
		Component: component,
		Props:     r.props(c, props),
		URL:       c.Request.URL.RequestURI(),
		Version:   r.options.Version,
	}

	if IsInertia(c) {
		c.Header(HeaderInertia, "true")
		c.JSON(http.StatusOK, page)
		return
	}

	data, err := json.Marshal(page)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	lang := "en"
	if value, ok := c.Get("language"); ok {
		if s, ok := value.(string); ok {
			lang = s
		}
	}

	c.Render(http.StatusOK, render.HTML{
		Template: r.template,
		Data: shellData{
			Lang:  lang,
			Title: r.options.Title,
			Entry: r.options.Entry,
			Page:  string(data),
		},
	})
}

func (r *Renderer) props(c *gin.Context, props gin.H) map[string]any {
	out := make(map[string]any, len(r.shared)+len(props)+2)

	for key, fn := range r.shared {
		out[key] = fn(c)
	}

	ctx := c.Request.Context()
	out["flash"] = map[string]string{
		FlashSuccess: r.sessions.PopString(ctx, flashKeyPrefix+FlashSuccess),
		FlashDanger:  r.sessions.PopString(ctx, flashKeyPrefix+FlashDanger),
	}
	out["errors"] = r.popErrors(c)

	for key, value := range props {
		out[key] = value
	}
	return out
}

func (r *Renderer) popErrors(c *gin.Context) map[string]string {
	errs := map[string]string{}

	raw := r.sessions.PopString(c.Request.Context(), errorsKey)
	if raw == "" {
		return errs
	}
	if err := json.Unmarshal([]byte(raw), &errs); err != nil {
		_ = c.Error(err)
	}
	return errs
}

// Flash guarda uma notificação para a próxima página
func (r *Renderer) Flash(c *gin.Context, level, message string) {
	r.sessions.Put(c.Request.Context(), flashKeyPrefix+level, message)
}

// WithErrors guarda os erros de validação para a próxima página
func (r *Renderer) WithErrors(c *gin.Context, errs map[string]string) {
	data, err := json.Marshal(errs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	r.sessions.Put(c.Request.Context(), errorsKey, string(data))
}

// Redirect redireciona para location. Depois de PUT, PATCH ou DELETE usa
// 303 para o navegador seguir com GET.
func (r *Renderer) Redirect(c *gin.Context, location string) {
	status := http.StatusFound
	switch c.Request.Method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		status = http.StatusSeeOther
	}
	c.Redirect(status, location)
}

// Back redireciona para a página anterior (Referer do mesmo host) ou fallback
func (r *Renderer) Back(c *gin.Context, fallback string) {
	r.Redirect(c, backURL(c, fallback))
}

// Location manda o frontend fazer uma visita completa a location
func (r *Renderer) Location(c *gin.Context, location string) {
	if IsInertia(c) {
		c.Header(HeaderLocation, location)
		c.AbortWithStatus(http.StatusConflict)
		return
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func backURL(c *gin.Context, fallback string) string {
	referer := c.GetHeader("Referer")
	if referer == "" {
		return fallback
	}

	u, err := url.Parse(referer)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != c.Request.Host {
		return fallback
	}
	return referer
}
