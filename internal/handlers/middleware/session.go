package middleware

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
)

// NewSessionManager cria o gerenciador de sessões (store em memória)
func NewSessionManager(lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = "avantpro_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}

// Sessions carrega a sessão da requisição e grava o cookie antes da
// resposta ser enviada
func Sessions(sm *scs.SessionManager, logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			logger.Error("session load failed", "error", err)
			AbortWithProblem(c, http.StatusInternalServerError,
				NewProblem(c, domainerrors.ProblemTypeInternal, http.StatusInternalServerError, "error.internal.title", "error.internal.detail"))
			return
		}
		c.Request = c.Request.WithContext(ctx)

		writer := &sessionWriter{ResponseWriter: c.Writer, c: c, sm: sm, logger: logger}
		c.Writer = writer

		c.Next()

		writer.commit()
		c.Writer = writer.ResponseWriter
	}
}

// sessionWriter grava a sessão no primeiro write do handler
type sessionWriter struct {
	gin.ResponseWriter
	c         *gin.Context
	sm        *scs.SessionManager
	logger    ports.Logger
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed || w.ResponseWriter.Written() {
		return
	}
	w.committed = true

	ctx := w.c.Request.Context()
	switch w.sm.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(ctx)
		if err != nil {
			w.logger.Error("session commit failed", "error", err)
			return
		}
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}

	w.Header().Add("Vary", "Cookie")
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(data []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(data)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}
