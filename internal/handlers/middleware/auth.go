package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
)

const (
	// IdentityContextKey guarda a entities.Identity autenticada
	IdentityContextKey = "identity"
	// TokenCookieName é o cookie com o token de acesso
	TokenCookieName = "avantpro_token"
	// LoginPath recebe visitas sem autenticação vindas do frontend
	LoginPath = "/login"
)

// Authenticator resolve o usuário dono de um token
type Authenticator interface {
	Identify(ctx context.Context, token string) (*entities.User, error)
}

// Authenticate exige um token válido (Authorization: Bearer ou cookie)
// e coloca a identidade no contexto
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(TokenCookieName)
		}

		if token == "" {
			unauthenticated(c)
			return
		}

		user, err := auth.Identify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			unauthenticated(c)
			return
		}

		c.Set(IdentityContextKey, user.Identity())
		c.Next()
	}
}

// CurrentIdentity retorna a identidade autenticada da requisição
func CurrentIdentity(c *gin.Context) (entities.Identity, bool) {
	value, ok := c.Get(IdentityContextKey)
	if !ok {
		return entities.Identity{}, false
	}
	identity, ok := value.(entities.Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func unauthenticated(c *gin.Context) {
	if inertia.IsInertia(c) {
		c.Header(inertia.HeaderLocation, LoginPath)
		c.AbortWithStatus(http.StatusConflict)
		return
	}

	AbortWithProblem(c, http.StatusUnauthorized,
		NewProblem(c, domainerrors.ProblemTypeUnauthorized, http.StatusUnauthorized, "error.unauthorized.title", "error.unauthorized.detail"))
}
