package middleware

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// Authorizer decide se uma identidade possui uma habilidade
type Authorizer interface {
	Authorize(ctx context.Context, identity entities.Identity, ability string) (bool, error)
}

// Gate protege rotas por habilidade. Toda habilidade pedida em Require é
// registrada para ser conferida contra as permissões cadastradas.
type Gate struct {
	authz  Authorizer
	logger ports.Logger

	mu        sync.Mutex
	abilities map[string]struct{}
}

// NewGate cria um Gate
func NewGate(authz Authorizer, logger ports.Logger) *Gate {
	return &Gate{
		authz:     authz,
		logger:    logger,
		abilities: make(map[string]struct{}),
	}
}

// Require recusa com 403 quem não possui ability, antes de qualquer leitura
// ou escrita do handler. Entra em pânico com nome de habilidade malformado.
func (g *Gate) Require(ability string) gin.HandlerFunc {
	name := valueobjects.MustAbility(ability).String()

	g.mu.Lock()
	g.abilities[name] = struct{}{}
	g.mu.Unlock()

	return func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)

		allowed, err := g.authz.Authorize(c.Request.Context(), identity, name)
		if err != nil {
			g.logger.Error("authorization failed", "ability", name, "user_id", identity.UserID, "error", err)
			AbortWithProblem(c, http.StatusInternalServerError,
				NewProblem(c, domainerrors.ProblemTypeInternal, http.StatusInternalServerError, "error.internal.title", "error.internal.detail"))
			return
		}

		if !allowed {
			g.logger.Warn("authorization denied", "ability", name, "user_id", identity.UserID)
			AbortWithProblem(c, http.StatusForbidden,
				NewProblem(c, domainerrors.ProblemTypeForbidden, http.StatusForbidden, "error.forbidden.title", "error.forbidden.detail"))
			return
		}

		c.Next()
	}
}

// Abilities retorna as habilidades usadas nas rotas, em ordem alfabética
func (g *Gate) Abilities() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, 0, len(g.abilities))
	for ability := range g.abilities {
		out = append(out, ability)
	}
	sort.Strings(out)
	return out
}
