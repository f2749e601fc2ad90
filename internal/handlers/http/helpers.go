package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/handlers/dto"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
)

// ListLimits são os limites de paginação das listagens
type ListLimits struct {
	Default int
	Max     int
}

// pathID lê o parâmetro :id; ids inválidos respondem 404
func pathID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		dto.NotFoundErrorResponseI18n(c, resource).Respond(c)
		return 0, false
	}
	return uint(id), true
}

// actor retorna quem está fazendo a requisição
func actor(c *gin.Context) entities.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// internalError responde 500 em leituras
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	dto.InternalErrorResponseI18n(c).Respond(c)
}

// invalidForm volta ao formulário com os erros de validação do binding
func invalidForm(c *gin.Context, pages *inertia.Renderer, err error, fallback string) {
	pages.WithErrors(c, dto.ErrorBag(dto.ValidationErrors(c, err)))
	pages.Back(c, fallback)
}

// mutationFailed volta ao formulário com o erro. Erros ligados a um campo
// vão para o error bag; os demais viram notificação de perigo.
func mutationFailed(c *gin.Context, pages *inertia.Renderer, err error, fallback string) {
	_ = c.Error(err)

	if field, ok := dto.FieldOfError(err); ok {
		pages.WithErrors(c, map[string]string{field: dto.T(c, err.Error())})
	} else {
		pages.Flash(c, inertia.FlashDanger, dto.FailureMessage(c, err))
	}
	pages.Back(c, fallback)
}
