package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	problems.DefaultProblem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Respond escreve o problema com o media type application/problem+json
func (r ErrorResponse) Respond(c *gin.Context) {
	middleware.AbortWithProblem(c, r.Status, r)
}

// problemKind liga um tipo de problema às chaves de tradução
type problemKind struct {
	typ       string
	status    int
	titleKey  string
	detailKey string
}

var (
	validationProblem = problemKind{
		typ: domainerrors.ProblemTypeValidation, status: http.StatusUnprocessableEntity,
		titleKey: "error.validation.title", detailKey: "error.validation.detail",
	}
	notFoundProblem = problemKind{
		typ: domainerrors.ProblemTypeNotFound, status: http.StatusNotFound,
		titleKey: "error.not_found.title", detailKey: "error.not_found.detail",
	}
	unauthorizedProblem = problemKind{
		typ: domainerrors.ProblemTypeUnauthorized, status: http.StatusUnauthorized,
		titleKey: "error.unauthorized.title", detailKey: "error.unauthorized.detail",
	}
	internalProblem = problemKind{
		typ: domainerrors.ProblemTypeInternal, status: http.StatusInternalServerError,
		titleKey: "error.internal.title", detailKey: "error.internal.detail",
	}
)

func (k problemKind) response(c *gin.Context, params ...map[string]interface{}) ErrorResponse {
	return ErrorResponse{
		DefaultProblem: *middleware.NewProblem(c, k.typ, k.status, k.titleKey, k.detailKey, params...),
	}
}

// ValidationErrorResponseI18n responde 422 com os erros por campo
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := validationProblem.response(c)
	response.Errors = validationErrors
	return response
}

func NotFoundErrorResponseI18n(c *gin.Context, resource string) ErrorResponse {
	return notFoundProblem.response(c, map[string]interface{}{"Resource": resource})
}

// UnauthorizedErrorResponseI18n usa detailKey no lugar do detalhe genérico
func UnauthorizedErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	kind := unauthorizedProblem
	if detailKey != "" {
		kind.detailKey = detailKey
	}
	return kind.response(c)
}

func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return internalProblem.response(c)
}

// FailureMessage é a mensagem exibida ao usuário quando uma mutação falha:
// erros de negócio são traduzidos e falhas de persistência mostram o erro
// original
func FailureMessage(c *gin.Context, err error) string {
	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Err != nil {
		return domainErr.Err.Error()
	}
	return T(c, err.Error())
}
