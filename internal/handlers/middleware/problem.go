package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

// BaseURLContextKey guarda a URL base usada nos tipos dos problemas
const BaseURLContextKey = "base_url"

// BaseURL injeta a URL base da API no contexto
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(BaseURLContextKey, baseURL)
		c.Next()
	}
}

// NewProblem monta um documento RFC 7807 com título e detalhe traduzidos
func NewProblem(c *gin.Context, problemType string, status int, titleKey, detailKey string, params ...map[string]interface{}) *problems.DefaultProblem {
	baseURL := c.GetString(BaseURLContextKey)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &problems.DefaultProblem{
		Type:     baseURL + problemType,
		Title:    Translate(c, titleKey, params...),
		Status:   status,
		Detail:   Translate(c, detailKey, params...),
		Instance: c.Request.URL.Path,
	}
}

// AbortWithProblem interrompe a requisição respondendo o problema
func AbortWithProblem(c *gin.Context, status int, problem any) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(status, problem)
}
