package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey guarda o idioma resolvido da requisição
	LanguageContextKey = "language"
	// I18nServiceContextKey guarda o *i18n.Service usado por Translate
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware resolve o idioma de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
}

func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{i18nService: i18nService}
}

// DetectLanguage escolhe, nesta ordem: ?lang=, Accept-Language e o
// idioma padrão. Tags parciais são aceitas ("pt" resolve para "pt-BR").
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.i18nService.Match(c.Query("lang"))
		if lang == "" {
			lang = m.i18nService.Match(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Next()
	}
}

// Translate traduz key no idioma detectado para a requisição.
// Sem serviço no contexto a própria chave é devolvida.
func Translate(c *gin.Context, key string, params ...map[string]interface{}) string {
	service, ok := c.Value(I18nServiceContextKey).(*i18n.Service)
	if !ok {
		return key
	}
	return service.T(Language(c), key, params...)
}

// Language retorna o idioma da requisição ("en" quando não detectado)
func Language(c *gin.Context) string {
	if lang := c.GetString(LanguageContextKey); lang != "" {
		return lang
	}
	return "en"
}
