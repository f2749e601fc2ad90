package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
)

// T traduz key no idioma da requisição.
// Ex.: dto.T(c, "error.not_found.detail", map[string]interface{}{"Resource": "User"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	return middleware.Translate(c, key, params...)
}
