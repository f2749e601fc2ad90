package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
)

// CORS configura CORS para a aplicação.
// allowedOrigins é uma lista separada por vírgulas; "*" libera qualquer origem.
func CORS(allowedOrigins string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			inertia.HeaderInertia, inertia.HeaderVersion, "X-Requested-With",
		},
		ExposeHeaders:    []string{inertia.HeaderInertia, inertia.HeaderLocation, RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			// Credenciais não combinam com "*": a origem da requisição é ecoada
			config.AllowOriginFunc = func(string) bool { return true }
			config.AllowOrigins = nil
			break
		}
		config.AllowOrigins = append(config.AllowOrigins, origin)
	}

	if len(config.AllowOrigins) == 0 && config.AllowOriginFunc == nil {
		config.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(config)
}
