package http

import (
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/i18n"
)

// Router reúne tudo que é registrado no gin
type Router struct {
	BaseURL        string
	AllowedOrigins string
	Swagger        bool

	Logger   ports.Logger
	I18n     *i18n.Service
	Sessions *scs.SessionManager
	Pages    *inertia.Renderer
	Auth     middleware.Authenticator
	Gate     *middleware.Gate

	Users  *UserHandler
	Roles  *RoleHandler
	Login  *AuthHandler
	Events *EventsHandler
	Health *HealthHandler
}

// Engine monta o gin.Engine com middlewares e rotas
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(r.Logger),
		middleware.BaseURL(r.BaseURL),
		middleware.NewI18nMiddleware(r.I18n).DetectLanguage(),
		middleware.CORS(r.AllowedOrigins),
	)

	// Health check
	engine.GET("/health", r.Health.Live)
	engine.GET("/health/ready", r.Health.Ready)

	if r.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Pages.Share("auth", r.Login.SharedAuth)

	web := engine.Group("/")
	web.Use(middleware.Sessions(r.Sessions, r.Logger), r.Pages.Middleware())
	{
		web.POST("/login", r.Login.Login)
		web.POST("/logout", r.Login.Logout)
	}

	admin := web.Group("/")
	admin.Use(middleware.Authenticate(r.Auth))
	{
		admin.GET("/admin/events", r.Events.Stream)

		users := admin.Group("/users")
		{
			users.GET("", r.Gate.Require("user.index"), r.Users.Index)
			users.GET("/create", r.Gate.Require("user.create"), r.Users.Create)
			users.POST("", r.Gate.Require("user.create"), r.Users.Store)
			users.GET("/:id", r.Gate.Require("user.index"), r.Users.Show)
			users.GET("/:id/edit", r.Gate.Require("user.edit"), r.Users.Edit)
			users.PUT("/:id", r.Gate.Require("user.edit"), r.Users.Update)
			users.PATCH("/:id", r.Gate.Require("user.edit"), r.Users.Update)
			users.DELETE("/:id", r.Gate.Require("user.delete"), r.Users.Destroy)
		}

		roles := admin.Group("/roles")
		{
			roles.GET("", r.Gate.Require("role.index"), r.Roles.Index)
			roles.GET("/create", r.Gate.Require("role.create"), r.Roles.Create)
			roles.POST("", r.Gate.Require("role.create"), r.Roles.Store)
			roles.GET("/:id", r.Gate.Require("role.index"), r.Roles.Show)
			roles.GET("/:id/edit", r.Gate.Require("role.edit"), r.Roles.Edit)
			roles.PUT("/:id", r.Gate.Require("role.edit"), r.Roles.Update)
			roles.PATCH("/:id", r.Gate.Require("role.edit"), r.Roles.Update)
			roles.DELETE("/:id", r.Gate.Require("role.delete"), r.Roles.Destroy)
		}
	}

	return engine
}
