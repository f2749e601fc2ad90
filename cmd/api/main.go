package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/rafabene/avantpro-admin/docs"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/handlers/dto"
	httphandlers "github.com/rafabene/avantpro-admin/internal/handlers/http"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/cache"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/config"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/i18n"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/realtime"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/security"
	"github.com/rafabene/avantpro-admin/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.New(os.Stdout, logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger.Info("starting avantpro admin",
		"env", cfg.Env,
		"version", cfg.Admin.AssetVersion,
	)

	ctx := context.Background()

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			log.Fatal(err)
		}
		err = postgres.Seed(ctx, db, hasher, postgres.SeedOptions{
			RootName:     cfg.Admin.RootName,
			RootEmail:    cfg.Admin.RootEmail,
			RootPassword: cfg.Admin.PlaceholderPassword,
			Avatar:       cfg.Admin.DefaultAvatar,
		})
		if err != nil {
			logger.Error("failed to seed database", "error", err)
			log.Fatal(err)
		}
	}

	// Inicializar i18n
	var i18nService *i18n.Service
	if cfg.I18n.LocalesDir != "" {
		i18nService, err = i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	} else {
		i18nService, err = i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	}
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)
	for _, lang := range i18nService.GetSupportedLanguages() {
		if missing := i18nService.Missing(lang); len(missing) > 0 {
			logger.Warn("incomplete translations", "language", lang, "missing", missing)
		}
	}

	// Cache de habilidades
	var abilityCache ports.AbilityCache = cache.NoopAbilityCache{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAbilityCache(ctx, cfg.Redis.URL, cfg.Redis.AbilityCacheTTL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			log.Fatal(err)
		}
		defer redisCache.Close()
		abilityCache = redisCache
	} else {
		logger.Warn("REDIS_URL not set, ability cache disabled")
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	loginRepo := postgres.NewLoginHistoryRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	tokens := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
	assignments := services.NewAssignmentService(roleRepo, permissionRepo, assignmentRepo, abilityCache, logger)
	authz := services.NewAuthorizationService(assignmentRepo, permissionRepo, abilityCache, logger)
	hub := realtime.NewHub(authz.Abilities, logger, realtime.OriginChecker(cfg.CORS.AllowedOrigins))
	roleService := services.NewRoleService(roleRepo, permissionRepo, assignments, uow, hub, logger)
	userService := services.NewUserService(
		userRepo, roleRepo, loginRepo, assignments, hasher, uow, hub, logger,
		services.UserDefaults{
			Avatar:              cfg.Admin.DefaultAvatar,
			PlaceholderPassword: cfg.Admin.PlaceholderPassword,
		},
	)
	authService := services.NewAuthService(userRepo, loginRepo, hasher, tokens, logger)

	// Inicializar handlers
	if err := dto.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	sessions := middleware.NewSessionManager(cfg.Session.Lifetime, cfg.Session.CookieSecure)
	pages := inertia.New(sessions, inertia.Options{Version: cfg.Admin.AssetVersion})
	gate := middleware.NewGate(authz, logger)
	limits := httphandlers.ListLimits{Default: cfg.Admin.ListDefaultLimit, Max: cfg.Admin.ListMaxLimit}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := (&httphandlers.Router{
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Swagger:        !cfg.IsProduction(),
		Logger:         logger,
		I18n:           i18nService,
		Sessions:       sessions,
		Pages:          pages,
		Auth:           authService,
		Gate:           gate,
		Users:          httphandlers.NewUserHandler(userService, pages, limits),
		Roles:          httphandlers.NewRoleHandler(roleService, pages, limits),
		Login:          httphandlers.NewAuthHandler(authService, authz, sessions, pages, cfg.Session.CookieSecure),
		Events:         httphandlers.NewEventsHandler(hub),
		Health:         httphandlers.NewHealthHandler(db, cfg.Env),
	}).Engine()

	// Toda habilidade usada nas rotas precisa existir como permissão
	if err := authz.VerifyRegistered(ctx, gate.Abilities()); err != nil {
		logger.Error("route abilities missing from permissions", "error", err)
		log.Fatal(err)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
