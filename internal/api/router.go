package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docuforge/docgen-api/internal/api/handler"
	"github.com/docuforge/docgen-api/internal/api/middleware"
	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
	"github.com/docuforge/docgen-api/internal/core/service"
	"github.com/docuforge/docgen-api/internal/infrastructure/config"
	mongostore "github.com/docuforge/docgen-api/internal/infrastructure/db/mongo"
	redisstore "github.com/docuforge/docgen-api/internal/infrastructure/db/redis"
	"github.com/docuforge/docgen-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("docgen"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	templateRepo := mongostore.NewTemplateRepository(db)
	sessionStore := redisstore.NewSessionStore(rdb)
	claimsCodec := token.NewClaimsCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, sessionStore, claimsCodec, service.Bootstrap{
		Email:    cfg.Auth.BootstrapEmail,
		Password: cfg.Auth.BootstrapPassword,
	}, cfg.Auth.SessionTTL)
	templateService := service.NewTemplateService(templateRepo)

	authHandler := handler.NewAuthHandler(authService, audit)
	adminHandler := handler.NewAdminHandler(authService, audit, cfg.Auth.SessionCookie, log)
	templateHandler := handler.NewTemplateHandler(templateService)

	// --- Auth routes (stateless claims tokens) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me,
		middleware.Auth(claimsCodec),
		middleware.RBAC(domain.RoleAdmin, domain.RoleClient))

	// --- Admin surface (cookie-backed sessions) ---
	// The gate covers the whole group; the login path itself is exempt so
	// an unauthenticated browser can always reach the form.
	admin := e.Group(cfg.Auth.AdminPrefix, middleware.SessionGate(sessionStore, middleware.GateConfig{
		CookieName:   cfg.Auth.SessionCookie,
		LoginPath:    cfg.Auth.LoginPath,
		RequiredRole: domain.RoleAdmin,
	}, audit, log))

	admin.POST("/login", adminHandler.Login)
	admin.GET("/templates", templateHandler.List)
	admin.POST("/templates", templateHandler.Create)

	// Logout sits outside the gate: it must succeed even with a stale or
	// missing cookie, never redirect.
	e.POST(cfg.Auth.AdminPrefix+"/logout", adminHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
