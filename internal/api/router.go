package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/addisco/consulting-api/docs"
	"github.com/addisco/consulting-api/internal/api/handler"
	"github.com/addisco/consulting-api/internal/api/middleware"
	"github.com/addisco/consulting-api/internal/core/ports"
	"github.com/addisco/consulting-api/internal/core/service"
	"github.com/addisco/consulting-api/internal/infrastructure/config"
	mongorepo "github.com/addisco/consulting-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, dispatcher ports.NotificationDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Origins(),
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("consulting"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	consultationRepo := mongorepo.NewConsultationRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepo, tokens, log)
	consultationService := service.NewConsultationService(consultationRepo, dispatcher, log)
	userService := service.NewUserService(userRepo, log)
	statsService := service.NewStatsService(consultationRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	consultationHandler := handler.NewConsultationHandler(consultationService)
	userHandler := handler.NewUserHandler(userService)
	statsHandler := handler.NewStatsHandler(statsService)

	authRequired := middleware.Auth(tokens)
	staffOnly := middleware.StaffOnly()
	adminOnly := middleware.AdminOnly()

	// --- API routes ---
	api := e.Group("/api", middleware.RateLimit(rdb, middleware.TierGeneral))

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, middleware.RateLimit(rdb, middleware.TierAuth))
	auth.POST("/login", authHandler.Login, middleware.RateLimit(rdb, middleware.TierAuth))
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/profile", authHandler.UpdateProfile, authRequired)
	auth.PUT("/change-password", authHandler.ChangePassword, authRequired)
	auth.POST("/logout", authHandler.Logout, authRequired)

	consultations := api.Group("/consultations")
	consultations.POST("", consultationHandler.Submit,
		middleware.RateLimit(rdb, middleware.TierSubmission), middleware.OptionalAuth(tokens))
	consultations.GET("", consultationHandler.List, authRequired, staffOnly)
	consultations.GET("/my/requests", consultationHandler.ListMine, authRequired)
	consultations.GET("/:id", consultationHandler.Get, authRequired)
	consultations.PATCH("/:id/status", consultationHandler.UpdateStatus, authRequired, staffOnly)
	consultations.POST("/:id/notes", consultationHandler.AddNote, authRequired, staffOnly)
	consultations.DELETE("/:id", consultationHandler.Delete, authRequired, adminOnly)

	users := api.Group("/users", authRequired)
	users.GET("", userHandler.List, staffOnly)
	users.GET("/partners", userHandler.Partners, staffOnly)
	users.GET("/:id", userHandler.Get, staffOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	stats := api.Group("/stats", authRequired)
	stats.GET("/dashboard", statsHandler.Dashboard, staffOnly)
	stats.GET("/users", statsHandler.Users, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(cfg.Env)
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
