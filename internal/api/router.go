package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/banki/finanzas-api/internal/api/handler"
	"github.com/banki/finanzas-api/internal/api/middleware"
	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/service"
	"github.com/banki/finanzas-api/internal/infrastructure/config"
	"github.com/banki/finanzas-api/internal/infrastructure/db/postgres"
	redisstore "github.com/banki/finanzas-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/banki/finanzas-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Development())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("banki"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	captchaStore := redisstore.NewCaptchaStore(rdb)

	authService := service.NewAuthService(userRepo, captchaStore, cfg.JWTSecret, cfg.Captcha.Required, log)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdministrator)

	// --- Root and observability ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Banki Finanzas API"})
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/captcha", authHandler.Captcha)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Product registry (any authenticated user; role scoping inside) ---
	products := e.Group("/api/products", authRequired)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.PATCH("/:id/status", productHandler.UpdateStatus)
	products.DELETE("/:id", productHandler.Delete)

	// --- User management (administrators only) ---
	users := e.Group("/api/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
