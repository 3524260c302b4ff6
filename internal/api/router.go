package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hahn-ecommerce/catalog-api/docs"
	"github.com/hahn-ecommerce/catalog-api/internal/api/handler"
	"github.com/hahn-ecommerce/catalog-api/internal/api/middleware"
	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/service"
	"github.com/hahn-ecommerce/catalog-api/internal/core/token"
	"github.com/hahn-ecommerce/catalog-api/internal/infrastructure/config"
	mongodb "github.com/hahn-ecommerce/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hahn-ecommerce/catalog-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := token.NewProvider(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	productService := service.NewProductService(productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	authMW := middleware.Auth(tokens)
	editorMW := middleware.RBAC(domain.RoleAdmin, domain.RoleModerator)
	limiter := redisdb.NewLimiter(rdb)
	signinLimit := middleware.RateLimit(middleware.RateLimitPolicy{
		Route:  "signin",
		Window: cfg.RateLimit.Window,
		Limit:  cfg.RateLimit.Limit,
	}, limiter, log)
	signupLimit := middleware.RateLimit(middleware.RateLimitPolicy{
		Route:  "signup",
		Window: cfg.RateLimit.Window,
		Limit:  cfg.RateLimit.Limit,
	}, limiter, log)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signin", authHandler.Signin, signinLimit)
	auth.POST("/signup", authHandler.Signup, signupLimit)
	auth.POST("/refreshtoken", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, authMW)

	// --- Product routes ---
	products := e.Group("/api/products", authMW)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, editorMW)
	products.PUT("/:id", productHandler.Update, editorMW)
	products.DELETE("/:id", productHandler.Delete, editorMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
