package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusconnect/backend/docs" // Generated swagger docs
	appControllers "github.com/campusconnect/backend/internal/app/controllers"
	appMigrations "github.com/campusconnect/backend/internal/app/migrations"
	appRepos "github.com/campusconnect/backend/internal/app/repositories"
	appRoutes "github.com/campusconnect/backend/internal/app/routes"
	appServices "github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/config"
	"github.com/campusconnect/backend/internal/db"
	appMiddleware "github.com/campusconnect/backend/internal/middleware"
	pkgAuth "github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/helpers"
	"github.com/campusconnect/backend/internal/pkg/logger"
	"github.com/campusconnect/backend/internal/pkg/websocket"
	"github.com/campusconnect/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services              *appServices.Services
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Hub                   *websocket.Hub
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	BookController        *appControllers.BookController
	EventController       *appControllers.EventController
	ChatController        *appControllers.ChatController
	TransactionController *appControllers.TransactionController
	AdminController       *appControllers.AdminController
	WSHandler             *websocket.Handler
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool, lgr); err != nil {
		// Seed data is a convenience, not a startup requirement.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, the websocket hub and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:         cfg.JWT.Secret,
		AccessTokenExp:    helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp:   helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		SessionRefreshExp: helpers.ParseDuration(cfg.JWT.SessionRefreshExpiration, 24*time.Hour),
		TokenIssuer:       cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "websocket").Logger())
	go deps.Hub.Run()

	deps.Services = appServices.NewServices(
		deps.Repos,
		deps.JWTService,
		deps.Hub,
		cfg.University.AllowedEmailDomain,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.UserController = appControllers.NewUserController(deps.Services.User, deps.Services.Notification)
	deps.BookController = appControllers.NewBookController(deps.Services.Book)
	deps.EventController = appControllers.NewEventController(deps.Services.Event)
	deps.ChatController = appControllers.NewChatController(deps.Services.Chat)
	deps.TransactionController = appControllers.NewTransactionController(deps.Services.Transaction)
	deps.AdminController = appControllers.NewAdminController(deps.Services.Admin, deps.Services.Notification)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr.With().Str("component", "websocket").Logger())

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.BookController,
		deps.EventController,
		deps.ChatController,
		deps.TransactionController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
		authRateLimiter(cfg),
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// authRateLimiter builds the per-IP limiter applied to the auth endpoints.
// A non-positive limit disables it.
func authRateLimiter(cfg *config.Config) gin.HandlerFunc {
	if cfg.RateLimit.AuthPerMinute <= 0 {
		return nil
	}

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(cfg.RateLimit.AuthPerMinute),
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
