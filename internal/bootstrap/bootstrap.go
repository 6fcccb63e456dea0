package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/familyhub/portal/internal/app/controllers"
	appMigrations "github.com/familyhub/portal/internal/app/migrations"
	appRepos "github.com/familyhub/portal/internal/app/repositories"
	appRoutes "github.com/familyhub/portal/internal/app/routes"
	appServices "github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/app/views"
	"github.com/familyhub/portal/internal/config"
	"github.com/familyhub/portal/internal/db"
	appMiddleware "github.com/familyhub/portal/internal/middleware"
	pkgAuth "github.com/familyhub/portal/internal/pkg/auth"
	"github.com/familyhub/portal/internal/pkg/filestorage"
	"github.com/familyhub/portal/internal/pkg/logger"
	"github.com/familyhub/portal/internal/pkg/metrics"
	"github.com/familyhub/portal/internal/pkg/notify"
	"github.com/familyhub/portal/internal/pkg/realtime"
	"github.com/familyhub/portal/internal/pkg/websocket"
	"github.com/familyhub/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	Listener       *realtime.Listener
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})

	lgr := log.Logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
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
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, logger.Component("migrations"))
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.Admin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		FullName: cfg.Seed.AdminName,
	}
	if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(dbPool), admin, lgr); err != nil {
		// The portal still works without the seed account
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Public URLs must match the static route mounted by the server
	var err error
	storageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + cfg.Storage.PublicPath
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Root, storageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		SessionTTL:  cfg.SessionTTL(),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, appServices.Options{
		Location:       cfg.Location(),
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}, lgr)

	cookie := appMiddleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth, deps.Services.Profile, cookie, logger.Component("auth"))

	// Realtime: database notifications -> hub -> chat sockets
	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket"))
	deps.Listener = realtime.NewListener(dbPool, logger.Component("realtime"))
	websocket.NewChangeForwarder(deps.Hub, logger.Component("realtime")).Forward(deps.Listener, appRoutes.ChatChannel)

	deps.Controllers = appRoutes.Controllers{
		Home:         appControllers.NewHomeController(deps.Services.Home),
		Auth:         appControllers.NewAuthController(deps.Services.Auth, cookie, lgr),
		Dashboard:    appControllers.NewDashboardController(deps.Services.Dashboard),
		Contribution: appControllers.NewContributionController(deps.Services.Contribution, lgr),
		Event:        appControllers.NewEventController(deps.Services.Event, lgr),
		Gallery:      appControllers.NewGalleryController(deps.Services.Gallery, lgr),
		Blog:         appControllers.NewBlogController(deps.Services.Blog, lgr),
		Chat:         appControllers.NewChatController(deps.Services.Chat, lgr),
		Report:       appControllers.NewReportController(deps.Services.Report, lgr),
		Member:       appControllers.NewMemberController(deps.Services.Profile, lgr),
		Health:       appControllers.NewHealthController(dbPool, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register form validators: %w", err)
	}

	tmpl, err := views.Load(cfg.Location())
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		metrics.Middleware(),
		notify.Middleware(cfg.Session.Secret, cfg.Session.Secure),
		deps.AuthMiddleware.Session(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.WSHandler, deps.AuthMiddleware, cfg.Server.AllowedOrigins)

	return router, nil
}
