package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/ticket-management/internal"
	"github.com/frahmantamala/ticket-management/internal/auth"
	authPostgres "github.com/frahmantamala/ticket-management/internal/auth/postgres"
	"github.com/frahmantamala/ticket-management/internal/catalog"
	catalogPostgres "github.com/frahmantamala/ticket-management/internal/catalog/postgres"
	"github.com/frahmantamala/ticket-management/internal/core/events"
	"github.com/frahmantamala/ticket-management/internal/notifygateway"
	"github.com/frahmantamala/ticket-management/internal/permission"
	"github.com/frahmantamala/ticket-management/internal/team"
	teamPostgres "github.com/frahmantamala/ticket-management/internal/team/postgres"
	"github.com/frahmantamala/ticket-management/internal/ticket"
	ticketPostgres "github.com/frahmantamala/ticket-management/internal/ticket/postgres"
	"github.com/frahmantamala/ticket-management/internal/transport"
	"github.com/frahmantamala/ticket-management/internal/transport/rest"
	"github.com/frahmantamala/ticket-management/internal/transport/swagger"
	"github.com/frahmantamala/ticket-management/internal/user"
	userPostgres "github.com/frahmantamala/ticket-management/internal/user/postgres"
	"github.com/frahmantamala/ticket-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	DB             *sqlx.DB
	Router         *chi.Mux
	Logger         *slog.Logger
	NotifyClient   *notifygateway.Client
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	TicketHandler  *ticket.Handler
	TeamHandler    *team.Handler
	CatalogHandler *catalog.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.UserHandler, deps.TicketHandler, deps.TeamHandler, deps.CatalogHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.NotifyClient.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()
	if log == nil {
		log = slog.Default()
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx pool that health checks and goose use
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		log.Warn("openapi spec validation failed, swagger UI may be broken", "error", err)
	}

	// event bus and webhook notifications
	eventBus := events.NewEventBus(log)
	notifyClient := notifygateway.NewClient(notifygateway.Config{
		WebhookURL:    config.Notification.WebhookURL,
		APIKey:        config.Notification.APIKey,
		NotifyTimeout: config.Notification.NotifyTimeout,
		MaxAttempts:   config.Notification.MaxAttempts,
		MaxWorkers:    config.Notification.MaxWorkers,
		JobQueueSize:  config.Notification.QueueSize,
	}, log)
	notifygateway.NewEventHandler(notifyClient, log).RegisterEventHandlers(eventBus)

	// repositories
	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewRepository(gormDB)
	teamRepo := teamPostgres.NewTeamRepository(gormDB)
	ticketRepo := ticketPostgres.NewTicketRepository(gormDB)
	catalogRepo := catalogPostgres.NewCatalogRepository(gormDB)

	// services
	tokenGen := auth.NewJWTTokenGenerator(config.Security.AccessTokenSecret, config.Security.RefreshTokenSecret)
	authService := auth.NewService(authRepo, tokenGen)
	teamService := team.NewService(teamRepo, log)
	resolver := permission.NewResolver(teamService, ticketRepo, log)
	ticketService := ticket.NewService(ticketRepo, resolver, teamService, eventBus, log)
	catalogService := catalog.NewService(catalogRepo, log)
	userService := user.NewService(userRepo, teamService)

	baseHandler := transport.NewBaseHandler(log)

	return &Dependencies{
		Config:         config,
		Logger:         log,
		DB:             db,
		Router:         chi.NewRouter(),
		NotifyClient:   notifyClient,
		AuthHandler:    auth.NewHandler(authService),
		UserHandler:    user.NewHandler(userService),
		TicketHandler:  ticket.NewHandler(ticketService),
		TeamHandler:    team.NewHandler(teamService),
		CatalogHandler: catalog.NewHandler(baseHandler, catalogService),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
