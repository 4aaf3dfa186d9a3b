package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"line-dispatch/internal/common/pagination"
	"line-dispatch/internal/config"
	pgRepo "line-dispatch/internal/infra/adapter/persistence/postgres"
	sqliteRepo "line-dispatch/internal/infra/adapter/persistence/sqlite"
	"line-dispatch/internal/infra/db"
	"line-dispatch/internal/infra/line"
	"line-dispatch/internal/infra/storage"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/observability/tracing"
	"line-dispatch/internal/repository"
	"line-dispatch/internal/resilience/circuitbreaker"
	"line-dispatch/internal/usecase/dispatch"
	"line-dispatch/internal/usecase/hook"
	"line-dispatch/internal/usecase/report"

	hhttp "line-dispatch/internal/handler/http"
	hauth "line-dispatch/internal/handler/http/auth"
	hline "line-dispatch/internal/handler/http/line"
	"line-dispatch/internal/handler/http/requestid"

	_ "line-dispatch/docs" // swagger docs
)

// @title           LINE Dispatch API
// @version         1.0
// @description     Outbound LINE messaging service: push, multicast and broadcast with a persisted delivery history.
// @description     Payroll reports approved in the admin backend are sent automatically through the change hook.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT signed with HS256. Send as "Bearer {token}"; the sub claim is recorded as the message sender.

func main() {
	logger := initLogger()

	serverCfg := loadServerConfig(logger)
	lineCfg := loadLineConfig(logger)
	collections := loadCollections(logger, lineCfg.CollectionsFile)

	shutdownTracing := initTracing(logger, serverCfg.TraceExporter)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shutdown tracer provider", slog.Any("error", err))
		}
	}()

	database, dialect := initDatabase(logger, serverCfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, serverCfg, lineCfg, collections, database, dialect)
	runServer(logger, serverCfg, components)
}

// initLogger builds the process logger from LOG_LEVEL / LOG_FORMAT and installs it as default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func loadServerConfig(logger *slog.Logger) *config.ServerConfig {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.AuthDisabled {
		logger.Warn("authentication is DISABLED - not recommended for production")
	}
	return cfg
}

func loadLineConfig(logger *slog.Logger) *config.LineConfig {
	cfg, err := config.LoadLineConfig()
	if err != nil {
		logger.Error("invalid LINE configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DryRun {
		logger.Warn("LINE dry-run mode enabled: messages are logged, not sent")
	}
	return cfg
}

func loadCollections(logger *slog.Logger, path string) *config.CollectionsConfig {
	cfg, err := config.LoadCollectionsConfig(path)
	if err != nil {
		logger.Error("failed to load collections configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("collections loaded", slog.Int("count", len(cfg.Collections)))
	return cfg
}

func initTracing(logger *slog.Logger, exporter string) func(context.Context) error {
	shutdown, err := tracing.Setup(context.Background(), exporter)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	return shutdown
}

// initDatabase opens the history database and applies the schema.
func initDatabase(logger *slog.Logger, cfg *config.ServerConfig) (*sql.DB, db.Dialect) {
	dialect, err := db.ParseDialect(cfg.DBDriver)
	if err != nil {
		logger.Error("invalid DB_DRIVER", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, dialect, cfg.DatabaseURL, db.ConnectionConfigFromEnv())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, dialect
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
	Service     *dispatch.Service
}

// setupServer wires the dispatch service, routes and middleware.
func setupServer(
	logger *slog.Logger,
	serverCfg *config.ServerConfig,
	lineCfg *config.LineConfig,
	collections *config.CollectionsConfig,
	database *sql.DB,
	dialect db.Dialect,
) *ServerComponents {
	guarded := circuitbreaker.NewGuardedDB(database)
	history := newHistoryRepo(dialect, guarded)
	stager := newStager(logger, lineCfg)

	svc := dispatch.NewService(
		dispatch.Config{
			AccessToken:                 lineCfg.AccessTokenSource(),
			ChannelSecret:               lineCfg.ChannelSecretSource(),
			DefaultNotificationDisabled: lineCfg.NotificationDisabled,
			DefaultLocale:               report.ParseLocale(lineCfg.DefaultLocale),
			AllowedMIMETypes:            lineCfg.AllowedMIMETypes,
		},
		dispatch.NewPlatformFactory(
			line.Config{BaseURL: lineCfg.BaseURL, Timeout: lineCfg.Timeout},
			lineCfg.DryRun,
			lineCfg.CircuitBreakerEnabled,
			logger,
		),
		history,
		stager,
		dispatch.WithLogger(logger),
	)

	// Credentials may be mounted after start; a failed eager init is retried on first send.
	if err := svc.Init(context.Background()); err != nil {
		logger.Warn("LINE client not initialized at startup", slog.Any("error", err))
	}

	rateLimiter := hhttp.NewRateLimiter(serverCfg.RateLimitRPS, serverCfg.RateLimitBurst)

	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:          database,
		Version:     serverCfg.Version,
		Platform:    svc,
		Breakers:    []dispatch.Breaker{guarded},
		RateLimiter: rateLimiter,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hline.Register(mux, hline.Deps{
		Dispatcher:    svc,
		History:       history,
		Hook:          hook.NewPayrollHook(svc, collections, logger),
		PaginationCfg: pagination.LoadFromEnv(),
	})

	handler := applyMiddleware(logger, serverCfg, mux, rateLimiter)

	return &ServerComponents{
		Handler:     handler,
		RateLimiter: rateLimiter,
		Service:     svc,
	}
}

func newHistoryRepo(dialect db.Dialect, q db.Querier) repository.MessageHistoryRepository {
	if dialect == db.DialectSQLite {
		return sqliteRepo.NewMessageHistoryRepo(q)
	}
	return pgRepo.NewMessageHistoryRepo(q)
}

func newStager(logger *slog.Logger, cfg *config.LineConfig) storage.Stager {
	if cfg.FileStorage != config.FileStorageGDrive {
		return storage.NewInlineStager(cfg.MaxFileBytes())
	}

	// #nosec G304 -- path comes from GDRIVE_CREDENTIALS_FILE
	creds, err := os.ReadFile(cfg.GDriveCredentialsFile)
	if err != nil {
		logger.Error("failed to read drive credentials", slog.Any("error", err))
		os.Exit(1)
	}
	stager, err := storage.NewDriveStager(context.Background(), creds, cfg.GDriveFolderID, cfg.MaxFileBytes())
	if err != nil {
		logger.Error("failed to initialize drive storage", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("file staging: google drive", slog.String("folder_id", cfg.GDriveFolderID))
	return stager
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: Request ID → Recovery → Logging → Rate Limit → Body Limit → Auth → Tracing → Metrics
func applyMiddleware(logger *slog.Logger, cfg *config.ServerConfig, handler http.Handler, rateLimiter *hhttp.RateLimiter) http.Handler {
	// Tracing and metrics read the route pattern the mux sets on the request,
	// so nothing between them and the mux may replace the request.
	chain := hhttp.MetricsMiddleware(handler)
	chain = tracing.Middleware(chain)

	if !cfg.AuthDisabled {
		chain = hauth.Authz([]byte(cfg.JWTSecret))(chain)
	}

	chain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(chain)
	chain = rateLimiter.Limit(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.ServerConfig, components *ServerComponents) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hhttp.StartRateLimitCleanup(ctx, components.RateLimiter, time.Minute, 10*time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version),
			slog.Bool("line_ready", components.Service.Ready()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Cancel background goroutines after in-flight requests drained
	cancel()
	logger.Info("server stopped")
}
