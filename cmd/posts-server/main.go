package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/posts-demo/internal/config"
	"github.com/information-sharing-networks/posts-demo/internal/logger"
	"github.com/information-sharing-networks/posts-demo/internal/server"
	"github.com/information-sharing-networks/posts-demo/internal/storage"
	"github.com/information-sharing-networks/posts-demo/internal/store/pgstore"
	"github.com/information-sharing-networks/posts-demo/internal/version"
)

//	@title			posts-server
//	@description	posts-server stores blog posts and serves them over a JSON API.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Individual endpoints document their specific business logic errors.
//	@description
//	@description	## Request Limits
//	@description	The /posts endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@description	## Authentication & Authorization
//	@description	The API does not require credentials. Run it behind a gateway if access needs to be restricted.
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Posts
//	@tag.description	Create, read, update and delete blog posts

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "posts-server",
		Short: "Blog posts API server",
		Long:  `posts-server serves the posts API using the storage backend selected by STORE_BACKEND (postgres, sqlite, bolt or memory)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Long:  `Apply the embedded goose migrations to DATABASE_URL. Only used with STORE_BACKEND=postgres.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context())
		},
	})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("STORE_BACKEND", cfg.StoreBackend),
		slog.Bool("DB_AUTO_MIGRATE", cfg.DBAutoMigrate),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
		slog.Int64("MAX_REQUEST_SIZE", cfg.MaxRequestSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	server := server.NewServer(store, cfg, appLogger)
	defer server.StoreShutdown()

	if err := server.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}

func migrate(ctx context.Context) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	if cfg.StoreBackend != config.BackendPostgres {
		return fmt.Errorf("migrate requires STORE_BACKEND=%s (got %s)", config.BackendPostgres, cfg.StoreBackend)
	}

	pool, err := storage.NewPool(ctx, cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		return err
	}
	defer pool.Close()

	if err := pgstore.Migrate(ctx, pool); err != nil {
		appLogger.Error("Migration failed", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("database migrations applied")
	return nil
}
