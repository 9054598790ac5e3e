//go:build integration

package integration

// Test environment setup and server lifecycle management.
//
// The integration tests start the posts-server HTTP server in-process and run tests against it.
// With the postgres backend each test creates an empty temporary database and applies all the
// migrations so the schema reflects the latest code. The database is dropped after each test.
// The file based backends (sqlite, bolt) use a fresh file in t.TempDir().
//
//	TEST_STORE_BACKEND=sqlite go test -tags=integration -v ./test/integration
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=integration -v ./test/integration
//

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/information-sharing-networks/posts-demo/internal/client"
	"github.com/information-sharing-networks/posts-demo/internal/config"
	"github.com/information-sharing-networks/posts-demo/internal/logger"
	"github.com/information-sharing-networks/posts-demo/internal/server"
	"github.com/information-sharing-networks/posts-demo/internal/storage"
	"github.com/information-sharing-networks/posts-demo/internal/store/pgstore"
)

// testEnv provides access to the store and server for integration tests
type testEnv struct {
	baseURL string
	cfg     *config.ServerEnvironment

	// store is the same backend instance the server uses
	store storage.Backend

	// client returns every response regardless of status
	client *client.Client

	shutdown func()
}

// startInProcessServer starts the posts-server in-process for testing.
// shutdown is registered with t.Cleanup, so cleanups the test adds afterwards run while the store is still open.
func startInProcessServer(t *testing.T) *testEnv {
	t.Helper()

	testEnv := &testEnv{}

	backend := os.Getenv("TEST_STORE_BACKEND")
	if backend == "" {
		backend = config.BackendPostgres
	}

	t.Log("Starting in-process server...")
	t.Logf("store backend: %s", backend)

	var (
		ctx          = context.Background()
		host         = "localhost"
		port         = findFreePort(t)
		rateLimitRPS = 0
		environment  = "test"
		logLevel     = logger.ParseLogLevel("none")
	)

	if os.Getenv("ENABLE_SERVER_LOGS") == "true" {
		logLevel = logger.ParseLogLevel("debug")
	}

	testEnvVars := map[string]string{
		"HOST":            host,
		"PORT":            fmt.Sprintf("%d", port),
		"ENVIRONMENT":     environment,
		"LOG_LEVEL":       logLevel.String(),
		"RATE_LIMIT_RPS":  fmt.Sprintf("%d", rateLimitRPS),
		"STORE_BACKEND":   backend,
		"DB_AUTO_MIGRATE": "false",
	}

	switch backend {
	case config.BackendPostgres:
		pool := setupTestDatabase(t)
		testEnvVars["DATABASE_URL"] = pool.Config().ConnString()
		// the server opens its own pool
		pool.Close()
	case config.BackendSQLite:
		testEnvVars["SQLITE_PATH"] = filepath.Join(t.TempDir(), "posts.sqlite")
	case config.BackendBolt:
		testEnvVars["BOLT_PATH"] = filepath.Join(t.TempDir(), "posts.db")
	case config.BackendMemory:
	default:
		t.Fatalf("store backend: %s not supported (use postgres, sqlite, bolt or memory)", backend)
	}

	// t.Setenv restores the original values when the test completes
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.InitLogger(logLevel, environment)

	store, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	testEnv.store = store

	serverInstance := server.NewServer(store, cfg, appLogger)

	// Create a cancellable context for server shutdown
	serverCtx, serverCancel := context.WithCancel(ctx)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := serverInstance.Start(serverCtx); err != nil {
			serverDone <- err
		}
	}()

	var shutdownOnce sync.Once
	testEnv.shutdown = func() {
		shutdownOnce.Do(func() { stopServer(t, serverCancel, serverDone, serverInstance) })
	}
	t.Cleanup(testEnv.shutdown)

	testEnv.baseURL = fmt.Sprintf("http://localhost:%d", port)
	testEnv.cfg = cfg
	testEnv.client = client.New(testEnv.baseURL, client.WithTimeout(10*time.Second))

	if !waitForServer(t, testEnv.baseURL+"/health/live", 30*time.Second) {
		t.Fatal("Server failed to start within timeout")
	}

	t.Logf("✅ Server started at %s", testEnv.baseURL)
	return testEnv
}

// stopServer cancels the server context, waits for Start to return and closes the store
func stopServer(t *testing.T, serverCancel context.CancelFunc, serverDone <-chan error, serverInstance *server.Server) {
	t.Log("Stopping server...")

	serverCancel()

	select {
	case err := <-serverDone:
		if err != nil {
			t.Logf("❌ Server shutdown with error: %v", err)
		} else {
			t.Log("✅ Server shut down gracefully")
		}
	case <-time.After(5 * time.Second):
		t.Log("⚠️ Server shutdown timeout")
	}

	// release the store before the temporary database is dropped
	serverInstance.StoreShutdown()
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) bool {
	t.Helper()

	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

// Test database configuration

type databaseConfig struct {
	userAndPassword string
	dbname          string
	host            string
	port            int
}

func (d *databaseConfig) connectionURL() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s?sslmode=disable",
		d.userAndPassword, d.host, d.port, d.dbname)
}

func (d *databaseConfig) WithDatabase(dbname string) *databaseConfig {
	return &databaseConfig{
		userAndPassword: d.userAndPassword,
		host:            d.host,
		port:            d.port,
		dbname:          dbname,
	}
}

func localDatabaseConfig() *databaseConfig {
	return &databaseConfig{
		userAndPassword: "posts-dev",
		dbname:          "tmp_posts_integration_test",
		host:            "localhost",
		port:            15433,
	}
}

func ciDatabaseConfig() *databaseConfig {
	return &databaseConfig{
		userAndPassword: "postgres:postgres",
		dbname:          "tmp_posts_integration_test",
		host:            "localhost",
		port:            5432,
	}
}

// setupTestDatabase creates an empty test db, applies migrations and returns a connection pool.
// It uses the CI database settings when running in github actions.
func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	config := *localDatabaseConfig()
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		config = *ciDatabaseConfig()
	}

	postgresConnectionURL := config.WithDatabase("postgres").connectionURL()

	// this pool stays open until the test database has been dropped
	postgresPool, err := pgxpool.New(ctx, postgresConnectionURL)
	if err != nil {
		t.Fatalf("Unable to create postgres connection pool: %v", err)
	}

	if err := postgresPool.Ping(ctx); err != nil {
		postgresPool.Close()
		t.Fatalf("Can't ping PostgreSQL server %s", postgresConnectionURL)
	}

	if _, err = postgresPool.Exec(ctx, "DROP DATABASE IF EXISTS "+config.dbname); err != nil {
		t.Fatalf("DROP DATABASE IF EXISTS Failed : %v", err)
	}

	if _, err = postgresPool.Exec(ctx, "CREATE DATABASE "+config.dbname); err != nil {
		t.Fatalf("CREATE DATABASE Failed : %v", err)
	}

	t.Cleanup(func() {
		defer postgresPool.Close()
		if _, err := postgresPool.Exec(ctx, "DROP DATABASE "+config.dbname); err != nil {
			t.Errorf("Failed to drop test database: %v", err)
		}
	})

	testDatabasePool, err := pgxpool.New(ctx, config.connectionURL())
	if err != nil {
		t.Fatalf("Unable to create connection pool: %v", err)
	}

	if err := pgstore.Migrate(ctx, testDatabasePool); err != nil {
		testDatabasePool.Close()
		t.Fatalf("Failed to apply database migrations: %v", err)
	}

	t.Logf("Database ready: %s", config.dbname)

	return testDatabasePool
}
