package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/taskhub-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// Environment variables consulted for the test database, in priority order.
const (
	EnvTestDatabaseURL = "TASKHUB_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

const (
	migrationTableName = "schema_migrations"
	pingTimeout        = 5 * time.Second
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS", "CIRCLECI"}

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, key := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	for _, key := range ciVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// Open connects to the test database, applies all migrations and registers
// cleanup on t. It skips the test when no URL is set outside CI.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("%s or %s must be set in CI", EnvTestDatabaseURL, EnvDatabaseURL)
		}
		t.Skipf("integration test skipped: %s not set", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "ping test database")

	require.NoError(t, ApplyMigrations(db), "apply migrations")
	return db
}

// ApplyMigrations runs every embedded migration that has not been applied.
func ApplyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	goose.SetTableName(migrationTableName)
	goose.SetLogger(gooseTestLogger{logger: slog.Default()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("rollback: %v", err)
		}
	}()

	fn(t, tx)
}

type gooseTestLogger struct {
	logger *slog.Logger
}

func (l gooseTestLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), slog.String("source", "goose"))
}

func (l gooseTestLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), slog.String("source", "goose"))
}
