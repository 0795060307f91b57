// Package pgtest starts a PostgreSQL database with the engine schema for integration tests.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database is a schema-initialized test database
type Database struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// Start connects to TEST_DB_* when TEST_DB_HOST is set, otherwise starts a postgres container
func Start(ctx context.Context) (*Database, error) {
	var (
		dsn       string
		container *postgres.PostgresContainer
		err       error
	)

	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost,
			envOr("TEST_DB_PORT", "5432"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "test_db"))
	} else {
		container, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = container.Terminate(ctx)
			return nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		terminate(ctx, container)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		terminate(ctx, container)
		return nil, err
	}

	return &Database{DB: db, container: container}, nil
}

// Close terminates the container, if one was started
func (d *Database) Close(ctx context.Context) {
	if d == nil {
		return
	}
	terminate(ctx, d.container)
}

// Tx opens a transaction that is rolled back when the test ends
func (d *Database) Tx(t *testing.T) *gorm.DB {
	tx := d.DB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

func initializeSchema(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath, err := findSchema()
	if err != nil {
		return err
	}
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// findSchema walks up from the test's package directory to db/init_pg_db.sql
func findSchema() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for range 6 {
		candidate := filepath.Join(dir, "db", "init_pg_db.sql")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		dir = filepath.Dir(dir)
	}
	return "", errors.New("db/init_pg_db.sql not found")
}

func terminate(ctx context.Context, container *postgres.PostgresContainer) {
	if container == nil {
		return
	}
	if err := container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
