package testutil

import (
	"context"
	"testing"
	"time"

	"collegium/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDatabase is a throwaway Postgres instance with migrations applied
type TestDatabase struct {
	DB        *database.DB
	URL       string
	container *postgres.PostgresContainer
}

// SetupTestDatabase starts a Postgres container, runs all migrations, and
// registers cleanup on the test. Skips the test when Docker is unavailable.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("collegium_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrationsWithURL(connStr), "failed to run migrations")

	db, err := database.NewConnection(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		_ = container.Terminate(ctx)
	})

	return &TestDatabase{DB: db, URL: connStr, container: container}
}
