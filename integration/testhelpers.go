//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"remindbot/internal/config"
	"remindbot/internal/database"
	"remindbot/internal/reminder"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// TestContainer manages the lifecycle of a test database container
type TestContainer struct {
	Container testcontainers.Container
	DB        *gorm.DB
	Config    config.DatabaseConfig
	ctx       context.Context
}

// SetupTestDatabase starts a PostgreSQL container and migrates the reminder
// tables into it. The container is terminated when the test ends.
func SetupTestDatabase(t *testing.T) *TestContainer {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_remindbot"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)

	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "test_user",
		Password:        "test_password",
		DBName:          "test_remindbot",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: 300,
		ConnectRetries:  3,
	}

	db, err := database.NewPostgresConnection(ctx, dbConfig, zaptest.NewLogger(t))
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, reminder.RunMigrations(db))

	tc := &TestContainer{
		Container: postgresContainer,
		DB:        db,
		Config:    dbConfig,
		ctx:       ctx,
	}
	t.Cleanup(func() { tc.TeardownTestDatabase(t) })
	return tc
}

// TeardownTestDatabase closes the pool and removes the container
func (tc *TestContainer) TeardownTestDatabase(t *testing.T) {
	if tc.DB != nil {
		database.Close(tc.DB)
	}

	if tc.Container != nil {
		err := tc.Container.Terminate(tc.ctx)
		require.NoError(t, err, "Failed to terminate test container")
	}
}

// ResetDatabase clears all reminder tables
func (tc *TestContainer) ResetDatabase(t *testing.T) {
	for _, table := range []string{"reminders", "user_timezones", "allowed_users"} {
		err := tc.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error
		require.NoError(t, err)
	}
}

// AllowUsers inserts users into the allow-list
func (tc *TestContainer) AllowUsers(t *testing.T, repo reminder.AllowList, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		_, err := repo.AddAllowedUser(tc.ctx, id)
		require.NoError(t, err)
	}
}

// AssertEventuallyTrue polls condition until it holds or timeout passes
func AssertEventuallyTrue(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()
	require.Eventually(t, condition, timeout, 20*time.Millisecond, message)
}

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))
}
