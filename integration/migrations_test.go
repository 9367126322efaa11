//go:build integration

package integration

import (
	"testing"

	"remindbot/internal/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigration_RerunIsSafe(t *testing.T) {
	tc := SetupTestDatabase(t)

	require.NoError(t, reminder.RunMigrations(tc.DB))
	require.NoError(t, reminder.RunMigrations(tc.DB))

	for _, table := range []string{"allowed_users", "reminders", "user_timezones"} {
		assert.True(t, tc.DB.Migrator().HasTable(table), table)
	}
}

func TestMigration_RemindersCascadeFromAllowedUsers(t *testing.T) {
	tc := SetupTestDatabase(t)

	var rule string
	err := tc.DB.Raw(`
		SELECT rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.table_constraints tc ON tc.constraint_name = rc.constraint_name
		WHERE tc.table_name = 'reminders'
	`).Scan(&rule).Error
	require.NoError(t, err)
	assert.Equal(t, "CASCADE", rule)
}

func TestMigration_DropAndRecreate(t *testing.T) {
	tc := SetupTestDatabase(t)

	require.NoError(t, reminder.DropTables(tc.DB))
	assert.False(t, tc.DB.Migrator().HasTable("reminders"))

	require.NoError(t, reminder.RunMigrations(tc.DB))
	assert.True(t, tc.DB.Migrator().HasTable("reminders"))
}

func TestMigration_FailsOnClosedConnection(t *testing.T) {
	tc := SetupTestDatabase(t)

	sqlDB, err := tc.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = reminder.RunMigrations(tc.DB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to auto-migrate")
}
