package reminder

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the allow-list, reminder and timezone tables. It is
// safe to run on every start.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&AllowedUser{},
		&reminderRecord{},
		&userTimezone{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate reminder tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_reminders_user_chat ON reminders(user_id, chat_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create reminder index: %w", err)
		}
	}

	return nil
}

// DropTables drops every reminder table (for test cleanup)
func DropTables(db *gorm.DB) error {
	tables := []string{
		"reminders",
		"user_timezones",
		"allowed_users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}
