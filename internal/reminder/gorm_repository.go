package reminder

import (
	"context"
	"errors"
	"fmt"

	"remindbot/internal/timerule"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE foreign_key_violation
const pgForeignKeyViolation = "23503"

// gormRepository implements Repository on Postgres through GORM. Every call
// borrows a connection from the bounded pool for the duration of one
// statement or transaction only.
type gormRepository struct {
	db      *gorm.DB
	logger  *zap.Logger
	aliases []map[string]timerule.Weekday
}

// NewGormRepository creates a new GORM-based repository. Day aliases are used
// to read rows whose day column holds a localized name.
func NewGormRepository(db *gorm.DB, logger *zap.Logger, dayAliases ...map[string]timerule.Weekday) Repository {
	return &gormRepository{
		db:      db,
		logger:  logger,
		aliases: dayAliases,
	}
}

// Create inserts a reminder and returns its generated id
func (r *gormRepository) Create(ctx context.Context, n NewReminder) (int64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}

	rec := newRecord(n)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create reminder for owner %d: %w", n.OwnerID, ErrForeignKeyViolation)
		}
		return 0, WrapRepositoryError(err, "create reminder")
	}

	r.logger.Debug("Reminder stored",
		zap.Int64("reminder_id", rec.ID),
		zap.Int64("owner_id", n.OwnerID),
		zap.Int64("chat_id", n.ChatID))
	return rec.ID, nil
}

// ListByOwnerAndChat returns the owner's reminders in one chat, oldest first
func (r *gormRepository) ListByOwnerAndChat(ctx context.Context, ownerID, chatID int64) ([]Reminder, error) {
	var recs []reminderRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND chat_id = ?", ownerID, chatID).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, WrapRepositoryError(err, "list reminders")
	}

	reminders := make([]Reminder, 0, len(recs))
	for _, rec := range recs {
		rem, err := toDomain(rec, r.aliases...)
		if err != nil {
			r.logger.Warn("Skipping unreadable reminder row",
				zap.Int64("reminder_id", rec.ID),
				zap.Error(err))
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

// Delete removes a reminder only when it belongs to owner and chat
func (r *gormRepository) Delete(ctx context.Context, id, ownerID, chatID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND chat_id = ?", id, ownerID, chatID).
		Delete(&reminderRecord{})
	if result.Error != nil {
		return false, WrapRepositoryError(result.Error, "delete reminder")
	}
	return result.RowsAffected > 0, nil
}

// resolvedRow is the projection of the reminders/user_timezones join
type resolvedRow struct {
	ID        int64
	UserID    int64
	ChatID    int64
	ThreadID  *int
	DayOfWeek string
	Time      clockTime
	Text      string
	Timezone  string
}

// ListAllWithResolvedTimezone reads every reminder with its owner's timezone
// in one statement. Rows that cannot be normalized are logged and skipped.
func (r *gormRepository) ListAllWithResolvedTimezone(ctx context.Context) ([]ResolvedReminder, error) {
	var rows []resolvedRow
	err := r.db.WithContext(ctx).
		Table("reminders AS r").
		Select("r.id, r.user_id, r.chat_id, r.thread_id, r.day_of_week, r.time, r.text, COALESCE(ut.timezone, ?) AS timezone", timerule.DefaultLocation).
		Joins("LEFT JOIN user_timezones ut ON ut.user_id = r.user_id").
		Order("r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, WrapRepositoryError(err, "list all reminders")
	}

	resolved := make([]ResolvedReminder, 0, len(rows))
	for _, row := range rows {
		rem, err := toDomain(reminderRecord{
			ID:        row.ID,
			UserID:    row.UserID,
			ChatID:    row.ChatID,
			ThreadID:  row.ThreadID,
			DayOfWeek: row.DayOfWeek,
			Time:      row.Time,
			Text:      row.Text,
		}, r.aliases...)
		if err != nil {
			r.logger.Warn("Skipping unreadable reminder row",
				zap.Int64("reminder_id", row.ID),
				zap.Error(err))
			continue
		}
		resolved = append(resolved, ResolvedReminder{Reminder: rem, Timezone: row.Timezone})
	}
	return resolved, nil
}

// UpsertTimezone stores the user's preference, last write wins
func (r *gormRepository) UpsertTimezone(ctx context.Context, userID int64, timezone string) error {
	row := userTimezone{UserID: userID, Timezone: timezone}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"timezone", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return WrapRepositoryError(err, "upsert timezone")
	}
	return nil
}

// GetTimezone returns the stored preference and whether one exists
func (r *gormRepository) GetTimezone(ctx context.Context, userID int64) (string, bool, error) {
	var row userTimezone
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, WrapRepositoryError(err, "get timezone")
	}
	return row.Timezone, true, nil
}

// AddAllowedUser reports whether the user was newly added
func (r *gormRepository) AddAllowedUser(ctx context.Context, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&AllowedUser{UserID: userID})
	if result.Error != nil {
		return false, WrapRepositoryError(result.Error, "add allowed user")
	}
	return result.RowsAffected > 0, nil
}

// RemoveAllowedUser locks the user row so no reminder can be added for them
// concurrently, collects their reminder ids and deletes the user; the
// foreign key cascade removes the reminders.
func (r *gormRepository) RemoveAllowedUser(ctx context.Context, userID int64) ([]int64, bool, error) {
	var (
		ids     []int64
		removed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user AllowedUser
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&reminderRecord{}).
			Where("user_id = ?", userID).
			Order("id ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ?", userID).Delete(&AllowedUser{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, false, WrapRepositoryError(err, "remove allowed user")
	}
	if !removed {
		ids = nil
	}
	return ids, removed, nil
}

// IsAllowedUser checks the allow-list table
func (r *gormRepository) IsAllowedUser(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AllowedUser{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, WrapRepositoryError(err, "check allowed user")
	}
	return count > 0, nil
}

// ListIDsByOwner returns the ids of every reminder the owner has in any chat
func (r *gormRepository) ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&reminderRecord{}).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, WrapRepositoryError(err, "list reminder ids")
	}
	return ids, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
