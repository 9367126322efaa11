package reminder

import (
	"context"
)

// Store is the durable source of truth for reminders and timezone preferences
type Store interface {
	Create(ctx context.Context, n NewReminder) (int64, error)
	ListByOwnerAndChat(ctx context.Context, ownerID, chatID int64) ([]Reminder, error)
	Delete(ctx context.Context, id, ownerID, chatID int64) (bool, error)
	ListAllWithResolvedTimezone(ctx context.Context) ([]ResolvedReminder, error)
	UpsertTimezone(ctx context.Context, userID int64, timezone string) error
	GetTimezone(ctx context.Context, userID int64) (string, bool, error)
}

// AllowList is the access-control table that reminders cascade from
type AllowList interface {
	AddAllowedUser(ctx context.Context, userID int64) (bool, error)
	// RemoveAllowedUser deletes the user and, through the cascade, every
	// reminder they own. It returns the ids of those reminders.
	RemoveAllowedUser(ctx context.Context, userID int64) ([]int64, bool, error)
	IsAllowedUser(ctx context.Context, userID int64) (bool, error)
	ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}

// Repository combines both tables for a single backing database
type Repository interface {
	Store
	AllowList
}
