package user

import (
	"errors"
)

// Role is what a Telegram user may do with the bot
type Role int

const (
	// RoleStranger may only use /start and /help
	RoleStranger Role = iota
	// RoleAllowed may manage their own reminders
	RoleAllowed
	// RoleAdmin is configured statically and may manage the allow-list
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAllowed:
		return "allowed"
	default:
		return "stranger"
	}
}

var (
	// ErrNotAdmin is returned when a non-admin tries to change the allow-list
	ErrNotAdmin = errors.New("admin rights required")
	// ErrProtectedUser is returned when removing a configured admin
	ErrProtectedUser = errors.New("configured admins cannot be removed")
	// ErrInvalidUserID is returned for non-positive Telegram user ids
	ErrInvalidUserID = errors.New("invalid user id")
)

// Removal is the outcome of taking a user off the allow-list
type Removal struct {
	UserID  int64   `json:"user_id"`
	Removed bool    `json:"removed"`
	Cascade []int64 `json:"cascade"`
}
