package reminder

import (
	"database/sql/driver"
	"time"

	"remindbot/internal/scheduler"
	"remindbot/internal/timerule"

	validation "github.com/go-ozzo/ozzo-validation"
)

// AllowedUser is one row of the access allow-list and the cascade root of
// every reminder the user owns.
type AllowedUser struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the AllowedUser model
func (AllowedUser) TableName() string {
	return "allowed_users"
}

// reminderRecord is the persisted row. Day and time are kept in their stored
// forms and normalized by toDomain.
type reminderRecord struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	UserID    int64       `gorm:"not null;index"`
	ChatID    int64       `gorm:"not null"`
	ThreadID  *int        `gorm:""`
	DayOfWeek string      `gorm:"type:varchar(10);not null"`
	Time      clockTime   `gorm:"type:time;not null"`
	Text      string      `gorm:"type:text;not null"`
	Owner     AllowedUser `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (reminderRecord) TableName() string {
	return "reminders"
}

// userTimezone holds at most one preference per user. Absence means UTC.
type userTimezone struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Timezone  string    `gorm:"type:varchar(50);not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (userTimezone) TableName() string {
	return "user_timezones"
}

// clockTime maps a TIME column. The driver may hand back a string, raw bytes
// or a time.Time depending on protocol; all normalize to one TimeOfDay.
type clockTime timerule.TimeOfDay

func (c *clockTime) Scan(src interface{}) error {
	t, err := timerule.TimeOfDayFrom(src)
	if err != nil {
		return err
	}
	*c = clockTime(t)
	return nil
}

func (c clockTime) Value() (driver.Value, error) {
	return timerule.TimeOfDay(c).String() + ":00", nil
}

// Reminder is the canonical in-memory shape of a stored reminder
type Reminder struct {
	ID       int64              `json:"id"`
	OwnerID  int64              `json:"owner_id"`
	ChatID   int64              `json:"chat_id"`
	ThreadID int                `json:"thread_id,omitempty"`
	Day      timerule.Weekday   `json:"day"`
	At       timerule.TimeOfDay `json:"at"`
	Text     string             `json:"text"`
}

// Rule binds the reminder's day and time to a timezone
func (r Reminder) Rule(location string) timerule.TimeRule {
	return timerule.TimeRule{Day: r.Day, At: r.At, Location: location}
}

// Payload is what the reminder's trigger delivers
func (r Reminder) Payload() scheduler.Payload {
	return scheduler.Payload{ChatID: r.ChatID, ThreadID: r.ThreadID, Text: r.Text}
}

// NewReminder is the input to Store.Create
type NewReminder struct {
	OwnerID  int64
	ChatID   int64
	ThreadID int
	Day      timerule.Weekday
	At       timerule.TimeOfDay
	Text     string
}

// Validate rejects a definition before anything is persisted
func (n NewReminder) Validate() error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.OwnerID, validation.Required),
		validation.Field(&n.ChatID, validation.Required),
		validation.Field(&n.ThreadID, validation.Min(0)),
		validation.Field(&n.Text, validation.Required, validation.Length(1, 4096)),
	)
	if err != nil {
		return ValidationError{Field: "reminder", Value: n.Text, ErrMessage: err.Error(), Cause: err}
	}

	rule := timerule.TimeRule{Day: n.Day, At: n.At}
	if err := rule.Validate(); err != nil {
		return ValidationError{Field: "rule", Value: rule.String(), ErrMessage: err.Error(), Cause: err}
	}
	return nil
}

// ResolvedReminder is a reminder joined with its owner's current timezone
type ResolvedReminder struct {
	Reminder
	Timezone string `json:"timezone"`
}

// Job converts the row into what the scheduling engine arms
func (r ResolvedReminder) Job() scheduler.Job {
	return scheduler.Job{
		ID:      r.ID,
		Rule:    r.Rule(r.Timezone),
		Payload: r.Payload(),
	}
}

func newRecord(n NewReminder) reminderRecord {
	rec := reminderRecord{
		UserID:    n.OwnerID,
		ChatID:    n.ChatID,
		DayOfWeek: n.Day.Symbol(),
		Time:      clockTime(n.At),
		Text:      n.Text,
	}
	if n.ThreadID != 0 {
		thread := n.ThreadID
		rec.ThreadID = &thread
	}
	return rec
}

// toDomain normalizes a stored row. Day names written by older versions of
// the bot (localized names, numbers) are accepted through aliases.
func toDomain(rec reminderRecord, aliases ...map[string]timerule.Weekday) (Reminder, error) {
	day, err := timerule.ParseWeekday(rec.DayOfWeek, aliases...)
	if err != nil {
		return Reminder{}, err
	}
	at := timerule.TimeOfDay(rec.Time)
	if err := at.Validate(); err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		ID:      rec.ID,
		OwnerID: rec.UserID,
		ChatID:  rec.ChatID,
		Day:     day,
		At:      at,
		Text:    rec.Text,
	}
	if rec.ThreadID != nil {
		r.ThreadID = *rec.ThreadID
	}
	return r, nil
}
