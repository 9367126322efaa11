package timerule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/robfig/cron/v3"
)

// DefaultLocation is substituted whenever a user has no stored timezone.
const DefaultLocation = "UTC"

// TimeOfDay is a wall-clock time with minute precision
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewTimeOfDay creates a validated TimeOfDay
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// Validate checks hour and minute ranges
func (t TimeOfDay) Validate() error {
	if err := validation.Validate(t.Hour, validation.Min(0), validation.Max(23)); err != nil {
		return NewInvalidRuleError("hour", t.Hour, err.Error())
	}
	if err := validation.Validate(t.Minute, validation.Min(0), validation.Max(59)); err != nil {
		return NewInvalidRuleError("minute", t.Minute, err.Error())
	}
	return nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, NewInvalidRuleError("time_of_day", s, "expected HH:MM")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, NewInvalidRuleError("hour", parts[0], "hour is not a number")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, NewInvalidRuleError("minute", parts[1], "minute is not a number")
	}
	if len(parts) == 3 {
		if _, err := strconv.ParseFloat(parts[2], 64); err != nil {
			return TimeOfDay{}, NewInvalidRuleError("second", parts[2], "second is not a number")
		}
	}

	return NewTimeOfDay(hour, minute)
}

// TimeOfDayFrom normalizes the representations a time column can come back
// as: a "HH:MM[:SS]" string, raw bytes, or a structured time value.
func TimeOfDayFrom(v interface{}) (TimeOfDay, error) {
	switch val := v.(type) {
	case TimeOfDay:
		return val, val.Validate()
	case *TimeOfDay:
		if val == nil {
			return TimeOfDay{}, NewInvalidRuleError("time_of_day", v, "time of day is nil")
		}
		return *val, val.Validate()
	case string:
		return ParseTimeOfDay(val)
	case []byte:
		return ParseTimeOfDay(string(val))
	case time.Time:
		return NewTimeOfDay(val.Hour(), val.Minute())
	case *time.Time:
		if val == nil {
			return TimeOfDay{}, NewInvalidRuleError("time_of_day", v, "time of day is nil")
		}
		return NewTimeOfDay(val.Hour(), val.Minute())
	default:
		return TimeOfDay{}, NewInvalidRuleError("time_of_day", v, fmt.Sprintf("unsupported type %T", v))
	}
}

// TimeRule is a weekly recurrence: a day of week and a local time in a timezone.
type TimeRule struct {
	Day      Weekday   `json:"day"`
	At       TimeOfDay `json:"at"`
	Location string    `json:"location"`
}

// New creates a validated TimeRule. An empty location means UTC.
func New(day Weekday, at TimeOfDay, location string) (TimeRule, error) {
	r := TimeRule{Day: day, At: at, Location: location}
	if err := r.Validate(); err != nil {
		return TimeRule{}, err
	}
	return r, nil
}

// Parse builds a rule from the textual day and time representations.
func Parse(day, at, location string, aliases ...map[string]Weekday) (TimeRule, error) {
	d, err := ParseWeekday(day, aliases...)
	if err != nil {
		return TimeRule{}, err
	}
	t, err := ParseTimeOfDay(at)
	if err != nil {
		return TimeRule{}, err
	}
	return New(d, t, location)
}

// Validate checks every component of the rule
func (r TimeRule) Validate() error {
	err := validation.Validate(int(r.Day),
		validation.Required,
		validation.Min(int(Monday)),
		validation.Max(int(Sunday)),
	)
	if err != nil {
		return NewInvalidRuleError("day_of_week", int(r.Day), err.Error())
	}

	if err := r.At.Validate(); err != nil {
		return err
	}

	err = validation.Validate(r.Location, validation.By(func(value interface{}) error {
		_, err := time.LoadLocation(value.(string))
		return err
	}))
	if err != nil {
		return NewInvalidRuleError("location", r.Location, err.Error())
	}

	return nil
}

// LocationName returns the IANA name the rule is evaluated in.
func (r TimeRule) LocationName() string {
	if r.Location == "" {
		return DefaultLocation
	}
	return r.Location
}

// Loc loads the rule's time.Location.
func (r TimeRule) Loc() (*time.Location, error) {
	loc, err := time.LoadLocation(r.LocationName())
	if err != nil {
		return nil, NewInvalidRuleError("location", r.Location, err.Error())
	}
	return loc, nil
}

// WithLocation returns a copy of the rule bound to another timezone.
func (r TimeRule) WithLocation(location string) TimeRule {
	r.Location = location
	return r
}

// Spec renders the rule as a standard five-field cron expression with a
// CRON_TZ prefix, e.g. "CRON_TZ=Europe/Moscow 30 9 * * 2".
func (r TimeRule) Spec() string {
	return fmt.Sprintf("CRON_TZ=%s %d %d * * %d", r.LocationName(), r.At.Minute, r.At.Hour, r.Day.CronField())
}

// Schedule parses the rule into the cron schedule that fires it.
func (r TimeRule) Schedule() (cron.Schedule, error) {
	sched, err := cron.ParseStandard(r.Spec())
	if err != nil {
		return nil, NewInvalidRuleError("spec", r.Spec(), err.Error())
	}
	return sched, nil
}

// Next returns the first instant strictly after `after` at which the rule
// fires, as the engine computes it. A wall-clock time that does not exist on
// a DST switch day is skipped until the next week. Zero for an invalid rule.
func (r TimeRule) Next(after time.Time) time.Time {
	sched, err := r.Schedule()
	if err != nil {
		return time.Time{}
	}
	return sched.Next(after)
}

func (r TimeRule) String() string {
	return fmt.Sprintf("%s %s %s", r.Day.Symbol(), r.At.String(), r.LocationName())
}
