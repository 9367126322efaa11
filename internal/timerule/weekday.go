package timerule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is the canonical day-of-week used by reminders. Values start at
// Monday so that ISO numbering (1..7) maps directly.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdaySymbols = map[Weekday]string{
	Monday:    "mon",
	Tuesday:   "tue",
	Wednesday: "wed",
	Thursday:  "thu",
	Friday:    "fri",
	Saturday:  "sat",
	Sunday:    "sun",
}

var weekdayNames = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// Weekdays lists every valid day in calendar order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// IsValid checks if the weekday is one of the seven known values
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// Symbol returns the canonical wire symbol ("mon".."sun").
func (d Weekday) Symbol() string {
	if s, ok := weekdaySymbols[d]; ok {
		return s
	}
	return ""
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return d.Symbol()
}

// Std converts to time.Weekday.
func (d Weekday) Std() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// CronField returns the cron day-of-week field value (0 = Sunday).
func (d Weekday) CronField() int {
	return int(d.Std())
}

// FromStd converts a time.Weekday into a Weekday.
func FromStd(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// ParseWeekday normalizes any known day representation into a Weekday.
// Accepted forms: canonical symbols, English names, ISO numbers 1..7 and
// any entry from the optional alias tables. Matching is case-insensitive.
func ParseWeekday(s string, aliases ...map[string]Weekday) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, NewInvalidRuleError("day_of_week", s, "day of week is empty")
	}

	for d, sym := range weekdaySymbols {
		if sym == key {
			return d, nil
		}
	}
	if d, ok := weekdayNames[key]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		if d := Weekday(n); d.IsValid() {
			return d, nil
		}
	}
	for _, table := range aliases {
		if d, ok := table[key]; ok && d.IsValid() {
			return d, nil
		}
	}

	return 0, NewInvalidRuleError("day_of_week", s, "unknown day of week")
}
