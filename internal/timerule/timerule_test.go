package timerule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseWeekday(t *testing.T) {
	russian := map[string]Weekday{"вторник": Tuesday}

	tests := []struct {
		name    string
		input   string
		want    Weekday
		wantErr bool
	}{
		{name: "canonical symbol", input: "mon", want: Monday},
		{name: "upper case symbol", input: "SUN", want: Sunday},
		{name: "english name", input: "Wednesday", want: Wednesday},
		{name: "iso number", input: "5", want: Friday},
		{name: "alias table", input: "Вторник", want: Tuesday},
		{name: "padded", input: "  sat ", want: Saturday},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "someday", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "eight", input: "8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.input, russian)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekday_CronField(t *testing.T) {
	assert.Equal(t, 0, Sunday.CronField())
	assert.Equal(t, 1, Monday.CronField())
	assert.Equal(t, 6, Saturday.CronField())

	for _, d := range Weekdays() {
		assert.Equal(t, d, FromStd(d.Std()))
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "14:30", want: TimeOfDay{Hour: 14, Minute: 30}},
		{input: "09:05", want: TimeOfDay{Hour: 9, Minute: 5}},
		{input: "9:5", want: TimeOfDay{Hour: 9, Minute: 5}},
		{input: "00:00:00", want: TimeOfDay{}},
		{input: "23:59:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "-1:00", wantErr: true},
		{input: "1230", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayFrom_StringAndValueAgree(t *testing.T) {
	fromString, err := TimeOfDayFrom("14:30")
	require.NoError(t, err)

	fromValue, err := TimeOfDayFrom(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	fromBytes, err := TimeOfDayFrom([]byte("14:30:00"))
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30}, fromString)
	assert.Equal(t, fromString, fromValue)
	assert.Equal(t, fromString, fromBytes)

	_, err = TimeOfDayFrom(1430)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestTimeRule_Validate(t *testing.T) {
	tests := []struct {
		name  string
		rule  TimeRule
		field string
	}{
		{name: "valid", rule: TimeRule{Day: Monday, At: TimeOfDay{Hour: 9}, Location: "Europe/Moscow"}},
		{name: "empty location means utc", rule: TimeRule{Day: Sunday, At: TimeOfDay{Hour: 23, Minute: 59}}},
		{name: "missing day", rule: TimeRule{At: TimeOfDay{Hour: 9}}, field: "day_of_week"},
		{name: "day out of range", rule: TimeRule{Day: Weekday(9)}, field: "day_of_week"},
		{name: "hour out of range", rule: TimeRule{Day: Monday, At: TimeOfDay{Hour: 24}}, field: "hour"},
		{name: "minute out of range", rule: TimeRule{Day: Monday, At: TimeOfDay{Minute: -1}}, field: "minute"},
		{name: "unknown location", rule: TimeRule{Day: Monday, Location: "Mars/Olympus"}, field: "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRule)

			var ruleErr *InvalidRuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, tt.field, ruleErr.Field)
		})
	}
}

func TestTimeRule_Spec(t *testing.T) {
	rule, err := Parse("tue", "09:00", "Europe/Moscow")
	require.NoError(t, err)
	assert.Equal(t, "CRON_TZ=Europe/Moscow 0 9 * * 2", rule.Spec())

	rule, err = Parse("sun", "14:30", "")
	require.NoError(t, err)
	assert.Equal(t, "CRON_TZ=UTC 30 14 * * 0", rule.Spec())
	assert.Equal(t, "sun 14:30 UTC", rule.String())
}

func TestTimeRule_Next(t *testing.T) {
	moscow := mustLoc(t, "Europe/Moscow")

	rule, err := New(Tuesday, TimeOfDay{Hour: 9}, "Europe/Moscow")
	require.NoError(t, err)

	// Monday 2025-05-05 12:00 MSK → Tuesday 2025-05-06 09:00 MSK
	after := time.Date(2025, time.May, 5, 12, 0, 0, 0, moscow)
	next := rule.Next(after)
	assert.True(t, next.Equal(time.Date(2025, time.May, 6, 9, 0, 0, 0, moscow)))

	// exactly at the fire instant → one week later
	next = rule.Next(next)
	assert.True(t, next.Equal(time.Date(2025, time.May, 13, 9, 0, 0, 0, moscow)))

	// same weekday, later than fire time → next week
	after = time.Date(2025, time.May, 6, 10, 0, 0, 0, moscow)
	next = rule.Next(after)
	assert.True(t, next.Equal(time.Date(2025, time.May, 13, 9, 0, 0, 0, moscow)))
}

func TestTimeRule_Next_FollowsDaylightSaving(t *testing.T) {
	berlin := mustLoc(t, "Europe/Berlin")

	rule, err := New(Sunday, TimeOfDay{Hour: 10}, "Europe/Berlin")
	require.NoError(t, err)

	// DST started on 2025-03-30 in Berlin.
	before := rule.Next(time.Date(2025, time.March, 22, 12, 0, 0, 0, berlin))
	after := rule.Next(before)

	assert.Equal(t, 10, before.In(berlin).Hour())
	assert.Equal(t, 10, after.In(berlin).Hour())
	assert.Equal(t, 9, before.UTC().Hour())
	assert.Equal(t, 8, after.UTC().Hour())
	assert.Equal(t, 7*24*time.Hour-time.Hour, after.Sub(before))
}

func TestTimeRule_Next_SkipsMissingWallClockTime(t *testing.T) {
	newYork := mustLoc(t, "America/New_York")

	rule, err := New(Sunday, TimeOfDay{Hour: 2, Minute: 30}, "America/New_York")
	require.NoError(t, err)

	// 02:30 did not exist on 2025-03-09; clocks went from 02:00 EST to 03:00 EDT.
	next := rule.Next(time.Date(2025, time.March, 8, 12, 0, 0, 0, newYork))
	assert.True(t, next.Equal(time.Date(2025, time.March, 16, 2, 30, 0, 0, newYork)), next.String())

	sched, err := rule.Schedule()
	require.NoError(t, err)
	assert.True(t, sched.Next(next).Equal(rule.Next(next)))
}

func TestTimeRule_Schedule_RejectsUnknownZone(t *testing.T) {
	rule := TimeRule{Day: Monday, At: TimeOfDay{Hour: 9}, Location: "Mars/Olympus"}

	_, err := rule.Schedule()
	require.Error(t, err)
	assert.True(t, rule.Next(time.Now()).IsZero())
}

func TestTimeRule_Next_AllRulesLandOnTheirDay(t *testing.T) {
	after := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range Weekdays() {
		for hour := 0; hour < 24; hour++ {
			rule := TimeRule{Day: d, At: TimeOfDay{Hour: hour, Minute: 15}}
			next := rule.Next(after)
			assert.Equal(t, d.Std(), next.Weekday())
			assert.Equal(t, hour, next.Hour())
			assert.True(t, next.After(after))
			assert.True(t, next.Sub(after) <= 7*24*time.Hour)
		}
	}
}
