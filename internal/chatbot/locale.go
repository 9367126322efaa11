package chatbot

import (
	"fmt"
	"strings"
	"time"

	"remindbot/internal/timerule"
)

// DayAliases are the Russian day names users type in /add. Rows written by
// earlier versions of the bot store these names too, so the store is given
// the same table.
var DayAliases = map[string]timerule.Weekday{
	"понедельник": timerule.Monday,
	"вторник":     timerule.Tuesday,
	"среда":       timerule.Wednesday,
	"четверг":     timerule.Thursday,
	"пятница":     timerule.Friday,
	"суббота":     timerule.Saturday,
	"воскресенье": timerule.Sunday,
	"пн":          timerule.Monday,
	"вт":          timerule.Tuesday,
	"ср":          timerule.Wednesday,
	"чт":          timerule.Thursday,
	"пт":          timerule.Friday,
	"сб":          timerule.Saturday,
	"вс":          timerule.Sunday,
}

// Texts is the set of replies in one language
type Texts struct {
	AskLocation        string
	LocationButton     string
	WelcomeBack        string
	TimezoneSet        string
	Help               string
	AccessDenied       string
	AddUsage           string
	BadDay             string
	BadTime            string
	BadText            string
	Added              string
	NoReminders        string
	ListHeader         string
	DeleteUsage        string
	NotFound           string
	Deleted            string
	AddUserUsage       string
	UserAdded          string
	UserAlreadyAllowed string
	RemoveUserUsage    string
	UserRemoved        string
	UserNotFound       string
	CannotRemoveAdmin  string
	InternalError      string
	DayNames           map[timerule.Weekday]string
}

var russian = Texts{
	AskLocation: "Привет! Чтобы работать с напоминаниями, мне нужен Ваш часовой пояс.\n" +
		"Пожалуйста, поделитесь геолокацией:",
	LocationButton: "📍 Отправить местоположение",
	WelcomeBack:    "С возвращением! Используйте /help для списка команд.",
	TimezoneSet: "Часовой пояс установлен: %s\n" +
		"Теперь вы можете добавлять напоминания.\n" +
		"Используйте /help для списка команд.",
	Help: "Команды:\n" +
		"/add <день> <HH:MM> <текст>\n" +
		"/list\n" +
		"/delete <id>\n\n" +
		"Админ:\n" +
		"/adduser <user_id>\n" +
		"/removeuser <user_id>",
	AccessDenied:       "Доступ запрещён.",
	AddUsage:           "Использование: /add <день> <HH:MM> <текст>",
	BadDay:             "Неверный день недели.",
	BadTime:            "Неверный формат времени.",
	BadText:            "Текст напоминания слишком длинный.",
	Added:              "Напоминание #%d добавлено (часовой пояс %s).",
	NoReminders:        "Нет напоминаний.",
	ListHeader:         "Ваши напоминания:",
	DeleteUsage:        "Использование: /delete <id>",
	NotFound:           "Напоминание не найдено.",
	Deleted:            "Напоминание #%d удалено.",
	AddUserUsage:       "Использование: /adduser <user_id>",
	UserAdded:          "Пользователь %d добавлен.",
	UserAlreadyAllowed: "Пользователь %d уже добавлен.",
	RemoveUserUsage:    "Использование: /removeuser <user_id>",
	UserRemoved:        "Пользователь %d удалён.",
	UserNotFound:       "Пользователь %d не найден.",
	CannotRemoveAdmin:  "Нельзя удалить администратора.",
	InternalError:      "Произошла ошибка, попробуйте позже.",
	DayNames: map[timerule.Weekday]string{
		timerule.Monday:    "понедельник",
		timerule.Tuesday:   "вторник",
		timerule.Wednesday: "среда",
		timerule.Thursday:  "четверг",
		timerule.Friday:    "пятница",
		timerule.Saturday:  "суббота",
		timerule.Sunday:    "воскресенье",
	},
}

var english = Texts{
	AskLocation:    "Hi! To work with reminders I need your timezone.\nPlease share your location:",
	LocationButton: "📍 Share location",
	WelcomeBack:    "Welcome back! Use /help to see the commands.",
	TimezoneSet:    "Timezone set: %s\nYou can add reminders now.\nUse /help to see the commands.",
	Help: "Commands:\n" +
		"/add <day> <HH:MM> <text>\n" +
		"/list\n" +
		"/delete <id>\n\n" +
		"Admin:\n" +
		"/adduser <user_id>\n" +
		"/removeuser <user_id>",
	AccessDenied:       "Access denied.",
	AddUsage:           "Usage: /add <day> <HH:MM> <text>",
	BadDay:             "Unknown day of week.",
	BadTime:            "Invalid time format.",
	BadText:            "Reminder text is too long.",
	Added:              "Reminder #%d added (timezone %s).",
	NoReminders:        "No reminders.",
	ListHeader:         "Your reminders:",
	DeleteUsage:        "Usage: /delete <id>",
	NotFound:           "Reminder not found.",
	Deleted:            "Reminder #%d deleted.",
	AddUserUsage:       "Usage: /adduser <user_id>",
	UserAdded:          "User %d added.",
	UserAlreadyAllowed: "User %d is already allowed.",
	RemoveUserUsage:    "Usage: /removeuser <user_id>",
	UserRemoved:        "User %d removed.",
	UserNotFound:       "User %d not found.",
	CannotRemoveAdmin:  "Admins cannot be removed.",
	InternalError:      "Something went wrong, please try again later.",
	DayNames: map[timerule.Weekday]string{
		timerule.Monday:    "Monday",
		timerule.Tuesday:   "Tuesday",
		timerule.Wednesday: "Wednesday",
		timerule.Thursday:  "Thursday",
		timerule.Friday:    "Friday",
		timerule.Saturday:  "Saturday",
		timerule.Sunday:    "Sunday",
	},
}

// TextsFor returns the replies for a locale; anything but "en" is Russian.
func TextsFor(locale string) Texts {
	if strings.EqualFold(locale, "en") {
		return english
	}
	return russian
}

// DayName is the display name of d
func (t Texts) DayName(d timerule.Weekday) string {
	if name, ok := t.DayNames[d]; ok {
		return name
	}
	return d.String()
}

// ListLine renders one /list row. The next fire time is appended when known.
func (t Texts) ListLine(id int64, day timerule.Weekday, at timerule.TimeOfDay, text string, next time.Time) string {
	line := fmt.Sprintf("%d — %s, %s, %s", id, t.DayName(day), at, text)
	if !next.IsZero() {
		line += fmt.Sprintf(" (%s)", next.Format("02.01 15:04 MST"))
	}
	return line
}
