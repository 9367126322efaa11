package config

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

// Bot transport modes
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Chatbot   ChatbotConfig   `mapstructure:"chatbot"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnectRetries  int    `mapstructure:"connect_retries"`
}

type ChatbotConfig struct {
	Token      string `mapstructure:"token"`
	Mode       string `mapstructure:"mode"`
	WebhookURL string `mapstructure:"webhook_url"`
	Timeout    int    `mapstructure:"timeout"`
	// AdminIDs accepts a YAML list or a comma separated env string.
	AdminIDs []int64 `mapstructure:"-"`
	Locale   string  `mapstructure:"locale"`
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// ReconcileInterval in seconds; 0 disables periodic reconciliation.
	ReconcileInterval int `mapstructure:"reconcile_interval"`
	ShutdownTimeout   int `mapstructure:"shutdown_timeout"`
}

type CleanupConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Delay in seconds before conversational messages are deleted.
	Delay           int  `mapstructure:"delay"`
	DeleteReminders bool `mapstructure:"delete_reminders"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	adminIDs, err := parseAdminIDs(v.Get("chatbot.admin_ids"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chatbot.admin_ids: %w", err)
	}
	config.Chatbot.AdminIDs = adminIDs

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the values the process cannot start without.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Host, validation.Required),
		validation.Field(&c.Database.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Database.DBName, validation.Required),
		validation.Field(&c.Database.MaxOpenConns, validation.Min(1)),
		validation.Field(&c.Database.MaxIdleConns, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := validation.ValidateStruct(&c.Chatbot,
		validation.Field(&c.Chatbot.Mode, validation.Required, validation.In(ModePolling, ModeWebhook)),
		validation.Field(&c.Chatbot.Timeout, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("chatbot: %w", err)
	}
	if c.Chatbot.Mode == ModeWebhook && !strings.HasPrefix(c.Chatbot.WebhookURL, "https://") {
		return fmt.Errorf("chatbot: webhook_url must be an https URL in webhook mode")
	}

	if err := validation.ValidateStruct(&c.Scheduler,
		validation.Field(&c.Scheduler.ReconcileInterval, validation.Min(0)),
		validation.Field(&c.Scheduler.ShutdownTimeout, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if err := validation.ValidateStruct(&c.Cleanup,
		validation.Field(&c.Cleanup.Delay, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	return nil
}

// IsAdmin reports whether the user id is listed in chatbot.admin_ids.
func (c ChatbotConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func parseAdminIDs(raw interface{}) ([]int64, error) {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		parts = strings.Split(v, ",")
	case []interface{}:
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
	case []string:
		parts = v
	case []int:
		for _, item := range v {
			parts = append(parts, strconv.Itoa(item))
		}
	default:
		parts = []string{fmt.Sprint(v)}
	}

	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("admin id %q is not a number", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "remindbot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.connect_retries", 5)

	v.SetDefault("chatbot.token", "")
	v.SetDefault("chatbot.mode", ModePolling)
	v.SetDefault("chatbot.webhook_url", "")
	v.SetDefault("chatbot.timeout", 30)
	v.SetDefault("chatbot.admin_ids", "")
	v.SetDefault("chatbot.locale", "ru")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.reconcile_interval", 0)
	v.SetDefault("scheduler.shutdown_timeout", 30)

	v.SetDefault("cleanup.enabled", true)
	v.SetDefault("cleanup.delay", 30)
	v.SetDefault("cleanup.delete_reminders", false)
}
