package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers accepted by database.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration values for the dashboard service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	AllowOrigins      string
	DatabaseDriver    string
	DatabaseURL       string
	RedisURL          string
	SheetsDocument    string
	TableCacheTTL     time.Duration
	AdminPassphrase   string
	SessionSecret     string
	SessionTTL        time.Duration
	LoginRateLimit    int
	LoginRateWindow   time.Duration
	ScheduleStartHour int
	ScheduleEndHour   int
	Timezone          string
	Location          *time.Location
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from COURT_* environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("COURT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Court Dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.allow_origins", "*")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("sheets.document", "CourtMaster_DB")
	v.SetDefault("tables.cache_ttl", "10s")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.rate_limit", 5)
	v.SetDefault("session.rate_window", "1m")
	v.SetDefault("schedule.start_hour", 8)
	v.SetDefault("schedule.end_hour", 22)
	v.SetDefault("timezone", "Europe/Istanbul")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cacheTTL, err := parseDuration(v, "tables.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	sessionTTL, err := parseDuration(v, "session.ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "session.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		AllowOrigins:      v.GetString("app.allow_origins"),
		DatabaseDriver:    strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		SheetsDocument:    strings.TrimSpace(v.GetString("sheets.document")),
		TableCacheTTL:     cacheTTL,
		AdminPassphrase:   v.GetString("admin.passphrase"),
		SessionSecret:     v.GetString("session.secret"),
		SessionTTL:        sessionTTL,
		LoginRateLimit:    v.GetInt("session.rate_limit"),
		LoginRateWindow:   rateWindow,
		ScheduleStartHour: v.GetInt("schedule.start_hour"),
		ScheduleEndHour:   v.GetInt("schedule.end_hour"),
		Timezone:          v.GetString("timezone"),
	}

	if cfg.AdminPassphrase == "" || cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("admin passphrase and session secret must be provided")
	}
	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if cfg.SheetsDocument == "" {
		return Config{}, fmt.Errorf("sheets document name must not be empty")
	}
	if cfg.TableCacheTTL <= 0 {
		return Config{}, fmt.Errorf("table cache ttl must be positive")
	}
	if cfg.ScheduleStartHour < 0 || cfg.ScheduleEndHour > 23 || cfg.ScheduleStartHour > cfg.ScheduleEndHour {
		return Config{}, fmt.Errorf("invalid schedule hours %d-%d", cfg.ScheduleStartHour, cfg.ScheduleEndHour)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone: %w", err)
	}
	cfg.Location = location

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
