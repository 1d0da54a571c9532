// Package config resolves runtime settings. Later sources win: built-in
// defaults, the global then project YAML file, a .env file, then TASKQUEST_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TASKQUEST_"

type Runtime struct {
	DBPath               string `mapstructure:"db_path"`
	CalendarPath         string `mapstructure:"calendar_path"`
	CalendarEnabled      bool   `mapstructure:"calendar_enabled"`
	NotificationsEnabled bool   `mapstructure:"notifications_enabled"`
	DesktopNotifications bool   `mapstructure:"desktop_notifications"`
	SchedulerBuffer      int    `mapstructure:"scheduler_buffer"`
	LogPath              string `mapstructure:"log_path"`
	UserName             string `mapstructure:"user_name"`
}

func DefaultRuntime() Runtime {
	dir := HomeDir()
	return Runtime{
		DBPath:               filepath.Join(dir, "taskquest.db"),
		CalendarPath:         filepath.Join(dir, "calendar.yaml"),
		CalendarEnabled:      true,
		NotificationsEnabled: true,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		LogPath:              filepath.Join(dir, "taskquest.log"),
	}
}

// HomeDir is the per-user data directory, ~/.taskquest.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskquest"
	}
	return filepath.Join(home, ".taskquest")
}

func GlobalConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

func ProjectConfigPath() string {
	return ".taskquest.yaml"
}

// Load resolves the configuration from the default locations.
func Load() (Runtime, error) {
	return LoadFrom([]string{GlobalConfigPath(), ProjectConfigPath()}, ".env")
}

// LoadFrom applies each existing YAML file in order, then envFile, then the
// process environment. Missing files are skipped.
func LoadFrom(files []string, envFile string) (Runtime, error) {
	cfg := DefaultRuntime()
	for _, path := range files {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return cfg, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}
	cfg = FromEnv(cfg)
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Runtime) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func FromEnv(base Runtime) Runtime {
	cfg := base
	if v, ok := getEnvString(envPrefix + "DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString(envPrefix + "CALENDAR_PATH"); ok {
		cfg.CalendarPath = v
	}
	if v, ok := getEnvBool(envPrefix + "CALENDAR_ENABLED"); ok {
		cfg.CalendarEnabled = v
	}
	if v, ok := getEnvBool(envPrefix + "NOTIFICATIONS_ENABLED"); ok {
		cfg.NotificationsEnabled = v
	}
	if v, ok := getEnvBool(envPrefix + "DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt(envPrefix + "SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString(envPrefix + "LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString(envPrefix + "USER_NAME"); ok {
		cfg.UserName = v
	}
	return cfg
}

func (c Runtime) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.CalendarEnabled && strings.TrimSpace(c.CalendarPath) == "" {
		return fmt.Errorf("config: calendar_path is required when the calendar is enabled")
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be positive, got %d", c.SchedulerBuffer)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
