// Package config provides configuration for the dispatch scheduling core.
// Values come from built-in defaults, an optional YAML file, and environment
// variable overrides, in that order.
//
// Environment Variables:
//   - ACCEPTANCE_WINDOW_MIN: driver acceptance window in minutes (default: 30)
//   - ACCEPTANCE_TICK_SEC: acceptance deadline check interval in seconds (default: 1)
//   - REMINDER_SCAN_MIN: reminder scan interval in minutes (default: 1)
//   - MAX_NOTIFICATIONS: notification log cap (default: 100)
//   - NOTIFICATION_SENDER: platform sender, "log" or "none" (default: none)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all tunables for the scheduling core.
type Config struct {
	AcceptanceWindowMin int    `yaml:"acceptance_window_min"`
	AcceptanceTickSec   int    `yaml:"acceptance_tick_sec"`
	ReminderScanMin     int    `yaml:"reminder_scan_min"`
	MaxNotifications    int    `yaml:"max_notifications"`
	NotificationSender  string `yaml:"notification_sender"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AcceptanceWindowMin: 30,
		AcceptanceTickSec:   1,
		ReminderScanMin:     1,
		MaxNotifications:    100,
		NotificationSender:  "none",
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides. path may be empty to skip the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.AcceptanceWindowMin = envInt("ACCEPTANCE_WINDOW_MIN", cfg.AcceptanceWindowMin)
	cfg.AcceptanceTickSec = envInt("ACCEPTANCE_TICK_SEC", cfg.AcceptanceTickSec)
	cfg.ReminderScanMin = envInt("REMINDER_SCAN_MIN", cfg.ReminderScanMin)
	cfg.MaxNotifications = envInt("MAX_NOTIFICATIONS", cfg.MaxNotifications)
	if v := os.Getenv("NOTIFICATION_SENDER"); v != "" {
		cfg.NotificationSender = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures the configuration can start the schedulers safely.
func (c Config) Validate() error {
	if c.AcceptanceWindowMin <= 0 {
		return fmt.Errorf("acceptance_window_min must be positive, got %d", c.AcceptanceWindowMin)
	}
	if c.AcceptanceTickSec <= 0 {
		return fmt.Errorf("acceptance_tick_sec must be positive, got %d", c.AcceptanceTickSec)
	}
	if c.ReminderScanMin <= 0 {
		return fmt.Errorf("reminder_scan_min must be positive, got %d", c.ReminderScanMin)
	}
	if c.MaxNotifications <= 0 {
		return fmt.Errorf("max_notifications must be positive, got %d", c.MaxNotifications)
	}
	switch c.NotificationSender {
	case "none", "log":
	default:
		return fmt.Errorf("notification_sender must be \"none\" or \"log\", got %q", c.NotificationSender)
	}
	return nil
}

// AcceptanceWindow returns the acceptance window as a duration.
func (c Config) AcceptanceWindow() time.Duration {
	return time.Duration(c.AcceptanceWindowMin) * time.Minute
}

// AcceptanceTick returns the deadline check interval as a duration.
func (c Config) AcceptanceTick() time.Duration {
	return time.Duration(c.AcceptanceTickSec) * time.Second
}

// ReminderScanInterval returns the reminder scan interval as a duration.
func (c Config) ReminderScanInterval() time.Duration {
	return time.Duration(c.ReminderScanMin) * time.Minute
}

// envInt reads an integer environment variable, keeping the fallback on
// absence or parse failure.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
