package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DealershipHours is the immutable business-hours configuration handed to the
// booking service at construction. Duration is the fixed booking length in
// whole hours.
type DealershipHours struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
	Duration    int
}

type Config struct {
	App struct {
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
	} `yaml:"app"`

	Dealership struct {
		OpenTime  string `yaml:"open_time"`
		CloseTime string `yaml:"close_time"`
		Capacity  int    `yaml:"capacity"`
	} `yaml:"dealership"`

	Booking struct {
		Duration int `yaml:"duration"`
	} `yaml:"booking"`

	Database struct {
		Driver string `yaml:"driver"` // memory or postgres
		URL    string `yaml:"-"`      // loaded from environment
	} `yaml:"database"`

	Reminders struct {
		Enabled  bool   `yaml:"enabled"`
		Schedule string `yaml:"schedule"`
	} `yaml:"reminders"`
}

// Load reads and validates the YAML configuration. Sensitive values come
// from the environment (loaded by the caller via godotenv beforehand).
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.Dealership.Capacity < 1 {
		return fmt.Errorf("dealership capacity must be >= 1")
	}
	if c.Booking.Duration < 1 {
		return fmt.Errorf("booking duration must be >= 1 hour")
	}

	hours, err := c.Hours()
	if err != nil {
		return err
	}
	openMinutes := hours.OpenHour*60 + hours.OpenMinute
	closeMinutes := hours.CloseHour*60 + hours.CloseMinute
	if closeMinutes <= openMinutes {
		return fmt.Errorf("close time %s must be after open time %s", c.Dealership.CloseTime, c.Dealership.OpenTime)
	}

	switch c.Database.Driver {
	case "", "memory":
		c.Database.Driver = "memory"
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Reminders.Enabled && c.Reminders.Schedule == "" {
		return fmt.Errorf("reminders schedule is required when reminders are enabled")
	}

	return nil
}

// Hours splits the configured "HH:MM" open and close times into the value
// the booking service consumes.
func (c *Config) Hours() (DealershipHours, error) {
	openHour, openMinute, err := parseClock(c.Dealership.OpenTime)
	if err != nil {
		return DealershipHours{}, fmt.Errorf("invalid open time: %w", err)
	}
	closeHour, closeMinute, err := parseClock(c.Dealership.CloseTime)
	if err != nil {
		return DealershipHours{}, fmt.Errorf("invalid close time: %w", err)
	}
	return DealershipHours{
		OpenHour:    openHour,
		OpenMinute:  openMinute,
		CloseHour:   closeHour,
		CloseMinute: closeMinute,
		Duration:    c.Booking.Duration,
	}, nil
}

func parseClock(value string) (int, int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}
