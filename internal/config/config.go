package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults mirror the shipped sample layout: data in ./data, generated
// reports in ./output, a 3-day freight lead time.
const (
	DefaultCSVInput     = "data/orders.csv"
	DefaultOutputDir    = "output"
	DefaultLeadTimeDays = 3
	DefaultInterval     = 60 * time.Minute
)

type Config struct {
	CSV_INPUT    string `env:"CSV_INPUT"`
	OUTPUT_DIR   string `env:"OUTPUT_DIR"`
	LOG_FILE     string `env:"LOG_FILE"`
	HTTP_PORT    string `env:"HTTP_PORT"`
	LeadTimeDays int    `env:"LEAD_TIME_DAYS"`

	ScheduleEnabled  bool          `env:"SCHEDULE_ENABLED"`
	ScheduleInterval time.Duration `env:"SCHEDULE_INTERVAL_MIN"`

	SMTP_HOST     string `env:"SMTP_HOST"`
	SMTP_PORT     int    `env:"SMTP_PORT"`
	SMTP_FROM     string `env:"SMTP_FROM"`
	SMTP_PASSWORD string `env:"SMTP_PASSWORD"`
	ReportEmail   string `env:"REPORT_EMAIL"`
	AlertEmail    string `env:"ALERT_EMAIL"`

	KAFKA_BROKERS string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC   string `env:"KAFKA_TOPIC"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		CSV_INPUT:     os.Getenv("CSV_INPUT"),
		OUTPUT_DIR:    os.Getenv("OUTPUT_DIR"),
		LOG_FILE:      os.Getenv("LOG_FILE"),
		HTTP_PORT:     os.Getenv("HTTP_PORT"),
		SMTP_HOST:     os.Getenv("SMTP_HOST"),
		SMTP_FROM:     os.Getenv("SMTP_FROM"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),
		ReportEmail:   os.Getenv("REPORT_EMAIL"),
		AlertEmail:    os.Getenv("ALERT_EMAIL"),
		KAFKA_BROKERS: os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:   os.Getenv("KAFKA_TOPIC"),
	}

	if cfg.CSV_INPUT == "" {
		cfg.CSV_INPUT = DefaultCSVInput
	}
	if cfg.OUTPUT_DIR == "" {
		cfg.OUTPUT_DIR = DefaultOutputDir
	}

	cfg.LeadTimeDays = DefaultLeadTimeDays
	if v := os.Getenv("LEAD_TIME_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: LEAD_TIME_DAYS %q is not an integer: %w", v, err)
		}
		cfg.LeadTimeDays = n
	}
	// A negative lead time would schedule dispatch after delivery.
	if cfg.LeadTimeDays < 0 {
		return nil, fmt.Errorf("config: LEAD_TIME_DAYS must not be negative, got %d", cfg.LeadTimeDays)
	}

	cfg.ScheduleEnabled = os.Getenv("SCHEDULE_ENABLED") == "true"
	cfg.ScheduleInterval = DefaultInterval
	if v := os.Getenv("SCHEDULE_INTERVAL_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: SCHEDULE_INTERVAL_MIN %q is not an integer: %w", v, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("config: SCHEDULE_INTERVAL_MIN must be positive, got %d", n)
		}
		cfg.ScheduleInterval = time.Duration(n) * time.Minute
	}

	cfg.SMTP_PORT = 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: SMTP_PORT %q is not an integer: %w", v, err)
		}
		cfg.SMTP_PORT = n
	}

	return cfg, nil
}

// SMTPConfigured reports whether enough SMTP settings are present to send
// real mail. Otherwise notifications fall back to the simulated sender.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP_HOST != "" && c.SMTP_FROM != "" && c.SMTP_PASSWORD != ""
}

// KafkaConfigured reports whether run events should be published.
func (c *Config) KafkaConfigured() bool {
	return c.KAFKA_BROKERS != "" && c.KAFKA_TOPIC != ""
}
