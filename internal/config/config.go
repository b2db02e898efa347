package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	Email struct {
		APIURL string
		APIKey string
		From   string
	}
	WhatsApp struct {
		APIURL        string
		APIToken      string
		PhoneNumberID string
	}
	Telegram struct {
		BotToken string // optional channel, disabled when empty
	}
	Kafka struct {
		Broker string // optional event publishing, disabled when empty
		Topic  string
	}
	API struct {
		Port     string
		BasePath string
	}
	Alerts struct {
		Interval    time.Duration // 0 disables the recurring scheduler
		MaxAttempts int
		BaseDelay   time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// Email provider (Resend-style HTTP API)
	cfg.Email.APIURL = os.Getenv("EMAIL_API_URL")
	cfg.Email.APIKey = os.Getenv("EMAIL_API_KEY")
	cfg.Email.From = os.Getenv("EMAIL_FROM")

	// WhatsApp Cloud API
	cfg.WhatsApp.APIURL = os.Getenv("WHATSAPP_API_URL")
	cfg.WhatsApp.APIToken = os.Getenv("WHATSAPP_API_TOKEN")
	cfg.WhatsApp.PhoneNumberID = os.Getenv("WHATSAPP_PHONE_NUMBER_ID")

	// Optional channels and transports
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Alert run settings
	if iv := os.Getenv("ALERT_INTERVAL"); iv != "" {
		d, err := time.ParseDuration(iv)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALERT_INTERVAL %q: %w", iv, err)
		}
		cfg.Alerts.Interval = d
	} else {
		cfg.Alerts.Interval = 24 * time.Hour
	}
	if ma, err := strconv.Atoi(os.Getenv("RETRY_MAX_ATTEMPTS")); err == nil {
		cfg.Alerts.MaxAttempts = ma
	}
	if bd := os.Getenv("RETRY_BASE_DELAY"); bd != "" {
		d, err := time.ParseDuration(bd)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BASE_DELAY %q: %w", bd, err)
		}
		cfg.Alerts.BaseDelay = d
	}

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate required settings. The run must never start with partial
	// messaging credentials.
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.Email.APIKey == "" {
		missing = append(missing, "EMAIL_API_KEY")
	}
	if cfg.WhatsApp.APIToken == "" {
		missing = append(missing, "WHATSAPP_API_TOKEN")
	}
	if cfg.WhatsApp.PhoneNumberID == "" {
		missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.Email.APIURL == "" {
		cfg.Email.APIURL = "https://api.resend.com/emails"
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "Fleet Alerts <alerts@fleet-compliance.local>"
	}
	if cfg.WhatsApp.APIURL == "" {
		cfg.WhatsApp.APIURL = "https://graph.facebook.com/v15.0"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "certificate_alerts"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Alerts.MaxAttempts == 0 {
		cfg.Alerts.MaxAttempts = 5
	}
	if cfg.Alerts.BaseDelay == 0 {
		cfg.Alerts.BaseDelay = time.Second
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}
