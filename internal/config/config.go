package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite, postgres or mysql
	DatabasePath    string // for sqlite
	DatabaseURL     string // for postgres/mysql
	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string

	// Access gate: a single shared passphrase. When PassphraseHash is set
	// it takes precedence over the plain Passphrase.
	Passphrase      string
	PassphraseHash  string
	SessionSecret   string
	SessionDuration time.Duration

	// Optional daily reminders
	ReminderHour     int
	TelegramBotToken string
	TelegramChatID   int64
	SESFromEmail     string
	SESFromName      string
	DigestEmail      string
	AWSRegion        string

	// When set, the daily job also writes a dated CSV snapshot here
	BackupDir string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./hanzidrill.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		Passphrase:      getEnv("PASSPHRASE", ""),
		PassphraseHash:  getEnv("PASSPHRASE_HASH", ""),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),

		ReminderHour:     getInt("REMINDER_HOUR", 8),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getInt64("TELEGRAM_CHAT_ID", 0),
		SESFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		SESFromName:      getEnv("SES_FROM_NAME", "Hanzi Drill"),
		DigestEmail:      getEnv("DIGEST_EMAIL", ""),
		AWSRegion:        getEnv("AWS_REGION", "eu-west-1"),

		BackupDir: getEnv("BACKUP_DIR", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
