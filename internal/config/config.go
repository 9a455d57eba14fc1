package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port                string
	Environment         string
	LogFilePath         string
	ActivityLogFilePath string
	NatsURL             string // empty disables event forwarding
	ActivityTopic       string
	BodyLimit           int
	PasswordHashCost    int
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string
}

type SessionConfig struct {
	Store        string // "memory" or "redis"
	RedisURL     string
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	environment := getEnv("GO_ENV", "development")

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			Environment:         environment,
			LogFilePath:         getEnv("LOG_FILE_PATH", "logs/app.log"),
			ActivityLogFilePath: getEnv("ACTIVITY_LOG_FILE_PATH", "logs/activity.log"),
			NatsURL:             getEnv("NATS_URL", ""),
			ActivityTopic:       getEnv("ACTIVITY_TOPIC", "NOTE_ACTIVITY"),
			BodyLimit:           getEnvAsInt("BODY_LIMIT", 1024*1024),
			PasswordHashCost:    getEnvAsInt("PASSWORD_HASH_COST", 10),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", "notes.db"),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", "memory"),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session_id"),
			TTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", environment == "production"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "notes-web"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}
