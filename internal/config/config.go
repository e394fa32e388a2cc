package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Gemini     GeminiConfig
	Search     SearchConfig
	Email      EmailConfig
	Dispatcher DispatcherConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey  string
	Timeout time.Duration
}

type SearchConfig struct {
	APIKey        string
	BaseURL       string
	DefaultRegion string
	Country       string
	MaxPages      int
	Timeout       time.Duration
}

// EmailConfig selects exactly one transport via Provider: "emailjs",
// "resend" or "smtp".
type EmailConfig struct {
	Provider string
	Timeout  time.Duration

	// EmailJS
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	// Resend
	ResendAPIKey string

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromAddress  string
}

type DispatcherConfig struct {
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "careersync"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "45s"),
		},
		Search: SearchConfig{
			APIKey:        getEnv("SERPAPI_KEY", ""),
			BaseURL:       getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json"),
			DefaultRegion: getEnv("SEARCH_DEFAULT_REGION", "India"),
			Country:       getEnv("SEARCH_COUNTRY", "in"),
			MaxPages:      getEnvAsInt("SEARCH_MAX_PAGES", 4),
			Timeout:       getEnvAsDuration("SEARCH_TIMEOUT", "20s"),
		},
		Email: EmailConfig{
			Provider:          getEnv("EMAIL_PROVIDER", "emailjs"),
			Timeout:           getEnvAsDuration("EMAIL_TIMEOUT", "30s"),
			EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
			EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
			EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
			EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
			ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
			SMTPHost:          getEnv("MAIL_SERVER", "smtp.gmail.com"),
			SMTPPort:          getEnv("MAIL_PORT", "587"),
			SMTPUsername:      getEnv("MAIL_USERNAME", ""),
			SMTPPassword:      getEnv("MAIL_PASSWORD", ""),
			FromAddress:       getEnv("MAIL_FROM", "reports@careersync.app"),
		},
		Dispatcher: DispatcherConfig{
			Concurrency: getEnvAsInt("EMAIL_WORKER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("EMAIL_QUEUE_SIZE", 100),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
