package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env     string
	APIPort string
	WebPort string
	// BaseURL is the externally visible address of the web front-end,
	// used to build email confirmation links.
	BaseURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	JWTExpirationDur time.Duration

	// Account lockout
	LockoutMaxAttempts int
	LockoutDuration    time.Duration

	// Lifespan of email confirmation and password reset tokens
	IdentityTokenLifespan time.Duration

	// SMTP
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Scheduled jobs
	PriceAlertSchedule string

	// Password given to the seeded default accounts on an empty database
	SeedUserPassword string

	// File storage
	UploadDir string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:     getEnv("ENV", "development"),
		APIPort: getEnv("API_PORT", "8080"),
		WebPort: getEnv("WEB_PORT", "8081"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8081"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "investapp"),
		DBPassword: getEnv("DB_PASSWORD", "investapp"),
		DBName:     getEnv("DB_NAME", "investapp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:   getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer:   getEnv("JWT_ISSUER", "investapp-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "investapp-clients"),

		// Lockout
		LockoutMaxAttempts: getEnvInt("LOCKOUT_MAX_ATTEMPTS", 5),

		// SMTP
		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@investapp.local"),

		// Jobs: nightly at 23:30 by default
		PriceAlertSchedule: getEnv("PRICE_ALERT_SCHEDULE", "30 23 * * *"),

		SeedUserPassword: getEnv("SEED_USER_PASSWORD", "123Pa$$word!"),

		// File storage
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	config.JWTExpirationDur = getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.LockoutDuration = getEnvDuration("LOCKOUT_DURATION", 5*time.Minute)
	config.IdentityTokenLifespan = getEnvDuration("IDENTITY_TOKEN_LIFESPAN", 12*time.Hour)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set overrides the application configuration. Intended for tests.
func Set(c *Config) {
	appConfig = c
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
