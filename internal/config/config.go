package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Profile sources
const (
	SourceNeo4j    = "neo4j"
	SourcePostgres = "postgres"
)

// defaultJWTSecret is only accepted while RM login is disabled
const defaultJWTSecret = "secret"

// Config holds application configuration
type Config struct {
	Port          string
	LogLevel      string
	ProfileSource string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
	Neo4jTimeout  time.Duration

	DBConn string

	JWTSecret      string
	RMUsername     string
	RMPasswordHash string

	CBRURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from an optional .env file and environment variables
func NewConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("NEO4J_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NEO4J_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		ProfileSource:  getEnv("PROFILE_SOURCE", SourceNeo4j),
		Neo4jURI:       getEnv("NEO4J_URI", "neo4j://localhost:7687"),
		Neo4jUser:      getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:  getEnv("NEO4J_PASSWORD", ""),
		Neo4jDatabase:  getEnv("NEO4J_DATABASE", ""),
		Neo4jTimeout:   timeout,
		DBConn:         getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=rm sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		RMUsername:     getEnv("RM_USERNAME", "rm"),
		RMPasswordHash: getEnv("RM_PASSWORD_HASH", ""),
		CBRURL:         getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "rm-dashboard@localhost"),
	}

	switch cfg.ProfileSource {
	case SourceNeo4j:
		if cfg.Neo4jURI == "" {
			return nil, fmt.Errorf("NEO4J_URI is required")
		}
	case SourcePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required")
		}
	default:
		return nil, fmt.Errorf("PROFILE_SOURCE must be %q or %q, got %q", SourceNeo4j, SourcePostgres, cfg.ProfileSource)
	}
	if cfg.AuthEnabled() && (cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret) {
		return nil, fmt.Errorf("JWT_SECRET must be set to a non-default value when RM_PASSWORD_HASH is set")
	}

	return cfg, nil
}

// AuthEnabled reports whether RM login is required
func (c *Config) AuthEnabled() bool {
	return c.RMPasswordHash != ""
}

// EmailEnabled reports whether analyses can be emailed
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
