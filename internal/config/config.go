// Package config provides centralized configuration loaded from environment
// variables. The API binary is the only consumer.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names, matching internal/db/migrations
// --------------------------------------------------------------------------

const (
	PlayersTable           = "players"
	TeamsTable             = "teams"
	TeamsPlayersTable      = "teams_players"
	GameTable              = "game"
	PlayerGameStatsTable   = "player_game_stats"
	LineupTable            = "lineup_configuration"
	PlayerLineupsTable     = "player_lineups"
	GamePlansTable         = "game_plans"
	DraftEvaluationsTable  = "draft_evaluations"
	UsersTable             = "users"
	DataLoadsTable         = "data_loads"
	ErrorLogsTable         = "error_logs"
	DataErrorsTable        = "data_errors"
	ValidationReportsTable = "validation_reports"
	CleanupScheduleTable   = "cleanup_schedule"
	CleanupHistoryTable    = "cleanup_history"
	SystemLogsTable        = "system_logs"
	QuarterScoresTable     = "game_quarter_scores"
	ClutchStatsTable       = "team_clutch_stats"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration
	MigrateOnStart bool

	// Process-wide secret. Not used to verify requests; see the login handler.
	SecretKey string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string // text, json

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Analytics and data quality knobs
	RecentGamesLimit           int
	ValidationWarningThreshold float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBHost:         envOr("DB_HOST", "localhost"),
		DBPort:         envInt("DB_PORT", 5432),
		DBUser:         envOr("DB_USER", ""),
		DBPassword:     envOr("DB_PASSWORD", ""),
		DBName:         envOr("DB_NAME", ""),
		DBSSLMode:      envOr("DB_SSLMODE", "disable"),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		MigrateOnStart: envBool("MIGRATE_ON_START", true),

		SecretKey: envOr("SECRET_KEY", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 5000)),
		Environment: envOr("ENVIRONMENT", "development"),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:8501",
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		RecentGamesLimit:           envInt("RECENT_GAMES_LIMIT", 25),
		ValidationWarningThreshold: envFloat("VALIDATION_WARNING_THRESHOLD", 0.05),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
		return fmt.Errorf("DATABASE_URL or DB_USER and DB_NAME must be set")
	}
	if c.ValidationWarningThreshold <= 0 || c.ValidationWarningThreshold > 1 {
		return fmt.Errorf("VALIDATION_WARNING_THRESHOLD must be in (0, 1], got %v", c.ValidationWarningThreshold)
	}
	if c.RecentGamesLimit <= 0 {
		return fmt.Errorf("RECENT_GAMES_LIMIT must be positive, got %d", c.RecentGamesLimit)
	}
	if c.RateLimitEnabled && (c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	if c.IsProduction() && c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

// DSN returns the connection string for the pool. DATABASE_URL wins over the
// individual DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
