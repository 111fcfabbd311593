// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DateLayout is the calendar date format used for season bounds.
const DateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required for the API server).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// MySQL Statcast mirror – used only by cmd/import -source mysql.
	MySQLDSN string

	// Optional Redis backend for the sportsbook line cache.
	RedisURL string

	// Event window evaluated on every run. A zero SeasonEnd follows the current date.
	SeasonStart time.Time
	SeasonEnd   time.Time

	// Name of the evaluate threshold profile ("standard" or "dashboard-v2").
	ThresholdProfile string

	LinesCacheTTL       time.Duration
	HTTPTimeout         time.Duration
	DKRequestsPerSecond float64
}

// Load reads configuration for the API server. JWT_SECRET is mandatory.
func Load() *Config {
	cfg := load()
	cfg.validate(true)
	return cfg
}

// LoadCLI reads configuration for the command-line tools, which never sign tokens.
func LoadCLI() *Config {
	cfg := load()
	cfg.validate(false)
	return cfg
}

func load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "mlb")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "mlbprops")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SEASON_START", "2025-03-27")
	v.SetDefault("SEASON_END", "")
	v.SetDefault("THRESHOLD_PROFILE", "standard")
	v.SetDefault("LINES_CACHE_TTL", "15m")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("DK_REQUESTS_PER_SECOND", 0.5)

	cfg := &Config{
		DatabaseURL:         v.GetString("DATABASE_URL"),
		DBUser:              v.GetString("DB_USER"),
		DBPass:              v.GetString("DB_PASS"),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBName:              v.GetString("DB_NAME"),
		DBSSLMode:           v.GetString("DB_SSLMODE"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		Debug:               v.GetBool("DEBUG"),
		Port:                v.GetString("PORT"),
		TLSDomains:          splitTrimmed(v.GetString("TLS_DOMAINS")),
		MySQLDSN:            v.GetString("MYSQL_DSN"),
		RedisURL:            v.GetString("REDIS_URL"),
		SeasonStart:         mustDate("SEASON_START", v.GetString("SEASON_START")),
		SeasonEnd:           optionalDate("SEASON_END", v.GetString("SEASON_END")),
		ThresholdProfile:    v.GetString("THRESHOLD_PROFILE"),
		LinesCacheTTL:       v.GetDuration("LINES_CACHE_TTL"),
		HTTPTimeout:         v.GetDuration("HTTP_TIMEOUT"),
		DKRequestsPerSecond: v.GetFloat64("DK_REQUESTS_PER_SECOND"),
	}

	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate(server bool) {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if server && c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if !c.SeasonEnd.IsZero() && c.SeasonEnd.Before(c.SeasonStart) {
		log.Fatalf("config: SEASON_END %s is before SEASON_START %s",
			c.SeasonEnd.Format(DateLayout), c.SeasonStart.Format(DateLayout))
	}
	if c.DKRequestsPerSecond <= 0 {
		log.Fatal("config: DK_REQUESTS_PER_SECOND must be positive")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func mustDate(key, s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		log.Fatalf("config: %s must be YYYY-MM-DD, got %q", key, s)
	}
	return t
}

func optionalDate(key, s string) time.Time {
	if strings.TrimSpace(s) == "" {
		return time.Time{}
	}
	return mustDate(key, s)
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
