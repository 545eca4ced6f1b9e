package config

import (
	"fmt"
	"strings"

	"go-parts-inventory/pkg/database"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is sourced from environment variables (loaded from .env for local runs)
type Config struct {
	AppName  string `envconfig:"APP_NAME" default:"Phone Parts Inventory API"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"3000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database. DB_TYPE "auto" picks postgres when DATABASE_URL or DB_HOST is set.
	DBType      string `envconfig:"DB_TYPE" default:"auto"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`
	DBTimeZone  string `envconfig:"DB_TIMEZONE" default:"UTC"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"inventory.db"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:9000,http://127.0.0.1:9000,http://127.0.0.1:5173,http://localhost:3000"`
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set.
func LoadEnvFiles(files ...string) error {
	return godotenv.Load(files...)
}

// Load populates Config from the process environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Database resolves the driver and DSN from the database settings
func (c *Config) Database() (database.Config, error) {
	url := strings.TrimSpace(c.DatabaseURL)

	switch strings.ToLower(c.DBType) {
	case database.DriverSQLite:
		path := c.SQLitePath
		if p, ok := sqlitePath(url); ok {
			path = p
		}
		return database.Config{Driver: database.DriverSQLite, DSN: path}, nil
	case database.DriverPostgres:
		return c.postgres(url)
	case "auto", "":
		if p, ok := sqlitePath(url); ok {
			return database.Config{Driver: database.DriverSQLite, DSN: p}, nil
		}
		if url != "" || c.DBHost != "" {
			return c.postgres(url)
		}
		return database.Config{Driver: database.DriverSQLite, DSN: c.SQLitePath}, nil
	default:
		return database.Config{}, fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
}

func (c *Config) postgres(url string) (database.Config, error) {
	if url != "" {
		return database.Config{Driver: database.DriverPostgres, DSN: normalizePostgresURL(url)}, nil
	}
	if c.DBHost == "" {
		return database.Config{}, fmt.Errorf("postgres requires DATABASE_URL or DB_HOST")
	}
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone,
	)
	return database.Config{Driver: database.DriverPostgres, DSN: dsn}, nil
}

// sqlitePath accepts SQLAlchemy style "sqlite:///./file.db" URLs
func sqlitePath(url string) (string, bool) {
	if !strings.HasPrefix(url, "sqlite://") {
		return "", false
	}
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		path = ":memory:"
	}
	return path, true
}

// normalizePostgresURL drops SQLAlchemy driver suffixes like "+psycopg2"
func normalizePostgresURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if base, _, found := strings.Cut(scheme, "+"); found {
		scheme = base
	}
	if scheme == "postgresql" {
		scheme = "postgres"
	}
	return scheme + "://" + rest
}
