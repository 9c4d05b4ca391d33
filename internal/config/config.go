package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Segment sources.
const (
	SegmentSourceHTTP     = "http"
	SegmentSourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Segment  SegmentConfig
	Database DatabaseConfig
	Seed     SeedConfig
	S3       S3Config
	Kafka    KafkaConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" env-default:"9001"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"` // "json" or "console"
}

// SegmentConfig selects where customer segments are looked up.
type SegmentConfig struct {
	Source    string   `env:"SEGMENT_SOURCE" env-default:"http"`
	BaseURL   string   `env:"SEGMENT_BASE_URL" env-default:"http://localhost:1080"`
	TimeoutMS int      `env:"SEGMENT_TIMEOUT_MS" env-default:"2000"`
	Segments  []string `env:"SEGMENTS" env-default:"p1,p2,p3" env-separator:","`
}

// DatabaseConfig holds database-related configuration. Only used when
// segments are read from Postgres.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" env-default:"localhost"`
	Port            int    `env:"DB_PORT" env-default:"5432"`
	User            string `env:"DB_USER" env-default:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" env-default:"cartoffer"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" env-default:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" env-default:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" env-default:"300"` // seconds
}

// SeedConfig lists offer files loaded at startup.
type SeedConfig struct {
	Enabled bool     `env:"SEED_ENABLED" env-default:"false"`
	Files   []string `env:"SEED_FILES" env-separator:","`
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool   `env:"S3_ENABLED" env-default:"false"`
	Bucket  string `env:"S3_BUCKET"`
	Region  string `env:"S3_REGION" env-default:"us-east-1"`
	Prefix  string `env:"S3_PREFIX" env-default:"offers/"` // Path prefix within bucket
}

// KafkaConfig holds offer event publishing configuration.
type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	Topic   string   `env:"KAFKA_TOPIC" env-default:"offer-events"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" env-default:"true"`
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	return LoadWithDotenv(".env")
}

// LoadWithDotenv is Load with an explicit .env path. A missing file is not
// an error; variables already set in the environment win.
func LoadWithDotenv(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.Segment.Segments = trimAll(cfg.Segment.Segments)
	cfg.Seed.Files = trimAll(cfg.Seed.Files)
	cfg.Kafka.Brokers = trimAll(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Segment.TimeoutMS < 1 {
		return fmt.Errorf("segment timeout must be at least 1ms")
	}

	if len(c.Segment.Segments) == 0 {
		return fmt.Errorf("at least one customer segment is required")
	}

	switch c.Segment.Source {
	case SegmentSourceHTTP:
		if c.Segment.BaseURL == "" {
			return fmt.Errorf("segment base URL is required when segment source is http")
		}
	case SegmentSourcePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid segment source: %s (must be http or postgres)", c.Segment.Source)
	}

	if c.Seed.Enabled && len(c.Seed.Files) == 0 {
		return fmt.Errorf("seed files are required when seeding is enabled")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka topic is required when kafka is enabled")
		}
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Timeout returns the segment lookup budget.
func (c *SegmentConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// trimAll drops surrounding whitespace and empty entries.
func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
