package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends for validation records.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Server     Server
	Log        Log
	Store      Store
	Redis      RedisConfig
	Postgres   PostgresConfig
	Kafka      KafkaConfig
	Validation Validation
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"IDCHECK_ADDR" envDefault:":8080"`
	JWTSigningKey   string        `env:"IDCHECK_JWT_SIGNING_KEY"`
	ShutdownTimeout time.Duration `env:"IDCHECK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// AuthEnabled reports whether /v1 routes require a bearer token.
func (s Server) AuthEnabled() bool {
	return s.JWTSigningKey != ""
}

// Log selects the slog handler.
type Log struct {
	Level  string `env:"IDCHECK_LOG_LEVEL" envDefault:"info"`
	Format string `env:"IDCHECK_LOG_FORMAT" envDefault:"json"`
}

// Store selects where validation records are kept and for how long.
type Store struct {
	Backend   string        `env:"IDCHECK_STORE" envDefault:"memory"`
	ReportTTL time.Duration `env:"IDCHECK_REPORT_TTL" envDefault:"24h"`
}

// RedisConfig configures the Redis client used by the redis store.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// PostgresConfig configures the pgx pool used by the postgres store.
type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"DATABASE_MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"1h"`
	RetryAttempts   int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"2s"`
}

// KafkaConfig configures event publication. No brokers means no publishing.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"idcheck.validations"`
}

// Enabled reports whether a Kafka publisher should be built.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Validation tunes the validation service.
type Validation struct {
	AllowListFile    string `env:"IDCHECK_ALLOWLIST_FILE"`
	CheckUSStates    bool   `env:"IDCHECK_CHECK_US_STATES" envDefault:"false"`
	BatchConcurrency int    `env:"IDCHECK_BATCH_CONCURRENCY" envDefault:"8"`
	MaxBatchSize     int    `env:"IDCHECK_MAX_BATCH_SIZE" envDefault:"50"`
}

// Load reads a .env file when one exists and then parses the process
// environment.
func Load() (Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()
	return parse(env.Options{})
}

// FromMap parses configuration from vars instead of the process environment.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when IDCHECK_STORE=redis"))
		}
	case StorePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when IDCHECK_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IDCHECK_STORE %q", c.Store.Backend))
	}
	if c.Store.ReportTTL <= 0 {
		errs = append(errs, errors.New("IDCHECK_REPORT_TTL must be positive"))
	}
	if c.Validation.BatchConcurrency < 1 {
		errs = append(errs, errors.New("IDCHECK_BATCH_CONCURRENCY must be at least 1"))
	}
	if c.Validation.MaxBatchSize < 1 {
		errs = append(errs, errors.New("IDCHECK_MAX_BATCH_SIZE must be at least 1"))
	}
	return errors.Join(errs...)
}
