package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"

	devSessionSecret = "pushr-dev-secret"
)

type Config struct {
	Port          string        `env:"PORT,              default=8080"`
	Env           string        `env:"ENV,               default=development"`
	LogLevel      string        `env:"LOG_LEVEL,         default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	TokenTTL      time.Duration `env:"SESSION_TOKEN_TTL, default=24h"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	AuthLatency            time.Duration `env:"AUTH_LATENCY,                      default=1500ms"`
	InitialFloat           int           `env:"PUSHER_INITIAL_FLOAT,              default=5"`
	KeepOnboardingOnLogout bool          `env:"SESSION_KEEP_ONBOARDING_ON_LOGOUT, default=false"`
	Workers                int           `env:"SESSION_WORKERS,                   default=8"`
	TTL                    time.Duration `env:"SESSION_TTL,                       default=24h"`
	StoreBackend           string        `env:"STORE_BACKEND,                     default=memory"`
	JournalBackend         string        `env:"JOURNAL_BACKEND,                   default=memory"`
	JournalCapacity        int           `env:"JOURNAL_CAPACITY,                  default=256"`
}

// pendingMargin covers a slow store round trip after the simulated delay.
const pendingMargin = 30 * time.Second

// PendingTTL bounds how long a login or signup may hold the pending flag.
// It always exceeds AuthLatency.
func (s SessionConfig) PendingTTL() time.Duration {
	if s.AuthLatency < 0 {
		return pendingMargin
	}
	return s.AuthLatency + pendingMargin
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pushr"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads .env.<ENV> and .env when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotEnv(os.Getenv("ENV")); err != nil {
		return nil, err
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv reads .env.<ENV> then .env. Neither overrides a variable that
// is already set, so the environment-specific file wins.
func loadDotEnv(env string) error {
	if env == "" {
		env = "development"
	}
	for _, name := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "test"
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Session.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.Session.StoreBackend)
	}
	switch c.Session.JournalBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: JOURNAL_BACKEND must be %q or %q, got %q", BackendMemory, BackendMongo, c.Session.JournalBackend)
	}
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET is required outside development")
	}
	if c.Session.AuthLatency < 0 {
		return errors.New("config: AUTH_LATENCY cannot be negative")
	}
	return nil
}
