package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,   default=2160h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Mail     MailConfig
	Throttle ThrottleConfig
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/clinic?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"MAIL_FROM, default=noreply@clinicore.example"`
	AppURL       string `env:"APP_URL,   default=http://localhost:8080"`
	Workers      int    `env:"MAIL_WORKERS, default=4"`
}

type ThrottleConfig struct {
	Limit  int64         `env:"THROTTLE_LIMIT,  default=10"`
	Window time.Duration `env:"THROTTLE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Dev reports whether the process runs with development conveniences
// (pretty logs, mail logged instead of sent).
func (c *Config) Dev() bool {
	return c.Env == "development"
}
