package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
	Captcha  CaptchaConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/banki?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// CaptchaConfig controls server-side captcha enforcement at login.
// Disabled by default, matching the permissive behaviour the dashboard
// already expects.
type CaptchaConfig struct {
	Required bool `env:"CAPTCHA_REQUIRED, default=false"`
}

// AdminConfig describes the administrator seeded on first startup when the
// user table holds no ADMINISTRATOR row.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME,     default=Administrator"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@banki.com"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Development reports whether the service runs in development mode, in
// which error responses may include internal details.
func (c *Config) Development() bool {
	return c.Env == "development"
}
