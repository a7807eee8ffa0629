package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"rentroll"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"postgres"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"rentroll"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	JWT struct {
		Secret string        `envconfig:"JWT_SECRET" required:"true"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
