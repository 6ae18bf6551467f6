package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Server holds HTTP server settings
type Server struct {
	Host string `yaml:"host" env:"SERVER_HOST"`
	Port int    `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
}

// Redis holds Redis backend settings
type Redis struct {
	URL          string `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int    `yaml:"pool_size" env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int    `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
}

// Postgres holds Postgres backend settings
type Postgres struct {
	DSN          string `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"POSTGRES_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"POSTGRES_MAX_IDLE_CONNS" env-default:"2"`
}

// Auth holds auth service settings
type Auth struct {
	SessionDuration time.Duration `yaml:"session_duration" env:"SESSION_DURATION" env-default:"24h"`
}

// Config is the full application configuration
type Config struct {
	// StorageType selects the backend: memory, redis or postgres
	StorageType string   `yaml:"storage_type" env:"STORAGE_TYPE" env-default:"memory"`
	LogLevel    string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Server      Server   `yaml:"server"`
	Redis       Redis    `yaml:"redis"`
	Postgres    Postgres `yaml:"postgres"`
	Auth        Auth     `yaml:"auth"`
}

// Load reads configuration from the YAML file named by CONFIG_PATH, with
// environment variables overriding. With no CONFIG_PATH set, configuration
// comes from the environment alone.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	return &cfg, nil
}
