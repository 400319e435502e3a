package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backends.
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultJWTSecret is the signing key used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

type Config struct {
	LogLevel     string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr     string    `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080"`
	WebDir       string    `yaml:"web-dir" env:"WEB_DIR" env-default:"./web"`
	StoreBackend string    `yaml:"store-backend" env:"STORE_BACKEND" env-default:"sqlite"`
	Redis        Redis     `yaml:"redis"`
	SQLitePath   string    `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"tictactoe.db"`
	JWTSecret    string    `yaml:"jwt-secret" env:"JWT_SECRET" env-default:"change-me"`
	Telemetry    Telemetry `yaml:"telemetry"`
	Game         Game      `yaml:"game"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint     string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	StdoutTraces bool   `yaml:"stdout-traces" env:"OTEL_STDOUT_TRACES" env-default:"false"`
}

type Game struct {
	DefaultSize   int           `yaml:"default-size" env:"GAME_DEFAULT_SIZE" env-default:"3"`
	MaxSize       int           `yaml:"max-size" env:"GAME_MAX_SIZE" env-default:"10"`
	ResetDelay    time.Duration `yaml:"reset-delay" env:"GAME_RESET_DELAY" env-default:"5s"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"1s"`
}

// Load reads the YAML file at path when it exists and applies environment
// overrides. Without a file only the environment and defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return config, config.validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	return config, config.validate()
}

// UsesDefaultJWTSecret reports whether tokens would be signed with the
// well-known default key.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendRedis, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.Game.MaxSize < 1 {
		return fmt.Errorf("game max size must be positive, got %d", c.Game.MaxSize)
	}
	if c.Game.DefaultSize < 1 || c.Game.DefaultSize > c.Game.MaxSize {
		return fmt.Errorf("game default size %d outside 1-%d", c.Game.DefaultSize, c.Game.MaxSize)
	}
	if c.Game.ResetDelay < 0 || c.Game.ComputerDelay < 0 {
		return errors.New("game delays must not be negative")
	}
	return nil
}
