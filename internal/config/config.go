package config

import (
    "errors"
    "fmt"
    "os"
    "time"

    "github.com/ilyakaznacheev/cleanenv"
)

// Config is read from an optional yaml file and the environment.
type Config struct {
    HTTPPort  string `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
    LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
    LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"console"`
    Game      Game   `yaml:"game"`
    Server    Server `yaml:"server"`
}

// Game holds session settings.
type Game struct {
    // LockHistory refuses moves while an earlier step is displayed.
    LockHistory   bool          `yaml:"lock-history" env:"LOCK_HISTORY" env-default:"false"`
    SessionTTL    time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"30m"`
    SweepInterval time.Duration `yaml:"sweep-interval" env:"SWEEP_INTERVAL" env-default:"1m"`
}

// Server holds HTTP server timeouts.
type Server struct {
    ReadTimeout     time.Duration `yaml:"read-timeout" env:"READ_TIMEOUT" env-default:"10s"`
    IdleTimeout     time.Duration `yaml:"idle-timeout" env:"IDLE_TIMEOUT" env-default:"30s"`
    Heartbeat       time.Duration `yaml:"heartbeat" env:"SSE_HEARTBEAT" env-default:"15s"`
    ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads path when it exists and the environment otherwise. Environment
// variables override file values in both cases.
func Load(path string) (*Config, error) {
    cfg := &Config{}

    if path != "" {
        if _, err := os.Stat(path); err == nil {
            if err := cleanenv.ReadConfig(path, cfg); err != nil {
                return nil, fmt.Errorf("unable to load config file: %w", err)
            }
            return cfg, nil
        } else if !errors.Is(err, os.ErrNotExist) {
            return nil, fmt.Errorf("stat config file: %w", err)
        }
    }

    if err := cleanenv.ReadEnv(cfg); err != nil {
        return nil, fmt.Errorf("unable to read env: %w", err)
    }
    return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
    cfg, err := Load(path)
    if err != nil {
        panic(err)
    }
    return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.HTTPPort }
