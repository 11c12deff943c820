// Package config loads tradecalc settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tradecalc/internal/units"
	"github.com/dshills/tradecalc/pkg/types"
)

// Environment overrides, applied after the file
const (
	EnvAddr        = "TRADECALC_ADDR"
	EnvLogLevel    = "TRADECALC_LOG_LEVEL"
	EnvDefaultUnit = "TRADECALC_DEFAULT_UNIT"
	EnvPrecision   = "TRADECALC_PRECISION"
	EnvCacheSize   = "TRADECALC_CACHE_SIZE"
)

var (
	ErrInvalidAddr      = errors.New("server.addr is required")
	ErrInvalidTimeout   = errors.New("server timeouts must be positive")
	ErrInvalidBodyLimit = errors.New("server.max_body_bytes must be positive")
	ErrInvalidPrecision = errors.New("calc.default_precision must be between 1 and calc.max_precision")
	ErrInvalidBatch     = errors.New("calc.batch_workers and calc.max_batch_size must be positive")
	ErrInvalidCacheSize = errors.New("calc.cache_size cannot be negative")
	ErrInvalidLogLevel  = errors.New("logging.level must be debug, info, warn or error")
	ErrInvalidLogFormat = errors.New("logging.format must be json or console")
)

// Config is the full application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Calc    CalcConfig    `yaml:"calc"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

// CalcConfig configures request dispatch
type CalcConfig struct {
	DefaultUnit      string `yaml:"default_unit"`
	DefaultPrecision int    `yaml:"default_precision"`
	MaxPrecision     int    `yaml:"max_precision"`
	BatchWorkers     int    `yaml:"batch_workers"`
	MaxBatchSize     int    `yaml:"max_batch_size"`
	CacheSize        int    `yaml:"cache_size"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Calc: CalcConfig{
			DefaultUnit:      string(types.UnitInch),
			DefaultPrecision: types.DefaultPrecision,
			MaxPrecision:     256,
			BatchWorkers:     4,
			MaxBatchSize:     100,
			CacheSize:        1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides through getenv. An empty path skips the file.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := getenv(EnvDefaultUnit); v != "" {
		c.Calc.DefaultUnit = v
	}
	if v := getenv(EnvPrecision); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		c.Calc.DefaultPrecision = n
	}
	if v := getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheSize, err)
		}
		c.Calc.CacheSize = n
	}
	return nil
}

// Validate checks every section and normalises the default unit
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return ErrInvalidAddr
	}
	if c.Server.ReadHeaderTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Server.MaxBodyBytes <= 0 {
		return ErrInvalidBodyLimit
	}

	u, err := units.Parse(c.Calc.DefaultUnit)
	if err != nil {
		return fmt.Errorf("calc.default_unit: %w", err)
	}
	c.Calc.DefaultUnit = string(u)

	if c.Calc.MaxPrecision < 1 || c.Calc.DefaultPrecision < 1 || c.Calc.DefaultPrecision > c.Calc.MaxPrecision {
		return ErrInvalidPrecision
	}
	if c.Calc.BatchWorkers < 1 || c.Calc.MaxBatchSize < 1 {
		return ErrInvalidBatch
	}
	if c.Calc.CacheSize < 0 {
		return ErrInvalidCacheSize
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return ErrInvalidLogFormat
	}
	return nil
}
