package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Cache      CacheConfig      `yaml:"cache"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CacheConfig contains cache-related configuration
type CacheConfig struct {
	TTL    string `yaml:"ttl"`
	Folder string `yaml:"folder"`
}

// SimulationConfig configures the simulated API client
type SimulationConfig struct {
	Latency   string   `yaml:"latency"`
	Endpoints []string `yaml:"endpoints"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional rotating log file
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Set defaults
	if config.Cache.TTL == "" {
		config.Cache.TTL = "300s"
	}
	if config.Simulation.Latency == "" {
		config.Simulation.Latency = "0s"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return &config, nil
}

// GetCacheTTL parses and returns the cache TTL duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.TTL)
}

// GetSimLatency parses and returns the artificial fetch latency
func (c *Config) GetSimLatency() (time.Duration, error) {
	return time.ParseDuration(c.Simulation.Latency)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Cache.Folder == "" {
		return fmt.Errorf("cache folder is required")
	}

	ttl, err := c.GetCacheTTL()
	if err != nil {
		return fmt.Errorf("invalid cache TTL format: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", c.Cache.TTL)
	}

	latency, err := c.GetSimLatency()
	if err != nil {
		return fmt.Errorf("invalid simulation latency format: %w", err)
	}
	if latency < 0 {
		return fmt.Errorf("simulation latency must not be negative, got: %s", c.Simulation.Latency)
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}
