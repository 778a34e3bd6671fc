package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Identity provider
	KratosPublicURL string        `yaml:"kratos_public_url"`
	KratosAdminURL  string        `yaml:"kratos_admin_url"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`

	// CORS
	CORSOrigin         string `yaml:"cors_origin"`
	CORSMethods        string `yaml:"cors_methods"`
	CORSAllowedHeaders string `yaml:"cors_allowed_headers"`

	// Rate limiting
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	// Request body size cap
	BodyLimit string `yaml:"body_limit"`
}

// Load reads configuration from environment variables, with an optional YAML
// overlay named by CONFIG_FILE applied first so env vars always win.
func Load() (*Config, error) {
	config := &Config{
		Port:               "8888",
		Host:               "0.0.0.0",
		LogLevel:           "info",
		ProviderTimeout:    30 * time.Second,
		CORSOrigin:         "*",
		CORSMethods:        "GET,POST,PATCH,DELETE,OPTIONS",
		CORSAllowedHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
		RateLimitRequests:  200,
		RateLimitWindow:    15 * time.Minute,
		BodyLimit:          "10M",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	config.Port = getEnvOrDefault("PORT", config.Port)
	config.Host = getEnvOrDefault("HOST", config.Host)
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)

	if v := os.Getenv("KRATOS_PUBLIC_URL"); v != "" {
		config.KratosPublicURL = v
	}
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	if v := os.Getenv("KRATOS_ADMIN_URL"); v != "" {
		config.KratosAdminURL = v
	}
	if config.KratosAdminURL == "" {
		return nil, fmt.Errorf("KRATOS_ADMIN_URL is required")
	}

	var err error
	if config.ProviderTimeout, err = getDurationEnv("PROVIDER_TIMEOUT", config.ProviderTimeout); err != nil {
		return nil, err
	}

	config.CORSOrigin = getEnvOrDefault("CORS_ORIGIN", config.CORSOrigin)
	config.CORSMethods = getEnvOrDefault("CORS_METHODS", config.CORSMethods)
	config.CORSAllowedHeaders = getEnvOrDefault("CORS_ALLOWED_HEADERS", config.CORSAllowedHeaders)

	if config.RateLimitRequests, err = getIntEnv("RATE_LIMIT_REQUESTS", config.RateLimitRequests); err != nil {
		return nil, err
	}
	if config.RateLimitWindow, err = getDurationEnv("RATE_LIMIT_WINDOW", config.RateLimitWindow); err != nil {
		return nil, err
	}

	config.BodyLimit = getEnvOrDefault("BODY_LIMIT", config.BodyLimit)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "warning", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.RateLimitRequests < 1 {
		return fmt.Errorf("rate limit requests must be positive, got: %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow < time.Second {
		return fmt.Errorf("rate limit window must be at least 1 second, got: %v", c.RateLimitWindow)
	}
	if c.ProviderTimeout < time.Second {
		return fmt.Errorf("provider timeout must be at least 1 second, got: %v", c.ProviderTimeout)
	}

	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
