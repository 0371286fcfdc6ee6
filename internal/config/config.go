// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Filename string `yaml:"filename"`
}

type EmailConfig struct {
	Region string `yaml:"region"`
	Sender string `yaml:"sender"`
	// Loaded from environment
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

type DigestConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		StaticDir   string `yaml:"static_dir"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Email    EmailConfig    `yaml:"email"`
	Digest   DigestConfig   `yaml:"digest"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns an environment-driven configuration for running without a
// config file (local development, containers).
func Default() *Config {
	// .env is optional here
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.App.Name = "teambook"
	cfg.App.Environment = getEnv("ENVIRONMENT", "development")
	cfg.App.Port = getEnvAsInt("PORT", 3000)
	cfg.App.StaticDir = getEnv("STATIC_DIR", "public")
	cfg.Database.Filename = getEnv("DATABASE_FILE", "data/teambook.db")
	cfg.Digest.Enabled = getEnv("DIGEST_ENABLED", "") == "true"
	cfg.Digest.Cron = getEnv("DIGEST_CRON", "0 6 * * *")
	cfg.loadEnv()
	return cfg
}

func (c *Config) loadEnv() {
	c.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	c.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	c.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	if c.Email.Region == "" {
		c.Email.Region = os.Getenv("AWS_REGION")
	}
	if c.Email.Sender == "" {
		c.Email.Sender = os.Getenv("EMAIL_SENDER")
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	return nil
}

// EmailConfigured reports whether SES delivery can be initialized.
func (c *Config) EmailConfigured() bool {
	return c.Email.AccessKeyID != "" && c.Email.SecretAccessKey != "" &&
		c.Email.Region != "" && c.Email.Sender != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
