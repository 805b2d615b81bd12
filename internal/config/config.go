// Package config loads the server configuration from YAML with
// environment variable overrides for deploy-time values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default configuration file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`
	BaseURL  string `yaml:"baseURL"`

	// Persistence: a JSON snapshot file for single-node deployments or a
	// Postgres URL. Exactly one backend is selected at startup; the
	// database wins when both are set.
	DataFile    string `yaml:"dataFile"`
	DatabaseURL string `yaml:"databaseURL"`

	// Unlock token backend. A secret switches to stateless JWT tokens, a
	// Redis address to shared server-side tokens; otherwise in-memory.
	UnlockSecret     string `yaml:"unlockSecret"`
	RedisAddr        string `yaml:"redisAddr"`
	RedisPassword    string `yaml:"redisPassword"`
	UnlockTTLMinutes int    `yaml:"unlockTTLMinutes"`

	AMQPURL string `yaml:"amqpURL"`

	// Image storage: local directory by default, MinIO when an endpoint
	// is configured.
	MediaDir       string `yaml:"mediaDir"`
	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	RenderCacheTTLSeconds int   `yaml:"renderCacheTTLSeconds"`
	MaxUploadBytes        int64 `yaml:"maxUploadBytes"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("SITEFORGE_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SITEFORGE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SITEFORGE_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("SITEFORGE_UNLOCK_SECRET"); v != "" {
		cfg.UnlockSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.AMQPURL = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v == "true" {
		cfg.MinioUseSSL = true
	}
	if v := os.Getenv("SITEFORGE_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.BaseURL == "" {
		return errors.New("config: baseURL is required (set in config.yaml)")
	}
	if cfg.DataFile == "" && cfg.DatabaseURL == "" {
		return errors.New("config: dataFile or databaseURL is required (set in config.yaml)")
	}
	if cfg.MinioEndpoint != "" {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return errors.New("config: minioAccessKey, minioSecretKey and minioBucket are required when minioEndpoint is set")
		}
	}
	if cfg.MediaDir == "" && cfg.MinioEndpoint == "" {
		return errors.New("config: mediaDir or minioEndpoint is required (set in config.yaml)")
	}
	return nil
}
