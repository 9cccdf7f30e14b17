package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Backend     BackendConfig    `toml:"backend"`
	MarketData  MarketDataConfig `toml:"marketdata"`
	Auth        AuthConfig       `toml:"auth"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// BackendConfig contains settings for the remote query/RPC backend.
type BackendConfig struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
}

// MarketDataConfig contains settings for the third-party market-data API.
type MarketDataConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// AuthConfig contains session settings.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	CallbackURL string `toml:"callback_url"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode reports whether the portal runs with the dev login enabled.
func (c *Config) IsDevMode() bool {
	return c.Environment == "dev"
}

// BaseURL returns the externally visible base URL of this server.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies OPENHEDGE_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("OPENHEDGE_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("OPENHEDGE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("OPENHEDGE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if url := os.Getenv("OPENHEDGE_BACKEND_URL"); url != "" {
		config.Backend.URL = url
	}
	if key := os.Getenv("OPENHEDGE_BACKEND_ANON_KEY"); key != "" {
		config.Backend.AnonKey = key
	}
	if url := os.Getenv("OPENHEDGE_MARKETDATA_URL"); url != "" {
		config.MarketData.URL = url
	}
	if key := os.Getenv("OPENHEDGE_MARKETDATA_API_KEY"); key != "" {
		config.MarketData.APIKey = key
	}
	if secret := os.Getenv("OPENHEDGE_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if badgerPath := os.Getenv("OPENHEDGE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("OPENHEDGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
