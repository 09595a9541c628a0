// Package config loads the service configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/airline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/transcription"
)

// Config represents the application configuration.
type Config struct {
	Server        ServerConfig         `toml:"server"`
	Logging       LoggingConfig        `toml:"logging"`
	Registry      airline.Config       `toml:"registry"`
	Storage       StorageConfig        `toml:"storage"`
	Transcription transcription.Config `toml:"transcription"`
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"`
	MaxUploadBytes     int64    `toml:"max_upload_bytes"`
}

// LoggingConfig represents the logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// StorageConfig represents the command log storage configuration.
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeoutSecs:  15,
			WriteTimeoutSecs: 60,
			MaxUploadBytes:   16 << 20, // 16 MiB of recorded audio
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Registry: airline.Config{
			CSVPath:             "configs/airlines.csv",
			AcceptanceThreshold: airline.DefaultThreshold,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "pilotchat.db",
		},
		Transcription: transcription.Config{
			Model:          "whisper-1",
			Language:       "en",
			TimeoutSeconds: 30,
		},
	}
}

// Load reads the configuration file at the given path, applying
// defaults for anything the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Registry.CSVPath == "" {
		return fmt.Errorf("registry csv_path is required")
	}
	if c.Registry.AcceptanceThreshold < 0 || c.Registry.AcceptanceThreshold > 1 {
		return fmt.Errorf("acceptance_threshold %f outside [0,1]", c.Registry.AcceptanceThreshold)
	}
	if c.Storage.Enabled && c.Storage.DBPath == "" {
		return fmt.Errorf("storage db_path is required when storage is enabled")
	}
	return nil
}
