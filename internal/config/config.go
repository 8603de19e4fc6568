package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/layerkit/psimport/pkg/photoshop"
)

// Config holds all application configuration
type Config struct {
	// Host automation
	ProgID string `mapstructure:"prog-id"`
	DryRun bool   `mapstructure:"dry-run"`

	// Document created when none is active
	DocWidth      float64 `mapstructure:"doc-width"`
	DocHeight     float64 `mapstructure:"doc-height"`
	DocResolution float64 `mapstructure:"doc-resolution"`
	DocName       string  `mapstructure:"doc-name"`

	// Placement
	PlaceLinked bool  `mapstructure:"place-linked"`
	MaxFileSize int64 `mapstructure:"max-file-size"`

	// FSM store; empty means a temporary directory per run
	FSMDBPath string `mapstructure:"fsm-db-path"`

	// Interactive mode
	DialogTitle string `mapstructure:"dialog-title"`

	LogLevel string `mapstructure:"log-level"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prog-id", photoshop.DefaultProgID)
	v.SetDefault("dry-run", false)
	v.SetDefault("doc-width", photoshop.DefaultWidth)
	v.SetDefault("doc-height", photoshop.DefaultHeight)
	v.SetDefault("doc-resolution", photoshop.DefaultResolution)
	v.SetDefault("doc-name", photoshop.DefaultName)
	v.SetDefault("place-linked", false)
	v.SetDefault("max-file-size", 2*1024*1024*1024)
	v.SetDefault("fsm-db-path", "")
	v.SetDefault("dialog-title", "Select images")
	v.SetDefault("log-level", "info")
}

// Load reads configuration from environment, config file, and defaults
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against a specific viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	// Environment variables (will be PSIMPORT_DOC_WIDTH, etc.)
	v.SetEnvPrefix("PSIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.psimport")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	if c.ProgID == "" {
		return fmt.Errorf("prog-id cannot be empty")
	}
	if c.DocWidth <= 0 {
		return fmt.Errorf("doc-width must be positive")
	}
	if c.DocHeight <= 0 {
		return fmt.Errorf("doc-height must be positive")
	}
	if c.DocResolution <= 0 {
		return fmt.Errorf("doc-resolution must be positive")
	}
	if c.DocName == "" {
		return fmt.Errorf("doc-name cannot be empty")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size must be non-negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log-level must be one of debug, info, warn, error")
	}
	return nil
}

// DocumentSpec returns the spec for documents created when none is active.
func (c *Config) DocumentSpec() photoshop.DocumentSpec {
	return photoshop.DocumentSpec{
		Width:      c.DocWidth,
		Height:     c.DocHeight,
		Resolution: c.DocResolution,
		Name:       c.DocName,
	}
}
