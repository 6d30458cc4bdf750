package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const configFile = ".disclose/config.json"

// Environment overrides. They take priority over the config file.
const (
	EnvHoverDelayMS = "DISCLOSE_HOVER_DELAY_MS"
	EnvLogLevel     = "DISCLOSE_LOG_LEVEL"
	EnvLogFile      = "DISCLOSE_LOG_FILE"
)

// Defaults applied when neither the environment nor the file sets a value.
const (
	DefaultHoverDelayMS = 50
	DefaultLogLevel     = "info"
	MaxHoverDelayMS     = 5000
)

// Config is the persisted configuration.
type Config struct {
	// HoverDelayMS is the hover debounce delay. Nil means unset.
	HoverDelayMS *int   `json:"hover_delay_ms,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
	LogFile      string `json:"log_file,omitempty"`
}

// HoverDelay returns the configured delay, or the default.
func (c *Config) HoverDelay() time.Duration {
	if c == nil || c.HoverDelayMS == nil {
		return DefaultHoverDelayMS * time.Millisecond
	}
	return time.Duration(*c.HoverDelayMS) * time.Millisecond
}

// SetHoverDelayMS sets the hover delay in milliseconds.
func (c *Config) SetHoverDelayMS(ms int) {
	c.HoverDelayMS = &ms
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.HoverDelayMS != nil && (*c.HoverDelayMS < 0 || *c.HoverDelayMS > MaxHoverDelayMS) {
		return &ValidationError{
			Field:  "hover_delay_ms",
			Value:  strconv.Itoa(*c.HoverDelayMS),
			Reason: fmt.Sprintf("must be between 0 and %d", MaxHoverDelayMS),
		}
	}
	if c.LogLevel != "" {
		switch c.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return &ValidationError{Field: "log_level", Value: c.LogLevel, Reason: "must be debug, info, warn or error"}
		}
	}
	return nil
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk. A missing file yields an empty config.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	configPath := Path(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: temp file + rename
	tmp, err := os.CreateTemp(filepath.Dir(configPath), "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Resolve loads the file config and applies environment overrides and
// defaults.
// Priority: env > project-local config > defaults.
func Resolve(baseDir string) (*Config, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvHoverDelayMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ValidationError{Field: EnvHoverDelayMS, Value: v, Reason: "not an integer"}
		}
		cfg.SetHoverDelayMS(ms)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}

	if cfg.HoverDelayMS == nil {
		cfg.SetHoverDelayMS(DefaultHoverDelayMS)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetHoverDelay persists a new hover delay.
func SetHoverDelay(baseDir string, ms int) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.SetHoverDelayMS(ms)
	return Save(baseDir, cfg)
}
