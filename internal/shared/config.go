package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Dedupe      DedupeConfig      `toml:"dedupe"`
	HTTP        HTTPConfig        `toml:"http"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Deezer DeezerConfig `toml:"deezer"`
}

// DeezerConfig contains the Deezer session cookie and endpoint.
type DeezerConfig struct {
	SID     string `toml:"sid"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DedupeConfig holds the defaults for deduplication runs.
type DedupeConfig struct {
	Policy  string `toml:"policy"`
	DryRun  bool   `toml:"dry_run"`
	Workers int    `toml:"workers"`
}

// HTTPConfig configures the client used against the remote service.
type HTTPConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// Timeout returns the configured timeout as a [time.Duration].
func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration values with environment variables.
//
// DEEZER_SID replaces the stored credential and DZDEDUP_LOG_LEVEL the log level.
func (c *Config) ApplyEnv() {
	if sid := os.Getenv("DEEZER_SID"); sid != "" {
		c.Credentials.Deezer.SID = sid
	}
	if level := os.Getenv("DZDEDUP_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
