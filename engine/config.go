package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable engine settings, loaded from
// ~/.lantern/config.yaml when present.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Download DownloadConfig `yaml:"download"`
	Log      LogConfig      `yaml:"log"`

	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type HTTPConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Retries        int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

type DownloadConfig struct {
	Directory   string `yaml:"directory"`
	Concurrency int    `yaml:"concurrency"`
}

type LogConfig struct {
	File    string `yaml:"file"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			Retries:        3,
		},
		Download: DownloadConfig{
			Directory:   "downloads",
			Concurrency: 4,
		},
		Log: LogConfig{
			File: defaultLogPath(),
		},
		CacheTTLSeconds: 300,
	}
}

// ConfigPath returns the location of the user config file
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// LoadConfig reads the user config file, overlaying it on the defaults. A
// missing file is not an error.
func LoadConfig() (*Config, error) {
	return loadConfigFrom(ConfigPath())
}

func loadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveConfig writes cfg to the user config file, creating the directory if
// needed.
func SaveConfig(cfg *Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) normalize() {
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = 30
	}
	if c.HTTP.Retries < 0 {
		c.HTTP.Retries = 0
	}
	if c.Download.Directory == "" {
		c.Download.Directory = "downloads"
	}
	if c.Download.Concurrency <= 0 {
		c.Download.Concurrency = 4
	}
	if c.CacheTTLSeconds < 0 {
		c.CacheTTLSeconds = 0
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lantern"
	}
	return filepath.Join(home, ".lantern")
}

func defaultLogPath() string {
	return filepath.Join(configDir(), "logs", "lantern.log")
}
