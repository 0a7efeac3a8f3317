package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/easekit/internal/platform"
)

// Config represents the global ~/.easekit/config.toml.
type Config struct {
	DefaultProfile string           `toml:"default_profile"`
	Locale         string           `toml:"locale"`
	Display        platform.Metrics `toml:"display"`
	Storage        Storage          `toml:"storage"`
	Network        Network          `toml:"network"`
	Log            Log              `toml:"log"`
}

// Log configures the daemon log file.
type Log struct {
	Level string `toml:"level"`
}

// Storage configures the external storage probe.
type Storage struct {
	ExternalPath string `toml:"external_path"`
}

// Network configures the connectivity monitor.
type Network struct {
	ProbeIntervalSeconds int `toml:"probe_interval_seconds"`
}

const defaultProbeInterval = 10 * time.Second

// ProbeInterval returns the monitor poll interval, defaulting to 10s.
func (n Network) ProbeInterval() time.Duration {
	if n.ProbeIntervalSeconds <= 0 {
		return defaultProbeInterval
	}
	return time.Duration(n.ProbeIntervalSeconds) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Locale: "en",
		Display: platform.Metrics{
			WidthPx:       1080,
			HeightPx:      1920,
			DensityDpi:    480,
			Density:       3,
			ScaledDensity: 3,
		},
		Network: Network{ProbeIntervalSeconds: int(defaultProbeInterval / time.Second)},
		Log:     Log{Level: "info"},
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault reads config from path, falling back to Default when the file
// does not exist. Keys absent from the file keep their default values.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
