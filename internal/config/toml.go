// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage   StorageConfig   `toml:"storage"`
	Timeouts  TimeoutsConfig  `toml:"timeouts"`
	Simulator SimulatorConfig `toml:"simulator"`
	Log       LogConfig       `toml:"log"`
}

// StorageConfig locates the non-volatile memory database.
type StorageConfig struct {
	Path *string `toml:"path"`
}

// TimeoutsConfig maps the idle budgets in milliseconds.
type TimeoutsConfig struct {
	InfoMs   *int `toml:"info-ms"`
	MenuMs   *int `toml:"menu-ms"`
	SelectMs *int `toml:"select-ms"`
	ValueMs  *int `toml:"value-ms"`
}

// SimulatorConfig seeds the simulated hardware.
type SimulatorConfig struct {
	Songs        *int     `toml:"songs"`
	TemperatureC *float64 `toml:"temperature-c"`
	Light        *int     `toml:"light"`
	BatteryMv    *int     `toml:"battery-mv"`
	SongMs       *int     `toml:"song-ms"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Debug *bool `toml:"debug"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
