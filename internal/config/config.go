// Package config handles global ftrace settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Greathoney/uftrace/internal/tracefile"
)

// Global holds settings from ~/.ftrace/config.yaml. Command-line flags
// take precedence over everything here; the file and environment only
// supply defaults.
type Global struct {
	// LibraryPath is the directory holding libmcount.so and
	// librtld-audit.so.
	LibraryPath string `yaml:"library_path"`
	// DataFile is the default trace file path.
	DataFile string `yaml:"data_file"`
	// Color controls replay colorization: auto, on or off.
	Color string `yaml:"color"`
	// Flat selects the flat replay format instead of the call graph.
	Flat bool `yaml:"flat"`
}

// envOverrides holds raw environment values applied on top of the file.
type envOverrides struct {
	LibraryPath string `env:"FTRACE_LIBPATH"`
	Color       string `env:"FTRACE_COLOR"`
}

// DefaultGlobal returns the default global configuration.
func DefaultGlobal() *Global {
	return &Global{
		LibraryPath: ".",
		DataFile:    tracefile.DefaultPath,
		Color:       "auto",
	}
}

// LoadGlobal reads config.yaml from GlobalConfigDir and applies
// environment overrides.
func LoadGlobal() (*Global, error) {
	cfg := DefaultGlobal()

	// Try to load from file
	configPath := filepath.Join(GlobalConfigDir(), "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		_ = yaml.Unmarshal(data, cfg) // Ignore unmarshal errors, use defaults
	}

	// Apply environment overrides
	var overrides envOverrides
	if err := env.Parse(&overrides); err == nil {
		if overrides.LibraryPath != "" {
			cfg.LibraryPath = overrides.LibraryPath
		}
		if overrides.Color != "" {
			cfg.Color = overrides.Color
		}
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.ftrace.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ftrace")
	}
	return filepath.Join(homeDir, ".ftrace")
}
