package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the gdtest configuration file.
const ConfigFileName = "gdtest.toml"

// FindConfigFile walks up from the given directory to find gdtest.toml.
// Returns the absolute path to the config file, or an empty string if not
// found. Stops at the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile parses the TOML file at the given path and returns the
// configuration and TOML metadata. The metadata can be used to detect
// unknown keys via MetaData.Undecoded().
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return &cfg, md, nil
}

// Load resolves the effective configuration: built-in defaults overlaid
// with gdtest.toml when one is found at or above startDir. The returned
// path is empty when no file was found.
func Load(startDir string) (*Config, string, error) {
	cfg := NewDefaults()

	path, err := FindConfigFile(startDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return cfg, "", nil
	}

	fileCfg, _, err := LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}

	merge(cfg, fileCfg)
	return cfg, path, nil
}

// LoadFile resolves the effective configuration from an explicit file
// path: built-in defaults overlaid with the file's values.
func LoadFile(path string) (*Config, error) {
	fileCfg, _, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefaults()
	merge(cfg, fileCfg)
	return cfg, nil
}

// merge overlays non-zero file values onto the defaults. Booleans are
// taken from the file unconditionally since false is their default anyway.
func merge(base, file *Config) {
	if file.Runner.GeodelityDir != "" {
		base.Runner.GeodelityDir = file.Runner.GeodelityDir
	}
	if file.Runner.TestsDir != "" {
		base.Runner.TestsDir = file.Runner.TestsDir
	}
	if file.Runner.GrunDir != "" {
		base.Runner.GrunDir = file.Runner.GrunDir
	}
	if file.Runner.Jobs > 0 {
		base.Runner.Jobs = file.Runner.Jobs
	}
	base.Runner.Debug = base.Runner.Debug || file.Runner.Debug
	base.Runner.KeepJobFiles = base.Runner.KeepJobFiles || file.Runner.KeepJobFiles
}
