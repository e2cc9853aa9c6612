// Package paths resolves the converter's configuration and data folder
// locations.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative default directory names.
const (
	DefaultConfigDirName = ".nomad-stac"
	DefaultInputDirName  = "data/raw"
	DefaultOutputDirName = "data/processed"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "NOMADSTAC_CONFIG_DIR"
	EnvInputDir  = "NOMADSTAC_INPUT_DIR"
	EnvOutputDir = "NOMADSTAC_OUTPUT_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > NOMADSTAC_CONFIG_DIR env > $(CWD)/.nomad-stac.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, "", EnvConfigDir, DefaultConfigDirName)
}

// ResolveInputDir returns the raw-data folder following the precedence
// chain: flag > config value > NOMADSTAC_INPUT_DIR env > $(CWD)/data/raw.
func ResolveInputDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvInputDir, DefaultInputDirName)
}

// ResolveOutputDir returns the catalog output folder following the
// precedence chain: flag > config value > NOMADSTAC_OUTPUT_DIR env >
// $(CWD)/data/processed.
func ResolveOutputDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvOutputDir, DefaultOutputDirName)
}

func resolve(flag, configValue, envName, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(envName); env != "" {
		return filepath.Abs(env)
	}
	// CWD-relative default keeps catalogs next to the data they came from.
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, filepath.FromSlash(defaultName)), nil
}
