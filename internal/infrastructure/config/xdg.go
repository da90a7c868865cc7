package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName      = "veil"
	databaseName = "veil.sqlite"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Environment overrides for the XDG directories.
const (
	EnvConfigDir = "VEIL_CONFIG_DIR"
	EnvDataDir   = "VEIL_DATA_DIR"
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
}

// GetXDGDirs returns $XDG_CONFIG_HOME/veil and $XDG_DATA_HOME/veil unless
// overridden. ENV=dev keeps everything under ./.dev/veil.
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: devDir, DataHome: devDir}, nil
	}

	dirs := &XDGDirs{
		ConfigHome: filepath.Join(xdg.ConfigHome, appName),
		DataHome:   filepath.Join(xdg.DataHome, appName),
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		dirs.ConfigHome = dir
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		dirs.DataHome = dir
	}
	return dirs, nil
}

// GetConfigDir returns the config directory.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the data directory.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// GetDatabaseFile returns the default rules database path.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// GetOutputFile returns the default stylesheet path for format.
func GetOutputFile(format OutputFormat) (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	if format == OutputFormatUserscript {
		return filepath.Join(dataDir, "veil.user.js"), nil
	}
	return filepath.Join(dataDir, "veil.css"), nil
}
