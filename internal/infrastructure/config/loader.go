package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	file      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager for the XDG config file.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config file: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerForFile(configFile)
}

// NewManagerForFile creates a manager reading configFile.
func NewManagerForFile(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// VEIL_OUTPUT_PATH, VEIL_SERVER_LISTEN, ...
	v.SetEnvPrefix("VEIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shared with logging.NewFromEnv, which runs before the config is loaded.
	if err := v.BindEnv("logging.level", "VEIL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind VEIL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "VEIL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind VEIL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		file:      configFile,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the config file, creating a default one on first run, then
// applies environment overrides, resolves paths and validates.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)
	if err := resolvePaths(config); err != nil {
		return err
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if _, statErr := os.Stat(m.file); errors.Is(statErr, os.ErrNotExist) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.file,
				createErr,
			)
		}
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.file, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.file,
			err,
		)
	}
	return config, nil
}

func resolvePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Output.Path == "" {
		outPath, err := GetOutputFile(config.Output.Format)
		if err != nil {
			return fmt.Errorf("failed to get output path: %w", err)
		}
		config.Output.Path = outPath
	}
	config.Database.Path = expandHome(config.Database.Path)
	config.Output.Path = expandHome(config.Output.Path)
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func normalizeConfig(config *Config) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(string(config.Output.Format)))) {
	case "", OutputFormatCSS:
		config.Output.Format = OutputFormatCSS
	case OutputFormatUserscript:
		config.Output.Format = OutputFormatUserscript
	}
	config.Output.StyleID = strings.TrimSpace(config.Output.StyleID)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file.
func (m *Manager) GetConfigFile() string {
	return m.file
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	dir := filepath.Dir(m.file)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	if err := m.viper.SafeWriteConfigAs(m.file); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := GenerateSchemaFile(dir); err != nil {
		return err
	}
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("database.path", defaults.Database.Path)
	m.viper.SetDefault("output.path", defaults.Output.Path)
	m.viper.SetDefault("output.format", string(defaults.Output.Format))
	m.viper.SetDefault("output.style_id", defaults.Output.StyleID)
	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
