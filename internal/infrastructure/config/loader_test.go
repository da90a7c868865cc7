package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(EnvDataDir, filepath.Join(dir, "data"))
	t.Setenv("ENV", "")
	t.Setenv("VEIL_LOG_LEVEL", "")
	t.Setenv("VEIL_LOG_FORMAT", "")
	return dir
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "css", mgr.viper.GetString("output.format"))
	assert.Equal(t, "veil-style", mgr.viper.GetString("output.style_id"))
	assert.Equal(t, "127.0.0.1:7878", mgr.viper.GetString("server.listen"))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "config", "config.toml")

	mgr, err := NewManagerForFile(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, file)
	assert.FileExists(t, filepath.Join(dir, "config", SchemaFileName))

	cfg := mgr.Get()
	assert.Equal(t, filepath.Join(dir, "data", "veil.sqlite"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(dir, "data", "veil.css"), cfg.Output.Path)
	assert.Equal(t, OutputFormatCSS, cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "custom.toml")
	writeConfig(t, file, `
[output]
format = "UserScript"
style_id = "my-veil"

[server]
listen = "127.0.0.1:9000"

[logging]
level = "debug"
`)
	t.Setenv("VEIL_SERVER_LISTEN", "0.0.0.0:8080")
	t.Setenv("VEIL_LOG_FORMAT", "json")

	mgr, err := NewManagerForFile(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, OutputFormatUserscript, cfg.Output.Format)
	assert.Equal(t, filepath.Join(dir, "data", "veil.user.js"), cfg.Output.Path)
	assert.Equal(t, "my-veil", cfg.Output.StyleID)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "config.toml")
	writeConfig(t, file, `
[output]
format = "xml"

[server]
listen = "nope"
`)

	mgr, err := NewManagerForFile(file)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
	assert.Contains(t, err.Error(), "server.listen")
}

func TestManager_WatchReloads(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "config.toml")
	writeConfig(t, file, "[server]\nlisten = \"127.0.0.1:7000\"\n")

	mgr, err := NewManagerForFile(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	changed := make(chan *Config, 16)
	mgr.OnConfigChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch())

	writeConfig(t, file, "[server]\nlisten = \"127.0.0.1:7001\"\n")

	// A rewrite may surface as several events, the first possibly seeing a
	// truncated file.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Server.Listen != "127.0.0.1:7001" {
				continue
			}
			assert.Equal(t, "127.0.0.1:7001", mgr.Get().Server.Listen)
			return
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}

func TestManager_GetBeforeLoad(t *testing.T) {
	mgr, err := NewManagerForFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), mgr.Get())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.css"), expandHome("~/x.css"))
	assert.Equal(t, "/abs/x.css", expandHome("/abs/x.css"))
}
