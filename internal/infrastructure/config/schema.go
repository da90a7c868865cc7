package config

// Config represents the complete configuration for veil.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
	// Output controls the stylesheet file written by `veil watch` and `veil serve`.
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output" json:"output"`
	// Server controls the HTTP endpoint of `veil serve`.
	Server  ServerConfig  `mapstructure:"server" yaml:"server" toml:"server" json:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path of the SQLite rules database. Empty means $XDG_DATA_HOME/veil/veil.sqlite.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
}

// OutputFormat selects the stylesheet file rendering.
type OutputFormat string

const (
	OutputFormatCSS        OutputFormat = "css"
	OutputFormatUserscript OutputFormat = "userscript"
)

// OutputConfig controls the stylesheet file sink.
type OutputConfig struct {
	// Path of the written file. Empty picks veil.css or veil.user.js in the data directory.
	Path    string       `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	Format  OutputFormat `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=css,enum=userscript,default=css"`
	StyleID string       `mapstructure:"style_id" yaml:"style_id" toml:"style_id" json:"style_id" jsonschema:"default=veil-style"`
}

// ServerConfig controls the HTTP sink and preview API.
type ServerConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen" toml:"listen" json:"listen" jsonschema:"default=127.0.0.1:7878"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}
