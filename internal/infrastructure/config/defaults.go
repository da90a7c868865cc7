package config

const (
	defaultListen  = "127.0.0.1:7878"
	defaultStyleID = "veil-style"
)

// DefaultConfig returns the configuration used when no file overrides it.
// Paths are resolved later, so they stay empty here.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:  OutputFormatCSS,
			StyleID: defaultStyleID,
		},
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
