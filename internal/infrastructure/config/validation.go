package config

import (
	"fmt"
	"net"
	"strings"
)

// validateConfig collects every invalid value into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateOutput(config)...)
	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateOutput(config *Config) []string {
	var validationErrors []string
	switch config.Output.Format {
	case OutputFormatCSS, OutputFormatUserscript:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("output.format must be css or userscript (got %q)", config.Output.Format))
	}
	if config.Output.Format == OutputFormatUserscript && strings.TrimSpace(config.Output.StyleID) == "" {
		validationErrors = append(validationErrors, "output.style_id cannot be empty for userscript output")
	}
	if strings.ContainsAny(config.Output.StyleID, " \t\"'<>") {
		validationErrors = append(validationErrors, "output.style_id must be a valid element id")
	}
	return validationErrors
}

func validateServer(config *Config) []string {
	if _, _, err := net.SplitHostPort(config.Server.Listen); err != nil {
		return []string{fmt.Sprintf("server.listen must be host:port (got %q)", config.Server.Listen)}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	return validationErrors
}
