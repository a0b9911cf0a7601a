package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Tools validation - Files
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}

	// Tools validation - Tree & Search
	for _, name := range c.Tools.SkipDirs {
		if name == "" || strings.ContainsAny(name, `/\`) {
			errs = append(errs, fmt.Sprintf("tools.skip_dirs entry %q must be a plain directory name", name))
		}
	}
	if c.Tools.MaxScanTokenSize < 1 {
		errs = append(errs, "tools.max_scan_token_size must be >= 1")
	}

	// Tools validation - Commands
	if len(c.Tools.Shell) == 0 || c.Tools.Shell[0] == "" {
		errs = append(errs, "tools.shell must name a shell executable")
	}
	for _, pattern := range c.Tools.BlockedCommands {
		if pattern == "" {
			errs = append(errs, "tools.blocked_commands must not contain empty patterns")
		}
	}
	if len(c.Tools.BlockedCommands) > 0 && c.Tools.BlockedCommandMessage == "" {
		errs = append(errs, "tools.blocked_command_message is required when tools.blocked_commands is set")
	}
	if c.Tools.CommandTimeoutSeconds < 1 {
		errs = append(errs, "tools.command_timeout_seconds must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}

	// Logging validation
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
