package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Tools   ToolsConfig   `json:"tools" yaml:"tools"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)

	// Tree & Search
	SkipDirs         []string `json:"skip_dirs" yaml:"skip_dirs"`                     // Directory names never descended into
	RespectGitignore bool     `json:"respect_gitignore" yaml:"respect_gitignore"`     // Default: false
	MaxScanTokenSize int      `json:"max_scan_token_size" yaml:"max_scan_token_size"` // Default: 10 * 1024 * 1024 (10MB)

	// Command Execution
	Shell                 []string `json:"shell" yaml:"shell"`                       // Default: ["sh", "-c"]
	BlockedCommands       []string `json:"blocked_commands" yaml:"blocked_commands"` // Default: ["runserver"]
	BlockedCommandMessage string   `json:"blocked_command_message" yaml:"blocked_command_message"`
	CommandTimeoutSeconds int      `json:"command_timeout_seconds" yaml:"command_timeout_seconds"` // Default: 15
	GracefulShutdownMs    int      `json:"graceful_shutdown_ms" yaml:"graceful_shutdown_ms"`       // Default: 2000
	MaxCommandOutputSize  int64    `json:"max_command_output_size" yaml:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error. Default: info
	Format string `json:"format" yaml:"format"` // console or json. Default: console
}

// DefaultSkipDirs are the directory names pruned from tree listings and searches.
var DefaultSkipDirs = []string{
	".venv",
	"__pycache__",
	".git",
	".pytest_cache",
	".mypy_cache",
	".coverage",
	"node_modules",
	".DS_Store",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			MaxFileSize:           20 * 1024 * 1024,
			SkipDirs:              append([]string(nil), DefaultSkipDirs...),
			RespectGitignore:      false,
			MaxScanTokenSize:      10 * 1024 * 1024,
			Shell:                 []string{"sh", "-c"},
			BlockedCommands:       []string{"runserver"},
			BlockedCommandMessage: "Error: Running the Django development server (runserver) is not allowed through this tool.",
			CommandTimeoutSeconds: 15,
			GracefulShutdownMs:    2000,
			MaxCommandOutputSize:  10 * 1024 * 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
