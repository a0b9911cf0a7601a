package shell

// ShellRequest runs Command through the configured shell.
// An empty WorkingDir means the project root.
type ShellRequest struct {
	Command    string `mapstructure:"command" json:"command"`
	WorkingDir string `mapstructure:"cwd" json:"cwd,omitempty"`
}

// CommandResult is the outcome of a command that ran to completion or was blocked.
// ExitCode is the child's exit status, or minus the signal number if it was
// killed by a signal. A blocked command has empty Stdout, the block message
// as Stderr, exit code 1 and Blocked set.
type CommandResult struct {
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	ExitCode  int    `json:"exit_code"`
	Truncated bool   `json:"truncated,omitempty"`
	Blocked   bool   `json:"blocked,omitempty"`
}
