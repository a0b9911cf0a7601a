package shell

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CommandPolicy rejects commands containing any forbidden substring.
// The check runs on the raw text and on its NFKC form, so compatibility
// characters such as fullwidth letters cannot be used to slip past it.
type CommandPolicy struct {
	patterns []string
	message  string
}

// NewCommandPolicy creates a policy. message is returned as stderr for blocked commands.
func NewCommandPolicy(patterns []string, message string) *CommandPolicy {
	return &CommandPolicy{
		patterns: append([]string(nil), patterns...),
		message:  message,
	}
}

// Blocked reports whether command matches a forbidden pattern, and which one.
func (p *CommandPolicy) Blocked(command string) (bool, string) {
	normalized := norm.NFKC.String(command)
	for _, pattern := range p.patterns {
		if strings.Contains(command, pattern) || strings.Contains(normalized, pattern) {
			return true, pattern
		}
	}
	return false, ""
}

// Message returns the stderr text reported for blocked commands.
func (p *CommandPolicy) Message() string {
	return p.message
}
