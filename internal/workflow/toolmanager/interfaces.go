package toolmanager

import (
	"context"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
)

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Input returns a pointer to a fresh input struct (e.g., &file.ReadFileRequest{}).
	// Fields are decoded by their mapstructure tags.
	Input() any

	// Execute runs the tool with the decoded input. The result is serialized to JSON.
	Execute(ctx context.Context, input any) (any, error)
}
