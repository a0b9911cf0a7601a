package loop

import (
	"context"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
)

// llmProvider communicates with an LLM.
type llmProvider interface {
	// Generate sends messages to the LLM and returns its response.
	Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error)
}

// toolManager declares and runs tools.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// Execute runs a tool call and returns the result as a tool message.
	// Tool failures are reported in the message, not as an error.
	Execute(ctx context.Context, tc provider.ToolCall) (provider.Message, error)
}
