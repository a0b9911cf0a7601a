// Package loop drives a conversation between a model and the workspace tools
// until the model answers without requesting another tool call.
package loop

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/workflow"
	"go.uber.org/zap"
)

// MaxIterationsError is returned when the model is still requesting tools
// after the configured number of turns.
type MaxIterationsError struct {
	Limit int
}

func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("max iterations (%d) reached", e.Limit)
}

// Loop runs one conversation between a provider and a tool manager.
type Loop struct {
	provider      llmProvider
	tools         toolManager
	events        chan<- workflow.Event
	maxIterations int
	logger        *zap.Logger
}

// NewLoop creates a Loop. events may be nil; when set, every event is sent on it
// and the caller must keep draining it until DoneEvent.
func NewLoop(provider llmProvider, tools toolManager, events chan<- workflow.Event, maxIterations int, logger *zap.Logger) *Loop {
	if provider == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if maxIterations < 1 {
		panic("maxIterations must be >= 1")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		provider:      provider,
		tools:         tools,
		events:        events,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// Run sends initialMessage to the model and executes the tool calls it requests,
// one at a time and in order, feeding each result back. It returns the full
// transcript, including the messages produced before any error.
func (l *Loop) Run(ctx context.Context, initialMessage string) ([]provider.Message, error) {
	messages := []provider.Message{
		{Role: provider.RoleUser, Content: initialMessage},
	}

	defer l.emit(workflow.DoneEvent{})

	declarations := l.tools.Declarations()
	for i := 0; i < l.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return messages, err
		}

		l.emit(workflow.ThinkingEvent{Iteration: i + 1})

		resp, err := l.provider.Generate(ctx, messages, declarations)
		if err != nil {
			return messages, fmt.Errorf("provider.Generate: %w", err)
		}

		// Tool responses must reference the call they answer.
		for j := range resp.ToolCalls {
			if resp.ToolCalls[j].ID == "" {
				resp.ToolCalls[j].ID = uuid.NewString()
			}
		}
		messages = append(messages, *resp)

		if resp.Content != "" {
			l.emit(workflow.TextEvent{Text: resp.Content})
		}

		if len(resp.ToolCalls) == 0 {
			return messages, nil
		}

		for _, tc := range resp.ToolCalls {
			l.emit(workflow.ToolStartEvent{ToolName: tc.Function.Name, CallID: tc.ID, Arguments: string(tc.Function.Arguments)})

			toolResp, err := l.tools.Execute(ctx, tc)
			if err != nil {
				return messages, fmt.Errorf("tools.Execute (%s): %w", tc.Function.Name, err)
			}
			l.logger.Debug("tool call finished",
				zap.String("tool", tc.Function.Name),
				zap.String("call_id", toolResp.ToolCallID),
				zap.Bool("error", toolResp.IsError),
			)

			l.emit(workflow.ToolEndEvent{
				ToolName: toolResp.ToolName,
				CallID:   toolResp.ToolCallID,
				Content:  toolResp.Content,
				IsError:  toolResp.IsError,
			})
			messages = append(messages, toolResp)
		}
	}

	return messages, &MaxIterationsError{Limit: l.maxIterations}
}

func (l *Loop) emit(e workflow.Event) {
	if l.events != nil {
		l.events <- e
	}
}
