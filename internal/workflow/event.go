// Package workflow holds the events emitted while an agent loop runs.
package workflow

// Event is the interface for all workflow events.
// Consumers handle events via type switch.
type Event interface {
	isEvent()
}

// ThinkingEvent is emitted before each model request.
type ThinkingEvent struct {
	Iteration int
}

func (ThinkingEvent) isEvent() {}

// TextEvent is emitted when the model produces text output.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ToolStartEvent is emitted when a tool call begins.
type ToolStartEvent struct {
	ToolName  string
	CallID    string
	Arguments string
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool call completes, successfully or not.
type ToolEndEvent struct {
	ToolName string
	CallID   string
	Content  string
	IsError  bool
}

func (ToolEndEvent) isEvent() {}

// DoneEvent is emitted when the loop returns.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
