package toolmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/errutil"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

type registration struct {
	impl   toolImpl
	schema *gojsonschema.Schema // nil when the tool takes no parameters
}

// ToolManager dispatches tool calls by name. Arguments are validated against the
// tool's declared JSON schema, decoded into the tool's input struct, and the
// result is returned as JSON.
type ToolManager struct {
	mu       sync.RWMutex
	registry map[string]registration
	logger   *zap.Logger
}

// NewToolManager creates a ToolManager and registers the given tools.
func NewToolManager(logger *zap.Logger, tools ...toolImpl) (*ToolManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tm := &ToolManager{
		registry: make(map[string]registration),
		logger:   logger,
	}
	for _, t := range tools {
		if err := tm.Register(t); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Register adds a tool, replacing any tool with the same name.
func (m *ToolManager) Register(t toolImpl) error {
	decl := t.Declaration()

	var schema *gojsonschema.Schema
	if decl.Parameters != nil {
		var err error
		schema, err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(decl.Parameters))
		if err != nil {
			return &SchemaError{Tool: t.Name(), Cause: err}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry[t.Name()] = registration{impl: t, schema: schema}
	return nil
}

// Declarations returns the declarations of all registered tools sorted by name.
func (m *ToolManager) Declarations() []tool.Declaration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, r := range m.registry {
		decls = append(decls, r.impl.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Names returns the registered tool names sorted.
func (m *ToolManager) Names() []string {
	decls := m.Declarations()
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	return names
}

// Call runs the named tool with raw JSON arguments and returns its JSON result.
// Empty arguments are treated as an empty object. Errors from the tool itself
// are returned unchanged.
func (m *ToolManager) Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	m.mu.RLock()
	r, ok := m.registry[name]
	m.mu.RUnlock()
	if !ok {
		return nil, &UnknownToolError{Name: name, Available: m.Names()}
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	input, err := decodeInput(r, name, args)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("executing tool", zap.String("tool", name), zap.ByteString("args", args))

	res, err := r.impl.Execute(ctx, input)
	if err != nil {
		m.logger.Debug("tool failed", zap.String("tool", name), zap.String("kind", string(errutil.KindOf(err))), zap.Error(err))
		return nil, err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s result: %w", name, err)
	}
	return out, nil
}

// Execute runs a model tool call and wraps the outcome as a tool message.
// Tool failures are reported to the model in the message; only context
// cancellation is returned as an error. Calls without an ID get a generated one.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall) (provider.Message, error) {
	id := tc.ID
	if id == "" {
		id = uuid.NewString()
	}

	msg := provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: id,
		ToolName:   tc.Function.Name,
	}

	out, err := m.Call(ctx, tc.Function.Name, tc.Function.Arguments)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return provider.Message{}, ctxErr
	}
	if err != nil {
		msg.IsError = true
		msg.Content = fmt.Sprintf("Error [%s]: %v", errutil.KindOf(err), err)
		return msg, nil
	}

	msg.Content = string(out)
	return msg, nil
}

// decodeInput validates args against the tool schema and decodes them into a fresh input struct.
func decodeInput(r registration, name string, args json.RawMessage) (any, error) {
	if r.schema != nil {
		result, err := r.schema.Validate(gojsonschema.NewBytesLoader(args))
		if err != nil {
			return nil, &InvalidArgumentsError{Tool: name, Cause: err}
		}
		if !result.Valid() {
			problems := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				problems = append(problems, e.String())
			}
			return nil, &InvalidArgumentsError{Tool: name, Problems: problems}
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(args, &raw); err != nil {
		return nil, &InvalidArgumentsError{Tool: name, Cause: err}
	}

	input := r.impl.Input()
	if input == nil {
		return nil, nil
	}
	if err := mapstructure.Decode(raw, input); err != nil {
		return nil, &InvalidArgumentsError{Tool: name, Cause: err}
	}
	return input, nil
}
