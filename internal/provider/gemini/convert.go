// Package gemini converts tool declarations and tool traffic to and from
// the google.golang.org/genai types.
package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
	"google.golang.org/genai"
)

// Gemini content roles.
const (
	roleUser  = "user"
	roleModel = "model"
)

// ToTools converts tool declarations to a single Gemini tool.
func ToTools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.Parameters = toGeminiSchema(d.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema to a Gemini schema, recursively.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
	}

	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if len(s.Required) > 0 {
		schema.Required = s.Required
	}
	if len(s.Enum) > 0 {
		schema.Enum = s.Enum
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}

	return schema
}

// toGeminiType converts a JSON Schema type to a Gemini type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// ToToolCalls extracts the function calls of a model response.
// Gemini may omit call IDs; those are left empty for the caller to fill.
func ToToolCalls(content *genai.Content) ([]provider.ToolCall, error) {
	if content == nil {
		return nil, nil
	}

	var calls []provider.ToolCall
	for _, part := range content.Parts {
		if part == nil || part.FunctionCall == nil {
			continue
		}
		fc := part.FunctionCall

		args := fc.Args
		if args == nil {
			args = map[string]any{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments for %s: %w", fc.Name, err)
		}

		calls = append(calls, provider.ToolCall{
			ID: fc.ID,
			Function: provider.FunctionCall{
				Name:      fc.Name,
				Arguments: raw,
			},
		})
	}
	return calls, nil
}

// ToContent converts a message to Gemini content. Tool messages become
// function responses keyed "output", or "error" when the tool failed.
// Returns nil for messages with nothing to send.
func ToContent(msg provider.Message) *genai.Content {
	if msg.Role == provider.RoleTool {
		key := "output"
		if msg.IsError {
			key = "error"
		}
		return &genai.Content{
			Role: roleUser,
			Parts: []*genai.Part{{
				FunctionResponse: &genai.FunctionResponse{
					ID:       msg.ToolCallID,
					Name:     msg.ToolName,
					Response: map[string]any{key: msg.Content},
				},
			}},
		}
	}

	role := roleUser
	if msg.Role == provider.RoleAssistant {
		role = roleModel
	}

	parts := make([]*genai.Part, 0, 1+len(msg.ToolCalls))
	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if len(tc.Function.Arguments) > 0 {
			// Arguments that are not a JSON object are sent without args.
			_ = json.Unmarshal(tc.Function.Arguments, &args)
		}
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	if len(parts) == 0 {
		return nil
	}
	return &genai.Content{Role: role, Parts: parts}
}

// ToContents converts messages to Gemini contents, skipping empty ones.
func ToContents(messages []provider.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		if c := ToContent(msg); c != nil {
			contents = append(contents, c)
		}
	}
	return contents
}
