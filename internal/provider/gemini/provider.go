package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model sends back no candidate content.
var ErrEmptyResponse = errors.New("gemini returned no content")

// contentGenerator is satisfied by (*genai.Client).Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider generates assistant messages with a Gemini model.
type Provider struct {
	client       contentGenerator
	model        string
	systemPrompt string
}

// NewProvider creates a Provider. systemPrompt may be empty.
func NewProvider(client contentGenerator, model, systemPrompt string) *Provider {
	if client == nil {
		panic("client is required")
	}
	if model == "" {
		panic("model is required")
	}
	return &Provider{client: client, model: model, systemPrompt: systemPrompt}
}

// Generate sends the conversation and tool declarations to the model and
// returns its reply as an assistant message.
func (p *Provider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	config := &genai.GenerateContentConfig{Tools: ToTools(tools)}
	if p.systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(p.systemPrompt, roleUser)
	}

	resp, err := p.client.GenerateContent(ctx, p.model, ToContents(messages), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate (%s): %w", p.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}
	content := resp.Candidates[0].Content

	var text strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	calls, err := ToToolCalls(content)
	if err != nil {
		return nil, err
	}

	return &provider.Message{
		Role:      provider.RoleAssistant,
		Content:   text.String(),
		ToolCalls: calls,
	}, nil
}
