package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/isaacphi/realty/internal/config"
	"github.com/isaacphi/realty/internal/domain"
)

// Client adapts a langchaingo model to Provider.
type Client struct {
	llm      llms.Model
	modelCfg config.ModelPreset
}

func NewClient(modelCfg config.ModelPreset, providers config.Providers) (*Client, error) {
	model, err := createLLMClient(modelCfg, providers.APIKey(modelCfg.Provider))
	if err != nil {
		return nil, err
	}
	return NewClientWithModel(model, modelCfg), nil
}

func NewClientWithModel(model llms.Model, modelCfg config.ModelPreset) *Client {
	return &Client{llm: model, modelCfg: modelCfg}
}

func createLLMClient(modelCfg config.ModelPreset, apiKey string) (llms.Model, error) {
	var llm llms.Model
	var err error

	switch modelCfg.Provider {
	case "openai":
		opts := []openai.Option{openai.WithModel(modelCfg.Name)}
		if apiKey != "" {
			opts = append(opts, openai.WithToken(apiKey))
		}
		llm, err = openai.New(opts...)
	case "anthropic":
		opts := []anthropic.Option{anthropic.WithModel(modelCfg.Name)}
		if apiKey != "" {
			opts = append(opts, anthropic.WithToken(apiKey))
		}
		llm, err = anthropic.New(opts...)
	case "googleai":
		llm, err = googleai.New(
			context.Background(),
			googleai.WithDefaultModel(modelCfg.Name),
			googleai.WithAPIKey(apiKey),
		)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", modelCfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", modelCfg.Provider, err)
	}

	return llm, nil
}

func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(c.modelCfg.Temperature),
	}
	if c.modelCfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.modelCfg.MaxTokens))
	}

	langchainTools := getTools(req.Tools)
	if len(langchainTools) > 0 {
		opts = append(opts, llms.WithTools(langchainTools))
	}

	msgs := buildMessageHistory(req.System, req.Messages)

	resp, err := c.llm.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return Response{}, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no response choices returned")
	}

	// anthropic returns one choice per content block
	var text []string
	toolCalls := make([]domain.ToolCall, 0)
	for _, choice := range resp.Choices {
		if choice.Content != "" {
			text = append(text, choice.Content)
		}
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			id := tc.ID
			if id == "" {
				id = "call_" + uuid.NewString()
			}
			toolCalls = append(toolCalls, domain.ToolCall{
				ID:        id,
				Name:      tc.FunctionCall.Name,
				Arguments: json.RawMessage(tc.FunctionCall.Arguments),
			})
		}
	}

	return Response{
		Text:      strings.Join(text, "\n"),
		ToolCalls: toolCalls,
	}, nil
}

func buildMessageHistory(system string, messages []domain.Message) []llms.MessageContent {
	var history []llms.MessageContent
	if system != "" {
		history = append(history, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleSystem:
			history = append(history, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case domain.RoleAssistant:
			var parts []llms.ContentPart
			if msg.Content != "" {
				parts = append(parts, llms.TextContent{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: string(tc.Arguments),
					},
				})
			}
			history = append(history, llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts})
		case domain.RoleTool:
			if msg.ToolResult == nil {
				continue
			}
			history = append(history, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolResult.CallID,
					Name:       msg.ToolResult.Name,
					Content:    msg.ToolResult.Content,
				}},
			})
		default:
			history = append(history, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		}
	}
	return history
}

func getTools(tools []domain.Tool) []llms.Tool {
	var result []llms.Tool
	for _, tool := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertParameters(tool.Parameters),
			},
		})
	}
	return result
}

func convertParameters(params domain.Parameters) map[string]any {
	properties := make(map[string]any)

	for pName, prop := range params.Properties {
		properties[pName] = convertProperty(prop)
	}

	required := params.Required
	if required == nil {
		required = []string{}
	}

	return map[string]any{
		"type":       params.Type,
		"properties": properties,
		"required":   required,
	}
}

func convertProperty(prop domain.Property) map[string]any {
	result := map[string]any{
		"type":        prop.Type,
		"description": prop.Description,
	}

	if len(prop.Enum) > 0 {
		result["enum"] = prop.Enum
	}

	if prop.Default != nil {
		result["default"] = prop.Default
	}

	if prop.Type == "array" && prop.Items != nil {
		result["items"] = convertProperty(*prop.Items)
	}

	if prop.Type == "object" && len(prop.Properties) > 0 {
		nestedProps := make(map[string]any)
		for name, p := range prop.Properties {
			nestedProps[name] = convertProperty(p)
		}
		result["properties"] = nestedProps

		if len(prop.Required) > 0 {
			result["required"] = prop.Required
		}
	}

	return result
}
