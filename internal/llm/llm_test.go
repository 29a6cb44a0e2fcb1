package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/isaacphi/realty/internal/config"
	"github.com/isaacphi/realty/internal/domain"
)

type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

var preset = config.ModelPreset{Provider: "openai", Name: "gpt-4o-mini", Temperature: 0.2, MaxTokens: 512}

var propertyTool = domain.Tool{
	Name:        "find_property",
	Description: "Look up a property",
	Parameters: domain.Parameters{
		Type:       "object",
		Properties: map[string]domain.Property{"address": {Type: "string", Description: "street address"}},
		Required:   []string{"address"},
	},
}

func TestCompleteToolCalls(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           "call_1",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: "find_property", Arguments: `{"address":"85 Turner St"}`},
		}},
	}}}}
	client := NewClientWithModel(model, preset)

	resp, err := client.Complete(context.Background(), Request{
		System:   "be brief",
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "Tell me about 85 Turner St"}},
		Tools:    []domain.Tool{propertyTool},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "find_property", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"address":"85 Turner St"}`, string(resp.ToolCalls[0].Arguments))

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)

	assert.Equal(t, 0.2, model.options.Temperature)
	assert.Equal(t, 512, model.options.MaxTokens)
	require.Len(t, model.options.Tools, 1)
	fn := model.options.Tools[0].Function
	assert.Equal(t, "find_property", fn.Name)
	params, ok := fn.Parameters.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"address"}, params["required"])
}

func TestCompleteFinalAnswer(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "It sold for $1,480,000."}}}}
	client := NewClientWithModel(model, config.ModelPreset{Provider: "openai", Name: "gpt-4o-mini"})

	resp, err := client.Complete(context.Background(), Request{Messages: []domain.Message{{Role: domain.RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "It sold for $1,480,000.", resp.Text)
	assert.Empty(t, resp.ToolCalls)
	assert.Empty(t, model.options.Tools)
	assert.Zero(t, model.options.MaxTokens)
}

func TestCompleteJoinsTextAcrossChoices(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{
		{Content: "Let me look that up."},
		{ToolCalls: []llms.ToolCall{{
			ID:           "toolu_1",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: "find_property", Arguments: `{"address":"85 Turner St"}`},
		}}},
		{Content: "One moment."},
	}}}
	client := NewClientWithModel(model, config.ModelPreset{Provider: "anthropic", Name: "claude-sonnet"})

	resp, err := client.Complete(context.Background(), Request{Messages: []domain.Message{{Role: domain.RoleUser, Content: "85 Turner St?"}}})
	require.NoError(t, err)
	assert.Equal(t, "Let me look that up.\nOne moment.", resp.Text)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
}

func TestCompleteErrors(t *testing.T) {
	client := NewClientWithModel(&fakeModel{err: errors.New("rate limited")}, preset)
	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "rate limited")

	client = NewClientWithModel(&fakeModel{resp: &llms.ContentResponse{}}, preset)
	_, err = client.Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "no response choices")
}

func TestBuildMessageHistory(t *testing.T) {
	history := buildMessageHistory("", []domain.Message{
		{Role: domain.RoleUser, Content: "What about Abbotsford?"},
		{Role: domain.RoleAssistant, ToolCalls: []domain.ToolCall{{ID: "c1", Name: "suburb_trends", Arguments: json.RawMessage(`{"suburb":"Abbotsford"}`)}}},
		{Role: domain.RoleTool, ToolResult: &domain.ToolResult{CallID: "c1", Name: "suburb_trends", Content: `{"status":"ok"}`}},
		{Role: domain.RoleAssistant, Content: "Median is $1.2m."},
	})
	require.Len(t, history, 4)

	assert.Equal(t, llms.ChatMessageTypeAI, history[1].Role)
	require.Len(t, history[1].Parts, 1)
	call, ok := history[1].Parts[0].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "c1", call.ID)
	assert.Equal(t, `{"suburb":"Abbotsford"}`, call.FunctionCall.Arguments)

	assert.Equal(t, llms.ChatMessageTypeTool, history[2].Role)
	response, ok := history[2].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "c1", response.ToolCallID)

	text, ok := history[3].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Median is $1.2m.", text.Text)
}

func TestCreateLLMClientUnsupported(t *testing.T) {
	_, err := createLLMClient(config.ModelPreset{Provider: "ollama", Name: "llama3"}, "")
	assert.ErrorContains(t, err, "unsupported provider")
}
