package llm

import (
	"context"

	"github.com/isaacphi/realty/internal/domain"
)

type Request struct {
	System   string
	Messages []domain.Message
	Tools    []domain.Tool
}

// Response is either a final answer (no ToolCalls) or a batch of tool calls,
// possibly with accompanying text.
type Response struct {
	Text      string
	ToolCalls []domain.ToolCall
}

// Provider is one request/response exchange with a chat model. It has no
// conversation state of its own.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
