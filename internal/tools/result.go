package tools

import (
	"encoding/json"

	"github.com/isaacphi/realty/internal/domain"
)

type Status string

const (
	StatusOK               Status = "ok"
	StatusNotFound         Status = "not_found"
	StatusError            Status = "error"
	StatusInvalidArguments Status = "invalid_arguments"
)

// Result is a tool invocation outcome. Content is the JSON payload the model sees.
type Result struct {
	CallID  string
	Name    string
	Status  Status
	Content string
	Summary string
}

func (r Result) IsError() bool {
	return r.Status == StatusError || r.Status == StatusInvalidArguments
}

// ToolResult converts r into the history entry sent back to the model.
func (r Result) ToolResult() domain.ToolResult {
	return domain.ToolResult{
		CallID:  r.CallID,
		Name:    r.Name,
		Content: r.Content,
		IsError: r.IsError(),
	}
}

type payload struct {
	Status  Status `json:"status"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

type summarizer interface {
	Summary() string
}

func okResult(call domain.ToolCall, out any) Result {
	content, err := json.Marshal(payload{Status: StatusOK, Result: out})
	if err != nil {
		return errorResult(call, err)
	}
	res := Result{CallID: call.ID, Name: call.Name, Status: StatusOK, Content: string(content)}
	if s, ok := out.(summarizer); ok {
		res.Summary = s.Summary()
	}
	return res
}

func notFoundResult(call domain.ToolCall, err error) Result {
	return messageResult(call, StatusNotFound, err.Error())
}

func errorResult(call domain.ToolCall, err error) Result {
	return messageResult(call, StatusError, err.Error())
}

// InvalidArgumentsResult reports rejected arguments back to the model so it
// can correct the call.
func InvalidArgumentsResult(call domain.ToolCall, err error) Result {
	return messageResult(call, StatusInvalidArguments, err.Error())
}

func messageResult(call domain.ToolCall, status Status, msg string) Result {
	content, _ := json.Marshal(payload{Status: status, Message: msg})
	return Result{CallID: call.ID, Name: call.Name, Status: status, Content: string(content), Summary: msg}
}
