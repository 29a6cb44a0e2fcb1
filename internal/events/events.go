package events

import "time"

// EventType identifies the conversation boundary an event was emitted at.
type EventType int

const (
	EventTypeTurn EventType = iota
	EventTypeModelCall
	EventTypeToolCall
)

func (t EventType) String() string {
	switch t {
	case EventTypeTurn:
		return "turn"
	case EventTypeModelCall:
		return "model_call"
	case EventTypeToolCall:
		return "tool_call"
	default:
		return "unknown"
	}
}

type Stage string

const (
	StageStart   Stage = "start"
	StageSuccess Stage = "success"
	StageError   Stage = "error"
)

// Event is the interface for all observability events
type Event interface {
	Type() EventType
	Stage() Stage
	Payload() map[string]any
	Err() error
}

// TurnEvent brackets one user question.
type TurnEvent struct {
	Status     Stage
	Input      string
	Answer     string
	Iterations int
	Error      error
}

func (e TurnEvent) Type() EventType { return EventTypeTurn }
func (e TurnEvent) Stage() Stage    { return e.Status }
func (e TurnEvent) Err() error      { return e.Error }

func (e TurnEvent) Payload() map[string]any {
	p := map[string]any{"input": e.Input}
	if e.Status != StageStart {
		p["iterations"] = e.Iterations
	}
	if e.Answer != "" {
		p["answer"] = e.Answer
	}
	return p
}

// ModelCallEvent brackets one request to the model.
type ModelCallEvent struct {
	Status    Stage
	Iteration int
	Model     string
	Messages  int
	ToolCalls int
	Duration  time.Duration
	Timeout   bool
	Error     error
}

func (e ModelCallEvent) Type() EventType { return EventTypeModelCall }
func (e ModelCallEvent) Stage() Stage    { return e.Status }
func (e ModelCallEvent) Err() error      { return e.Error }

func (e ModelCallEvent) Payload() map[string]any {
	p := map[string]any{
		"iteration": e.Iteration,
		"messages":  e.Messages,
	}
	if e.Model != "" {
		p["model"] = e.Model
	}
	switch e.Status {
	case StageSuccess:
		p["tool_calls"] = e.ToolCalls
		p["duration_ms"] = e.Duration.Milliseconds()
	case StageError:
		p["timeout"] = e.Timeout
		p["duration_ms"] = e.Duration.Milliseconds()
	}
	return p
}

// ToolCallEvent brackets one tool invocation.
type ToolCallEvent struct {
	Status    Stage
	CallID    string
	Name      string
	Arguments string
	Result    string
	Summary   string
	Duration  time.Duration
	Error     error
}

func (e ToolCallEvent) Type() EventType { return EventTypeToolCall }
func (e ToolCallEvent) Stage() Stage    { return e.Status }
func (e ToolCallEvent) Err() error      { return e.Error }

func (e ToolCallEvent) Payload() map[string]any {
	p := map[string]any{
		"call_id": e.CallID,
		"tool":    e.Name,
	}
	if e.Status == StageStart {
		p["arguments"] = e.Arguments
		return p
	}
	p["duration_ms"] = e.Duration.Milliseconds()
	if e.Result != "" {
		p["result"] = e.Result
	}
	if e.Summary != "" {
		p["summary"] = e.Summary
	}
	return p
}
